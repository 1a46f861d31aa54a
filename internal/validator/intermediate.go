package validator

import (
	"fmt"
	"strings"

	"codejudge/internal/parser"
	"codejudge/internal/semantic"
	"codejudge/internal/spec"
)

// IntermediateTier grades framework usage in depth: structural checks
// plus a full structured-pattern dispatch per framework. Unrecognized
// pattern kinds fail closed with a diagnostic instead of silently
// passing.
type IntermediateTier struct{}

func (t *IntermediateTier) Name() string { return "intermediate" }

func (t *IntermediateTier) CanHandle(difficulty, framework string) bool {
	return difficulty == "intermediate" || difficulty == "medium" ||
		difficulty == "advanced" || difficulty == "hard"
}

func (t *IntermediateTier) Validate(parsed *parser.ParseResult, req *spec.RequirementSpec, code string) *Result {
	fw := semantic.ParseFramework(req.Framework)
	prof := semantic.ForFramework(fw).Analyze(code, parsed)

	return &Result{
		Imports:   validateImports(parsed, req.RequiredImports),
		Structure: t.validateStructure(parsed, req.RequiredStructure, prof),
		Behavior:  t.validateBehavior(req.BehaviorPatterns, code, prof, fw),
		Tier:      t.Name(),
	}
}

// validateStructure counts only the detailed requirement forms; bare
// names carry too little intent for this tier.
func (t *IntermediateTier) validateStructure(parsed *parser.ParseResult, structure spec.Structure, prof *semantic.Profile) ComponentResult {
	var details []string
	passed, total := 0, 0

	for _, cs := range structure.Classes {
		if !cs.Detailed || cs.Name == "" {
			continue
		}
		total++
		found := findClass(parsed, cs.Name)
		if found == nil {
			details = append(details, fmt.Sprintf("✗ Class '%s' not found", cs.Name))
			continue
		}
		passed++
		details = append(details, fmt.Sprintf("✓ Class '%s' found", cs.Name))

		if prof.Django != nil {
			details = djangoClassNotes(cs, prof.Django, details)
		}
		if prof.React != nil {
			details = reactClassNotes(cs, found, prof.React, details)
		}
	}

	for _, fs := range structure.Functions {
		if !fs.Detailed || fs.Name == "" {
			continue
		}
		total++
		found := findFunction(parsed, fs.Name)
		if found == nil {
			details = append(details, fmt.Sprintf("✗ Function '%s' not found", fs.Name))
			continue
		}
		passed++
		details = append(details, fmt.Sprintf("✓ Function '%s' found", fs.Name))

		if len(fs.Params) > 0 {
			total++
			if paramsSubset(fs.Params, found.Params) {
				passed++
				details = append(details, "  ✓ Parameters correct")
			} else {
				details = append(details, "  ✗ Parameters mismatch")
			}
		}

		if prof.Django != nil {
			details = djangoFunctionNotes(fs, prof.Django, details)
		}
		if prof.React != nil {
			details = reactFunctionNotes(fs, prof.React, details)
		}
	}

	if total == 0 {
		return ComponentResult{Details: []string{"⚠️ No structure validation"}}
	}
	return ComponentResult{
		Passed:  passed == total,
		Score:   float64(passed) / float64(total) * 100,
		Details: details,
	}
}

func djangoClassNotes(cs spec.ClassReq, facts *semantic.DjangoFacts, details []string) []string {
	if strings.HasSuffix(cs.Name, "Model") || strings.Contains(cs.ParentClass, "Model") {
		if n := len(facts.ModelFields); n > 0 {
			return append(details, fmt.Sprintf("  ✓ Model has %d fields", n))
		}
		return append(details, "  ⚠️ Model has no fields defined")
	}
	for _, base := range []string{"View", "ListView", "DetailView"} {
		if strings.Contains(cs.ParentClass, base) {
			if len(facts.ViewMethods) > 0 {
				return append(details, "  ✓ View has methods: "+strings.Join(facts.ViewMethods, ", "))
			}
			break
		}
	}
	return details
}

func reactClassNotes(cs spec.ClassReq, found *parser.ClassInfo, facts *semantic.ReactFacts, details []string) []string {
	if !strings.Contains(cs.ParentClass, "Component") {
		return details
	}
	if facts.ComponentTypes.Class > 0 {
		details = append(details, "  ✓ React class component")
	}
	lifecycle := []string{"componentDidMount", "componentDidUpdate", "componentWillUnmount", "render"}
	for _, m := range found.Methods {
		if containsString(lifecycle, m.Name) {
			return append(details, "  ✓ Has lifecycle methods")
		}
	}
	return details
}

func djangoFunctionNotes(fs spec.FuncReq, facts *semantic.DjangoFacts, details []string) []string {
	lower := strings.ToLower(fs.Name)
	if strings.Contains(lower, "view") || strings.Contains(lower, "handler") {
		if len(facts.ViewDecorators) > 0 {
			details = append(details, "  ✓ View function with decorators: "+strings.Join(facts.ViewDecorators, ", "))
		}
	}
	if strings.Contains(lower, "permission") || strings.Contains(lower, "role") {
		if len(facts.PermissionChecks) > 0 {
			details = append(details, "  ✓ Function performs permission checks")
		}
	}
	return details
}

func reactFunctionNotes(fs spec.FuncReq, facts *semantic.ReactFacts, details []string) []string {
	if strings.HasPrefix(fs.Name, "use") {
		for _, h := range facts.CustomHooks {
			if h.Name == fs.Name {
				return append(details, "  ✓ Custom hook implementation")
			}
		}
		return details
	}
	if startsUpper(fs.Name) || strings.Contains(fs.Name, "Component") {
		if len(facts.HookCalls) > 0 {
			return append(details, "  ✓ Function uses React hooks")
		}
	}
	return details
}

func (t *IntermediateTier) validateBehavior(patterns []spec.Pattern, code string, prof *semantic.Profile, fw semantic.Framework) ComponentResult {
	if len(patterns) == 0 {
		return ComponentResult{Passed: true, Score: 100.0, Details: []string{"No behavior patterns required"}}
	}

	var details []string
	matched := 0
	for _, p := range patterns {
		var r patternResult
		if p.Structured() {
			r = dispatchPattern(p, prof, code, fw)
		} else {
			r = patternResult{passed: keywordMatch(p.Text, code), message: p.Text}
		}
		if r.passed {
			matched++
			details = append(details, "✓ "+r.message)
		} else {
			details = append(details, "✗ "+r.message)
		}
	}

	return ComponentResult{
		Passed:  matched == len(patterns),
		Score:   float64(matched) / float64(len(patterns)) * 100,
		Details: details,
	}
}

func dispatchPattern(p spec.Pattern, prof *semantic.Profile, code string, fw semantic.Framework) patternResult {
	switch fw {
	case semantic.Django:
		return djangoPattern(p, prof.Django, code)
	case semantic.React:
		return reactPattern(p, prof.React, code)
	case semantic.Express:
		return fail("Express pattern validation not implemented: " + p.Kind)
	case semantic.Angular:
		return fail("Angular pattern validation not implemented: " + p.Kind)
	default:
		return genericPatternKind(p, code)
	}
}
