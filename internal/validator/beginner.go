package validator

import (
	"fmt"
	"strings"
	"unicode"

	"codejudge/internal/parser"
	"codejudge/internal/semantic"
	"codejudge/internal/spec"
)

// BeginnerTier checks presence and naming with a light semantic layer
// on top: enough to tell a learner what is missing without grading
// framework usage in depth.
type BeginnerTier struct{}

func (t *BeginnerTier) Name() string { return "beginner" }

func (t *BeginnerTier) CanHandle(difficulty, framework string) bool {
	return difficulty == "beginner" || difficulty == "easy"
}

func (t *BeginnerTier) Validate(parsed *parser.ParseResult, req *spec.RequirementSpec, code string) *Result {
	fw := semantic.ParseFramework(req.Framework)
	prof := semantic.ForFramework(fw).Analyze(code, parsed)

	return &Result{
		Imports:   validateImports(parsed, req.RequiredImports),
		Structure: t.validateStructure(parsed, req.RequiredStructure, prof),
		Behavior:  t.validateBehavior(req.BehaviorPatterns, code, prof),
		Tier:      t.Name(),
	}
}

func (t *BeginnerTier) validateStructure(parsed *parser.ParseResult, structure spec.Structure, prof *semantic.Profile) ComponentResult {
	var details []string
	passed, total := 0, 0

	for _, cs := range structure.Classes {
		total++
		found := findClass(parsed, cs.Name)
		if found == nil {
			details = append(details, fmt.Sprintf("✗ Class '%s' not found", cs.Name))
			continue
		}
		passed++
		details = append(details, fmt.Sprintf("✓ Class '%s' found", cs.Name))

		if !cs.Detailed {
			continue
		}

		if cs.ParentClass != "" {
			total++
			if inheritsFrom(found.Bases, cs.ParentClass) {
				passed++
				details = append(details, fmt.Sprintf("  ✓ Inherits from '%s'", cs.ParentClass))
			} else {
				details = append(details, fmt.Sprintf("  ✗ Does not inherit from '%s' (found: %s)",
					cs.ParentClass, strings.Join(found.Bases, ", ")))
			}
		}

		have := methodNames(found)
		for _, m := range cs.Methods {
			total++
			if containsString(have, m) {
				passed++
				details = append(details, fmt.Sprintf("  ✓ Method '%s' exists", m))
			} else {
				details = append(details, fmt.Sprintf("  ✗ Method '%s' missing", m))
			}
		}

		if prof.Django != nil && (strings.HasSuffix(cs.Name, "Model") || strings.Contains(cs.ParentClass, "Model")) {
			if n := len(prof.Django.ModelFields); n > 0 {
				details = append(details, fmt.Sprintf("  ✓ Model has %d field(s)", n))
			} else {
				details = append(details, "  ⚠ Model has no fields defined")
			}
		}
		if prof.React != nil && strings.Contains(cs.ParentClass, "Component") {
			if containsString(have, "render") {
				details = append(details, "  ✓ Component has render() method")
			}
		}
	}

	for _, fs := range structure.Functions {
		total++
		found := findFunction(parsed, fs.Name)
		if found == nil {
			details = append(details, fmt.Sprintf("✗ Function '%s' not found", fs.Name))
			continue
		}
		passed++
		details = append(details, fmt.Sprintf("✓ Function '%s' found", fs.Name))

		if !fs.Detailed {
			continue
		}

		if len(fs.Params) > 0 {
			total++
			if paramsSubset(fs.Params, found.Params) {
				passed++
				details = append(details, fmt.Sprintf("  ✓ Has correct parameters: %s", strings.Join(fs.Params, ", ")))
			} else {
				details = append(details, fmt.Sprintf("  ✗ Parameter mismatch (expected: %s, got: %s)",
					strings.Join(fs.Params, ", "), strings.Join(found.Params, ", ")))
			}
		}

		if fs.Type == "functional_component" {
			total++
			if startsUpper(fs.Name) {
				passed++
				details = append(details, "  ✓ Follows React component naming convention")
				if prof.React != nil && len(prof.React.HookCalls) > 0 {
					details = append(details, "  ✓ Uses hooks: "+strings.Join(hookNamesUsed(prof.React, 3), ", "))
				}
			} else {
				details = append(details, "  ✗ Component name should start with uppercase")
			}
		}

		if fs.HasPropTypes {
			total++
			if importsMention(parsed, "PropTypes") || importsMention(parsed, "prop-types") {
				passed++
				details = append(details, "  ✓ PropTypes imported")
			} else {
				details = append(details, "  ⚠ PropTypes not imported")
			}
		}

		if fs.HasExport {
			total++
			if isExported(parsed, fs.Name) {
				passed++
				details = append(details, "  ✓ Function is exported")
			} else {
				details = append(details, "  ✗ Function is not exported")
			}
		}
	}

	if total == 0 {
		return ComponentResult{
			Details: []string{"⚠️ No structure validation performed - check validation spec format"},
		}
	}
	return ComponentResult{
		Passed:  passed == total,
		Score:   float64(passed) / float64(total) * 100,
		Details: details,
	}
}

func (t *BeginnerTier) validateBehavior(patterns []spec.Pattern, code string, prof *semantic.Profile) ComponentResult {
	if len(patterns) == 0 {
		return ComponentResult{Passed: true, Score: 100.0, Details: []string{"No behavior patterns required"}}
	}

	var details []string
	matched := 0
	for _, p := range patterns {
		var r patternResult
		if p.Structured() {
			r = basicStructuredPattern(p, prof, code)
		} else {
			r = patternResult{passed: enhancedStringPattern(p.Text, code, prof), message: p.Text}
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

// enhancedStringPattern upgrades keyword matching with semantic
// cross-checks when the derived facts can confirm or refute the text.
func enhancedStringPattern(text, code string, prof *semantic.Profile) bool {
	if !keywordMatch(text, code) {
		return false
	}
	lower := strings.ToLower(text)

	if prof.Django != nil {
		if strings.Contains(lower, "field") && mentionsFieldType(lower) {
			return len(prof.Django.ModelFields) > 0
		}
		if strings.Contains(lower, "filter") || strings.Contains(lower, "queryset") {
			return containsString(prof.Django.QuerysetOps, "filter") || containsString(prof.Django.QuerysetOps, "all")
		}
		if strings.Contains(lower, "serializer") {
			return len(prof.Django.SerializerClasses) > 0
		}
	}
	if prof.React != nil {
		if strings.Contains(lower, "usestate") {
			return len(hookCalls(prof, "useState")) > 0
		}
		if strings.Contains(lower, "useeffect") {
			return len(hookCalls(prof, "useEffect")) > 0
		}
		if strings.Contains(lower, "onclick") || strings.Contains(lower, "onchange") || strings.Contains(lower, "event") {
			return len(prof.React.EventHandlers) > 0
		}
		if strings.Contains(lower, "jsx") || strings.Contains(lower, "return") {
			return len(prof.React.JSXElements) > 0
		}
	}
	return true
}

// basicStructuredPattern handles the small structured-pattern subset
// graded at this tier; anything else falls back to keyword matching
// on the pattern description.
func basicStructuredPattern(p spec.Pattern, prof *semantic.Profile, code string) patternResult {
	if prof.React != nil {
		switch p.Kind {
		case "hook_call":
			hook := p.String("hook")
			if len(hookCalls(prof, hook)) > 0 {
				return pass(hook + " used")
			}
			return fail(hook + " not found")
		case "state_management":
			if len(prof.React.StateDeclarations) > 0 {
				return pass("State management found")
			}
			return fail("No state management")
		case "event_handler":
			if len(prof.React.EventHandlers) > 0 {
				return pass("Event handlers found")
			}
			return fail("No event handlers")
		case "conditional_rendering":
			if (strings.Contains(code, "?") && strings.Contains(code, ":")) || strings.Contains(code, "&&") {
				return pass("Conditional rendering found")
			}
			return fail("No conditional rendering")
		}
	}
	if prof.Django != nil {
		switch p.Kind {
		case "model_field":
			if n := len(prof.Django.ModelFields); n > 0 {
				return pass(fmt.Sprintf("Model fields found (%d)", n))
			}
			return fail("No model fields")
		case "queryset_operation":
			op := p.String("operation")
			if op == "" || op == "any" {
				if ops := prof.Django.QuerysetOps; len(ops) > 0 {
					return pass("Queryset operations: " + strings.Join(firstN(ops, 3), ", "))
				}
				return fail("No queryset operations")
			}
			if containsString(prof.Django.QuerysetOps, op) {
				return pass(fmt.Sprintf("Queryset .%s() found", op))
			}
			return fail(fmt.Sprintf("Queryset .%s() not found", op))
		case "serializer":
			if len(prof.Django.SerializerClasses) > 0 {
				return pass("Serializer found")
			}
			return fail("No serializer")
		}
	}

	desc := p.String("description")
	if desc == "" {
		desc = p.Describe()
	}
	if keywordMatch(desc, code) {
		return pass(desc)
	}
	return fail(desc)
}

func mentionsFieldType(lower string) bool {
	for _, ft := range []string{"char", "integer", "foreign", "boolean", "date"} {
		if strings.Contains(lower, ft) {
			return true
		}
	}
	return false
}

func inheritsFrom(bases []string, expected string) bool {
	for _, b := range bases {
		if b == expected || strings.Contains(b, expected) {
			return true
		}
	}
	return false
}

func paramsSubset(expected, actual []string) bool {
	for _, p := range expected {
		if !containsString(actual, p) {
			return false
		}
	}
	return true
}

func startsUpper(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

func hookNamesUsed(facts *semantic.ReactFacts, limit int) []string {
	seen := make(map[string]bool)
	var names []string
	for _, h := range facts.HookCalls {
		if !seen[h.Hook] {
			seen[h.Hook] = true
			names = append(names, h.Hook)
		}
	}
	return firstN(names, limit)
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func importsMention(parsed *parser.ParseResult, name string) bool {
	for _, f := range allImports(parsed) {
		if strings.Contains(f, name) {
			return true
		}
	}
	return false
}

func isExported(parsed *parser.ParseResult, name string) bool {
	for _, e := range parsed.Exports {
		if e.Name == name {
			return true
		}
	}
	return false
}
