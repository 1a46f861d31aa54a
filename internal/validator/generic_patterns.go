package validator

import (
	"fmt"
	"regexp"
	"strings"

	"codejudge/internal/spec"
)

var (
	reAsyncDecl   = regexp.MustCompile(`async\s+function\s+\w+|const\s+\w+\s*=\s*async|async\s+\w+\s*\(`)
	reFetchInCode = regexp.MustCompile(`\bfetch\s*\(`)
	reReturnObj   = regexp.MustCompile(`(?s)return\s*\{([^}]*)\}`)
	reEffectBlock = regexp.MustCompile(`(?s)useEffect\s*\(`)
	reEffectClean = regexp.MustCompile(`(?s)useEffect\s*\([^;]*?return\s*(?:\(\s*\)|function)?\s*(?:=>)?\s*\{`)
)

// genericPatternKind covers the framework-neutral structured kinds.
// Unknown kinds fail closed with a diagnostic so misspelled spec
// entries surface instead of passing silently.
func genericPatternKind(p spec.Pattern, code string) patternResult {
	switch p.Kind {
	case "constructor_call":
		return genericConstructorCall(p, code)
	case "method_call":
		return genericMethodCall(p, code)
	case "async_pattern":
		return genericAsyncPattern(p, code)
	case "return_statement":
		return genericReturnStatement(p, code)
	case "cleanup_function":
		return genericCleanupFunction(code)
	default:
		return fail("Unknown pattern type: " + p.Kind)
	}
}

func genericConstructorCall(p spec.Pattern, code string) patternResult {
	class := p.String("class")
	re := regexp.MustCompile(`new\s+` + regexp.QuoteMeta(class) + `\s*\(`)
	loc := re.FindStringIndex(code)
	if loc == nil {
		return fail(fmt.Sprintf("new %s() not found", class))
	}

	if p.String("context") == "inside_function" {
		before := code[:loc[0]]
		if strings.Contains(before, "function") || strings.Contains(before, "=>") || strings.Contains(before, "def ") {
			return pass(fmt.Sprintf("new %s() found inside function", class))
		}
		return fail(fmt.Sprintf("new %s() not inside function", class))
	}
	return pass(fmt.Sprintf("new %s() found", class))
}

func genericMethodCall(p spec.Pattern, code string) patternResult {
	obj := p.String("object")
	method := p.String("method")
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(obj) + `\.` + regexp.QuoteMeta(method) + `\s*\(`)
	if re.MatchString(code) {
		return pass(fmt.Sprintf("%s.%s() call found", obj, method))
	}
	return fail(fmt.Sprintf("%s.%s() call not found", obj, method))
}

func genericAsyncPattern(p spec.Pattern, code string) patternResult {
	decls := reAsyncDecl.FindAllString(code, -1)
	if len(decls) == 0 {
		return fail("No async functions found")
	}
	if p.String("context") == "fetch_call" {
		if reFetchInCode.MatchString(code) {
			return pass("async/await with fetch found")
		}
		return fail("async function exists but doesn't use fetch")
	}
	return pass(fmt.Sprintf("async functions found: %d", len(decls)))
}

func genericReturnStatement(p spec.Pattern, code string) patternResult {
	var required []string
	if returns, ok := p.Params["returns"].(map[string]any); ok {
		if raw, ok := returns["required_properties"].([]any); ok {
			for _, v := range raw {
				required = append(required, fmt.Sprint(v))
			}
		}
	}

	matches := reReturnObj.FindAllStringSubmatch(code, -1)
	if len(matches) == 0 {
		return fail("No return statement found")
	}
	for _, m := range matches {
		all := true
		for _, prop := range required {
			if !strings.Contains(m[1], prop) {
				all = false
				break
			}
		}
		if all {
			return pass("Return contains: " + strings.Join(required, ", "))
		}
	}
	return fail("Return missing: " + strings.Join(required, ", "))
}

func genericCleanupFunction(code string) patternResult {
	if !reEffectBlock.MatchString(code) {
		return fail("useEffect not found")
	}
	if reEffectClean.MatchString(code) {
		return pass("useEffect returns cleanup function")
	}
	return fail("useEffect doesn't return cleanup function")
}
