package validator

import (
	"strings"

	"codejudge/internal/parser"
	"codejudge/internal/semantic"
)

// patternResult is one behavior pattern match with its display message.
type patternResult struct {
	passed  bool
	message string
}

func pass(msg string) patternResult { return patternResult{passed: true, message: msg} }
func fail(msg string) patternResult { return patternResult{message: msg} }

func findClass(parsed *parser.ParseResult, name string) *parser.ClassInfo {
	for i := range parsed.Classes {
		if parsed.Classes[i].Name == name {
			return &parsed.Classes[i]
		}
	}
	return nil
}

func findFunction(parsed *parser.ParseResult, name string) *parser.FunctionInfo {
	for i := range parsed.Functions {
		if parsed.Functions[i].Name == name {
			return &parsed.Functions[i]
		}
	}
	return nil
}

func methodNames(c *parser.ClassInfo) []string {
	names := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		names = append(names, m.Name)
	}
	return names
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// keywordMatch applies the legacy free-text rule: any word longer
// than 3 characters appearing in the code, case-insensitive.
func keywordMatch(text, code string) bool {
	lower := strings.ToLower(code)
	for _, kw := range strings.Fields(text) {
		if len(kw) > 3 && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func hookCalls(prof *semantic.Profile, hook string) []semantic.HookCall {
	if prof.React == nil {
		return nil
	}
	var calls []semantic.HookCall
	for _, h := range prof.React.HookCalls {
		if h.Hook == hook {
			calls = append(calls, h)
		}
	}
	return calls
}
