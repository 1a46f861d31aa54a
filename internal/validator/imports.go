package validator

import (
	"strings"

	"codejudge/internal/parser"
)

// allImports flattens every import form into one candidate list:
// module paths, dotted module.name pairs, and every bound local or
// imported specifier name.
func allImports(parsed *parser.ParseResult) []string {
	var found []string
	for _, imp := range parsed.Imports {
		switch imp.Kind {
		case "import", "require":
			found = append(found, imp.Module)
		case "from_import":
			found = append(found, imp.Module+"."+imp.Name, imp.Module, imp.Name)
		default:
			found = append(found, imp.Module)
			for _, s := range imp.Specifiers {
				found = append(found, s.Local)
				if s.Imported != "" {
					found = append(found, s.Imported)
				}
			}
		}
	}
	return found
}

// importMatches applies the fuzzy match rules: substring overlap in
// either direction, all dotted parts present, or for relative imports
// a suffix/underscore-normalized variant match.
func importMatches(required string, found []string) bool {
	if strings.HasPrefix(required, ".") {
		abs := strings.TrimLeft(required, ".")
		parts := strings.Split(abs, ".")
		variations := []string{
			abs,
			strings.ReplaceAll(abs, ".", "_"),
			parts[len(parts)-1],
		}
		for _, f := range found {
			for _, v := range variations {
				if strings.Contains(f, v) || strings.HasSuffix(f, v) {
					return true
				}
			}
		}
		return false
	}

	parts := strings.Split(required, ".")
	for _, f := range found {
		if strings.Contains(f, required) || strings.Contains(required, f) {
			return true
		}
		all := true
		for _, p := range parts {
			if !strings.Contains(f, p) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func validateImports(parsed *parser.ParseResult, required []string) ComponentResult {
	if len(required) == 0 {
		return ComponentResult{
			Passed:  true,
			Score:   100.0,
			Details: []string{"No imports required for validation"},
		}
	}

	found := allImports(parsed)
	var missing []string
	for _, req := range required {
		if !importMatches(req, found) {
			missing = append(missing, req)
		}
	}

	score := 100.0
	if len(missing) > 0 {
		score = float64(len(required)-len(missing)) / float64(len(required)) * 100
		if score < 0 {
			score = 0
		}
		return ComponentResult{
			Score:   score,
			Details: []string{"Missing imports: " + strings.Join(missing, ", ")},
		}
	}
	return ComponentResult{
		Passed:  true,
		Score:   score,
		Details: []string{"All imports present"},
	}
}
