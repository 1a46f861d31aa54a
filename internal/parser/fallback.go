package parser

import (
	"regexp"
	"strings"
)

// Regex heuristics used when the exact JS parser is unavailable. They
// recognize the same categories as the esprima stage with reduced
// fidelity, so downstream consumers see a single ParseResult shape.
var (
	reES6Import = regexp.MustCompile(`import\s+(.+?)\s+from\s+['"]([^'"]+)['"]`)
	reRequire   = regexp.MustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*require\s*\(\s*['"]([^'"]+)['"]\s*\)`)

	reClass  = regexp.MustCompile(`(?s)class\s+(\w+)(?:\s+extends\s+([\w.]+))?\s*\{(.*?)\n\}`)
	reMethod = regexp.MustCompile(`(?m)^\s*(?:static\s+)?(\w+)\s*\([^)]*\)\s*\{`)

	reFuncDecl  = regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)\s*\{`)
	reArrowFunc = regexp.MustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?\(([^)]*)\)\s*=>`)

	reNamedExport   = regexp.MustCompile(`export\s+\{([^}]+)\}`)
	reDefaultExport = regexp.MustCompile(`export\s+default\s+(\w+)`)
	reModuleExports = regexp.MustCompile(`module\.exports\s*=\s*(\w+|\{)`)
)

func parseJSWithRegex(code string) *ParseResult {
	return &ParseResult{
		Success:    true,
		ParserUsed: StrategyRegex,
		Imports:    jsImportsRegex(code),
		Classes:    jsClassesRegex(code),
		Functions:  jsFunctionsRegex(code),
		Exports:    jsExportsRegex(code),
	}
}

func jsImportsRegex(code string) []ImportRef {
	var imports []ImportRef

	for _, m := range reES6Import.FindAllStringSubmatchIndex(code, -1) {
		clause := group(code, m, 1)
		module := group(code, m, 2)
		line := lineAt(code, m[0])

		specs := parseImportClause(clause)
		if len(specs) == 0 {
			continue
		}
		imports = append(imports, ImportRef{
			Kind:       "import",
			Module:     module,
			Specifiers: specs,
			Line:       line,
		})
	}

	for _, m := range reRequire.FindAllStringSubmatchIndex(code, -1) {
		imports = append(imports, ImportRef{
			Kind:   "require",
			Module: group(code, m, 2),
			Specifiers: []Specifier{
				{Kind: "RequireSpecifier", Local: group(code, m, 1), Imported: "default"},
			},
			Line: lineAt(code, m[0]),
		})
	}

	return imports
}

func jsClassesRegex(code string) []ClassInfo {
	var classes []ClassInfo

	for _, m := range reClass.FindAllStringSubmatchIndex(code, -1) {
		name := group(code, m, 1)
		super := group(code, m, 2)
		body := group(code, m, 3)
		start := m[0]

		info := ClassInfo{Name: name, Line: lineAt(code, start)}
		if super != "" {
			info.Bases = []string{super}
		}

		for _, mm := range reMethod.FindAllStringSubmatchIndex(body, -1) {
			mName := group(body, mm, 1)
			if mName == "if" || mName == "for" || mName == "while" || mName == "switch" {
				continue
			}
			kind := "method"
			if mName == "constructor" {
				kind = "constructor"
			}
			info.Methods = append(info.Methods, MethodInfo{
				Name:   mName,
				Kind:   kind,
				Static: strings.Contains(body[mm[0]:mm[1]], "static "),
				Line:   lineAt(code, start+mm[0]),
			})
		}

		classes = append(classes, info)
	}

	return classes
}

func jsFunctionsRegex(code string) []FunctionInfo {
	var funcs []FunctionInfo

	for _, m := range reFuncDecl.FindAllStringSubmatchIndex(code, -1) {
		funcs = append(funcs, FunctionInfo{
			Name:   group(code, m, 1),
			Kind:   "function",
			Params: splitParams(group(code, m, 2)),
			Line:   lineAt(code, m[0]),
		})
	}

	for _, m := range reArrowFunc.FindAllStringSubmatchIndex(code, -1) {
		name := group(code, m, 1)
		kind := "arrow"
		params := splitParams(group(code, m, 2))
		// Uppercase arrow declarations are treated as React components.
		if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
			kind = "react_component"
		}
		funcs = append(funcs, FunctionInfo{
			Name:   name,
			Kind:   kind,
			Params: params,
			Line:   lineAt(code, m[0]),
		})
	}

	return funcs
}

func jsExportsRegex(code string) []ExportRef {
	var exports []ExportRef

	for _, m := range reNamedExport.FindAllStringSubmatchIndex(code, -1) {
		for _, name := range strings.Split(group(code, m, 1), ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			exports = append(exports, ExportRef{
				Kind: "ExportNamedDeclaration",
				Name: name,
				Line: lineAt(code, m[0]),
			})
		}
	}

	for _, m := range reDefaultExport.FindAllStringSubmatchIndex(code, -1) {
		exports = append(exports, ExportRef{
			Kind: "ExportDefaultDeclaration",
			Name: group(code, m, 1),
			Line: lineAt(code, m[0]),
		})
	}

	for _, m := range reModuleExports.FindAllStringSubmatchIndex(code, -1) {
		name := group(code, m, 1)
		if name == "{" {
			name = "object"
		}
		exports = append(exports, ExportRef{
			Kind: "ModuleExports",
			Name: name,
			Line: lineAt(code, m[0]),
		})
	}

	return exports
}

// parseImportClause splits the text between `import` and `from` into
// specifiers, covering default, namespace, named, and mixed forms.
func parseImportClause(clause string) []Specifier {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return nil
	}

	if rest, ok := strings.CutPrefix(clause, "* as "); ok {
		return []Specifier{{Kind: "ImportNamespaceSpecifier", Local: strings.TrimSpace(rest), Imported: "*"}}
	}

	var specs []Specifier
	named := ""
	if open := strings.Index(clause, "{"); open >= 0 {
		if close := strings.Index(clause, "}"); close > open {
			named = clause[open+1 : close]
		}
		clause = strings.TrimSuffix(strings.TrimSpace(clause[:open]), ",")
	}

	if def := strings.TrimSpace(clause); def != "" {
		specs = append(specs, Specifier{Kind: "ImportDefaultSpecifier", Local: def, Imported: "default"})
	}

	for _, spec := range strings.Split(named, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		local, imported := spec, spec
		if imp, loc, ok := strings.Cut(spec, " as "); ok {
			imported, local = strings.TrimSpace(imp), strings.TrimSpace(loc)
		}
		specs = append(specs, Specifier{Kind: "ImportSpecifier", Local: local, Imported: imported})
	}

	return specs
}

func group(s string, idx []int, n int) string {
	if 2*n+1 >= len(idx) || idx[2*n] < 0 {
		return ""
	}
	return s[idx[2*n]:idx[2*n+1]]
}

func splitParams(raw string) []string {
	var params []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}
