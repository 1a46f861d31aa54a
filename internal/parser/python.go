package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// parsePython builds the structural view of a Python submission with
// tree-sitter. The grammar is error-tolerant, so a submission counts
// as a syntax error only when the tree contains ERROR or MISSING
// nodes; the first such node supplies the reported line and offset.
func (p *Parser) parsePython(code string) *ParseResult {
	src := []byte(code)

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return &ParseResult{
			Success:  false,
			Language: LangPython,
			Error:    err.Error(),
		}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstErrorNode(root)
		res := &ParseResult{
			Success:    false,
			Language:   LangPython,
			ParserUsed: StrategyTreeSitter,
			Error:      "invalid syntax",
		}
		if bad != nil {
			res.Line = int(bad.StartPoint().Row) + 1
			res.Offset = int(bad.StartPoint().Column) + 1
		}
		p.log.Warn("python parse failed", "line", res.Line)
		return res
	}

	res := &ParseResult{
		Success:    true,
		Language:   LangPython,
		ParserUsed: StrategyTreeSitter,
	}
	res.Imports = pyImports(root, src)
	res.Classes = pyClasses(root, src)
	res.Functions = pyTopLevelFunctions(root, src)

	p.log.Debug("python parse ok",
		"imports", len(res.Imports), "classes", len(res.Classes), "functions", len(res.Functions))
	return res
}

func firstErrorNode(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if found != nil {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return found
}

// pyImports collects both plain imports and from-imports at any depth.
func pyImports(root *sitter.Node, src []byte) []ImportRef {
	var imports []ImportRef
	walkTree(root, func(n *sitter.Node) {
		line := int(n.StartPoint().Row) + 1
		switch n.Type() {
		case "import_statement":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				child := n.NamedChild(i)
				switch child.Type() {
				case "dotted_name":
					imports = append(imports, ImportRef{
						Kind:   "import",
						Module: child.Content(src),
						Line:   line,
					})
				case "aliased_import":
					ref := ImportRef{Kind: "import", Line: line}
					if name := child.ChildByFieldName("name"); name != nil {
						ref.Module = name.Content(src)
					}
					if alias := child.ChildByFieldName("alias"); alias != nil {
						ref.Alias = alias.Content(src)
					}
					imports = append(imports, ref)
				}
			}
		case "import_from_statement":
			module := ""
			if mod := n.ChildByFieldName("module_name"); mod != nil {
				module = mod.Content(src)
			}
			for i := 0; i < int(n.NamedChildCount()); i++ {
				child := n.NamedChild(i)
				if mod := n.ChildByFieldName("module_name"); mod != nil && child.Equal(mod) {
					continue
				}
				switch child.Type() {
				case "dotted_name":
					imports = append(imports, ImportRef{
						Kind:   "from_import",
						Module: module,
						Name:   child.Content(src),
						Line:   line,
					})
				case "aliased_import":
					ref := ImportRef{Kind: "from_import", Module: module, Line: line}
					if name := child.ChildByFieldName("name"); name != nil {
						ref.Name = name.Content(src)
					}
					if alias := child.ChildByFieldName("alias"); alias != nil {
						ref.Alias = alias.Content(src)
					}
					imports = append(imports, ref)
				case "wildcard_import":
					imports = append(imports, ImportRef{
						Kind:   "from_import",
						Module: module,
						Name:   "*",
						Line:   line,
					})
				}
			}
		}
	})
	return imports
}

// pyClasses collects class definitions at any depth, including nested
// classes such as a model's Meta.
func pyClasses(root *sitter.Node, src []byte) []ClassInfo {
	var classes []ClassInfo
	walkTree(root, func(n *sitter.Node) {
		if n.Type() != "class_definition" {
			return
		}
		info := ClassInfo{Line: int(n.StartPoint().Row) + 1}
		if name := n.ChildByFieldName("name"); name != nil {
			info.Name = name.Content(src)
		}
		if supers := n.ChildByFieldName("superclasses"); supers != nil {
			for i := 0; i < int(supers.NamedChildCount()); i++ {
				arg := supers.NamedChild(i)
				switch arg.Type() {
				case "identifier", "attribute":
					info.Bases = append(info.Bases, arg.Content(src))
				}
			}
		}
		if parent := n.Parent(); parent != nil && parent.Type() == "decorated_definition" {
			info.Decorators = pyDecorators(parent, src)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				stmt := body.NamedChild(i)
				switch stmt.Type() {
				case "function_definition":
					info.Methods = append(info.Methods, pyMethod(stmt, nil, src))
				case "decorated_definition":
					if def := stmt.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
						info.Methods = append(info.Methods, pyMethod(def, stmt, src))
					}
				case "expression_statement":
					if assign := stmt.NamedChild(0); assign != nil && assign.Type() == "assignment" {
						if left := assign.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
							info.Fields = append(info.Fields, left.Content(src))
						}
					}
				}
			}
		}
		classes = append(classes, info)
	})
	return classes
}

func pyTopLevelFunctions(root *sitter.Node, src []byte) []FunctionInfo {
	var funcs []FunctionInfo
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		var def, decorated *sitter.Node
		switch stmt.Type() {
		case "function_definition":
			def = stmt
		case "decorated_definition":
			if d := stmt.ChildByFieldName("definition"); d != nil && d.Type() == "function_definition" {
				def, decorated = d, stmt
			}
		}
		if def == nil {
			continue
		}
		fn := FunctionInfo{
			Kind: "function",
			Line: int(def.StartPoint().Row) + 1,
		}
		if name := def.ChildByFieldName("name"); name != nil {
			fn.Name = name.Content(src)
		}
		fn.Params = pyParams(def.ChildByFieldName("parameters"), src)
		if decorated != nil {
			fn.Decorators = pyDecorators(decorated, src)
		}
		funcs = append(funcs, fn)
	}
	return funcs
}

func pyMethod(def, decorated *sitter.Node, src []byte) MethodInfo {
	m := MethodInfo{
		Kind: "method",
		Line: int(def.StartPoint().Row) + 1,
	}
	if name := def.ChildByFieldName("name"); name != nil {
		m.Name = name.Content(src)
	}
	m.Params = pyParams(def.ChildByFieldName("parameters"), src)
	if decorated != nil {
		m.Decorators = pyDecorators(decorated, src)
	}
	return m
}

func pyParams(params *sitter.Node, src []byte) []string {
	if params == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			names = append(names, p.Content(src))
		case "typed_parameter":
			if id := p.NamedChild(0); id != nil && id.Type() == "identifier" {
				names = append(names, id.Content(src))
			}
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(src))
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			names = append(names, p.Content(src))
		}
	}
	return names
}

// pyDecorators resolves decorator expressions to their dotted names,
// dropping call arguments ("@receiver(post_save)" becomes "receiver").
func pyDecorators(decorated *sitter.Node, src []byte) []string {
	var decorators []string
	for i := 0; i < int(decorated.ChildCount()); i++ {
		child := decorated.Child(i)
		if child.Type() != "decorator" {
			continue
		}
		expr := child.NamedChild(0)
		if expr == nil {
			continue
		}
		text := ""
		if expr.Type() == "call" {
			if fn := expr.ChildByFieldName("function"); fn != nil {
				text = fn.Content(src)
			}
		} else {
			text = expr.Content(src)
		}
		text = strings.TrimPrefix(strings.TrimSpace(text), "@")
		if text != "" {
			decorators = append(decorators, text)
		}
	}
	return decorators
}

func walkTree(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walkTree(n.NamedChild(i), visit)
	}
}
