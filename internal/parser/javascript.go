package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
)

// esprimaDriver is executed with `node -e`. It reads the submission
// from the path in argv, parses it tolerantly with JSX enabled, and
// prints a JSON summary covering both ES6 and CommonJS forms.
const esprimaDriver = `
const fs = require('fs');
const esprima = require('esprima');

try {
    const code = fs.readFileSync(process.argv[1], 'utf8');
    const ast = esprima.parseModule(code, { jsx: true, tolerant: true, range: true });

    const imports = [];
    ast.body
        .filter(node => node.type === 'ImportDeclaration')
        .forEach(node => {
            imports.push({
                type: 'import',
                module: node.source.value,
                specifiers: node.specifiers.map(spec => ({
                    type: spec.type,
                    local: spec.local.name,
                    imported: spec.imported ? spec.imported.name : 'default'
                })),
                line: node.loc ? node.loc.start.line : 0
            });
        });
    ast.body
        .filter(node => node.type === 'VariableDeclaration')
        .forEach(node => {
            node.declarations.forEach(decl => {
                if (decl.init && decl.init.type === 'CallExpression' &&
                    decl.init.callee.name === 'require') {
                    imports.push({
                        type: 'require',
                        module: decl.init.arguments[0].value,
                        specifiers: [{ type: 'RequireSpecifier', local: decl.id.name, imported: 'default' }],
                        line: node.loc ? node.loc.start.line : 0
                    });
                }
            });
        });

    const classes = ast.body
        .filter(node => node.type === 'ClassDeclaration')
        .map(node => ({
            name: node.id ? node.id.name : 'anonymous',
            superClass: node.superClass ? (node.superClass.name ||
                (node.superClass.object ? node.superClass.object.name + '.' + node.superClass.property.name : null)) : null,
            methods: node.body.body
                .filter(m => m.type === 'MethodDefinition')
                .map(m => ({
                    name: m.key.name,
                    kind: m.kind,
                    static: m.static,
                    line: m.loc ? m.loc.start.line : 0
                })),
            line: node.loc ? node.loc.start.line : 0
        }));

    const functions = [];
    ast.body.forEach(node => {
        if (node.type === 'FunctionDeclaration') {
            functions.push({
                name: node.id ? node.id.name : 'anonymous',
                type: 'function',
                params: node.params.map(p => p.name),
                line: node.loc ? node.loc.start.line : 0
            });
        } else if (node.type === 'VariableDeclaration') {
            node.declarations.forEach(decl => {
                if (decl.init && (decl.init.type === 'FunctionExpression' ||
                                  decl.init.type === 'ArrowFunctionExpression')) {
                    const isComponent = /^[A-Z]/.test(decl.id.name);
                    functions.push({
                        name: decl.id.name,
                        type: isComponent ? 'react_component'
                            : (decl.init.type === 'ArrowFunctionExpression' ? 'arrow' : 'function'),
                        params: decl.init.params.map(p => p.name),
                        line: decl.loc ? decl.loc.start.line : 0
                    });
                }
            });
        }
    });

    const exports = [];
    ast.body
        .filter(node => node.type === 'ExportNamedDeclaration' || node.type === 'ExportDefaultDeclaration')
        .forEach(node => {
            let name = null;
            if (node.declaration) {
                name = node.declaration.name ||
                    (node.declaration.id ? node.declaration.id.name : null);
            }
            if (!name && node.specifiers) {
                node.specifiers.forEach(spec => {
                    exports.push({
                        type: node.type,
                        declaration: spec.local.name,
                        line: node.loc ? node.loc.start.line : 0
                    });
                });
                return;
            }
            exports.push({ type: node.type, declaration: name, line: node.loc ? node.loc.start.line : 0 });
        });
    ast.body.forEach(node => {
        if (node.type === 'ExpressionStatement' &&
            node.expression.type === 'AssignmentExpression') {
            const expr = node.expression;
            if (expr.left.type === 'MemberExpression' &&
                expr.left.object.name === 'module' &&
                expr.left.property.name === 'exports') {
                exports.push({
                    type: 'ModuleExports',
                    declaration: expr.right.name || 'object',
                    line: node.loc ? node.loc.start.line : 0
                });
            }
        }
    });

    console.log(JSON.stringify({ success: true, imports, classes, functions, exports }));
} catch (error) {
    console.log(JSON.stringify({ success: false, error: error.message, line: error.lineNumber || 0 }));
}
`

// jsDriverResult mirrors the driver's JSON output.
type jsDriverResult struct {
	Success bool        `json:"success"`
	Imports []ImportRef `json:"imports"`
	Classes []struct {
		Name       string       `json:"name"`
		SuperClass string       `json:"superClass"`
		Methods    []MethodInfo `json:"methods"`
		Line       int          `json:"line"`
	} `json:"classes"`
	Functions []FunctionInfo `json:"functions"`
	Exports   []ExportRef    `json:"exports"`
	Error     string         `json:"error"`
	Line      int            `json:"line"`
}

// parseJavaScript runs the two-stage JS/TS parse: the exact esprima
// subprocess first, then the regex fallback on any failure. Both
// stages produce the same ParseResult shape.
func (p *Parser) parseJavaScript(ctx context.Context, code string, lang Language) *ParseResult {
	if res, ok := p.parseWithEsprima(ctx, code, lang); ok {
		p.log.Debug("js parse ok", "strategy", StrategyEsprima,
			"imports", len(res.Imports), "classes", len(res.Classes), "functions", len(res.Functions))
		return res
	}

	p.log.Warn("exact js parser unavailable, using regex fallback")
	res := parseJSWithRegex(code)
	res.Language = lang
	return res
}

// parseWithEsprima spawns node against a scoped temporary file. The
// temp file is removed on every exit path. ok=false means the exact
// stage could not produce a result and the caller must fall back;
// a clean driver run that reports a learner syntax error is ok=true.
func (p *Parser) parseWithEsprima(ctx context.Context, code string, lang Language) (*ParseResult, bool) {
	tmp, err := os.CreateTemp("", "codejudge-*.js")
	if err != nil {
		return nil, false
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return nil, false
	}
	if err := tmp.Close(); err != nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.nodeBin, "-e", esprimaDriver, tmp.Name())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		p.log.Debug("esprima subprocess failed", "err", err, "stderr", stderr.String())
		return nil, false
	}

	var driver jsDriverResult
	if err := json.Unmarshal(stdout.Bytes(), &driver); err != nil {
		p.log.Debug("esprima output not parseable", "err", err)
		return nil, false
	}

	res := &ParseResult{
		Success:    driver.Success,
		Language:   lang,
		ParserUsed: StrategyEsprima,
		Imports:    driver.Imports,
		Functions:  driver.Functions,
		Exports:    driver.Exports,
		Error:      driver.Error,
		Line:       driver.Line,
	}
	for _, c := range driver.Classes {
		info := ClassInfo{
			Name:    c.Name,
			Methods: c.Methods,
			Line:    c.Line,
		}
		if c.SuperClass != "" {
			info.Bases = []string{c.SuperClass}
		}
		res.Classes = append(res.Classes, info)
	}
	return res, true
}
