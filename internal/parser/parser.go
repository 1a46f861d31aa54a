package parser

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Language identifies the source language of a submission.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
)

// Parser strategy names recorded in ParseResult.ParserUsed.
const (
	StrategyTreeSitter = "tree-sitter"
	StrategyEsprima    = "esprima"
	StrategyRegex      = "regex"
)

// Specifier is a single bound name of a JS import.
type Specifier struct {
	Kind     string `json:"type"` // ImportDefaultSpecifier, ImportSpecifier, ImportNamespaceSpecifier, RequireSpecifier
	Local    string `json:"local"`
	Imported string `json:"imported"`
}

// ImportRef is one import statement in any of the recognized forms.
type ImportRef struct {
	Kind       string      `json:"type"` // import, from_import, require
	Module     string      `json:"module"`
	Name       string      `json:"name,omitempty"`  // imported name for from_import
	Alias      string      `json:"alias,omitempty"` // as-name, when present
	Specifiers []Specifier `json:"specifiers,omitempty"`
	Line       int         `json:"line"`
}

// MethodInfo is a method of a class.
type MethodInfo struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind,omitempty"` // method, constructor, get, set
	Static     bool     `json:"static,omitempty"`
	Params     []string `json:"params,omitempty"`
	Decorators []string `json:"decorators,omitempty"`
	Line       int      `json:"line"`
}

// ClassInfo is a class declaration with its resolved base names,
// methods, and simple assigned fields.
type ClassInfo struct {
	Name       string       `json:"name"`
	Bases      []string     `json:"bases,omitempty"`
	Methods    []MethodInfo `json:"methods,omitempty"`
	Fields     []string     `json:"fields,omitempty"`
	Decorators []string     `json:"decorators,omitempty"`
	Line       int          `json:"line"`
}

// FunctionInfo is a top-level function, arrow function, or React
// component declaration.
type FunctionInfo struct {
	Name       string   `json:"name"`
	Kind       string   `json:"type,omitempty"` // function, arrow, react_component
	Params     []string `json:"params,omitempty"`
	Decorators []string `json:"decorators,omitempty"`
	Line       int      `json:"line"`
}

// ExportRef is an ES6 or CommonJS export.
type ExportRef struct {
	Kind string `json:"type"` // ExportNamedDeclaration, ExportDefaultDeclaration, ModuleExports
	Name string `json:"declaration,omitempty"`
	Line int    `json:"line"`
}

// ParseResult is the structural view of a submission. Success=false
// means the source could not be parsed at all; the Error/Line/Offset
// fields then describe the first syntax error. A degraded parse (regex
// fallback) still reports Success=true with ParserUsed=regex.
type ParseResult struct {
	Success    bool
	Language   Language
	ParserUsed string
	Imports    []ImportRef
	Classes    []ClassInfo
	Functions  []FunctionInfo
	Exports    []ExportRef
	Error      string
	Line       int
	Offset     int
}

// DefaultJSTimeout bounds the external JS parser subprocess.
const DefaultJSTimeout = 10 * time.Second

// Parser parses submissions into ParseResults. It holds no per-call
// state and is safe for concurrent use.
type Parser struct {
	nodeBin string
	timeout time.Duration
	log     hclog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithNodeBin overrides the node binary used for the exact JS parse.
func WithNodeBin(bin string) Option {
	return func(p *Parser) { p.nodeBin = bin }
}

// WithTimeout bounds the JS parser subprocess.
func WithTimeout(d time.Duration) Option {
	return func(p *Parser) { p.timeout = d }
}

// WithLogger attaches a logger.
func WithLogger(l hclog.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// New creates a Parser with defaults: "node" on PATH and a 10s bound.
func New(opts ...Option) *Parser {
	p := &Parser{
		nodeBin: "node",
		timeout: DefaultJSTimeout,
		log:     hclog.NewNullLogger(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse parses code in the given language. It never returns an error:
// learner mistakes surface as Success=false, and an unsupported
// language yields a failed result with a message.
func (p *Parser) Parse(ctx context.Context, code string, lang Language) *ParseResult {
	switch lang {
	case LangPython:
		return p.parsePython(code)
	case LangJavaScript, LangTypeScript:
		return p.parseJavaScript(ctx, code, lang)
	default:
		return &ParseResult{
			Success:  false,
			Language: lang,
			Error:    "unsupported language: " + string(lang),
		}
	}
}

func lineAt(code string, pos int) int {
	line := 1
	for i := 0; i < pos && i < len(code); i++ {
		if code[i] == '\n' {
			line++
		}
	}
	return line
}
