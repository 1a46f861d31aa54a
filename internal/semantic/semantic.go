package semantic

import (
	"strings"

	"codejudge/internal/parser"
)

// Framework is the closed set of frameworks the analyzers know about.
type Framework string

const (
	Django  Framework = "django"
	React   Framework = "react"
	Express Framework = "express"
	Angular Framework = "angular"
	Node    Framework = "nodejs"
	Unknown Framework = "unknown"
)

// ParseFramework normalizes a framework name. Anything unrecognized
// maps to Unknown, which degrades to an empty profile downstream.
func ParseFramework(name string) Framework {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "django":
		return Django
	case "react":
		return React
	case "express":
		return Express
	case "angular":
		return Angular
	case "nodejs", "node":
		return Node
	default:
		return Unknown
	}
}

// Analyzer derives a Profile of framework-specific facts from a
// submission. Implementations are pure and never fail: absence of a
// construct yields empty fact lists, not errors.
type Analyzer interface {
	Framework() Framework
	Analyze(code string, parsed *parser.ParseResult) *Profile
}

// ForFramework selects the analyzer for a framework. Express, Angular,
// and Node ship as declared no-op variants; unknown frameworks get the
// same empty-profile treatment rather than an error.
func ForFramework(fw Framework) Analyzer {
	switch fw {
	case Django:
		return &DjangoAnalyzer{}
	case React:
		return &ReactAnalyzer{}
	default:
		return noopAnalyzer{fw: fw}
	}
}

type noopAnalyzer struct {
	fw Framework
}

func (a noopAnalyzer) Framework() Framework { return a.fw }

func (a noopAnalyzer) Analyze(code string, parsed *parser.ParseResult) *Profile {
	return &Profile{Framework: a.fw}
}
