// Package engine composes parsing, validation, scoring, and feedback
// into a single deterministic evaluation of one submission against
// one requirement spec.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"codejudge/internal/feedback"
	"codejudge/internal/parser"
	"codejudge/internal/scoring"
	"codejudge/internal/spec"
	"codejudge/internal/validator"
)

// Outcome is the complete result of evaluating one submission.
type Outcome struct {
	Verdict      scoring.Verdict   `json:"verdict"`
	Score        float64           `json:"score"`
	ParseSuccess bool              `json:"parse_success"`
	ParserUsed   string            `json:"parser_used,omitempty"`
	Tier         string            `json:"tier,omitempty"`
	Language     parser.Language   `json:"language"`
	Breakdown    scoring.Breakdown `json:"breakdown"`
	Feedback     []feedback.Item   `json:"feedback"`
	ShowHints    bool              `json:"show_hints"`

	ParseDuration    time.Duration `json:"parse_duration"`
	ValidateDuration time.Duration `json:"validate_duration"`
	Duration         time.Duration `json:"duration"`
}

// Engine evaluates submissions. It is safe for concurrent use.
type Engine struct {
	parser *parser.Parser
	log    hclog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithParser substitutes the submission parser.
func WithParser(p *parser.Parser) Option {
	return func(e *Engine) { e.parser = p }
}

// WithLogger attaches a logger.
func WithLogger(l hclog.Logger) Option {
	return func(e *Engine) { e.log = l.Named("engine") }
}

// New creates an Engine with a default parser and a no-op logger.
func New(opts ...Option) *Engine {
	e := &Engine{
		parser: parser.New(),
		log:    hclog.NewNullLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// LanguageForFramework maps a requirement framework to the language
// submissions for it are written in.
func LanguageForFramework(framework string) parser.Language {
	switch framework {
	case "django":
		return parser.LangPython
	case "react":
		return parser.LangJavaScript
	case "angular":
		return parser.LangTypeScript
	case "express":
		return parser.LangJavaScript
	default:
		return parser.LangPython
	}
}

// Evaluate grades code against req as a first attempt. The language
// may be empty, in which case it is derived from the framework. A
// submission that fails to parse is a syntax_error outcome, not an
// error; Evaluate errors only on unusable requirement specs.
func (e *Engine) Evaluate(ctx context.Context, code string, lang parser.Language, req *spec.RequirementSpec) (*Outcome, error) {
	return e.EvaluateAttempt(ctx, code, lang, req, 1)
}

// EvaluateAttempt grades code against req. The attempt number only
// influences whether hints are surfaced for middling scores.
func (e *Engine) EvaluateAttempt(ctx context.Context, code string, lang parser.Language, req *spec.RequirementSpec, attempt int) (*Outcome, error) {
	start := time.Now()
	if req == nil {
		return nil, fmt.Errorf("requirement spec is nil")
	}
	req.Normalize()
	if lang == "" {
		lang = LanguageForFramework(req.Framework)
	}

	parsed := e.parser.Parse(ctx, code, lang)
	parseDone := time.Now()
	if !parsed.Success {
		e.log.Debug("submission failed to parse", "language", lang, "error", parsed.Error, "line", parsed.Line)
		return &Outcome{
			Verdict:      scoring.VerdictSyntaxError,
			Score:        0,
			ParseSuccess: false,
			ParserUsed:   parsed.ParserUsed,
			Language:     lang,
			Feedback: feedback.Generate(feedback.Input{
				ParseSuccess: false,
				ParseError:   parsed.Error,
				ErrorLine:    parsed.Line,
				ErrorColumn:  parsed.Offset,
			}),
			ParseDuration: parseDone.Sub(start),
			Duration:      time.Since(start),
		}, nil
	}

	result, err := validator.Run(parsed, req, code)
	if err != nil {
		return nil, fmt.Errorf("validate submission: %w", err)
	}

	summary := scoring.Aggregate([]scoring.Component{
		{Name: "imports", Raw: result.Imports.Score, Weight: req.Scoring.ImportWeight, Passed: result.Imports.Passed},
		{Name: "structure", Raw: result.Structure.Score, Weight: req.Scoring.StructureWeight, Passed: result.Structure.Passed},
		{Name: "behavior", Raw: result.Behavior.Score, Weight: req.Scoring.BehaviorWeight, Passed: result.Behavior.Passed},
	}, req.PassingScore)

	verdict := summary.Verdict
	if result.Tier == "legacy" {
		verdict = scoring.VerdictFailed
	}

	items := feedback.Generate(feedback.Input{
		ParseSuccess: true,
		Verdict:      verdict,
		TotalScore:   summary.Total,
		Difficulty:   req.Difficulty,
		Imports:      result.Imports,
		Structure:    result.Structure,
		Behavior:     result.Behavior,
	})

	e.log.Debug("submission evaluated",
		"framework", req.Framework,
		"difficulty", req.Difficulty,
		"tier", result.Tier,
		"parser", parsed.ParserUsed,
		"score", summary.Total,
		"verdict", verdict)

	return &Outcome{
		Verdict:          verdict,
		Score:            summary.Total,
		ParseSuccess:     true,
		ParserUsed:       parsed.ParserUsed,
		Tier:             result.Tier,
		Language:         lang,
		Breakdown:        summary.Breakdown,
		Feedback:         items,
		ShowHints:        feedback.ShouldShowHints(summary.Total, attempt),
		ParseDuration:    parseDone.Sub(start),
		ValidateDuration: time.Since(parseDone),
		Duration:         time.Since(start),
	}, nil
}
