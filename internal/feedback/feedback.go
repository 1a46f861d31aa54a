// Package feedback renders validation results as an ordered list of
// learner-facing messages. Generation follows a strict priority
// ladder: syntax errors and configuration errors short-circuit before
// any verdict or component detail is emitted.
package feedback

import (
	"fmt"
	"strings"

	"codejudge/internal/scoring"
	"codejudge/internal/spec"
	"codejudge/internal/validator"
)

// Item is one feedback message. Line and Column are 1-based and zero
// when the message has no source location.
type Item struct {
	Type    string `json:"type"` // error, warning, info, success
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// SemanticBlock is the optional advanced-analysis component attached
// by deeper validation tiers.
type SemanticBlock struct {
	PatternsChecked []string
	Details         []string
	Score           float64
}

// Input is everything feedback generation reads. It is a plain value
// so the generator stays a pure function.
type Input struct {
	ParseSuccess bool
	ParseError   string
	ErrorLine    int
	ErrorColumn  int

	Verdict    scoring.Verdict
	TotalScore float64
	Difficulty string

	Imports   validator.ComponentResult
	Structure validator.ComponentResult
	Behavior  validator.ComponentResult
	Semantic  *SemanticBlock

	AttemptNumber int
}

// Generate builds the ordered feedback list for one validation.
func Generate(in Input) []Item {
	if !in.ParseSuccess {
		msg := in.ParseError
		if msg == "" {
			msg = "Unknown syntax error"
		}
		return []Item{{
			Type:    "error",
			Message: "❌ Syntax Error: " + msg,
			Line:    in.ErrorLine,
			Column:  in.ErrorColumn,
		}}
	}

	if isConfigurationError(in.Structure) {
		return configurationErrorItems(in.Structure)
	}

	items := []Item{verdictItem(in)}
	items = appendComponent(items, in.Imports, "Imports", "📦")
	items = appendComponent(items, in.Structure, "Structure", "🏗️")
	items = appendComponent(items, in.Behavior, "Behavior", "⚡")

	if in.Semantic != nil && len(in.Semantic.PatternsChecked) > 0 {
		items = appendSemantic(items, in.Semantic)
	}

	if in.TotalScore < 50 {
		items = appendHints(items, in)
	}
	return items
}

// isConfigurationError reports whether structure validation failed
// because the problem itself uses a retired requirement format.
func isConfigurationError(structure validator.ComponentResult) bool {
	if len(structure.Details) == 0 {
		return false
	}
	first := structure.Details[0]
	return strings.Contains(first, "PROBLEM DEFINITION ERROR") ||
		strings.Contains(first, "outdated validation format") ||
		first == spec.LegacySentinel
}

func configurationErrorItems(structure validator.ComponentResult) []Item {
	items := []Item{
		{Type: "error", Message: "🚨 PROBLEM CONFIGURATION ERROR"},
		{Type: "warning", Message: "⚠️ This problem uses an outdated validation format and cannot be graded."},
	}
	for _, detail := range structure.Details {
		if strings.Contains(detail, "Expected format") {
			items = append(items, Item{Type: "info", Message: "ℹ️ " + detail})
		}
	}
	items = append(items,
		Item{Type: "info", Message: "💡 What to do: Contact the course administrator to update this problem."},
		Item{Type: "info", Message: `📚 For admins: Update the requirement spec to use "classes": [{"name": "...", "methods": [...]}] format`},
	)
	return items
}

func verdictItem(in Input) Item {
	switch in.Verdict {
	case scoring.VerdictAccepted:
		return Item{
			Type:    "success",
			Message: fmt.Sprintf("🎉 Solution Accepted! Score: %.1f/100 (%s level)", in.TotalScore, capitalize(in.Difficulty)),
		}
	case scoring.VerdictPartiallyPassed:
		return Item{
			Type:    "warning",
			Message: fmt.Sprintf("⚠️ Partially Correct. Score: %.1f/100. Review the feedback below to improve.", in.TotalScore),
		}
	default:
		return Item{
			Type:    "error",
			Message: fmt.Sprintf("❌ Solution Failed. Score: %.1f/100. Please fix the errors below.", in.TotalScore),
		}
	}
}

func appendComponent(items []Item, result validator.ComponentResult, name, icon string) []Item {
	statusIcon := "⚠️"
	headerType := "warning"
	if result.Passed {
		statusIcon = "✅"
		headerType = "info"
	}
	items = append(items, Item{
		Type:    headerType,
		Message: fmt.Sprintf("%s %s: %s Score: %.1f/100", icon, name, statusIcon, result.Score),
	})

	for _, detail := range result.Details {
		items = append(items, Item{
			Type:    detailType(detail),
			Message: detailIndent(detail) + strings.TrimSpace(detail),
		})
	}
	return items
}

// detailType infers the display type from the lexical cues the
// validators embed in their detail strings.
func detailType(detail string) string {
	lower := strings.ToLower(detail)
	switch {
	case strings.HasPrefix(detail, "✓"),
		strings.Contains(lower, "found") && strings.Contains(detail, "✓"):
		return "success"
	case strings.HasPrefix(detail, "✗"),
		strings.Contains(lower, "missing"),
		strings.Contains(lower, "not found"):
		return "error"
	default:
		return "info"
	}
}

func detailIndent(detail string) string {
	if strings.HasPrefix(detail, "    ") {
		return "    "
	}
	if strings.HasPrefix(detail, "  ") {
		return "  "
	}
	return ""
}

func appendSemantic(items []Item, semantic *SemanticBlock) []Item {
	items = append(items, Item{Type: "info", Message: "🎯 Advanced Pattern Analysis:"})
	items = append(items, Item{
		Type:    "info",
		Message: "  Patterns analyzed: " + strings.Join(semantic.PatternsChecked, ", "),
	})
	for _, detail := range semantic.Details {
		t := "info"
		if strings.HasPrefix(detail, "✓") {
			t = "success"
		} else if strings.HasPrefix(detail, "✗") {
			t = "warning"
		}
		items = append(items, Item{Type: t, Message: "  " + detail})
	}
	return items
}

func appendHints(items []Item, in Input) []Item {
	var hints []string
	if in.Imports.Score < 50 {
		hints = append(hints, "💡 Tip: Check that all required imports are included at the top of your file")
	}
	if in.Structure.Score < 50 {
		hints = append(hints,
			"💡 Tip: Make sure your class/function names match the requirements exactly",
			"💡 Tip: Check that you've implemented all required methods/functions")
	}
	if in.Behavior.Score < 50 {
		hints = append(hints, "💡 Tip: Review the problem requirements - your code may be missing key functionality")
	}
	if len(hints) == 0 {
		return items
	}

	items = append(items, Item{Type: "info"})
	for _, h := range hints {
		items = append(items, Item{Type: "info", Message: h})
	}
	return items
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
