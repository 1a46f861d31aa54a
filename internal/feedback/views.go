package feedback

import (
	"fmt"
	"strings"

	"codejudge/internal/scoring"
)

// FormatForDisplay renders items as plain text, one message per line,
// with a severity prefix and the source location when known.
func FormatForDisplay(items []Item) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch item.Type {
		case "error":
			b.WriteString("❌ ")
		case "warning":
			b.WriteString("⚠️ ")
		case "success":
			b.WriteString("✅ ")
		default:
			b.WriteString("ℹ️ ")
		}
		b.WriteString(item.Message)
		if item.Line > 0 {
			fmt.Fprintf(&b, " (Line %d)", item.Line)
		}
	}
	return b.String()
}

// FailedChecks extracts the individual failed requirements from a
// feedback list, stripped of their markers.
func FailedChecks(items []Item) []string {
	var failed []string
	for _, item := range items {
		if item.Type != "error" {
			continue
		}
		msg := strings.TrimSpace(item.Message)
		if strings.HasPrefix(msg, "✗") || strings.Contains(strings.ToLower(msg), "missing") {
			failed = append(failed, strings.TrimSpace(strings.TrimPrefix(msg, "✗")))
		}
	}
	return failed
}

// ShouldShowHints reports whether hint messages belong in the
// response. Low scores always get hints; middling scores get them
// after repeated attempts.
func ShouldShowHints(totalScore float64, attemptNumber int) bool {
	if totalScore < 50 {
		return true
	}
	return totalScore < 70 && attemptNumber >= 3
}

// Summary produces the one-line result used in listings and logs.
func Summary(verdict scoring.Verdict, totalScore float64) string {
	switch verdict {
	case scoring.VerdictAccepted:
		return fmt.Sprintf("✅ Accepted (%.0f/100)", totalScore)
	case scoring.VerdictPartiallyPassed:
		return fmt.Sprintf("⚠️ Partial (%.0f/100)", totalScore)
	case scoring.VerdictSyntaxError:
		return "❌ Syntax Error"
	default:
		return fmt.Sprintf("❌ Failed (%.0f/100)", totalScore)
	}
}
