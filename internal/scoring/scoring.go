// Package scoring turns per-component raw scores into a weighted
// total and a verdict. Weights are independent percentages: an
// under-sum caps the total below 100, an over-sum is clamped at 100
// after summation.
package scoring

import "math"

// Verdict is the final judgement of a submission.
type Verdict string

const (
	VerdictAccepted        Verdict = "accepted"
	VerdictPartiallyPassed Verdict = "partially_passed"
	VerdictFailed          Verdict = "failed"
	VerdictSyntaxError     Verdict = "syntax_error"
)

// Component is one scored validation component.
type Component struct {
	Name   string
	Raw    float64
	Weight float64
	Passed bool
}

// ComponentScore is the rounded view of one component in a breakdown.
type ComponentScore struct {
	Raw      float64 `json:"raw"`
	Weighted float64 `json:"weighted"`
	Max      float64 `json:"max"`
	Passed   bool    `json:"passed"`
}

// Breakdown is the per-component display view plus summary counters.
type Breakdown struct {
	Components       map[string]ComponentScore `json:"components"`
	ComponentsTotal  int                       `json:"components_total"`
	ComponentsPassed int                       `json:"components_passed"`
}

// Summary is the aggregated outcome of all components.
type Summary struct {
	Total     float64
	Verdict   Verdict
	Breakdown Breakdown
}

// Weighted converts a raw 0-100 component score into its weighted
// contribution, rounded to 2 decimals.
func Weighted(raw, weight float64) float64 {
	return round2(raw * weight / 100)
}

// VerdictFor maps a total score to a verdict given the per-problem
// passing score. Partial credit starts at 60% of the passing bar.
func VerdictFor(total, passingScore float64) Verdict {
	switch {
	case total >= passingScore:
		return VerdictAccepted
	case total >= 0.6*passingScore:
		return VerdictPartiallyPassed
	default:
		return VerdictFailed
	}
}

// Aggregate sums the weighted component scores into a total clamped
// at 100 and derives the verdict and breakdown.
func Aggregate(components []Component, passingScore float64) Summary {
	total := 0.0
	passed := 0
	breakdown := make(map[string]ComponentScore, len(components))

	for _, c := range components {
		w := Weighted(c.Raw, c.Weight)
		total += w
		if c.Passed {
			passed++
		}
		breakdown[c.Name] = ComponentScore{
			Raw:      round2(c.Raw),
			Weighted: w,
			Max:      c.Weight,
			Passed:   c.Passed,
		}
	}

	total = math.Min(100, round2(total))

	return Summary{
		Total:   total,
		Verdict: VerdictFor(total, passingScore),
		Breakdown: Breakdown{
			Components:       breakdown,
			ComponentsTotal:  len(components),
			ComponentsPassed: passed,
		},
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
