// Package validator grades a parsed submission against a requirement
// spec. Validation is tiered by difficulty: each tier produces three
// component results (imports, structure, behavior) that the scoring
// layer weighs into a final verdict.
package validator

import (
	"errors"
	"fmt"

	"codejudge/internal/parser"
	"codejudge/internal/spec"
)

// ErrNoTier is returned when no registered tier can handle the
// requested difficulty. It signals a configuration problem, not a
// submission failure.
var ErrNoTier = errors.New("no validator tier for difficulty")

// ComponentResult is the outcome of one validation component.
type ComponentResult struct {
	Passed  bool
	Score   float64
	Details []string
}

// Result bundles the three component results a tier produces.
type Result struct {
	Imports   ComponentResult
	Structure ComponentResult
	Behavior  ComponentResult

	// Tier names the strategy that ran, for observability.
	Tier string
}

// Tier is one difficulty-specific validation strategy.
type Tier interface {
	Name() string
	CanHandle(difficulty, framework string) bool
	Validate(parsed *parser.ParseResult, req *spec.RequirementSpec, code string) *Result
}

// DefaultTiers returns the registered tiers in selection order.
func DefaultTiers() []Tier {
	return []Tier{&BeginnerTier{}, &IntermediateTier{}}
}

// Select picks the first tier that handles the difficulty.
func Select(tiers []Tier, difficulty, framework string) (Tier, error) {
	for _, t := range tiers {
		if t.CanHandle(difficulty, framework) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNoTier, difficulty, framework)
}

// Run validates a submission with the default tiers. A legacy-format
// spec short-circuits into a configuration-error result instead of
// grading against requirements that no longer decode.
func Run(parsed *parser.ParseResult, req *spec.RequirementSpec, code string) (*Result, error) {
	if req.Legacy() {
		return legacyResult(), nil
	}
	tier, err := Select(DefaultTiers(), req.Difficulty, req.Framework)
	if err != nil {
		return nil, err
	}
	return tier.Validate(parsed, req, code), nil
}

func legacyResult() *Result {
	return &Result{
		Imports:   ComponentResult{Details: []string{"Validation skipped"}},
		Structure: ComponentResult{Details: []string{spec.LegacySentinel}},
		Behavior:  ComponentResult{Details: []string{"Validation skipped"}},
		Tier:      "legacy",
	}
}
