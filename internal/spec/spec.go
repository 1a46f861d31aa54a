// Package spec defines the per-problem requirement format: required
// imports, required structure, behavior patterns, and scoring weights.
// Specs arrive as YAML (problem bank) or JSON (platform payloads) and
// decode into one normalized form.
package spec

import (
	"fmt"
	"strings"
)

// Default component weights, applied when a spec omits scoring.
const (
	DefaultImportWeight    = 15.0
	DefaultStructureWeight = 25.0
	DefaultBehaviorWeight  = 60.0
	DefaultPassingScore    = 70.0
)

// LegacySentinel marks a spec that uses the retired requirement
// format. It is emitted as the first structure detail so the feedback
// layer can short-circuit into a configuration-error report.
const LegacySentinel = "PROBLEM DEFINITION ERROR: this problem uses an outdated validation format"

// RequirementSpec is the declarative grading requirement for one
// problem.
type RequirementSpec struct {
	Difficulty        string    `yaml:"difficulty" json:"difficulty"`
	Framework         string    `yaml:"framework" json:"framework"`
	RequiredImports   []string  `yaml:"required_imports" json:"required_imports,omitempty"`
	RequiredStructure Structure `yaml:"required_structure" json:"required_structure"`
	BehaviorPatterns  []Pattern `yaml:"behavior_patterns" json:"behavior_patterns,omitempty"`
	Scoring           Weights   `yaml:"scoring" json:"scoring"`
	PassingScore      float64   `yaml:"passing_score" json:"passing_score"`

	// Retired format keys. Decoded only so Legacy() can recognize
	// problems that were never migrated.
	ExpectedStructure map[string]any `yaml:"expected_structure,omitempty" json:"expected_structure,omitempty"`
	ExpectedOutput    any            `yaml:"expected_output,omitempty" json:"expected_output,omitempty"`
	TestCases         []any          `yaml:"test_cases,omitempty" json:"test_cases,omitempty"`
}

// Structure lists the classes and functions a submission must declare.
type Structure struct {
	Classes   []ClassReq `yaml:"classes" json:"classes,omitempty"`
	Functions []FuncReq  `yaml:"functions" json:"functions,omitempty"`
}

// Empty reports whether no structural requirement is declared.
func (s Structure) Empty() bool {
	return len(s.Classes) == 0 && len(s.Functions) == 0
}

// Weights are independent component percentages. They need not sum to
// 100: an under-sum caps the total below 100, an over-sum is clamped
// after aggregation.
type Weights struct {
	ImportWeight    float64 `yaml:"import_weight" json:"import_weight"`
	StructureWeight float64 `yaml:"structure_weight" json:"structure_weight"`
	BehaviorWeight  float64 `yaml:"behavior_weight" json:"behavior_weight"`
}

// Normalize fills zero-valued scoring and passing-score fields with
// defaults and lowercases the framework and difficulty tags.
func (s *RequirementSpec) Normalize() {
	s.Difficulty = strings.ToLower(strings.TrimSpace(s.Difficulty))
	s.Framework = strings.ToLower(strings.TrimSpace(s.Framework))
	if s.Scoring == (Weights{}) {
		s.Scoring = Weights{
			ImportWeight:    DefaultImportWeight,
			StructureWeight: DefaultStructureWeight,
			BehaviorWeight:  DefaultBehaviorWeight,
		}
	}
	if s.PassingScore == 0 {
		s.PassingScore = DefaultPassingScore
	}
}

// Legacy reports whether the spec only carries retired-format keys and
// so cannot be graded.
func (s *RequirementSpec) Legacy() bool {
	hasLegacy := len(s.ExpectedStructure) > 0 || s.ExpectedOutput != nil || len(s.TestCases) > 0
	hasCurrent := len(s.RequiredImports) > 0 || !s.RequiredStructure.Empty() || len(s.BehaviorPatterns) > 0
	return hasLegacy && !hasCurrent
}

// Validate performs structural checks before schema validation.
func (s *RequirementSpec) Validate() error {
	if s.Difficulty == "" {
		return fmt.Errorf("difficulty is required")
	}
	if s.Framework == "" {
		return fmt.Errorf("framework is required")
	}
	if s.PassingScore < 0 || s.PassingScore > 100 {
		return fmt.Errorf("passing_score must be within [0,100], got %g", s.PassingScore)
	}
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"import_weight", s.Scoring.ImportWeight},
		{"structure_weight", s.Scoring.StructureWeight},
		{"behavior_weight", s.Scoring.BehaviorWeight},
	} {
		if w.value < 0 {
			return fmt.Errorf("%s must not be negative, got %g", w.name, w.value)
		}
	}
	for i, c := range s.RequiredStructure.Classes {
		if c.Name == "" {
			return fmt.Errorf("required_structure.classes[%d]: name is required", i)
		}
	}
	for i, f := range s.RequiredStructure.Functions {
		if f.Name == "" {
			return fmt.Errorf("required_structure.functions[%d]: name is required", i)
		}
	}
	for i, p := range s.BehaviorPatterns {
		if p.Text == "" && p.Kind == "" {
			return fmt.Errorf("behavior_patterns[%d]: empty pattern", i)
		}
	}
	return nil
}
