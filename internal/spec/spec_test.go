package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleYAML = `
difficulty: intermediate
framework: django
required_imports:
  - django.db
  - rest_framework
required_structure:
  classes:
    - Book
    - name: BookSerializer
      parent_class: serializers.ModelSerializer
      methods: [validate_title]
  functions:
    - name: book_list
      params: [request]
    - helper
behavior_patterns:
  - "filter books by author"
  - type: model_field
    name: title
    field_type: CharField
scoring:
  import_weight: 10
  structure_weight: 30
  behavior_weight: 60
passing_score: 75
`

func TestRequirementSpec_DecodeYAML(t *testing.T) {
	var s RequirementSpec
	require.NoError(t, yaml.Unmarshal([]byte(sampleYAML), &s))

	assert.Equal(t, "intermediate", s.Difficulty)
	assert.Equal(t, "django", s.Framework)
	assert.Equal(t, []string{"django.db", "rest_framework"}, s.RequiredImports)

	require.Len(t, s.RequiredStructure.Classes, 2)
	assert.Equal(t, "Book", s.RequiredStructure.Classes[0].Name)
	assert.False(t, s.RequiredStructure.Classes[0].Detailed)
	assert.Equal(t, "BookSerializer", s.RequiredStructure.Classes[1].Name)
	assert.Equal(t, "serializers.ModelSerializer", s.RequiredStructure.Classes[1].ParentClass)
	assert.Equal(t, []string{"validate_title"}, s.RequiredStructure.Classes[1].Methods)
	assert.True(t, s.RequiredStructure.Classes[1].Detailed)

	require.Len(t, s.RequiredStructure.Functions, 2)
	assert.True(t, s.RequiredStructure.Functions[0].Detailed)
	assert.Equal(t, []string{"request"}, s.RequiredStructure.Functions[0].Params)
	assert.Equal(t, "helper", s.RequiredStructure.Functions[1].Name)
	assert.False(t, s.RequiredStructure.Functions[1].Detailed)

	require.Len(t, s.BehaviorPatterns, 2)
	assert.False(t, s.BehaviorPatterns[0].Structured())
	assert.Equal(t, "filter books by author", s.BehaviorPatterns[0].Text)
	assert.True(t, s.BehaviorPatterns[1].Structured())
	assert.Equal(t, "model_field", s.BehaviorPatterns[1].Kind)
	assert.Equal(t, "title", s.BehaviorPatterns[1].String("name"))
	assert.Equal(t, "CharField", s.BehaviorPatterns[1].String("field_type"))

	assert.Equal(t, 75.0, s.PassingScore)
	assert.Equal(t, 30.0, s.Scoring.StructureWeight)
}

func TestRequirementSpec_DecodeJSON(t *testing.T) {
	payload := `{
		"difficulty": "beginner",
		"framework": "react",
		"required_structure": {
			"classes": ["TodoApp"],
			"functions": [{"name": "TodoItem", "type": "functional_component", "has_prop_types": true}]
		},
		"behavior_patterns": ["render todo list", {"type": "hook_call", "name": "useState"}]
	}`
	var s RequirementSpec
	require.NoError(t, json.Unmarshal([]byte(payload), &s))

	assert.Equal(t, "TodoApp", s.RequiredStructure.Classes[0].Name)
	require.Len(t, s.RequiredStructure.Functions, 1)
	assert.Equal(t, "functional_component", s.RequiredStructure.Functions[0].Type)
	assert.True(t, s.RequiredStructure.Functions[0].HasPropTypes)
	assert.True(t, s.RequiredStructure.Functions[0].Detailed)

	require.Len(t, s.BehaviorPatterns, 2)
	assert.Equal(t, "render todo list", s.BehaviorPatterns[0].Text)
	assert.Equal(t, "hook_call", s.BehaviorPatterns[1].Kind)
	assert.Equal(t, "useState", s.BehaviorPatterns[1].String("name"))
}

func TestPattern_StructuredRequiresType(t *testing.T) {
	var p Pattern
	err := yaml.Unmarshal([]byte(`{name: useState}`), &p)
	assert.ErrorContains(t, err, "type discriminator")
}

func TestPattern_Roundtrip(t *testing.T) {
	patterns := []Pattern{
		{Text: "calls preventDefault"},
		{Kind: "queryset_operation", Params: map[string]any{"operation": "filter"}},
	}
	raw, err := json.Marshal(patterns)
	require.NoError(t, err)

	var decoded []Pattern
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, patterns, decoded)
}

func TestPattern_Accessors(t *testing.T) {
	p := Pattern{Kind: "effect_usage", Params: map[string]any{
		"dependencies": []any{"query", "page"},
		"has_cleanup":  true,
		"min_count":    float64(2),
	}}
	assert.Equal(t, []string{"query", "page"}, p.StringSlice("dependencies"))
	assert.True(t, p.Bool("has_cleanup"))
	assert.Equal(t, 2, p.Int("min_count"))
	assert.Equal(t, "effect_usage", p.Describe())
	assert.Equal(t, "", p.String("missing"))
}

func TestRequirementSpec_Normalize(t *testing.T) {
	s := RequirementSpec{Difficulty: " Beginner ", Framework: "Django"}
	s.Normalize()

	assert.Equal(t, "beginner", s.Difficulty)
	assert.Equal(t, "django", s.Framework)
	assert.Equal(t, DefaultImportWeight, s.Scoring.ImportWeight)
	assert.Equal(t, DefaultStructureWeight, s.Scoring.StructureWeight)
	assert.Equal(t, DefaultBehaviorWeight, s.Scoring.BehaviorWeight)
	assert.Equal(t, DefaultPassingScore, s.PassingScore)
}

func TestRequirementSpec_NormalizeKeepsExplicitScoring(t *testing.T) {
	s := RequirementSpec{
		Difficulty:   "advanced",
		Framework:    "react",
		Scoring:      Weights{ImportWeight: 5, StructureWeight: 35, BehaviorWeight: 60},
		PassingScore: 80,
	}
	s.Normalize()
	assert.Equal(t, 5.0, s.Scoring.ImportWeight)
	assert.Equal(t, 80.0, s.PassingScore)
}

func TestRequirementSpec_Legacy(t *testing.T) {
	t.Run("retired keys only", func(t *testing.T) {
		s := RequirementSpec{
			Difficulty:        "beginner",
			Framework:         "django",
			ExpectedStructure: map[string]any{"classes": []any{"Book"}},
		}
		assert.True(t, s.Legacy())
	})

	t.Run("migrated spec keeps current format", func(t *testing.T) {
		s := RequirementSpec{
			Difficulty:        "beginner",
			Framework:         "django",
			RequiredImports:   []string{"django.db"},
			ExpectedStructure: map[string]any{"classes": []any{"Book"}},
		}
		assert.False(t, s.Legacy())
	})

	t.Run("current format only", func(t *testing.T) {
		s := RequirementSpec{
			Difficulty:       "beginner",
			Framework:        "react",
			BehaviorPatterns: []Pattern{{Text: "useState"}},
		}
		assert.False(t, s.Legacy())
	})
}

func TestRequirementSpec_Validate(t *testing.T) {
	valid := func() RequirementSpec {
		return RequirementSpec{
			Difficulty:   "beginner",
			Framework:    "django",
			PassingScore: 70,
		}
	}

	t.Run("valid", func(t *testing.T) {
		s := valid()
		assert.NoError(t, s.Validate())
	})

	t.Run("missing difficulty", func(t *testing.T) {
		s := valid()
		s.Difficulty = ""
		assert.ErrorContains(t, s.Validate(), "difficulty")
	})

	t.Run("missing framework", func(t *testing.T) {
		s := valid()
		s.Framework = ""
		assert.ErrorContains(t, s.Validate(), "framework")
	})

	t.Run("passing score out of range", func(t *testing.T) {
		s := valid()
		s.PassingScore = 120
		assert.ErrorContains(t, s.Validate(), "passing_score")
	})

	t.Run("negative weight", func(t *testing.T) {
		s := valid()
		s.Scoring.BehaviorWeight = -10
		assert.ErrorContains(t, s.Validate(), "behavior_weight")
	})

	t.Run("unnamed class", func(t *testing.T) {
		s := valid()
		s.RequiredStructure.Classes = []ClassReq{{}}
		assert.ErrorContains(t, s.Validate(), "classes[0]")
	})

	t.Run("empty pattern", func(t *testing.T) {
		s := valid()
		s.BehaviorPatterns = []Pattern{{}}
		assert.ErrorContains(t, s.Validate(), "behavior_patterns[0]")
	})
}

func TestValidateSchema(t *testing.T) {
	t.Run("accepts normalized spec", func(t *testing.T) {
		var s RequirementSpec
		require.NoError(t, yaml.Unmarshal([]byte(sampleYAML), &s))
		s.Normalize()
		assert.NoError(t, ValidateSchema(&s))
	})

	t.Run("rejects unknown difficulty", func(t *testing.T) {
		s := RequirementSpec{Difficulty: "impossible", Framework: "django", PassingScore: 70}
		assert.ErrorContains(t, ValidateSchema(&s), "schema validation failed")
	})

	t.Run("rejects unknown framework", func(t *testing.T) {
		s := RequirementSpec{Difficulty: "beginner", Framework: "rails", PassingScore: 70}
		assert.ErrorContains(t, ValidateSchema(&s), "schema validation failed")
	})
}
