package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codejudge/internal/parser"
	"codejudge/internal/spec"
)

const bookSubmission = `from django.db import models

class Book(models.Model):
    title = models.CharField(max_length=200)
    isbn = models.CharField(max_length=13, unique=True)

    def __str__(self):
        return self.title
`

func parsePython(t *testing.T, code string) *parser.ParseResult {
	t.Helper()
	res := parser.New().Parse(context.Background(), code, parser.LangPython)
	require.True(t, res.Success)
	return res
}

func parseJS(t *testing.T, code string) *parser.ParseResult {
	t.Helper()
	p := parser.New(parser.WithNodeBin("codejudge-no-such-node-binary"))
	res := p.Parse(context.Background(), code, parser.LangJavaScript)
	require.True(t, res.Success)
	return res
}

func bookSpec() *spec.RequirementSpec {
	s := &spec.RequirementSpec{
		Difficulty:      "beginner",
		Framework:       "django",
		RequiredImports: []string{"django.db.models"},
		RequiredStructure: spec.Structure{
			Classes: []spec.ClassReq{{
				Name:        "Book",
				ParentClass: "models.Model",
				Methods:     []string{"__str__"},
				Detailed:    true,
			}},
		},
		BehaviorPatterns: []spec.Pattern{
			{Text: "CharField with max_length"},
			{Text: "unique=True on isbn"},
		},
	}
	s.Normalize()
	return s
}

func TestBeginnerTier_DjangoBook(t *testing.T) {
	parsed := parsePython(t, bookSubmission)

	res, err := Run(parsed, bookSpec(), bookSubmission)
	require.NoError(t, err)

	assert.Equal(t, "beginner", res.Tier)
	assert.True(t, res.Imports.Passed)
	assert.Equal(t, 100.0, res.Imports.Score)
	assert.True(t, res.Structure.Passed)
	assert.Equal(t, 100.0, res.Structure.Score)
	assert.True(t, res.Behavior.Passed)
	assert.Equal(t, 100.0, res.Behavior.Score)
}

func TestBeginnerTier_MissingMethod(t *testing.T) {
	code := `from django.db import models

class Book(models.Model):
    title = models.CharField(max_length=200)
`
	parsed := parsePython(t, code)

	res, err := Run(parsed, bookSpec(), code)
	require.NoError(t, err)

	assert.False(t, res.Structure.Passed)
	assert.InDelta(t, 66.67, res.Structure.Score, 0.01)
	assert.Contains(t, res.Structure.Details, "  ✗ Method '__str__' missing")
}

func TestBeginnerTier_ClassNotFound(t *testing.T) {
	code := "x = 1\n"
	parsed := parsePython(t, code)

	res, err := Run(parsed, bookSpec(), code)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Structure.Score)
	assert.Contains(t, res.Structure.Details, "✗ Class 'Book' not found")
}

func TestValidateImports(t *testing.T) {
	t.Run("empty requirement short-circuits to 100", func(t *testing.T) {
		parsed := parsePython(t, "x = 1\n")
		res := validateImports(parsed, nil)
		assert.True(t, res.Passed)
		assert.Equal(t, 100.0, res.Score)
		assert.Equal(t, []string{"No imports required for validation"}, res.Details)
	})

	t.Run("partial score on missing imports", func(t *testing.T) {
		parsed := parsePython(t, "from django.db import models\n")
		res := validateImports(parsed, []string{"django.db.models", "rest_framework"})
		assert.False(t, res.Passed)
		assert.Equal(t, 50.0, res.Score)
		assert.Contains(t, res.Details[0], "rest_framework")
	})
}

func TestImportMatches(t *testing.T) {
	t.Run("dotted requirement against bare name", func(t *testing.T) {
		assert.True(t, importMatches("django.db.models", []string{"django.db.models", "django.db", "models"}))
	})

	t.Run("substring either direction", func(t *testing.T) {
		assert.True(t, importMatches("models", []string{"django.db.models"}))
		assert.True(t, importMatches("django.db.models.fields", []string{"models"}))
	})

	t.Run("relative import normalization", func(t *testing.T) {
		assert.True(t, importMatches(".serializers", []string{"serializers"}))
		assert.True(t, importMatches("..api.serializers", []string{"api_serializers"}))
	})

	t.Run("no match", func(t *testing.T) {
		assert.False(t, importMatches("rest_framework", []string{"django.db"}))
	})
}

func TestStructure_ZeroChecksScoresZero(t *testing.T) {
	parsed := parsePython(t, bookSubmission)
	s := bookSpec()
	s.RequiredStructure = spec.Structure{}
	s.BehaviorPatterns = nil

	res, err := Run(parsed, s, bookSubmission)
	require.NoError(t, err)

	assert.False(t, res.Structure.Passed)
	assert.Equal(t, 0.0, res.Structure.Score)
	require.Len(t, res.Structure.Details, 1)
	assert.Contains(t, res.Structure.Details[0], "No structure validation performed")
}

const counterSubmission = `import React, { useState, useEffect } from 'react';

function Counter() {
  const [count, setCount] = useState(0);

  useEffect(() => {
    document.title = 'Count ' + count;
  }, []);

  return <button onClick={() => setCount(count + 1)}>{count}</button>;
}

export default Counter;
`

func TestIntermediateTier_ReactHookPatterns(t *testing.T) {
	parsed := parseJS(t, counterSubmission)
	s := &spec.RequirementSpec{
		Difficulty: "intermediate",
		Framework:  "react",
		BehaviorPatterns: []spec.Pattern{
			{Kind: "hook_call", Params: map[string]any{"hook": "useState"}},
			{Kind: "hook_call", Params: map[string]any{"hook": "useEffect"}},
		},
		RequiredStructure: spec.Structure{
			Functions: []spec.FuncReq{{Name: "Counter", Type: "functional_component", Detailed: true}},
		},
	}
	s.Normalize()

	res, err := Run(parsed, s, counterSubmission)
	require.NoError(t, err)

	assert.Equal(t, "intermediate", res.Tier)
	assert.True(t, res.Behavior.Passed)
	assert.Equal(t, 100.0, res.Behavior.Score)
	assert.True(t, res.Structure.Passed)
}

func TestIntermediateTier_DjangoPatterns(t *testing.T) {
	code := `from django.db import models
from django.contrib.auth.decorators import login_required

class Book(models.Model):
    title = models.CharField(max_length=200)

@login_required
def book_list(request):
    books = Book.objects.filter(available=True)
    return books
`
	parsed := parsePython(t, code)

	patterns := []spec.Pattern{
		{Kind: "model_field", Params: map[string]any{"field_type": "CharField"}},
		{Kind: "queryset_operation", Params: map[string]any{"operation": "filter"}},
		{Kind: "authentication", Params: map[string]any{"auth_type": "login_required"}},
		{Kind: "decorator", Params: map[string]any{"decorator": "login_required"}},
	}
	s := &spec.RequirementSpec{
		Difficulty:       "intermediate",
		Framework:        "django",
		BehaviorPatterns: patterns,
		RequiredStructure: spec.Structure{
			Classes: []spec.ClassReq{{Name: "Book", ParentClass: "models.Model", Detailed: true}},
		},
	}
	s.Normalize()

	res, err := Run(parsed, s, code)
	require.NoError(t, err)

	assert.True(t, res.Behavior.Passed, "details: %v", res.Behavior.Details)
	assert.True(t, res.Structure.Passed)
	assert.Contains(t, res.Structure.Details, "  ✓ Model has 1 fields")
}

func TestIntermediateTier_UnknownKindFailsClosed(t *testing.T) {
	parsed := parsePython(t, bookSubmission)
	s := &spec.RequirementSpec{
		Difficulty:       "intermediate",
		Framework:        "django",
		BehaviorPatterns: []spec.Pattern{{Kind: "telepathy_check"}},
		RequiredStructure: spec.Structure{
			Classes: []spec.ClassReq{{Name: "Book", Detailed: true}},
		},
	}
	s.Normalize()

	res, err := Run(parsed, s, bookSubmission)
	require.NoError(t, err)

	assert.False(t, res.Behavior.Passed)
	assert.Contains(t, res.Behavior.Details, "✗ Unknown pattern type: telepathy_check")
}

func TestIntermediateTier_ExpressFailsClosed(t *testing.T) {
	code := "const express = require('express');\nconst app = express();\n"
	parsed := parseJS(t, code)
	s := &spec.RequirementSpec{
		Difficulty:       "intermediate",
		Framework:        "express",
		BehaviorPatterns: []spec.Pattern{{Kind: "route_definition"}},
		RequiredStructure: spec.Structure{
			Functions: []spec.FuncReq{{Name: "app", Detailed: true}},
		},
	}
	s.Normalize()

	res, err := Run(parsed, s, code)
	require.NoError(t, err)

	assert.False(t, res.Behavior.Passed)
	assert.Contains(t, res.Behavior.Details[0], "Express pattern validation not implemented")
}

func TestRun_LegacySpec(t *testing.T) {
	parsed := parsePython(t, bookSubmission)
	s := &spec.RequirementSpec{
		Difficulty:        "beginner",
		Framework:         "django",
		ExpectedStructure: map[string]any{"classes": []any{"Book"}},
	}
	s.Normalize()

	res, err := Run(parsed, s, bookSubmission)
	require.NoError(t, err)

	assert.Equal(t, "legacy", res.Tier)
	assert.Equal(t, spec.LegacySentinel, res.Structure.Details[0])
	assert.Equal(t, 0.0, res.Structure.Score)
}

func TestSelect_NoTier(t *testing.T) {
	_, err := Select(DefaultTiers(), "expert", "django")
	assert.ErrorIs(t, err, ErrNoTier)
}

func TestGenericPatterns(t *testing.T) {
	code := `async function load() {
  const res = await fetch('/api/data');
  return { items: res.items, total: res.total };
}
`
	t.Run("async with fetch", func(t *testing.T) {
		r := genericPatternKind(spec.Pattern{Kind: "async_pattern", Params: map[string]any{"context": "fetch_call"}}, code)
		assert.True(t, r.passed)
	})

	t.Run("return properties", func(t *testing.T) {
		p := spec.Pattern{Kind: "return_statement", Params: map[string]any{
			"returns": map[string]any{"required_properties": []any{"items", "total"}},
		}}
		r := genericPatternKind(p, code)
		assert.True(t, r.passed)

		p.Params["returns"] = map[string]any{"required_properties": []any{"missing_prop"}}
		assert.False(t, genericPatternKind(p, code).passed)
	})

	t.Run("method call", func(t *testing.T) {
		r := genericPatternKind(spec.Pattern{Kind: "method_call", Params: map[string]any{
			"object": "res", "method": "items",
		}}, code)
		assert.False(t, r.passed)
	})
}
