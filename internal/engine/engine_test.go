package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codejudge/internal/parser"
	"codejudge/internal/scoring"
	"codejudge/internal/spec"
	"codejudge/internal/validator"
)

const bookSubmission = `from django.db import models

class Book(models.Model):
    title = models.CharField(max_length=200)
    isbn = models.CharField(max_length=13, unique=True)

    def __str__(self):
        return self.title
`

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
		},
	}
	s.Normalize()
	return s
}

func TestEvaluate_Accepted(t *testing.T) {
	s := bookSpec()
	s.BehaviorPatterns = append(s.BehaviorPatterns, spec.Pattern{Text: "unique=True on isbn"})
	s.Scoring = spec.Weights{ImportWeight: 15, StructureWeight: 40, BehaviorWeight: 45}
	s.PassingScore = 75

	out, err := New().Evaluate(context.Background(), bookSubmission, parser.LangPython, s)
	require.NoError(t, err)

	assert.Equal(t, scoring.VerdictAccepted, out.Verdict)
	assert.InDelta(t, 100.0, out.Score, 0.01)
	assert.True(t, out.ParseSuccess)
	assert.Equal(t, parser.StrategyTreeSitter, out.ParserUsed)
	assert.Equal(t, "beginner", out.Tier)
	assert.Equal(t, 3, out.Breakdown.ComponentsPassed)

	require.NotEmpty(t, out.Feedback)
	assert.Equal(t, "success", out.Feedback[0].Type)
	assert.Contains(t, out.Feedback[0].Message, "Solution Accepted")
	assert.Contains(t, out.Feedback[0].Message, "Beginner level")
}

func TestEvaluate_SyntaxError(t *testing.T) {
	code := "def broken(:\n    pass\n"
	out, err := New().Evaluate(context.Background(), code, parser.LangPython, bookSpec())
	require.NoError(t, err)

	assert.Equal(t, scoring.VerdictSyntaxError, out.Verdict)
	assert.Equal(t, 0.0, out.Score)
	assert.False(t, out.ParseSuccess)
	require.Len(t, out.Feedback, 1)
	assert.Equal(t, "error", out.Feedback[0].Type)
	assert.True(t, strings.HasPrefix(out.Feedback[0].Message, "❌ Syntax Error:"))
	assert.Greater(t, out.Feedback[0].Line, 0)
}

func TestEvaluate_PartialVerdict(t *testing.T) {
	s := bookSpec()
	s.BehaviorPatterns = []spec.Pattern{
		{Text: "CharField with max_length"},
		{Text: "ForeignKey to Author"},
		{Text: "DateField for publication"},
	}

	out, err := New().Evaluate(context.Background(), bookSubmission, parser.LangPython, s)
	require.NoError(t, err)

	// imports 15 + structure 25 + one of three patterns 20 = 60
	assert.Equal(t, scoring.VerdictPartiallyPassed, out.Verdict)
	assert.InDelta(t, 60.0, out.Score, 0.01)
	assert.Contains(t, out.Feedback[0].Message, "Partially Correct")
	assert.False(t, out.ShowHints)

	retry, err := New().EvaluateAttempt(context.Background(), bookSubmission, parser.LangPython, s, 3)
	require.NoError(t, err)
	assert.True(t, retry.ShowHints)
}

func TestEvaluate_LegacySpec(t *testing.T) {
	s := &spec.RequirementSpec{
		Difficulty:        "beginner",
		Framework:         "django",
		ExpectedStructure: map[string]any{"Book": []any{"__str__"}},
	}
	s.Normalize()

	out, err := New().Evaluate(context.Background(), bookSubmission, parser.LangPython, s)
	require.NoError(t, err)

	assert.Equal(t, scoring.VerdictFailed, out.Verdict)
	assert.Equal(t, "legacy", out.Tier)
	require.NotEmpty(t, out.Feedback)
	assert.Equal(t, "🚨 PROBLEM CONFIGURATION ERROR", out.Feedback[0].Message)
}

func TestEvaluate_NoTier(t *testing.T) {
	s := bookSpec()
	s.Difficulty = "expert"

	_, err := New().Evaluate(context.Background(), bookSubmission, parser.LangPython, s)
	require.ErrorIs(t, err, validator.ErrNoTier)
}

func TestEvaluate_LanguageFromFramework(t *testing.T) {
	out, err := New().Evaluate(context.Background(), bookSubmission, "", bookSpec())
	require.NoError(t, err)
	assert.Equal(t, parser.LangPython, out.Language)
}

func TestLanguageForFramework(t *testing.T) {
	assert.Equal(t, parser.LangPython, LanguageForFramework("django"))
	assert.Equal(t, parser.LangJavaScript, LanguageForFramework("react"))
	assert.Equal(t, parser.LangTypeScript, LanguageForFramework("angular"))
	assert.Equal(t, parser.LangJavaScript, LanguageForFramework("express"))
	assert.Equal(t, parser.LangPython, LanguageForFramework("flask"))
}

func TestEvaluate_NilSpec(t *testing.T) {
	_, err := New().Evaluate(context.Background(), bookSubmission, parser.LangPython, nil)
	require.Error(t, err)
}
