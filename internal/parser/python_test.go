package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const djangoModelSource = `from django.db import models
from django.utils import timezone
import re
import numpy as np
from .serializers import BookSerializer


class Book(models.Model):
    title = models.CharField(max_length=200)
    author = models.CharField(max_length=100)
    isbn = models.CharField(max_length=13, unique=True)
    published = models.DateField(default=timezone.now)

    class Meta:
        ordering = ['title']

    def __str__(self):
        return self.title


@staticmethod
def slugify(title):
    return re.sub(r'\s+', '-', title.lower())
`

func TestParsePython(t *testing.T) {
	p := New()
	res := p.Parse(context.Background(), djangoModelSource, LangPython)

	require.True(t, res.Success)
	assert.Equal(t, StrategyTreeSitter, res.ParserUsed)
	assert.Equal(t, LangPython, res.Language)

	t.Run("Imports", func(t *testing.T) {
		byModule := make(map[string]ImportRef)
		for _, imp := range res.Imports {
			byModule[imp.Module] = imp
		}

		from, ok := byModule["django.db"]
		require.True(t, ok)
		assert.Equal(t, "from_import", from.Kind)
		assert.Equal(t, "models", from.Name)
		assert.Equal(t, 1, from.Line)

		plain, ok := byModule["re"]
		require.True(t, ok)
		assert.Equal(t, "import", plain.Kind)

		aliased, ok := byModule["numpy"]
		require.True(t, ok)
		assert.Equal(t, "np", aliased.Alias)

		rel, ok := byModule[".serializers"]
		require.True(t, ok)
		assert.Equal(t, "BookSerializer", rel.Name)
	})

	t.Run("Classes", func(t *testing.T) {
		var book *ClassInfo
		for i := range res.Classes {
			if res.Classes[i].Name == "Book" {
				book = &res.Classes[i]
			}
		}
		require.NotNil(t, book)

		assert.Equal(t, []string{"models.Model"}, book.Bases)
		assert.Equal(t, 8, book.Line)
		assert.Contains(t, book.Fields, "title")
		assert.Contains(t, book.Fields, "isbn")

		require.Len(t, book.Methods, 1)
		assert.Equal(t, "__str__", book.Methods[0].Name)
		assert.Equal(t, []string{"self"}, book.Methods[0].Params)
	})

	t.Run("Nested Meta class is visible", func(t *testing.T) {
		names := make([]string, 0, len(res.Classes))
		for _, c := range res.Classes {
			names = append(names, c.Name)
		}
		assert.Contains(t, names, "Meta")
	})

	t.Run("Top-level functions", func(t *testing.T) {
		require.Len(t, res.Functions, 1)
		fn := res.Functions[0]
		assert.Equal(t, "slugify", fn.Name)
		assert.Equal(t, []string{"title"}, fn.Params)
		assert.Equal(t, []string{"staticmethod"}, fn.Decorators)
	})
}

func TestParsePython_SyntaxError(t *testing.T) {
	p := New()
	res := p.Parse(context.Background(), "def broken(:\n    pass\n", LangPython)

	require.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Greater(t, res.Line, 0)
	assert.Empty(t, res.Classes)
	assert.Empty(t, res.Imports)
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	p := New()
	res := p.Parse(context.Background(), "puts 'hi'", Language("ruby"))

	require.False(t, res.Success)
	assert.Contains(t, res.Error, "unsupported language")
}
