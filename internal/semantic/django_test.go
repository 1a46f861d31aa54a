package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codejudge/internal/parser"
)

const djangoSubmission = `from django.db import models
from django.urls import path, include
from django.contrib import admin
from rest_framework import serializers
from rest_framework.permissions import IsAuthenticated


class Book(models.Model):
    title = models.CharField(max_length=200)
    author = models.ForeignKey('Author', on_delete=models.CASCADE)
    tags = models.ManyToManyField('Tag')
    published = models.DateField(null=True)

    class Meta:
        ordering = ['title']

    def save(self, *args, **kwargs):
        super().save(*args, **kwargs)


class BookSerializer(serializers.ModelSerializer):
    summary = serializers.SerializerMethodField()

    def validate_title(self, value):
        return value


class BookListView(ListView):
    permission_classes = [IsAuthenticated]

    def get(self, request):
        books = Book.objects.filter(published__isnull=False).order_by('title')
        return render(request, 'books.html', {'books': books})


class AuditMiddleware:
    def process_request(self, request):
        pass

    def process_response(self, request, response):
        return response


class BookAdmin(admin.ModelAdmin):
    pass


admin.site.register(Book, BookAdmin)

urlpatterns = [
    path('books/', BookListView.as_view(), name='book-list'),
    path('api/', include('api.urls')),
]
`

func analyzeDjango(t *testing.T, code string) *DjangoFacts {
	t.Helper()
	parsed := parser.New().Parse(context.Background(), code, parser.LangPython)
	require.True(t, parsed.Success)

	profile := ForFramework(Django).Analyze(code, parsed)
	require.NotNil(t, profile.Django)
	return profile.Django
}

func TestDjangoAnalyzer(t *testing.T) {
	facts := analyzeDjango(t, djangoSubmission)

	t.Run("ModelFields", func(t *testing.T) {
		byName := make(map[string]FieldFact)
		for _, f := range facts.ModelFields {
			byName[f.Name] = f
		}
		require.Contains(t, byName, "title")
		assert.Equal(t, "CharField", byName["title"].FieldType)
		assert.Contains(t, byName["title"].Params, "max_length=200")
		require.Contains(t, byName, "published")
		assert.Equal(t, "DateField", byName["published"].FieldType)
	})

	t.Run("Relationships", func(t *testing.T) {
		byField := make(map[string]RelationshipFact)
		for _, r := range facts.Relationships {
			byField[r.FieldName] = r
		}
		require.Contains(t, byField, "author")
		assert.Equal(t, "ForeignKey", byField["author"].Kind)
		assert.Equal(t, "Author", byField["author"].RelatedModel)
		require.Contains(t, byField, "tags")
		assert.Equal(t, "ManyToManyField", byField["tags"].Kind)
	})

	t.Run("ModelMeta", func(t *testing.T) {
		require.NotNil(t, facts.ModelMeta)
		assert.Equal(t, "['title']", facts.ModelMeta["ordering"])
	})

	t.Run("ModelMethods", func(t *testing.T) {
		var names []string
		for _, m := range facts.ModelMethods {
			names = append(names, m.Name)
		}
		assert.Contains(t, names, "save")
	})

	t.Run("ViewClasses", func(t *testing.T) {
		require.Len(t, facts.ViewClasses, 1)
		view := facts.ViewClasses[0]
		assert.Equal(t, "BookListView", view.Name)
		assert.Contains(t, view.Methods, "get")
		assert.Contains(t, facts.ViewMethods, "get")
	})

	t.Run("Permissions", func(t *testing.T) {
		assert.Contains(t, facts.PermissionClasses, "IsAuthenticated")
	})

	t.Run("Serializers", func(t *testing.T) {
		require.Len(t, facts.SerializerClasses, 1)
		ser := facts.SerializerClasses[0]
		assert.Equal(t, "BookSerializer", ser.Name)
		assert.True(t, ser.HasValidate)

		var fieldNames []string
		for _, f := range facts.SerializerFields {
			fieldNames = append(fieldNames, f.Name)
		}
		assert.Contains(t, fieldNames, "summary")
	})

	t.Run("Middleware", func(t *testing.T) {
		require.Len(t, facts.MiddlewareClasses, 1)
		mw := facts.MiddlewareClasses[0]
		assert.Equal(t, "AuditMiddleware", mw.Name)
		assert.True(t, mw.HasProcessRequest)
		assert.True(t, mw.HasProcessResponse)
		assert.False(t, mw.HasProcessView)
		assert.Contains(t, facts.MiddlewareMethods, "process_request")
	})

	t.Run("QuerysetOps", func(t *testing.T) {
		assert.Contains(t, facts.QuerysetOps, "filter")
		assert.Contains(t, facts.QuerysetOps, "order_by")

		var chained bool
		for _, chain := range facts.QuerysetChains {
			if len(chain.Methods) >= 2 {
				chained = true
			}
		}
		assert.True(t, chained)
	})

	t.Run("URLs", func(t *testing.T) {
		var paths []string
		for _, p := range facts.URLPatterns {
			paths = append(paths, p.Path)
		}
		assert.Contains(t, paths, "books/")
		assert.Contains(t, facts.URLIncludes, "api.urls")
	})

	t.Run("Templates", func(t *testing.T) {
		assert.True(t, facts.TemplateUsage.Any())
		assert.GreaterOrEqual(t, facts.TemplateUsage.RenderCalls, 1)
	})

	t.Run("Admin", func(t *testing.T) {
		require.Len(t, facts.AdminClasses, 1)
		assert.Equal(t, "BookAdmin", facts.AdminClasses[0].Name)
		require.Len(t, facts.AdminRegistrations, 1)
		assert.Equal(t, "Book, BookAdmin", facts.AdminRegistrations[0])
	})
}

func TestDjangoAnalyzer_AuthAndSignals(t *testing.T) {
	code := `from django.dispatch import receiver
from django.db.models.signals import post_save
from django.contrib.auth.decorators import login_required


@receiver(post_save, sender=Book)
def on_book_saved(sender, instance, **kwargs):
    pass


@login_required
def dashboard(request):
    if request.user.has_perm('books.view_book'):
        return render(request, 'dashboard.html')
`
	facts := analyzeDjango(t, code)

	assert.True(t, facts.AuthUsage.LoginRequired)
	assert.Equal(t, 1, facts.AuthUsage.HasPermCalls)
	assert.True(t, facts.AuthUsage.Any())

	require.NotEmpty(t, facts.PermissionChecks)
	assert.Equal(t, "has_perm", facts.PermissionChecks[0].Kind)
	assert.Contains(t, facts.PermissionChecks[0].Match, "books.view_book")

	var kinds []string
	for _, h := range facts.SignalHandlers {
		kinds = append(kinds, h.Kind)
	}
	assert.Contains(t, kinds, "receiver")
	assert.Contains(t, facts.ViewDecorators, "login_required")
}

func TestDjangoAnalyzer_TestsAndForms(t *testing.T) {
	code := `from django import forms
from django.test import TestCase


class ContactForm(forms.Form):
    email = forms.EmailField(required=True)

    def clean(self):
        return self.cleaned_data


class BookTests(TestCase):
    def test_create(self):
        pass

    def test_delete(self):
        pass
`
	facts := analyzeDjango(t, code)

	require.Len(t, facts.FormClasses, 1)
	assert.Equal(t, "ContactForm", facts.FormClasses[0].Name)
	assert.True(t, facts.FormClasses[0].HasClean)

	var fieldNames []string
	for _, f := range facts.FormFields {
		fieldNames = append(fieldNames, f.Name)
	}
	assert.Contains(t, fieldNames, "email")

	require.Len(t, facts.TestClasses, 1)
	assert.ElementsMatch(t, []string{"test_create", "test_delete"}, facts.TestClasses[0].TestMethods)
	assert.ElementsMatch(t, []string{"test_create", "test_delete"}, facts.TestMethods)
}

func TestDjangoAnalyzer_EmptyCode(t *testing.T) {
	facts := analyzeDjango(t, "x = 1\n")

	assert.Empty(t, facts.ModelFields)
	assert.Empty(t, facts.ViewClasses)
	assert.False(t, facts.AuthUsage.Any())
	assert.False(t, facts.TemplateUsage.Any())
}

func TestForFramework_Noop(t *testing.T) {
	profile := ForFramework(Express).Analyze("const app = express()", &parser.ParseResult{Success: true})

	assert.Equal(t, Express, profile.Framework)
	assert.Nil(t, profile.Django)
	assert.Nil(t, profile.React)
}

func TestParseFramework(t *testing.T) {
	assert.Equal(t, Django, ParseFramework(" Django "))
	assert.Equal(t, React, ParseFramework("react"))
	assert.Equal(t, Node, ParseFramework("node"))
	assert.Equal(t, Unknown, ParseFramework("flask"))
}
