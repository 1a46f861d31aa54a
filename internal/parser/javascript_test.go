package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reactComponentSource = `import React, { useState, useEffect } from 'react';
import * as api from './api';
const axios = require('axios');

class ErrorBoundary extends React.Component {
  constructor(props) {
    super(props);
    this.state = { failed: false };
  }
  componentDidCatch(error) {
    this.setState({ failed: true });
  }
}

function formatCount(count) {
  return count.toLocaleString();
}

const Counter = (props) => {
  const [count, setCount] = useState(0);
  useEffect(() => {
    document.title = formatCount(count);
  }, [count]);
  return <button onClick={() => setCount(count + 1)}>{count}</button>;
};

export { formatCount };
export default Counter;
`

// forceFallback returns a parser whose exact JS stage cannot run, so
// every parse exercises the regex path.
func forceFallback() *Parser {
	return New(WithNodeBin("codejudge-no-such-node-binary"))
}

func TestParseJavaScript_RegexFallback(t *testing.T) {
	p := forceFallback()
	res := p.Parse(context.Background(), reactComponentSource, LangJavaScript)

	require.True(t, res.Success)
	assert.Equal(t, StrategyRegex, res.ParserUsed)
	assert.Equal(t, LangJavaScript, res.Language)

	t.Run("Imports", func(t *testing.T) {
		modules := make(map[string]bool)
		var kinds []string
		for _, imp := range res.Imports {
			modules[imp.Module] = true
			kinds = append(kinds, imp.Kind)
		}
		assert.True(t, modules["react"])
		assert.True(t, modules["./api"])
		assert.True(t, modules["axios"])
		assert.Contains(t, kinds, "require")
	})

	t.Run("Named specifiers", func(t *testing.T) {
		var locals []string
		for _, imp := range res.Imports {
			for _, spec := range imp.Specifiers {
				locals = append(locals, spec.Local)
			}
		}
		assert.Contains(t, locals, "useState")
		assert.Contains(t, locals, "useEffect")
		assert.Contains(t, locals, "api")
	})

	t.Run("Classes", func(t *testing.T) {
		require.Len(t, res.Classes, 1)
		cls := res.Classes[0]
		assert.Equal(t, "ErrorBoundary", cls.Name)
		assert.Equal(t, []string{"React.Component"}, cls.Bases)

		methodNames := make([]string, 0, len(cls.Methods))
		for _, m := range cls.Methods {
			methodNames = append(methodNames, m.Name)
		}
		assert.Contains(t, methodNames, "constructor")
		assert.Contains(t, methodNames, "componentDidCatch")
	})

	t.Run("Functions", func(t *testing.T) {
		byName := make(map[string]FunctionInfo)
		for _, fn := range res.Functions {
			byName[fn.Name] = fn
		}

		decl, ok := byName["formatCount"]
		require.True(t, ok)
		assert.Equal(t, "function", decl.Kind)
		assert.Equal(t, []string{"count"}, decl.Params)

		comp, ok := byName["Counter"]
		require.True(t, ok)
		assert.Equal(t, "react_component", comp.Kind)
	})

	t.Run("Exports", func(t *testing.T) {
		byKind := make(map[string]string)
		for _, exp := range res.Exports {
			byKind[exp.Kind] = exp.Name
		}
		assert.Equal(t, "formatCount", byKind["ExportNamedDeclaration"])
		assert.Equal(t, "Counter", byKind["ExportDefaultDeclaration"])
	})
}

func TestParseJavaScript_CommonJS(t *testing.T) {
	p := forceFallback()
	code := `const express = require('express');
const app = express();

function handler(req, res) {
  res.send('ok');
}

module.exports = app;
`
	res := p.Parse(context.Background(), code, LangJavaScript)

	require.True(t, res.Success)
	require.Len(t, res.Imports, 1)
	assert.Equal(t, "require", res.Imports[0].Kind)
	assert.Equal(t, "express", res.Imports[0].Module)

	require.Len(t, res.Exports, 1)
	assert.Equal(t, "ModuleExports", res.Exports[0].Kind)
	assert.Equal(t, "app", res.Exports[0].Name)
}

func TestParseJavaScript_FallbackNeverEmpty(t *testing.T) {
	// Forcing the exact tool unavailable must still yield structure
	// for representative submissions.
	p := forceFallback()
	res := p.Parse(context.Background(), reactComponentSource, LangTypeScript)

	require.True(t, res.Success)
	total := len(res.Imports) + len(res.Classes) + len(res.Functions)
	assert.Greater(t, total, 0)
}
