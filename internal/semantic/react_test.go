package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codejudge/internal/parser"
)

const reactSubmission = `import React, { useState, useEffect, useCallback } from 'react';
import { BrowserRouter, Routes, Route, Link, useNavigate } from 'react-router-dom';
import axios from 'axios';

function useBooks(query) {
  const [books, setBooks] = useState([]);
  useEffect(() => {
    let cancelled = false;
    const load = async () => {
      const res = await axios.get('/api/books');
      if (!cancelled) setBooks(res.data);
    };
    load();
    return () => { cancelled = true; };
  }, [query]);
  return books;
}

const SearchForm = ({ onSearch }) => {
  const [term, setTerm] = useState('');
  const handleSubmit = (e) => {
    e.preventDefault();
    onSearch(term);
  };
  const handleChange = useCallback((e) => setTerm(e.target.value), []);
  return (
    <form onSubmit={handleSubmit}>
      <input value={term} onChange={handleChange} required maxLength={80} />
      <button onClick={() => onSearch(term)}>Search</button>
    </form>
  );
};

function App() {
  return (
    <BrowserRouter>
      <Routes>
        <Route path="/books/:id" element={<BookDetail />} />
      </Routes>
      <Link to="/books">Books</Link>
    </BrowserRouter>
  );
}
`

func analyzeReact(t *testing.T, code string) *ReactFacts {
	t.Helper()
	p := parser.New(parser.WithNodeBin("codejudge-no-such-node-binary"))
	parsed := p.Parse(context.Background(), code, parser.LangJavaScript)
	require.True(t, parsed.Success)

	profile := ForFramework(React).Analyze(code, parsed)
	require.NotNil(t, profile.React)
	return profile.React
}

func TestReactAnalyzer(t *testing.T) {
	facts := analyzeReact(t, reactSubmission)

	t.Run("HookCalls", func(t *testing.T) {
		byHook := make(map[string][]HookCall)
		for _, call := range facts.HookCalls {
			byHook[call.Hook] = append(byHook[call.Hook], call)
		}
		require.NotEmpty(t, byHook["useState"])
		assert.Equal(t, "[]", byHook["useState"][0].Analysis.InitialValue)
		require.NotEmpty(t, byHook["useEffect"])
		require.NotEmpty(t, byHook["useCallback"])
	})

	t.Run("CustomHooks", func(t *testing.T) {
		require.Len(t, facts.CustomHooks, 1)
		hook := facts.CustomHooks[0]
		assert.Equal(t, "useBooks", hook.Name)
		assert.Equal(t, []string{"query"}, hook.Params)
		assert.True(t, hook.UsesReactHooks)
		assert.True(t, hook.ReturnsValue)
	})

	t.Run("StateDeclarations", func(t *testing.T) {
		byVar := make(map[string]StateDeclaration)
		for _, d := range facts.StateDeclarations {
			byVar[d.Variable] = d
		}
		require.Contains(t, byVar, "books")
		assert.Equal(t, "setBooks", byVar["books"].Setter)
		assert.Equal(t, "[]", byVar["books"].Initial)
		require.Contains(t, byVar, "term")
		assert.Equal(t, "''", byVar["term"].Initial)
	})

	t.Run("StateUpdates", func(t *testing.T) {
		var setters []string
		for _, u := range facts.StateUpdates {
			setters = append(setters, u.Setter)
		}
		assert.Contains(t, setters, "setBooks")
		assert.Contains(t, setters, "setTerm")
	})

	t.Run("Effects", func(t *testing.T) {
		require.NotEmpty(t, facts.Effects)
		effect := facts.Effects[0]
		assert.True(t, effect.HasDeps)
		assert.Equal(t, []string{"query"}, effect.Dependencies)
		assert.False(t, effect.EmptyDeps)
		assert.True(t, effect.HasCleanup)
	})

	t.Run("EventHandlers", func(t *testing.T) {
		var events []string
		for _, h := range facts.EventHandlers {
			if h.Event != "" {
				events = append(events, h.Event)
			}
		}
		assert.Contains(t, events, "onSubmit")
		assert.Contains(t, events, "onChange")
		assert.Contains(t, events, "onClick")
		assert.Contains(t, facts.EventTypes, "onClick")
	})

	t.Run("FormHandling", func(t *testing.T) {
		assert.True(t, facts.FormHandling.OnSubmit)
		assert.True(t, facts.FormHandling.PreventDefault)
		assert.GreaterOrEqual(t, facts.FormHandling.ControlledInputs, 1)
		assert.True(t, facts.FormHandling.Any())
	})

	t.Run("Routing", func(t *testing.T) {
		assert.True(t, facts.Routing.UsesRouter)
		require.NotEmpty(t, facts.Routing.Routes)
		assert.Equal(t, "/books/:id", facts.Routing.Routes[0].Path)
		assert.Contains(t, facts.Routing.Routes[0].View, "BookDetail")
		assert.GreaterOrEqual(t, facts.Routing.Links, 1)
	})

	t.Run("APICalls", func(t *testing.T) {
		require.NotEmpty(t, facts.APICalls)
		call := facts.APICalls[0]
		assert.Equal(t, "axios", call.Kind)
		assert.Equal(t, "GET", call.Method)
		assert.Equal(t, "/api/books", call.URL)
		assert.True(t, call.Awaited)
	})

	t.Run("AsyncFunctions", func(t *testing.T) {
		require.NotEmpty(t, facts.AsyncFunctions)
		var names []string
		for _, fn := range facts.AsyncFunctions {
			names = append(names, fn.Name)
		}
		assert.Contains(t, names, "load")
	})

	t.Run("JSXElements", func(t *testing.T) {
		assert.Contains(t, facts.JSXElements, "form")
		assert.Contains(t, facts.JSXElements, "BrowserRouter")
	})
}

func TestReactAnalyzer_Memoization(t *testing.T) {
	code := `import React, { useMemo, useCallback } from 'react';

const total = useMemo(() => items.reduce(sum), [items]);
const onPick = useCallback(() => select(id), [id]);
const Row = React.memo(function Row({ item }) { return <li>{item}</li>; });

class Legacy extends React.PureComponent {
  render() { return null; }
}
`
	facts := analyzeReact(t, code)

	assert.Equal(t, 1, facts.Memoization.UseMemo)
	assert.Equal(t, 1, facts.Memoization.UseCallback)
	assert.GreaterOrEqual(t, facts.Memoization.ReactMemo, 2)
	assert.True(t, facts.Memoization.Any())

	assert.Contains(t, facts.OptimizationPatterns, "use_memo")
	assert.Contains(t, facts.OptimizationPatterns, "react_memo")
	assert.Contains(t, facts.OptimizationPatterns, "pure_component")
}

func TestReactAnalyzer_StateLibs(t *testing.T) {
	code := `import { useSelector, useDispatch } from 'react-redux';
import { createContext, useContext } from 'react';

const ThemeContext = createContext('light');
const theme = useContext(ThemeContext);
const user = useSelector((s) => s.user);
`
	facts := analyzeReact(t, code)

	assert.Contains(t, facts.StateLibs, "redux")
	assert.Contains(t, facts.StateLibs, "context")
}

func TestReactAnalyzer_TypeScript(t *testing.T) {
	code := `interface BookProps {
  title: string;
  pages: number;
}

type Verdict = 'accepted' | 'rejected';

enum Level { Beginner, Advanced }
`
	facts := analyzeReact(t, code)

	assert.Equal(t, 1, facts.TypeScript.Interfaces)
	assert.Equal(t, 1, facts.TypeScript.TypeAliases)
	assert.Equal(t, 1, facts.TypeScript.Enums)
	assert.True(t, facts.TypeScript.Annotations)
}

func TestReactAnalyzer_EmptyCode(t *testing.T) {
	facts := analyzeReact(t, "const x = 1;\n")

	assert.Empty(t, facts.HookCalls)
	assert.Empty(t, facts.CustomHooks)
	assert.False(t, facts.Routing.Any())
	assert.False(t, facts.FormHandling.Any())
	assert.False(t, facts.Memoization.Any())
}
