package semantic

import (
	"regexp"
	"strings"

	"codejudge/internal/parser"
)

// ReactAnalyzer derives hook, component, state, effect, event, form,
// routing, API, JSX, and TypeScript facts from a JS/TS submission.
type ReactAnalyzer struct{}

func (a *ReactAnalyzer) Framework() Framework { return React }

var reactHookNames = []string{
	"useState", "useEffect", "useContext", "useReducer",
	"useCallback", "useMemo", "useRef", "useImperativeHandle",
	"useLayoutEffect", "useDebugValue", "useTransition",
	"useDeferredValue", "useId", "useSyncExternalStore",
}

var reactEventNames = []string{
	"onClick", "onChange", "onSubmit", "onMouseEnter", "onMouseLeave",
	"onMouseMove", "onMouseDown", "onMouseUp", "onKeyDown", "onKeyUp",
	"onKeyPress", "onFocus", "onBlur", "onInput", "onScroll",
	"onLoad", "onError", "onDragStart", "onDragEnd", "onDragOver",
	"onDrop", "onCopy", "onCut", "onPaste", "onDoubleClick",
	"onContextMenu", "onWheel", "onTouchStart", "onTouchEnd",
	"onTouchMove", "onAnimationStart", "onAnimationEnd", "onTransitionEnd",
}

var (
	reHookCall = regexp.MustCompile(`\b(` + strings.Join(reactHookNames, "|") + `)\s*\(([^)]*)\)`)

	reHookDeps = regexp.MustCompile(`(useEffect|useCallback|useMemo)\s*\([^,]+,\s*\[([^\]]*)\]\s*\)`)

	reCustomHookFunc  = regexp.MustCompile(`function\s+(use[A-Z]\w*)\s*\(([^)]*)\)`)
	reCustomHookConst = regexp.MustCompile(`const\s+(use[A-Z]\w*)\s*=\s*(?:async\s*)?\(([^)]*)\)\s*=>`)
	reInnerHookUse    = regexp.MustCompile(`\b(useState|useEffect|useContext|useReducer|useCallback|useMemo|useRef)\s*\(`)

	reFuncComponentCtx  = regexp.MustCompile(`(?s)(?:function\s+\w+|const\s+\w+\s*=\s*\([^)]*\)\s*=>)\s*\{[^}]*$`)
	reCustomHookCtx     = regexp.MustCompile(`(?:function\s+use[A-Z]|const\s+use[A-Z]\w+\s*=\s*\([^)]*\)\s*=>)`)
	reClassComponentCtx = regexp.MustCompile(`(?s)class\s+\w+\s+extends\s+(?:React\.)?Component\s*\{[^}]*$`)

	reReactMemo       = regexp.MustCompile(`React\.memo\s*\(`)
	reForwardRef      = regexp.MustCompile(`React\.forwardRef\s*\(`)
	reReactLazy       = regexp.MustCompile(`React\.lazy\s*\(`)
	rePureComponent   = regexp.MustCompile(`extends\s+(?:React\.)?PureComponent`)
	reUseMemoWithDeps = regexp.MustCompile(`useMemo\s*\([^,]+,\s*\[[^\]]*\]\s*\)`)
	reUseCallbackDeps = regexp.MustCompile(`useCallback\s*\([^,]+,\s*\[[^\]]*\]\s*\)`)

	reFuncProps    = regexp.MustCompile(`function\s+\w+\s*\((\{[^}]*\}|\w+)\)`)
	reArrowProps   = regexp.MustCompile(`const\s+\w+\s*=\s*\((\{[^}]*\}|\w+)\)\s*=>`)
	rePropTypes    = regexp.MustCompile(`(\w+)\.propTypes\s*=\s*\{`)
	reDefaultProps = regexp.MustCompile(`(\w+)\.defaultProps\s*=\s*\{`)

	reUseStateDecl   = regexp.MustCompile(`const\s*\[([^\]]+)\]\s*=\s*useState\s*\(([^)]*)\)`)
	reUseReducerDecl = regexp.MustCompile(`const\s*\[([^\]]+)\]\s*=\s*useReducer\s*\(([^)]*)\)`)
	reSetterCall     = regexp.MustCompile(`\b(set[A-Z]\w*)\s*\(([^)]*)\)`)

	reUseEffectCall = regexp.MustCompile(`useEffect\s*\(`)
	reEffectDeps    = regexp.MustCompile(`(?s)useEffect\s*\((.*?),\s*\[([^\]]*)\]\s*\)`)
	reEffectCleanup = regexp.MustCompile(`(?s)return\s*(?:\(\s*\)|function)?\s*(?:=>)?\s*\{`)

	reOptimizations = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`React\.memo\s*\(`), "react_memo"},
		{regexp.MustCompile(`useMemo\s*\(`), "use_memo"},
		{regexp.MustCompile(`useCallback\s*\(`), "use_callback"},
		{regexp.MustCompile(`extends\s+(?:React\.)?PureComponent`), "pure_component"},
		{regexp.MustCompile(`React\.lazy\s*\(`), "react_lazy"},
		{regexp.MustCompile(`Suspense`), "suspense"},
		{regexp.MustCompile(`startTransition\s*\(`), "start_transition"},
		{regexp.MustCompile(`useDeferredValue\s*\(`), "use_deferred_value"},
		{regexp.MustCompile(`useTransition\s*\(`), "use_transition"},
		{regexp.MustCompile(`key\s*=\s*\{`), "list_keys"},
		{regexp.MustCompile(`IntersectionObserver`), "intersection_observer"},
		{regexp.MustCompile(`requestAnimationFrame`), "raf_optimization"},
		{regexp.MustCompile(`debounce\s*\(`), "debounce"},
		{regexp.MustCompile(`throttle\s*\(`), "throttle"},
	}

	reInlineHandler = regexp.MustCompile(`on([A-Z]\w*)\s*=\s*\{([^}]+)\}`)
	reHandlerDef    = regexp.MustCompile(`(?:const\s+)?(handle\w+|on[A-Z]\w*)\s*=\s*(?:\(([^)]*)\)\s*=>|function[\s(])`)
	reCustomEvent   = regexp.MustCompile(`\bon([A-Z][a-zA-Z]+)\b`)

	reOnSubmit       = regexp.MustCompile(`onSubmit\s*=\s*\{`)
	rePreventDefault = regexp.MustCompile(`\.preventDefault\s*\(`)
	reControlled     = regexp.MustCompile(`(?s)value\s*=\s*\{([^}]+)\}.*?onChange\s*=\s*\{([^}]+)\}`)

	reFormValidations = []struct {
		re   *regexp.Regexp
		kind string
	}{
		{regexp.MustCompile(`required\s*[=\s]`), "required_field"},
		{regexp.MustCompile(`minLength\s*=`), "min_length"},
		{regexp.MustCompile(`maxLength\s*=`), "max_length"},
		{regexp.MustCompile(`validate\w*\s*\([^)]*\)`), "validation_function"},
		{regexp.MustCompile(`errors\.`), "errors_object"},
		{regexp.MustCompile(`isValid\s*=`), "is_valid_check"},
	}

	reRouterImport = regexp.MustCompile(`from\s+['"]react-router(?:-dom)?['"]|<BrowserRouter|<Routes|<Route\b`)
	reRouteTag     = regexp.MustCompile(`(?s)<Route\s+((?:[^<>]|<[^>]*>)*?)/?>`)
	reRoutePath    = regexp.MustCompile(`path\s*=\s*['"]([^'"]+)['"]`)
	reRouteElement = regexp.MustCompile(`element\s*=\s*\{([^}]+)\}`)
	reRouteComp    = regexp.MustCompile(`component\s*=\s*\{([^}]+)\}`)
	reRouterHooks  = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`useNavigate\s*\(`), "useNavigate"},
		{regexp.MustCompile(`useHistory\s*\(`), "useHistory"},
		{regexp.MustCompile(`useParams\s*\(`), "useParams"},
		{regexp.MustCompile(`useLocation\s*\(`), "useLocation"},
		{regexp.MustCompile(`history\.push\s*\(`), "history.push"},
		{regexp.MustCompile(`navigate\s*\(`), "navigate"},
	}
	reLinkTag = regexp.MustCompile(`<(?:Nav)?Link\s`)

	reFetchCall    = regexp.MustCompile(`fetch\s*\(([^)]*)\)`)
	reAxiosCall    = regexp.MustCompile(`axios\.(get|post|put|delete|patch|request)\s*\(([^)]*)\)`)
	reFetchMethod  = regexp.MustCompile(`method\s*:\s*['"]([^'"]+)['"]`)
	reQuotedURL    = regexp.MustCompile(`['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)
	reAsyncFunc    = regexp.MustCompile(`async\s+function\s+(\w+)|const\s+(\w+)\s*=\s*async`)
	reAwaitUse     = regexp.MustCompile(`\bawait\b`)
	reFetchUse     = regexp.MustCompile(`\bfetch\s*\(|\baxios\b`)
	reStateLibSpec = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`from\s+['"](?:redux|@reduxjs/toolkit|react-redux)['"]|useSelector\s*\(|useDispatch\s*\(|createStore\s*\(|configureStore\s*\(`), "redux"},
		{regexp.MustCompile(`from\s+['"]zustand['"]`), "zustand"},
		{regexp.MustCompile(`from\s+['"]mobx(?:-react)?['"]|makeObservable\s*\(|makeAutoObservable\s*\(`), "mobx"},
		{regexp.MustCompile(`from\s+['"]recoil['"]|useRecoilState\s*\(|useRecoilValue\s*\(`), "recoil"},
		{regexp.MustCompile(`from\s+['"]jotai['"]|useAtom\s*\(`), "jotai"},
		{regexp.MustCompile(`createContext\s*\(|useContext\s*\(|Context\.Provider`), "context"},
	}

	reJSXTag       = regexp.MustCompile(`<([A-Za-z][\w.]*)[\s/>]`)
	reJSXAttribute = regexp.MustCompile(`<([A-Za-z][\w.]*)((?:\s+[\w-]+(?:=(?:"[^"]*"|'[^']*'|\{[^}]*\}))?)*)\s*/?>`)
	reAttrName     = regexp.MustCompile(`\s([\w-]+)(?:=|[\s>])`)

	reTSInterface  = regexp.MustCompile(`\binterface\s+\w+`)
	reTSTypeAlias  = regexp.MustCompile(`\btype\s+\w+\s*=`)
	reTSEnum       = regexp.MustCompile(`\benum\s+\w+`)
	reTSGeneric    = regexp.MustCompile(`<[A-Z][a-zA-Z]*>`)
	reTSAnnotation = regexp.MustCompile(`:\s*(?:string|number|boolean|void|any|unknown|never)\b`)
)

func (a *ReactAnalyzer) Analyze(code string, parsed *parser.ParseResult) *Profile {
	facts := &ReactFacts{
		HookCalls:        extractHookCalls(code),
		HookDependencies: extractHookDependencies(code),
		CustomHooks:      extractCustomHooks(code),

		ComponentTypes: extractComponentTypes(code, parsed),
		ComponentProps: extractComponentProps(code),

		StateDeclarations: extractStateDeclarations(code),
		StateUpdates:      extractStateUpdates(code),
		StateLibs:         extractStateLibs(code),

		Effects: extractEffects(code),

		Memoization:          extractMemoization(code),
		OptimizationPatterns: extractOptimizations(code),

		EventHandlers: extractEventHandlers(code),
		EventTypes:    extractEventTypes(code),

		FormHandling:   extractFormHandling(code),
		FormValidation: extractFormValidation(code),

		Routing: extractRouting(code),

		APICalls:       extractAPICalls(code),
		AsyncFunctions: extractAsyncFunctions(code),

		JSXElements:   extractJSXElements(code),
		JSXAttributes: extractJSXAttributes(code),

		TypeScript: extractTypeScriptFacts(code),
	}
	return &Profile{Framework: React, React: facts}
}

func extractHookCalls(code string) []HookCall {
	var calls []HookCall
	for _, m := range reHookCall.FindAllStringSubmatchIndex(code, -1) {
		hook := code[m[2]:m[3]]
		params := code[m[4]:m[5]]
		calls = append(calls, HookCall{
			Hook:     hook,
			Params:   strings.TrimSpace(params),
			Line:     lineOf(code, m[0]),
			Context:  hookContext(code, m[0]),
			Analysis: analyzeHookParams(hook, params),
		})
	}
	return calls
}

func analyzeHookParams(hook, params string) HookParams {
	var analysis HookParams
	switch hook {
	case "useState":
		analysis.InitialValue = strings.TrimSpace(params)
		analysis.FuncInitializer = strings.Contains(params, "() =>") || strings.Contains(params, "function")
	case "useEffect", "useCallback", "useMemo":
		open := strings.Index(params, "[")
		end := strings.Index(params, "]")
		if open >= 0 && end > open {
			analysis.HasDependencies = true
			analysis.Dependencies = splitList(params[open+1 : end])
			analysis.EmptyDeps = len(analysis.Dependencies) == 0
		}
	}
	return analysis
}

// hookContext classifies where a hook call sits: inside a function
// component, a custom hook, or a class component body.
func hookContext(code string, pos int) string {
	before := code[:pos]
	if reCustomHookCtx.MatchString(before) {
		return "custom_hook"
	}
	if reFuncComponentCtx.MatchString(before) {
		return "function_component"
	}
	if reClassComponentCtx.MatchString(before) {
		return "class_component"
	}
	return "unknown"
}

func extractHookDependencies(code string) []DependencyList {
	var deps []DependencyList
	for _, m := range reHookDeps.FindAllStringSubmatchIndex(code, -1) {
		deps = append(deps, DependencyList{
			Hook:         code[m[2]:m[3]],
			Dependencies: splitList(code[m[4]:m[5]]),
			Line:         lineOf(code, m[0]),
		})
	}
	return deps
}

func extractCustomHooks(code string) []CustomHook {
	var hooks []CustomHook
	for _, re := range []*regexp.Regexp{reCustomHookFunc, reCustomHookConst} {
		for _, m := range re.FindAllStringSubmatchIndex(code, -1) {
			body := balancedBody(code, m[1])
			hooks = append(hooks, CustomHook{
				Name:           code[m[2]:m[3]],
				Params:         splitList(code[m[4]:m[5]]),
				UsesReactHooks: reInnerHookUse.MatchString(body),
				ReturnsValue:   strings.Contains(body, "return"),
				Line:           lineOf(code, m[0]),
			})
		}
	}
	return hooks
}

// balancedBody returns the brace-delimited block starting at or after
// pos, tracked by brace depth.
func balancedBody(code string, pos int) string {
	depth := 0
	start := -1
	for i := pos; i < len(code); i++ {
		switch code[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start >= 0 {
				return code[start : i+1]
			}
		}
	}
	if start >= 0 {
		return code[start:]
	}
	return ""
}

func extractComponentTypes(code string, parsed *parser.ParseResult) ComponentCounts {
	var counts ComponentCounts
	for _, fn := range parsed.Functions {
		if fn.Name != "" && (fn.Name[0] >= 'A' && fn.Name[0] <= 'Z' || strings.Contains(fn.Name, "Component")) {
			counts.Function++
		}
	}
	for _, cls := range parsed.Classes {
		if hasBase(cls, "Component") || hasBase(cls, "PureComponent") {
			counts.Class++
		}
	}
	counts.Memo = len(reReactMemo.FindAllString(code, -1))
	counts.ForwardRef = len(reForwardRef.FindAllString(code, -1))
	counts.Lazy = len(reReactLazy.FindAllString(code, -1))
	return counts
}

func extractComponentProps(code string) []Fact {
	var props []Fact
	kinds := []struct {
		re   *regexp.Regexp
		kind string
	}{
		{reFuncProps, "function_component"},
		{reArrowProps, "arrow_function"},
		{rePropTypes, "prop_types"},
		{reDefaultProps, "default_props"},
	}
	for _, k := range kinds {
		for _, m := range k.re.FindAllStringSubmatchIndex(code, -1) {
			props = append(props, Fact{
				Name:  k.kind,
				Value: strings.TrimSpace(code[m[2]:m[3]]),
				Line:  lineOf(code, m[0]),
			})
		}
	}
	return props
}

func extractStateDeclarations(code string) []StateDeclaration {
	var decls []StateDeclaration
	for _, re := range []*regexp.Regexp{reUseStateDecl, reUseReducerDecl} {
		for _, m := range re.FindAllStringSubmatchIndex(code, -1) {
			vars := splitList(code[m[2]:m[3]])
			decl := StateDeclaration{
				Initial: strings.TrimSpace(code[m[4]:m[5]]),
				Line:    lineOf(code, m[0]),
			}
			if len(vars) > 0 {
				decl.Variable = vars[0]
			}
			if len(vars) > 1 {
				decl.Setter = vars[1]
			}
			decls = append(decls, decl)
		}
	}
	return decls
}

func extractStateUpdates(code string) []StateUpdate {
	var updates []StateUpdate
	for _, m := range reSetterCall.FindAllStringSubmatchIndex(code, -1) {
		arg := code[m[4]:m[5]]
		updates = append(updates, StateUpdate{
			Setter:     code[m[2]:m[3]],
			Argument:   strings.TrimSpace(arg),
			Functional: strings.Contains(arg, "=>"),
			Line:       lineOf(code, m[0]),
		})
	}
	return updates
}

func extractStateLibs(code string) []string {
	var libs []string
	for _, spec := range reStateLibSpec {
		if spec.re.MatchString(code) {
			libs = append(libs, spec.name)
		}
	}
	return libs
}

func extractEffects(code string) []EffectFact {
	var effects []EffectFact
	withDeps := make(map[int]bool)
	for _, m := range reEffectDeps.FindAllStringSubmatchIndex(code, -1) {
		withDeps[m[0]] = true
		body := code[m[2]:m[3]]
		deps := splitList(code[m[4]:m[5]])
		effects = append(effects, EffectFact{
			Dependencies: deps,
			HasDeps:      true,
			EmptyDeps:    len(deps) == 0,
			HasCleanup:   reEffectCleanup.MatchString(body),
			Line:         lineOf(code, m[0]),
		})
	}
	for _, m := range reUseEffectCall.FindAllStringIndex(code, -1) {
		if withDeps[m[0]] {
			continue
		}
		body := balancedBody(code, m[1])
		effects = append(effects, EffectFact{
			HasCleanup: reEffectCleanup.MatchString(body),
			Line:       lineOf(code, m[0]),
		})
	}
	return effects
}

func extractMemoization(code string) MemoizationUsage {
	return MemoizationUsage{
		UseMemo:     len(reUseMemoWithDeps.FindAllString(code, -1)),
		UseCallback: len(reUseCallbackDeps.FindAllString(code, -1)),
		ReactMemo:   len(reReactMemo.FindAllString(code, -1)) + len(rePureComponent.FindAllString(code, -1)),
	}
}

func extractOptimizations(code string) []string {
	var found []string
	for _, opt := range reOptimizations {
		if opt.re.MatchString(code) {
			found = append(found, opt.name)
		}
	}
	return found
}

func extractEventHandlers(code string) []EventHandlerFact {
	var handlers []EventHandlerFact
	for _, m := range reInlineHandler.FindAllStringSubmatchIndex(code, -1) {
		handlers = append(handlers, EventHandlerFact{
			Name:  strings.TrimSpace(code[m[4]:m[5]]),
			Event: "on" + code[m[2]:m[3]],
			Line:  lineOf(code, m[0]),
		})
	}
	for _, m := range reHandlerDef.FindAllStringSubmatchIndex(code, -1) {
		handlers = append(handlers, EventHandlerFact{
			Name: code[m[2]:m[3]],
			Line: lineOf(code, m[0]),
		})
	}
	return handlers
}

func extractEventTypes(code string) []string {
	seen := make(map[string]bool)
	var types []string
	for _, ev := range reactEventNames {
		if strings.Contains(code, ev) {
			seen[ev] = true
			types = append(types, ev)
		}
	}
	for _, m := range reCustomEvent.FindAllString(code, -1) {
		if !seen[m] {
			seen[m] = true
			types = append(types, m)
		}
	}
	return types
}

func extractFormHandling(code string) FormHandling {
	return FormHandling{
		OnSubmit:         reOnSubmit.MatchString(code),
		PreventDefault:   rePreventDefault.MatchString(code),
		ControlledInputs: len(reControlled.FindAllString(code, -1)),
	}
}

func extractFormValidation(code string) []CheckFact {
	var checks []CheckFact
	for _, spec := range reFormValidations {
		for _, m := range spec.re.FindAllStringIndex(code, -1) {
			checks = append(checks, CheckFact{
				Kind:  spec.kind,
				Match: code[m[0]:m[1]],
				Line:  lineOf(code, m[0]),
			})
		}
	}
	return checks
}

func extractRouting(code string) RoutingUsage {
	routing := RoutingUsage{
		UsesRouter: reRouterImport.MatchString(code),
		Links:      len(reLinkTag.FindAllString(code, -1)),
	}
	for _, m := range reRouteTag.FindAllStringSubmatchIndex(code, -1) {
		attrs := code[m[2]:m[3]]
		route := URLPatternFact{Kind: "route", Line: lineOf(code, m[0])}
		if pm := reRoutePath.FindStringSubmatch(attrs); pm != nil {
			route.Path = pm[1]
		}
		if em := reRouteElement.FindStringSubmatch(attrs); em != nil {
			route.View = strings.TrimSpace(em[1])
		} else if cm := reRouteComp.FindStringSubmatch(attrs); cm != nil {
			route.View = strings.TrimSpace(cm[1])
		}
		routing.Routes = append(routing.Routes, route)
	}
	for _, h := range reRouterHooks {
		if h.re.MatchString(code) {
			routing.RouterHooks = append(routing.RouterHooks, h.name)
		}
	}
	return routing
}

func extractAPICalls(code string) []APICallFact {
	var calls []APICallFact
	for _, m := range reFetchCall.FindAllStringSubmatchIndex(code, -1) {
		params := code[m[2]:m[3]]
		call := APICallFact{
			Kind:    "fetch",
			Method:  "GET",
			Awaited: isAwaited(code, m[0]),
			Line:    lineOf(code, m[0]),
		}
		if um := reQuotedURL.FindStringSubmatch(params); um != nil {
			call.URL = um[1]
		}
		if mm := reFetchMethod.FindStringSubmatch(params); mm != nil {
			call.Method = strings.ToUpper(mm[1])
		}
		calls = append(calls, call)
	}
	for _, m := range reAxiosCall.FindAllStringSubmatchIndex(code, -1) {
		params := code[m[4]:m[5]]
		call := APICallFact{
			Kind:    "axios",
			Method:  strings.ToUpper(code[m[2]:m[3]]),
			Awaited: isAwaited(code, m[0]),
			Line:    lineOf(code, m[0]),
		}
		if um := reQuotedURL.FindStringSubmatch(params); um != nil {
			call.URL = um[1]
		}
		calls = append(calls, call)
	}
	return calls
}

// isAwaited reports whether the token preceding pos is `await`.
func isAwaited(code string, pos int) bool {
	before := strings.TrimRight(code[:pos], " \t")
	return strings.HasSuffix(before, "await")
}

func extractAsyncFunctions(code string) []AsyncFact {
	var fns []AsyncFact
	for _, m := range reAsyncFunc.FindAllStringSubmatchIndex(code, -1) {
		name := ""
		if m[2] >= 0 {
			name = code[m[2]:m[3]]
		} else if m[4] >= 0 {
			name = code[m[4]:m[5]]
		}
		body := balancedBody(code, m[1])
		fns = append(fns, AsyncFact{
			Name:      name,
			UsesFetch: reFetchUse.MatchString(body),
			UsesAwait: reAwaitUse.MatchString(body),
			Line:      lineOf(code, m[0]),
		})
	}
	return fns
}

func extractJSXElements(code string) []string {
	seen := make(map[string]bool)
	var elements []string
	for _, m := range reJSXTag.FindAllStringSubmatch(code, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			elements = append(elements, name)
		}
	}
	return elements
}

func extractJSXAttributes(code string) []JSXAttributeFact {
	var attrs []JSXAttributeFact
	for _, m := range reJSXAttribute.FindAllStringSubmatchIndex(code, -1) {
		element := code[m[2]:m[3]]
		attrText := code[m[4]:m[5]]
		for _, am := range reAttrName.FindAllStringSubmatch(attrText, -1) {
			name := am[1]
			attrs = append(attrs, JSXAttributeFact{
				Element:  element,
				Name:     name,
				Category: attributeCategory(name),
				Line:     lineOf(code, m[0]),
			})
		}
	}
	return attrs
}

func attributeCategory(name string) string {
	switch {
	case len(name) > 2 && strings.HasPrefix(name, "on") && name[2] >= 'A' && name[2] <= 'Z':
		return "event"
	case name == "style" || name == "className":
		return "style"
	case strings.HasPrefix(name, "data-"):
		return "data"
	case strings.HasPrefix(name, "aria-"):
		return "aria"
	case name == strings.ToLower(name):
		return "dom"
	default:
		return "custom"
	}
}

func extractTypeScriptFacts(code string) TypeScriptFacts {
	return TypeScriptFacts{
		Interfaces:  len(reTSInterface.FindAllString(code, -1)),
		TypeAliases: len(reTSTypeAlias.FindAllString(code, -1)),
		Enums:       len(reTSEnum.FindAllString(code, -1)),
		Generics:    reTSGeneric.MatchString(code),
		Annotations: reTSAnnotation.MatchString(code),
	}
}

// splitList splits a comma-separated list and trims blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
