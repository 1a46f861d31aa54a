package validator

import (
	"fmt"
	"regexp"
	"strings"

	"codejudge/internal/semantic"
	"codejudge/internal/spec"
)

var (
	reTernary        = regexp.MustCompile(`\?\s*[^:]+\s*:\s*`)
	reLogicalAnd     = regexp.MustCompile(`\{\s*\w+\s*&&\s*`)
	reIfReturn       = regexp.MustCompile(`(?s)if\s*\([^)]+\)\s*\{[^}]*return`)
	reSwitchStmt     = regexp.MustCompile(`switch\s*\([^)]+\)`)
	reDefaultProps   = regexp.MustCompile(`(?s)(\w+)\.defaultProps\s*=\s*\{([^}]+)\}`)
	reNestedRoute    = regexp.MustCompile(`(?s)<Route[^>]*>.*?<Route`)
	reBareIdentifier = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
	reRouteParam     = regexp.MustCompile(`:(\w+)`)
)

func reactPattern(p spec.Pattern, facts *semantic.ReactFacts, code string) patternResult {
	switch p.Kind {
	case "hook_call":
		return reactHookCall(p, facts)
	case "component_props":
		return reactComponentProps(facts)
	case "state_management":
		return reactStateManagement(p, facts)
	case "effect_usage":
		return reactEffectUsage(facts)
	case "event_handler":
		return reactEventHandler(p, facts)
	case "form_handling":
		return reactFormHandling(p, facts, code)
	case "routing":
		return reactRouting(p, facts, code)
	case "api_call":
		return reactAPICall(facts)
	case "memoization":
		return reactMemoization(p, facts)
	case "custom_hook":
		return reactCustomHook(p, facts)
	case "context_usage":
		return reactContextUsage(p, facts, code)
	case "ref_usage":
		return reactRefUsage(p, facts)
	case "conditional_rendering":
		return reactConditionalRendering(p.String("conditional_type"), code)
	case "ternary_operator":
		return reactConditionalRendering("ternary", code)
	case "default_props":
		return reactDefaultProps(p, code)
	case "prop_types":
		return reactPropTypes(facts)
	default:
		return genericPatternKind(p, code)
	}
}

func reactHookCall(p spec.Pattern, facts *semantic.ReactFacts) patternResult {
	hook := p.String("hook")
	minCalls := p.Int("min_calls")
	if minCalls == 0 {
		minCalls = 1
	}

	count := 0
	for _, h := range facts.HookCalls {
		if h.Hook == hook {
			count++
		}
	}
	if count == 0 {
		return fail(fmt.Sprintf("%s not called (required: %d)", hook, minCalls))
	}
	if count >= minCalls {
		return pass(fmt.Sprintf("%s called %d times (required: %d)", hook, count, minCalls))
	}
	return fail(fmt.Sprintf("%s called only %d times (required: %d)", hook, count, minCalls))
}

func reactComponentProps(facts *semantic.ReactFacts) patternResult {
	if len(facts.ComponentProps) == 0 {
		return fail("No component props patterns found")
	}
	seen := make(map[string]bool)
	var kinds []string
	for _, prop := range facts.ComponentProps {
		if !seen[prop.Name] {
			seen[prop.Name] = true
			kinds = append(kinds, prop.Name)
		}
	}
	return pass("Component props found: " + strings.Join(kinds, ", "))
}

func reactStateManagement(p spec.Pattern, facts *semantic.ReactFacts) patternResult {
	countHook := func(hook string) int {
		n := 0
		for _, h := range facts.HookCalls {
			if h.Hook == hook {
				n++
			}
		}
		return n
	}

	switch stateType := p.String("state_type"); stateType {
	case "", "any":
		var kinds []string
		for _, hook := range []string{"useState", "useReducer"} {
			if countHook(hook) > 0 {
				kinds = append(kinds, hook)
			}
		}
		if len(facts.StateLibs) > 0 {
			kinds = append(kinds, facts.StateLibs...)
		}
		if len(kinds) > 0 {
			return pass("State management: " + strings.Join(kinds, ", "))
		}
		return fail("No state management found")
	case "useState":
		if n := len(facts.StateDeclarations); n > 0 {
			return pass(fmt.Sprintf("useState used (%d declarations)", n))
		}
		return fail("useState not used")
	case "useReducer":
		if n := countHook("useReducer"); n > 0 {
			return pass(fmt.Sprintf("useReducer used (%d declarations)", n))
		}
		return fail("useReducer not used")
	default:
		return fail("Unknown state management type: " + stateType)
	}
}

func reactEffectUsage(facts *semantic.ReactFacts) patternResult {
	if len(facts.Effects) == 0 {
		return fail("useEffect not used")
	}
	emptyDeps := 0
	for _, e := range facts.Effects {
		if e.EmptyDeps {
			emptyDeps++
		}
	}
	return pass(fmt.Sprintf("useEffect used %d times (%d with empty deps)", len(facts.Effects), emptyDeps))
}

func reactEventHandler(p spec.Pattern, facts *semantic.ReactFacts) patternResult {
	if len(facts.EventHandlers) == 0 {
		return fail("No event handlers found")
	}

	eventType := p.String("event_type")
	if eventType == "" {
		return pass("Event handlers found")
	}

	var matching []semantic.EventHandlerFact
	for _, h := range facts.EventHandlers {
		if h.Event == eventType {
			matching = append(matching, h)
		}
	}
	if len(matching) == 0 {
		return fail(fmt.Sprintf("Event handler '%s' not found", eventType))
	}

	switch style := p.String("handler_style"); style {
	case "", "any":
		return pass(fmt.Sprintf("Event handler '%s' found", eventType))
	case "inline":
		for _, h := range matching {
			if !reBareIdentifier.MatchString(h.Name) {
				return pass(fmt.Sprintf("Inline %s handler found", eventType))
			}
		}
		return fail(fmt.Sprintf("%s not using inline handler", eventType))
	case "function_reference":
		for _, h := range matching {
			if reBareIdentifier.MatchString(h.Name) {
				return pass(fmt.Sprintf("Function reference %s handler found", eventType))
			}
		}
		return fail(fmt.Sprintf("%s not using function reference", eventType))
	case "arrow":
		for _, h := range matching {
			if strings.Contains(h.Name, "=>") {
				return pass(fmt.Sprintf("Arrow function %s handler found", eventType))
			}
		}
		return fail(fmt.Sprintf("%s not using arrow function", eventType))
	default:
		return fail("Unknown handler style: " + style)
	}
}

func reactFormHandling(p spec.Pattern, facts *semantic.ReactFacts, code string) patternResult {
	fh := facts.FormHandling
	hasRef := strings.Contains(code, "ref={")

	switch formType := p.String("form_type"); formType {
	case "", "any":
		if fh.Any() || hasRef {
			var parts []string
			if fh.ControlledInputs > 0 {
				parts = append(parts, fmt.Sprintf("%d controlled", fh.ControlledInputs))
			}
			if hasRef {
				parts = append(parts, "uncontrolled via refs")
			}
			if fh.OnSubmit {
				parts = append(parts, "onSubmit handler")
			}
			if fh.PreventDefault {
				parts = append(parts, "preventDefault")
			}
			return pass("Form handling: " + strings.Join(parts, ", "))
		}
		return fail("No form handling found")
	case "controlled":
		if fh.ControlledInputs > 0 {
			return pass(fmt.Sprintf("Controlled components found (%d)", fh.ControlledInputs))
		}
		return fail("No controlled components found")
	case "uncontrolled":
		if hasRef {
			return pass("Uncontrolled components found")
		}
		return fail("No uncontrolled components found")
	case "formik", "react-hook-form", "final-form", "redux-form":
		if strings.Contains(code, formType) {
			return pass(formType + " library detected")
		}
		return fail(formType + " library not found")
	default:
		return fail("Unknown form type: " + formType)
	}
}

func reactRouting(p spec.Pattern, facts *semantic.ReactFacts, code string) patternResult {
	routing := facts.Routing
	if !routing.UsesRouter {
		return fail("No routing library detected")
	}

	routeParams := func() []string {
		seen := make(map[string]bool)
		var params []string
		for _, r := range routing.Routes {
			for _, m := range reRouteParam.FindAllStringSubmatch(r.Path, -1) {
				if !seen[m[1]] {
					seen[m[1]] = true
					params = append(params, m[1])
				}
			}
		}
		return params
	}

	switch routingType := p.String("routing_type"); routingType {
	case "", "any":
		parts := []string{"Library: react-router"}
		if len(routing.Routes) > 0 {
			parts = append(parts, fmt.Sprintf("%d routes", len(routing.Routes)))
		}
		if len(routing.RouterHooks) > 0 {
			parts = append(parts, "Navigation: "+strings.Join(routing.RouterHooks, ", "))
		}
		if params := routeParams(); len(params) > 0 {
			parts = append(parts, "Parameters: "+strings.Join(params, ", "))
		}
		return pass("Routing: " + strings.Join(parts, ", "))

	case "react-router":
		return pass("React Router detected")

	case "route_definition":
		if required := p.String("path"); required != "" {
			for _, r := range routing.Routes {
				if strings.Contains(r.Path, required) {
					return pass(fmt.Sprintf("Route '%s' found", required))
				}
			}
			return fail(fmt.Sprintf("Route '%s' not found", required))
		}
		if len(routing.Routes) > 0 {
			paths := make([]string, 0, len(routing.Routes))
			for _, r := range routing.Routes {
				paths = append(paths, r.Path)
			}
			return pass("Routes defined: " + strings.Join(paths, ", "))
		}
		return fail("No routes defined")

	case "navigation":
		if required := p.String("method"); required != "" {
			if containsString(routing.RouterHooks, required) {
				return pass(fmt.Sprintf("Navigation method '%s' found", required))
			}
			return fail(fmt.Sprintf("Navigation method '%s' not found", required))
		}
		if len(routing.RouterHooks) > 0 {
			return pass("Navigation methods: " + strings.Join(routing.RouterHooks, ", "))
		}
		return fail("No navigation methods found")

	case "route_params":
		params := routeParams()
		if required := p.String("param"); required != "" {
			if containsString(params, required) {
				return pass(fmt.Sprintf("Route parameter ':%s' found", required))
			}
			return fail(fmt.Sprintf("Route parameter ':%s' not found", required))
		}
		if len(params) > 0 {
			return pass("Route parameters: " + strings.Join(params, ", "))
		}
		return fail("No route parameters found")

	case "nested_routes":
		if reNestedRoute.MatchString(code) {
			return pass("Nested routes detected")
		}
		return fail("No nested routes found")

	case "link_component":
		if routing.Links > 0 {
			return pass("Link component used")
		}
		return fail("Link component not found")

	default:
		return fail("Unknown routing type: " + routingType)
	}
}

func reactAPICall(facts *semantic.ReactFacts) patternResult {
	if len(facts.APICalls) == 0 {
		return fail("No API calls found")
	}
	seen := make(map[string]bool)
	var kinds []string
	for _, c := range facts.APICalls {
		if !seen[c.Kind] {
			seen[c.Kind] = true
			kinds = append(kinds, c.Kind)
		}
	}
	return pass("API calls: " + strings.Join(kinds, ", "))
}

func reactMemoization(p spec.Pattern, facts *semantic.ReactFacts) patternResult {
	memo := facts.Memoization
	pureComponent := containsString(facts.OptimizationPatterns, "pure_component")

	switch memoType := p.String("memo_type"); memoType {
	case "", "any":
		if memo.Any() || pureComponent {
			var parts []string
			if memo.ReactMemo > 0 {
				parts = append(parts, fmt.Sprintf("%d React.memo", memo.ReactMemo))
			}
			if memo.UseMemo > 0 {
				parts = append(parts, fmt.Sprintf("%d useMemo", memo.UseMemo))
			}
			if memo.UseCallback > 0 {
				parts = append(parts, fmt.Sprintf("%d useCallback", memo.UseCallback))
			}
			if pureComponent {
				parts = append(parts, "PureComponent")
			}
			return pass("Memoization: " + strings.Join(parts, ", "))
		}
		return fail("No memoization found")
	case "react_memo":
		if memo.ReactMemo > 0 {
			return pass(fmt.Sprintf("React.memo used (%d components)", memo.ReactMemo))
		}
		return fail("React.memo not used")
	case "use_memo":
		if memo.UseMemo > 0 {
			return pass(fmt.Sprintf("useMemo used (%d instances)", memo.UseMemo))
		}
		return fail("useMemo not used")
	case "use_callback":
		if memo.UseCallback > 0 {
			return pass(fmt.Sprintf("useCallback used (%d instances)", memo.UseCallback))
		}
		return fail("useCallback not used")
	case "pure_component":
		if pureComponent {
			return pass("PureComponent used")
		}
		return fail("PureComponent not used")
	default:
		return fail("Unknown memoization type: " + memoType)
	}
}

func reactCustomHook(p spec.Pattern, facts *semantic.ReactFacts) patternResult {
	if len(facts.CustomHooks) == 0 {
		return fail("No custom hooks found")
	}

	name := p.String("hook_name")
	if name == "" {
		var names []string
		usesReact := 0
		for _, h := range facts.CustomHooks {
			names = append(names, h.Name)
			if h.UsesReactHooks {
				usesReact++
			}
		}
		msg := fmt.Sprintf("%d custom hooks: %s", len(facts.CustomHooks), strings.Join(names, ", "))
		if usesReact > 0 {
			msg += fmt.Sprintf("; %d use React hooks", usesReact)
		}
		return pass(msg)
	}

	var hook *semantic.CustomHook
	for i := range facts.CustomHooks {
		if facts.CustomHooks[i].Name == name {
			hook = &facts.CustomHooks[i]
			break
		}
	}
	if hook == nil {
		return fail(fmt.Sprintf("Custom hook '%s' not found", name))
	}
	if p.Bool("must_use_react_hooks") && !hook.UsesReactHooks {
		return fail(fmt.Sprintf("Custom hook '%s' doesn't use React hooks", name))
	}
	if p.Bool("must_return") && !hook.ReturnsValue {
		return fail(fmt.Sprintf("Custom hook '%s' doesn't return a value", name))
	}

	var traits []string
	if hook.UsesReactHooks {
		traits = append(traits, "uses React hooks")
	}
	if hook.ReturnsValue {
		traits = append(traits, "returns value")
	}
	if len(hook.Params) > 0 {
		traits = append(traits, "params: "+strings.Join(hook.Params, ", "))
	}
	return pass(fmt.Sprintf("Custom hook '%s' found (%s)", name, strings.Join(traits, ", ")))
}

func reactContextUsage(p spec.Pattern, facts *semantic.ReactFacts, code string) patternResult {
	createCount := strings.Count(code, "createContext(")
	useContexts := hookCallsIn(facts, "useContext")

	if createCount == 0 && len(useContexts) == 0 {
		return fail("No Context usage found")
	}

	switch contextType := p.String("context_type"); contextType {
	case "", "any":
		var parts []string
		if createCount > 0 {
			parts = append(parts, fmt.Sprintf("%d createContext calls", createCount))
		}
		if len(useContexts) > 0 {
			parts = append(parts, fmt.Sprintf("%d useContext calls", len(useContexts)))
		}
		return pass("Context usage: " + strings.Join(parts, ", "))
	case "create_context":
		if createCount > 0 {
			return pass(fmt.Sprintf("createContext used (%d instances)", createCount))
		}
		return fail("createContext not found")
	case "use_context":
		if len(useContexts) > 0 {
			refs := make([]string, 0, len(useContexts))
			for _, h := range useContexts {
				refs = append(refs, strings.TrimSpace(h.Params))
			}
			return pass("useContext used: " + strings.Join(refs, ", "))
		}
		return fail("useContext not found")
	case "provider":
		if strings.Contains(code, ".Provider") || createCount > 0 {
			return pass("Context provider present")
		}
		return fail("Context provider not detected")
	case "consumer":
		if len(useContexts) > 0 || strings.Contains(code, ".Consumer") {
			return pass(fmt.Sprintf("Context consumer pattern found (%d)", len(useContexts)))
		}
		return fail("Context consumer pattern not found")
	default:
		return fail("Unknown context type: " + contextType)
	}
}

func reactRefUsage(p spec.Pattern, facts *semantic.ReactFacts) patternResult {
	useRefs := hookCallsIn(facts, "useRef")
	imperative := hookCallsIn(facts, "useImperativeHandle")

	nullInit := func(params string) bool {
		trimmed := strings.TrimSpace(params)
		return trimmed == "" || trimmed == "null" || trimmed == "(null)"
	}

	switch refType := p.String("ref_type"); refType {
	case "", "any":
		if len(useRefs) > 0 || len(imperative) > 0 {
			var parts []string
			if len(useRefs) > 0 {
				parts = append(parts, fmt.Sprintf("%d useRef", len(useRefs)))
			}
			if len(imperative) > 0 {
				parts = append(parts, fmt.Sprintf("%d useImperativeHandle", len(imperative)))
			}
			return pass("Ref usage: " + strings.Join(parts, ", "))
		}
		return fail("No ref usage found")
	case "use_ref":
		if len(useRefs) > 0 {
			return pass(fmt.Sprintf("useRef used (%d instances)", len(useRefs)))
		}
		return fail("useRef not found")
	case "imperative_handle":
		if len(imperative) > 0 {
			return pass(fmt.Sprintf("useImperativeHandle used (%d instances)", len(imperative)))
		}
		return fail("useImperativeHandle not found")
	case "forward_ref":
		if n := facts.ComponentTypes.ForwardRef; n > 0 {
			return pass(fmt.Sprintf("forwardRef used (%d components)", n))
		}
		return fail("forwardRef not found")
	case "callback_ref":
		if len(useRefs) > 0 {
			return pass("Ref usage detected (possible callback ref)")
		}
		return fail("Callback ref not detected")
	case "dom_ref":
		if len(useRefs) == 0 {
			return fail("DOM ref not found")
		}
		count := 0
		for _, h := range useRefs {
			if nullInit(h.Params) {
				count++
			}
		}
		if count > 0 {
			return pass(fmt.Sprintf("DOM ref found (%d instances)", count))
		}
		return pass(fmt.Sprintf("useRef found (%d instances, possibly DOM refs)", len(useRefs)))
	case "mutable_ref":
		if len(useRefs) == 0 {
			return fail("No ref usage found")
		}
		for _, h := range useRefs {
			if !nullInit(h.Params) {
				count := 0
				for _, r := range useRefs {
					if !nullInit(r.Params) {
						count++
					}
				}
				return pass(fmt.Sprintf("Mutable ref found (%d instances)", count))
			}
		}
		return fail("Mutable ref not found (all refs initialized with null)")
	default:
		return fail("Unknown ref type: " + refType)
	}
}

func reactConditionalRendering(conditionalType, code string) patternResult {
	ternary := len(reTernary.FindAllString(code, -1))
	logicalAnd := len(reLogicalAnd.FindAllString(code, -1))
	ifReturn := len(reIfReturn.FindAllString(code, -1))
	switches := len(reSwitchStmt.FindAllString(code, -1))

	switch conditionalType {
	case "", "any":
		total := ternary + logicalAnd + ifReturn + switches
		if total == 0 {
			return fail("No conditional rendering found")
		}
		var parts []string
		if ternary > 0 {
			parts = append(parts, fmt.Sprintf("%d ternary", ternary))
		}
		if logicalAnd > 0 {
			parts = append(parts, fmt.Sprintf("%d && conditional", logicalAnd))
		}
		if ifReturn > 0 {
			parts = append(parts, fmt.Sprintf("%d if statement", ifReturn))
		}
		if switches > 0 {
			parts = append(parts, fmt.Sprintf("%d switch", switches))
		}
		return pass("Conditional rendering: " + strings.Join(parts, ", "))
	case "ternary":
		if ternary > 0 {
			return pass(fmt.Sprintf("Ternary operator used (%d instances)", ternary))
		}
		return fail("Ternary operator not found")
	case "logical_and":
		if logicalAnd > 0 {
			return pass(fmt.Sprintf("Logical && used (%d instances)", logicalAnd))
		}
		return fail("Logical && not found")
	case "if_statement":
		if ifReturn > 0 {
			return pass(fmt.Sprintf("If statement used (%d instances)", ifReturn))
		}
		return fail("If statement not found")
	default:
		return fail("Unknown conditional type: " + conditionalType)
	}
}

func reactDefaultProps(p spec.Pattern, code string) patternResult {
	m := reDefaultProps.FindStringSubmatch(code)
	if m == nil {
		if requiredFor := p.String("required_for"); requiredFor != "" {
			return fail("defaultProps not defined for " + requiredFor)
		}
		return fail("defaultProps not found")
	}

	count := 0
	for _, part := range strings.Split(m[2], ",") {
		if strings.Contains(part, ":") {
			count++
		}
	}
	return pass(fmt.Sprintf("defaultProps defined for %s (%d props)", m[1], count))
}

func reactPropTypes(facts *semantic.ReactFacts) patternResult {
	count := 0
	for _, prop := range facts.ComponentProps {
		if prop.Name == "prop_types" {
			count++
		}
	}
	if count > 0 {
		return pass(fmt.Sprintf("PropTypes defined for %d components", count))
	}
	return fail("PropTypes not found")
}

func hookCallsIn(facts *semantic.ReactFacts, hook string) []semantic.HookCall {
	var calls []semantic.HookCall
	for _, h := range facts.HookCalls {
		if h.Hook == hook {
			calls = append(calls, h)
		}
	}
	return calls
}
