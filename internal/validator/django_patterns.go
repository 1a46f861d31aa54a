package validator

import (
	"fmt"
	"regexp"
	"strings"

	"codejudge/internal/semantic"
	"codejudge/internal/spec"
)

func djangoPattern(p spec.Pattern, facts *semantic.DjangoFacts, code string) patternResult {
	switch p.Kind {
	case "model_field":
		return djangoModelField(p, facts)
	case "view_method":
		return djangoViewMethod(p, facts)
	case "permission_check":
		return djangoPermissionCheck(p, facts)
	case "middleware":
		return djangoMiddleware(facts)
	case "serializer":
		return djangoSerializer(facts)
	case "queryset_operation":
		return djangoQuerysetOp(p, facts)
	case "decorator":
		return djangoDecorator(p, facts, code)
	case "authentication":
		return djangoAuthentication(p, facts)
	case "url_pattern":
		return djangoURLPattern(p, facts)
	case "template_usage":
		return djangoTemplateUsage(p, facts)
	case "form_validation":
		return djangoFormValidation(p, facts)
	case "signal_handler":
		return djangoSignalHandler(p, facts, code)
	case "test_case":
		return djangoTestCase(p, facts)
	default:
		return genericPatternKind(p, code)
	}
}

func djangoModelField(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	fieldType := p.String("field_type")
	fieldName := p.String("field_name")
	minCount := p.Int("min_count")
	if minCount == 0 {
		minCount = 1
	}

	if fieldName != "" {
		for _, f := range facts.ModelFields {
			if f.Name == fieldName && f.FieldType == fieldType {
				return pass(fmt.Sprintf("Field '%s' (%s) found", fieldName, fieldType))
			}
		}
		return fail(fmt.Sprintf("Field '%s' (%s) not found", fieldName, fieldType))
	}

	count := 0
	for _, f := range facts.ModelFields {
		if f.FieldType == fieldType {
			count++
		}
	}
	if count >= minCount {
		return pass(fmt.Sprintf("%s found (%d instances)", fieldType, count))
	}
	return fail(fmt.Sprintf("%s not found (required: %d, found: %d)", fieldType, minCount, count))
}

func djangoViewMethod(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	method := p.String("method")
	if containsString(facts.ViewMethods, method) {
		return pass(fmt.Sprintf("View method '%s' found", method))
	}
	return fail(fmt.Sprintf("View method '%s' not found", method))
}

func djangoPermissionCheck(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	switch checkType := p.String("check_type"); checkType {
	case "", "any":
		if len(facts.PermissionChecks) > 0 || facts.AuthUsage.HasPermCalls > 0 {
			return pass("Permission checks present")
		}
		return fail("No permission checks found")
	case "specific":
		name := p.String("permission")
		for _, c := range facts.PermissionChecks {
			if strings.Contains(c.Match, name) {
				return pass(fmt.Sprintf("Permission check '%s' found", name))
			}
		}
		return fail(fmt.Sprintf("Permission check '%s' not found", name))
	default:
		return fail("Invalid permission check type")
	}
}

func djangoMiddleware(facts *semantic.DjangoFacts) patternResult {
	if len(facts.MiddlewareClasses) > 0 {
		names := make([]string, 0, len(facts.MiddlewareClasses))
		for _, m := range facts.MiddlewareClasses {
			names = append(names, m.Name)
		}
		return pass("Middleware classes: " + strings.Join(names, ", "))
	}
	if len(facts.MiddlewareMethods) > 0 {
		return pass("Middleware methods: " + strings.Join(facts.MiddlewareMethods, ", "))
	}
	return fail("No middleware implementation found")
}

func djangoSerializer(facts *semantic.DjangoFacts) patternResult {
	if len(facts.SerializerClasses) > 0 {
		names := make([]string, 0, len(facts.SerializerClasses))
		for _, c := range facts.SerializerClasses {
			names = append(names, c.Name)
		}
		return pass("Serializer classes: " + strings.Join(names, ", "))
	}
	if len(facts.SerializerFields) > 0 {
		return pass("Serializer fields: " + strings.Join(fieldTypeSet(facts.SerializerFields), ", "))
	}
	return fail("No serializer implementation found")
}

func djangoQuerysetOp(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	op := p.String("operation")
	if containsString(facts.QuerysetOps, op) {
		return pass(fmt.Sprintf("Queryset operation '%s' found", op))
	}
	return fail(fmt.Sprintf("Queryset operation '%s' not found", op))
}

func djangoDecorator(p spec.Pattern, facts *semantic.DjangoFacts, code string) patternResult {
	name := p.String("decorator")
	if containsString(facts.ViewDecorators, name) {
		return pass(fmt.Sprintf("Decorator '@%s' found", name))
	}
	if matched, _ := regexp.MatchString(`@`+regexp.QuoteMeta(name)+`\b`, code); matched {
		return pass(fmt.Sprintf("Decorator '@%s' found", name))
	}
	return fail(fmt.Sprintf("Decorator '@%s' not found", name))
}

func djangoAuthentication(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	switch authType := p.String("auth_type"); authType {
	case "", "any":
		if facts.AuthUsage.Any() {
			return pass("Authentication patterns found")
		}
		return fail("No authentication patterns found")
	case "login_required":
		if facts.AuthUsage.LoginRequired {
			return pass("@login_required decorator found")
		}
		return fail("@login_required decorator not found")
	case "permission_required":
		if facts.AuthUsage.PermissionRequired {
			return pass("@permission_required decorator found")
		}
		return fail("@permission_required decorator not found")
	default:
		return fail("Invalid authentication type")
	}
}

func djangoURLPattern(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	patterns := facts.URLPatterns
	includes := facts.URLIncludes

	switch patternType := p.String("pattern_type"); patternType {
	case "", "any":
		if len(patterns) > 0 || len(includes) > 0 {
			var parts []string
			if len(patterns) > 0 {
				parts = append(parts, fmt.Sprintf("%d URL patterns", len(patterns)))
			}
			if len(includes) > 0 {
				parts = append(parts, fmt.Sprintf("%d includes", len(includes)))
			}
			return pass("URL configuration: " + strings.Join(parts, ", "))
		}
		return fail("No URL patterns found")

	case "path":
		if required := p.String("path"); required != "" {
			for _, u := range patterns {
				if strings.Contains(u.Path, required) {
					return pass(fmt.Sprintf("URL path '%s' found", required))
				}
			}
			return fail(fmt.Sprintf("URL path '%s' not found", required))
		}
		if len(patterns) > 0 {
			paths := make([]string, 0, len(patterns))
			for _, u := range patterns {
				paths = append(paths, u.Path)
			}
			return pass("URL paths found: " + strings.Join(firstN(paths, 3), ", "))
		}
		return fail("No URL paths defined")

	case "view":
		required := p.String("view")
		if required == "" {
			return fail("No view specified for validation")
		}
		for _, u := range patterns {
			if strings.Contains(u.View, required) {
				return pass(fmt.Sprintf("View '%s' mapped in URLs", required))
			}
		}
		return fail(fmt.Sprintf("View '%s' not found in URL patterns", required))

	case "include":
		if required := p.String("include"); required != "" {
			if containsString(includes, required) {
				return pass(fmt.Sprintf("Include '%s' found", required))
			}
			return fail(fmt.Sprintf("Include '%s' not found", required))
		}
		if len(includes) > 0 {
			return pass("URL includes found: " + strings.Join(includes, ", "))
		}
		return fail("No URL includes found")

	case "re_path":
		count := 0
		for _, u := range patterns {
			if u.Kind == "re_path" {
				count++
			}
		}
		if count > 0 {
			return pass(fmt.Sprintf("re_path patterns found (%d)", count))
		}
		return fail("No re_path patterns found")

	default:
		return fail("Unknown URL pattern type: " + patternType)
	}
}

func djangoTemplateUsage(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	tu := facts.TemplateUsage

	switch usageType := p.String("usage_type"); usageType {
	case "", "any":
		if tu.Any() || len(facts.ContextData) > 0 {
			var parts []string
			if tu.RenderCalls > 0 {
				parts = append(parts, fmt.Sprintf("%d render() calls", tu.RenderCalls))
			}
			if tu.TemplateName {
				parts = append(parts, "template_name defined")
			}
			if tu.GetTemplateCalls > 0 {
				parts = append(parts, fmt.Sprintf("%d get_template() calls", tu.GetTemplateCalls))
			}
			if len(facts.ContextData) > 0 {
				parts = append(parts, fmt.Sprintf("%d context variables", len(facts.ContextData)))
			}
			return pass("Template usage: " + strings.Join(parts, ", "))
		}
		return fail("No template usage found")

	case "render":
		if tu.RenderCalls > 0 {
			return pass(fmt.Sprintf("render() used %d times", tu.RenderCalls))
		}
		return fail("render() not used")

	case "template_name":
		if tu.TemplateName {
			return pass("template_name attribute defined")
		}
		return fail("template_name attribute not found")

	case "context_data":
		keys := make([]string, 0, len(facts.ContextData))
		for _, c := range facts.ContextData {
			keys = append(keys, c.Key)
		}
		if required := p.StringSlice("required_keys"); len(required) > 0 {
			var missing []string
			for _, k := range required {
				if !containsString(keys, k) {
					missing = append(missing, k)
				}
			}
			if len(missing) == 0 {
				return pass("All required context keys present: " + strings.Join(required, ", "))
			}
			return fail("Missing context keys: " + strings.Join(missing, ", "))
		}
		if len(keys) > 0 {
			return pass("Context data found: " + strings.Join(keys, ", "))
		}
		return fail("No context data found")

	case "get_template":
		if tu.GetTemplateCalls > 0 {
			return pass(fmt.Sprintf("get_template() used %d times", tu.GetTemplateCalls))
		}
		return fail("get_template() not used")

	case "template_response":
		if tu.TemplateResponse {
			return pass("TemplateResponse used")
		}
		return fail("TemplateResponse not found")

	default:
		return fail("Unknown template usage type: " + usageType)
	}
}

func djangoFormValidation(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	switch validationType := p.String("validation_type"); validationType {
	case "", "any":
		if len(facts.FormFields) > 0 || len(facts.FormClasses) > 0 {
			var parts []string
			if len(facts.FormFields) > 0 {
				parts = append(parts, fmt.Sprintf("%d form fields", len(facts.FormFields)))
			}
			for _, fc := range facts.FormClasses {
				if fc.HasClean {
					parts = append(parts, "clean() method")
					break
				}
			}
			for _, fc := range facts.FormClasses {
				if fc.HasSave {
					parts = append(parts, "save() method")
					break
				}
			}
			return pass("Form validation: " + strings.Join(parts, ", "))
		}
		return fail("No form validation found")

	case "clean_method":
		var names []string
		for _, fc := range facts.FormClasses {
			if fc.HasClean {
				names = append(names, fc.Name)
			}
		}
		if len(names) > 0 {
			return pass("clean() method in: " + strings.Join(names, ", "))
		}
		return fail("No clean() method found")

	case "field_validation":
		if required := p.String("field_name"); required != "" {
			for _, f := range facts.FormFields {
				if f.Name == required {
					return pass(fmt.Sprintf("Field '%s' (%s) found", required, f.FieldType))
				}
			}
			return fail(fmt.Sprintf("Field '%s' not found", required))
		}
		if len(facts.FormFields) > 0 {
			return pass("Form fields: " + strings.Join(fieldTypeSet(facts.FormFields), ", "))
		}
		return fail("No form fields found")

	case "clean_field":
		field := p.String("field_name")
		if field == "" {
			return fail("No field name specified")
		}
		method := "clean_" + field
		for _, fc := range facts.FormClasses {
			if containsString(fc.Methods, method) {
				return pass(method + "() method found")
			}
		}
		return fail(method + "() method not found")

	case "model_form":
		var names []string
		for _, fc := range facts.FormClasses {
			if strings.Contains(fc.Parent, "ModelForm") {
				names = append(names, fc.Name)
			}
		}
		if len(names) > 0 {
			return pass("ModelForm classes: " + strings.Join(names, ", "))
		}
		return fail("No ModelForm classes found")

	default:
		return fail("Unknown form validation type: " + validationType)
	}
}

func djangoSignalHandler(p spec.Pattern, facts *semantic.DjangoFacts, code string) patternResult {
	handlers := facts.SignalHandlers
	connections := facts.SignalConnections

	signalMentioned := func(name string) bool {
		if strings.Contains(code, name) {
			return true
		}
		for _, h := range handlers {
			if strings.Contains(h.Match, name) {
				return true
			}
		}
		return false
	}

	switch handlerType := p.String("handler_type"); handlerType {
	case "", "any":
		if len(handlers) > 0 || len(connections) > 0 {
			receivers, connects := 0, 0
			for _, h := range handlers {
				switch h.Kind {
				case "receiver":
					receivers++
				case "connect":
					connects++
				}
			}
			var parts []string
			if receivers > 0 {
				parts = append(parts, fmt.Sprintf("%d @receiver decorators", receivers))
			}
			if connects > 0 {
				parts = append(parts, fmt.Sprintf("%d .connect() calls", connects))
			}
			if len(connections) > 0 {
				parts = append(parts, fmt.Sprintf("%d signal connections", len(connections)))
			}
			return pass("Signal handlers: " + strings.Join(parts, ", "))
		}
		return fail("No signal handlers found")

	case "receiver":
		var receivers []semantic.CheckFact
		for _, h := range handlers {
			if h.Kind == "receiver" {
				receivers = append(receivers, h)
			}
		}
		if signal := p.String("signal"); signal != "" {
			for _, h := range receivers {
				if strings.Contains(h.Match, signal) {
					return pass(fmt.Sprintf("@receiver decorator for %s found", signal))
				}
			}
			return fail(fmt.Sprintf("@receiver decorator for %s not found", signal))
		}
		if len(receivers) > 0 {
			return pass(fmt.Sprintf("@receiver decorators found (%d)", len(receivers)))
		}
		return fail("No @receiver decorators found")

	case "connect":
		connects := 0
		for _, h := range handlers {
			if h.Kind == "connect" {
				connects++
			}
		}
		if total := connects + len(connections); total > 0 {
			return pass(fmt.Sprintf(".connect() calls found (%d)", total))
		}
		return fail("No .connect() calls found")

	case "pre_save", "post_save", "pre_delete", "post_delete":
		if signalMentioned(handlerType) {
			return pass(handlerType + " signal detected")
		}
		return fail(handlerType + " signal not found")

	default:
		return fail("Unknown signal handler type: " + handlerType)
	}
}

func djangoTestCase(p spec.Pattern, facts *semantic.DjangoFacts) patternResult {
	classesWithParent := func(parent string) []string {
		var names []string
		for _, tc := range facts.TestClasses {
			if strings.Contains(tc.Parent, parent) {
				names = append(names, tc.Name)
			}
		}
		return names
	}

	switch testType := p.String("test_type"); testType {
	case "", "any":
		if len(facts.TestClasses) > 0 || len(facts.TestMethods) > 0 {
			var parts []string
			if len(facts.TestClasses) > 0 {
				parts = append(parts, fmt.Sprintf("%d test classes", len(facts.TestClasses)))
			}
			if len(facts.TestMethods) > 0 {
				parts = append(parts, fmt.Sprintf("%d test methods", len(facts.TestMethods)))
			}
			return pass("Tests found: " + strings.Join(parts, ", "))
		}
		return fail("No test cases found")

	case "test_case":
		if names := classesWithParent("TestCase"); len(names) > 0 {
			return pass("TestCase classes: " + strings.Join(names, ", "))
		}
		return fail("No TestCase classes found")

	case "api_test":
		if names := classesWithParent("APITestCase"); len(names) > 0 {
			return pass("APITestCase classes: " + strings.Join(names, ", "))
		}
		return fail("No APITestCase classes found")

	case "test_method":
		if required := p.String("method_name"); required != "" {
			if containsString(facts.TestMethods, required) {
				return pass(fmt.Sprintf("Test method '%s' found", required))
			}
			return fail(fmt.Sprintf("Test method '%s' not found", required))
		}
		if len(facts.TestMethods) > 0 {
			return pass("Test methods: " + strings.Join(firstN(facts.TestMethods, 5), ", "))
		}
		return fail("No test methods found")

	case "setup_method":
		if testClassHasMethod(facts, "setUp") {
			return pass("setUp() method found")
		}
		return fail("setUp() method not found")

	case "teardown_method":
		if testClassHasMethod(facts, "tearDown") {
			return pass("tearDown() method found")
		}
		return fail("tearDown() method not found")

	default:
		return fail("Unknown test type: " + testType)
	}
}

func testClassHasMethod(facts *semantic.DjangoFacts, name string) bool {
	for _, tc := range facts.TestClasses {
		if containsString(tc.Methods, name) || containsString(tc.TestMethods, name) {
			return true
		}
	}
	return false
}

func fieldTypeSet(fields []semantic.FieldFact) []string {
	seen := make(map[string]bool)
	var types []string
	for _, f := range fields {
		if !seen[f.FieldType] {
			seen[f.FieldType] = true
			types = append(types, f.FieldType)
		}
	}
	return types
}
