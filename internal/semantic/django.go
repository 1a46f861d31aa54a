package semantic

import (
	"regexp"
	"sort"
	"strings"

	"codejudge/internal/parser"
)

// DjangoAnalyzer derives model, view, serializer, auth, middleware,
// ORM, URL, template, form, signal, admin, and test facts from a
// Python submission.
type DjangoAnalyzer struct{}

func (a *DjangoAnalyzer) Framework() Framework { return Django }

var modelFieldTypes = []string{
	"CharField", "TextField", "IntegerField", "FloatField", "DecimalField",
	"BooleanField", "DateField", "DateTimeField", "EmailField", "URLField",
	"ForeignKey", "ManyToManyField", "OneToOneField", "ImageField", "FileField",
	"AutoField", "BigAutoField", "BigIntegerField", "BinaryField", "DurationField",
	"GenericIPAddressField", "PositiveIntegerField", "PositiveSmallIntegerField",
	"SlugField", "SmallIntegerField", "TimeField", "UUIDField",
}

var serializerFieldTypes = []string{
	"CharField", "IntegerField", "BooleanField", "DateTimeField",
	"SerializerMethodField", "PrimaryKeyRelatedField", "SlugRelatedField",
	"EmailField", "URLField", "FileField", "ImageField", "ListField",
	"DictField", "JSONField", "HiddenField", "ReadOnlyField",
	"ModelField", "StringRelatedField", "HyperlinkedRelatedField",
	"HyperlinkedIdentityField", "MultipleChoiceField", "ChoiceField",
}

var formFieldTypes = []string{
	"CharField", "IntegerField", "BooleanField", "DateField",
	"DateTimeField", "EmailField", "URLField", "ChoiceField",
	"MultipleChoiceField", "FileField", "ImageField", "ModelChoiceField",
	"ModelMultipleChoiceField",
}

var viewBaseClasses = []string{
	"View", "TemplateView", "ListView", "DetailView",
	"CreateView", "UpdateView", "DeleteView", "FormView",
	"RedirectView", "ArchiveIndexView", "YearArchiveView",
	"MonthArchiveView", "WeekArchiveView", "DayArchiveView",
	"TodayArchiveView", "DateDetailView",
}

var viewDecorators = []string{
	"login_required", "permission_required", "user_passes_test",
	"staff_member_required", "superuser_required", "csrf_exempt",
	"require_http_methods", "require_GET", "require_POST", "require_safe",
	"cache_control", "never_cache", "condition", "etag", "last_modified",
	"vary_on_cookie", "vary_on_headers",
}

var querysetOpNames = []string{
	"filter", "exclude", "get", "all", "first", "last", "count",
	"aggregate", "annotate", "order_by", "distinct", "values", "values_list",
	"select_related", "prefetch_related", "only", "defer", "using",
	"raw", "exists", "update", "delete", "bulk_create", "bulk_update",
	"iterator", "earliest", "latest", "create", "get_or_create",
	"update_or_create", "in_bulk", "explain",
}

var metaOptionNames = []string{
	"verbose_name", "verbose_name_plural", "ordering", "permissions",
	"unique_together", "indexes", "constraints",
}

var httpMethodNames = []string{"get", "post", "put", "patch", "delete", "head", "options"}

var middlewareHookNames = []string{
	"process_request", "process_view", "process_response",
	"process_exception", "__call__", "__init__",
}

var testBaseClasses = []string{"TestCase", "APITestCase", "SimpleTestCase", "TransactionTestCase"}

var (
	reModelField      = fieldDeclRegexp("models", modelFieldTypes)
	reSerializerField = fieldDeclRegexp("serializers", serializerFieldTypes)
	reFormField       = fieldDeclRegexp("forms", formFieldTypes)

	reMetaClass  = regexp.MustCompile(`(?is)class\s+Meta\s*:\s*(.*?)(?:\n\S|\z)`)
	reForeignKey = regexp.MustCompile(`(?s)(\w+)\s*=\s*models\.ForeignKey\s*\(([^)]*)\)`)
	reManyToMany = regexp.MustCompile(`(?s)(\w+)\s*=\s*models\.ManyToManyField\s*\(([^)]*)\)`)
	reOneToOne   = regexp.MustCompile(`(?s)(\w+)\s*=\s*models\.OneToOneField\s*\(([^)]*)\)`)
	reToKwarg    = regexp.MustCompile(`to=['"]([^'"]+)['"]`)

	reRequestFunc = regexp.MustCompile(`def\s+(\w+)\s*\([^)]*request`)

	rePermClasses = regexp.MustCompile(`permission_classes\s*(?::\s*List\[[^\]]*\]\s*)?=\s*\[([^\]]+)\]`)
	rePermName    = regexp.MustCompile(`[A-Z][A-Za-z]+Permission|IsAuthenticated|AllowAny|IsAdminUser`)
	reAuthClasses = regexp.MustCompile(`authentication_classes\s*(?::\s*List\[[^\]]*\]\s*)?=\s*\[([^\]]+)\]`)
	reAuthName    = regexp.MustCompile(`[A-Z][A-Za-z]+Authentication|TokenAuthentication|SessionAuthentication|BasicAuthentication`)

	reLoginRequired = regexp.MustCompile(`@login_required|login_required\(`)
	rePermRequired  = regexp.MustCompile(`@permission_required|permission_required\(`)
	reUserPasses    = regexp.MustCompile(`@user_passes_test|user_passes_test\(`)
	reHasPerm       = regexp.MustCompile(`\.has_perm\(`)
	reHasPerms      = regexp.MustCompile(`\.has_perms\(`)
	reCheckPerms    = regexp.MustCompile(`check_permissions\(|test_func\(`)

	reHasPermArg      = regexp.MustCompile(`\.has_perm\(['"]([^'"]+)['"]`)
	reHasPermsArg     = regexp.MustCompile(`\.has_perms\(['"]([^'"]+)['"]`)
	reCheckPermsCall  = regexp.MustCompile(`check_permissions\([^)]*\)`)
	reTestFuncCall    = regexp.MustCompile(`test_func\([^)]*\)`)
	reGroupCreate     = regexp.MustCompile(`Group\.objects\.(create|get_or_create)\(`)
	rePermAssign      = regexp.MustCompile(`\.permissions\.(set|add|remove)\(`)
	reUserGroupAssign = regexp.MustCompile(`\.groups\.(set|add|remove)\(`)
	reContentType     = regexp.MustCompile(`ContentType\.objects\.get\(`)
	rePermCreate      = regexp.MustCompile(`Permission\.objects\.(create|get_or_create)\(`)

	reRoleChecks = []*regexp.Regexp{
		regexp.MustCompile(`has_role\(['"]([^'"]+)['"]`),
		regexp.MustCompile(`role_required\([^)]*roles\s*=\s*\[([^\]]+)\]`),
		regexp.MustCompile(`required_roles\s*=\s*\[([^\]]+)\]`),
		regexp.MustCompile(`role\s*(?:==|in)\s*['"]([^'"]+)['"]`),
	}
	reQuoted = regexp.MustCompile(`['"]([^'"]+)['"]`)

	reMethodChain = regexp.MustCompile(`\.(\w+)\([^)]*\)(?:\.\w+\([^)]*\))+`)
	reChainMethod = regexp.MustCompile(`\.(\w+)\(`)

	rePathCall   = regexp.MustCompile(`(?:^|[^_\w])path\(['"]([^'"]+)['"],\s*([^,)]+)`)
	reRePathCall = regexp.MustCompile(`re_path\(['"]([^'"]+)['"],\s*([^,)]+)`)
	reURLCall    = regexp.MustCompile(`(?:^|[^_\w])url\(['"]([^'"]+)['"],\s*([^,)]+)`)
	reURLInclude = regexp.MustCompile(`include\(['"]([^'"]+)['"]\)`)

	reRenderCall   = regexp.MustCompile(`render\(`)
	reTemplateName = regexp.MustCompile(`template_name\s*=`)
	reGetTemplate  = regexp.MustCompile(`get_template\(`)
	reLoaderCall   = regexp.MustCompile(`loader\.`)
	reTemplateResp = regexp.MustCompile(`TemplateResponse`)
	reContextVar   = regexp.MustCompile(`context\s*=`)

	reContextMethod = regexp.MustCompile(`(?s)def\s+get_context_data\s*\([^)]*\)\s*:\s*(.*?)(?:\ndef\s|\nclass\s|\z)`)
	reContextKey    = regexp.MustCompile(`context\[['"]([^'"]+)['"]\]\s*=\s*([^,\n]+)`)
	reContextUpdate = regexp.MustCompile(`context\.update\(([^)]+)\)`)
	reDictPair      = regexp.MustCompile(`['"]([^'"]+)['"]\s*:\s*([^,}]+)`)

	reReceiver      = regexp.MustCompile(`@receiver\(([^)]+)\)`)
	reSignalConnect = regexp.MustCompile(`\.connect\(([^)]+)\)`)

	reAdminRegister = regexp.MustCompile(`admin\.site\.register\(([^)]+)\)`)
	reTestDef       = regexp.MustCompile(`def\s+(test_\w+)\s*\(`)

	reQuerysetOp     = regexp.MustCompile(`\.(` + strings.Join(querysetOpNames, "|") + `)\s*\(`)
	reMiddlewareHook = regexp.MustCompile(`\b(process_request|process_view|process_response|process_exception|__call__|__init__)\b`)
)

// fieldDeclRegexp matches `name = module.SomeField(...)` with the module
// prefix optional, for any field type in the family.
func fieldDeclRegexp(module string, types []string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)(\w+)\s*=\s*(?:` + module + `\.)?(` + strings.Join(types, "|") + `)\s*\(([^)]*)\)`)
}

func (a *DjangoAnalyzer) Analyze(code string, parsed *parser.ParseResult) *Profile {
	facts := &DjangoFacts{
		ModelFields:   extractFieldDecls(code, reModelField),
		ModelMeta:     extractModelMeta(code),
		Relationships: extractRelationships(code),
		ModelMethods:  extractModelMethods(parsed),

		ViewClasses:    extractViewClasses(parsed),
		ViewMethods:    extractViewMethods(code, parsed),
		ViewDecorators: extractViewDecorators(code),

		PermissionClasses: extractBracketedClasses(code, rePermClasses, rePermName),
		AuthUsage:         extractAuthUsage(code),
		PermissionChecks:  extractPermissionChecks(code),
		GroupPermissions:  extractGroupPermissions(code),

		MiddlewareClasses: extractMiddlewareClasses(parsed),
		MiddlewareMethods: extractMiddlewareMethods(code),

		SerializerFields:  extractFieldDecls(code, reSerializerField),
		SerializerClasses: extractSerializerClasses(parsed),

		QuerysetOps:    extractQuerysetOps(code),
		QuerysetChains: extractQuerysetChains(code),

		URLPatterns: extractURLPatterns(code),
		URLIncludes: extractURLIncludes(code),

		TemplateUsage: extractTemplateUsage(code),
		ContextData:   extractContextData(code),

		FormFields:  extractFieldDecls(code, reFormField),
		FormClasses: extractFormClasses(parsed),

		SignalHandlers:    extractSignalHandlers(code),
		SignalConnections: extractSignalConnections(code),

		AdminClasses:       extractAdminClasses(parsed),
		AdminRegistrations: extractAdminRegistrations(code),

		TestClasses: extractTestClasses(parsed),
		TestMethods: extractTestMethods(code),
	}
	return &Profile{Framework: Django, Django: facts}
}

// lineOf converts a byte offset into a 1-based line number.
func lineOf(code string, pos int) int {
	return strings.Count(code[:pos], "\n") + 1
}

func extractFieldDecls(code string, re *regexp.Regexp) []FieldFact {
	var fields []FieldFact
	for _, m := range re.FindAllStringSubmatchIndex(code, -1) {
		fields = append(fields, FieldFact{
			Name:      code[m[2]:m[3]],
			FieldType: code[m[4]:m[5]],
			Params:    strings.TrimSpace(code[m[6]:m[7]]),
			Line:      lineOf(code, m[0]),
		})
	}
	return fields
}

func extractModelMeta(code string) map[string]string {
	m := reMetaClass.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	body := m[1]
	options := make(map[string]string)
	for _, name := range metaOptionNames {
		re := regexp.MustCompile(name + `\s*=\s*(.+)`)
		if om := re.FindStringSubmatch(body); om != nil {
			options[name] = strings.TrimSpace(om[1])
		}
	}
	if len(options) == 0 {
		return nil
	}
	return options
}

func extractRelationships(code string) []RelationshipFact {
	var rels []RelationshipFact
	kinds := []struct {
		re   *regexp.Regexp
		kind string
	}{
		{reForeignKey, "ForeignKey"},
		{reManyToMany, "ManyToManyField"},
		{reOneToOne, "OneToOneField"},
	}
	for _, k := range kinds {
		for _, m := range k.re.FindAllStringSubmatchIndex(code, -1) {
			name := code[m[2]:m[3]]
			params := code[m[4]:m[5]]
			rels = append(rels, RelationshipFact{
				FieldName:    name,
				Kind:         k.kind,
				RelatedModel: relatedModel(params),
				Params:       strings.TrimSpace(params),
				Line:         lineOf(code, m[0]),
			})
		}
	}
	return rels
}

// relatedModel pulls the target model out of relationship params: the
// to= kwarg wins, otherwise a quoted first positional argument.
func relatedModel(params string) string {
	if m := reToKwarg.FindStringSubmatch(params); m != nil {
		return m[1]
	}
	first, _, _ := strings.Cut(params, ",")
	first = strings.TrimSpace(first)
	if strings.ContainsAny(first, `'"`) {
		return strings.Trim(first, `'"`)
	}
	return ""
}

func extractModelMethods(parsed *parser.ParseResult) []Fact {
	var methods []Fact
	for _, cls := range parsed.Classes {
		if !strings.HasSuffix(cls.Name, "Model") && !hasBase(cls, "models.Model") {
			continue
		}
		for _, m := range cls.Methods {
			if strings.HasPrefix(m.Name, "__") || m.Name == "save" || m.Name == "delete" || m.Name == "clean" {
				methods = append(methods, Fact{
					Name:   m.Name,
					Value:  cls.Name,
					Params: strings.Join(m.Decorators, ","),
					Line:   m.Line,
				})
			}
		}
	}
	return methods
}

func hasBase(cls parser.ClassInfo, want string) bool {
	for _, b := range cls.Bases {
		if strings.Contains(b, want) {
			return true
		}
	}
	return false
}

func hasAnyBase(cls parser.ClassInfo, wants []string) bool {
	for _, w := range wants {
		if hasBase(cls, w) {
			return true
		}
	}
	return false
}

func methodNames(cls parser.ClassInfo) []string {
	names := make([]string, 0, len(cls.Methods))
	for _, m := range cls.Methods {
		names = append(names, m.Name)
	}
	return names
}

func hasMethod(cls parser.ClassInfo, name string) bool {
	for _, m := range cls.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

func extractViewClasses(parsed *parser.ParseResult) []ClassFact {
	var views []ClassFact
	for _, cls := range parsed.Classes {
		if !hasAnyBase(cls, viewBaseClasses) {
			continue
		}
		views = append(views, ClassFact{
			Name:       cls.Name,
			Parent:     strings.Join(cls.Bases, ", "),
			Methods:    methodNames(cls),
			Decorators: cls.Decorators,
		})
	}
	return views
}

func extractViewMethods(code string, parsed *parser.ParseResult) []string {
	seen := make(map[string]bool)
	for _, cls := range parsed.Classes {
		for _, m := range cls.Methods {
			for _, h := range httpMethodNames {
				if m.Name == h {
					seen[m.Name] = true
				}
			}
		}
	}
	for _, m := range reRequestFunc.FindAllStringSubmatch(code, -1) {
		name := m[1]
		if contains(httpMethodNames, name) || strings.Contains(name, "view") || strings.Contains(name, "handler") {
			seen[name] = true
		}
	}
	return sortedKeys(seen)
}

func extractViewDecorators(code string) []string {
	var found []string
	for _, d := range viewDecorators {
		if strings.Contains(code, "@"+d) {
			found = append(found, d)
		}
	}
	return found
}

func extractBracketedClasses(code string, listRe, nameRe *regexp.Regexp) []string {
	seen := make(map[string]bool)
	for _, m := range listRe.FindAllStringSubmatch(code, -1) {
		for _, name := range nameRe.FindAllString(m[1], -1) {
			seen[name] = true
		}
	}
	return sortedKeys(seen)
}

func extractAuthUsage(code string) AuthUsage {
	return AuthUsage{
		LoginRequired:         reLoginRequired.MatchString(code),
		PermissionRequired:    rePermRequired.MatchString(code),
		UserPassesTest:        reUserPasses.MatchString(code),
		HasPermCalls:          len(reHasPerm.FindAllString(code, -1)),
		HasPermsCalls:         len(reHasPerms.FindAllString(code, -1)),
		CheckPermissionCalls:  len(reCheckPerms.FindAllString(code, -1)),
		AuthenticationClasses: extractBracketedClasses(code, reAuthClasses, reAuthName),
	}
}

func extractPermissionChecks(code string) []CheckFact {
	var checks []CheckFact
	kinds := []struct {
		re   *regexp.Regexp
		kind string
	}{
		{reHasPermArg, "has_perm"},
		{reHasPermsArg, "has_perms"},
		{reCheckPermsCall, "check_permissions"},
		{reTestFuncCall, "test_func"},
	}
	for _, k := range kinds {
		for _, m := range k.re.FindAllStringIndex(code, -1) {
			checks = append(checks, CheckFact{
				Kind:  k.kind,
				Match: code[m[0]:m[1]],
				Line:  lineOf(code, m[0]),
			})
		}
	}
	return checks
}

func extractGroupPermissions(code string) GroupPermissions {
	return GroupPermissions{
		GroupCreation:        reGroupCreate.MatchString(code),
		PermissionAssignment: rePermAssign.MatchString(code),
		UserGroupAssignment:  reUserGroupAssign.MatchString(code),
		ContentTypeUsage:     reContentType.MatchString(code),
		PermissionCreation:   rePermCreate.MatchString(code),
		RoleChecks:           extractRoleChecks(code),
	}
}

func extractRoleChecks(code string) []string {
	seen := make(map[string]bool)
	for _, re := range reRoleChecks {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			text := m[0]
			if len(m) > 1 && m[1] != "" {
				text = m[1]
			}
			if quoted := reQuoted.FindAllStringSubmatch(text, -1); len(quoted) > 0 {
				for _, q := range quoted {
					seen[q[1]] = true
				}
			} else if len(m) > 1 && m[1] != "" {
				seen[m[1]] = true
			}
		}
	}
	return sortedKeys(seen)
}

func extractMiddlewareClasses(parsed *parser.ParseResult) []MiddlewareFact {
	var mws []MiddlewareFact
	for _, cls := range parsed.Classes {
		if !strings.Contains(cls.Name, "Middleware") {
			continue
		}
		mws = append(mws, MiddlewareFact{
			Name:               cls.Name,
			Methods:            methodNames(cls),
			HasProcessRequest:  hasMethod(cls, "process_request"),
			HasProcessView:     hasMethod(cls, "process_view"),
			HasProcessResponse: hasMethod(cls, "process_response"),
		})
	}
	return mws
}

func extractMiddlewareMethods(code string) []string {
	seen := make(map[string]bool)
	for _, m := range reMiddlewareHook.FindAllStringSubmatch(code, -1) {
		seen[m[1]] = true
	}
	var found []string
	for _, name := range middlewareHookNames {
		if seen[name] {
			found = append(found, name)
		}
	}
	return found
}

func extractSerializerClasses(parsed *parser.ParseResult) []ClassFact {
	var sers []ClassFact
	for _, cls := range parsed.Classes {
		if !strings.HasSuffix(cls.Name, "Serializer") {
			continue
		}
		hasValidate := false
		for _, m := range cls.Methods {
			if strings.HasPrefix(m.Name, "validate_") {
				hasValidate = true
			}
		}
		sers = append(sers, ClassFact{
			Name:        cls.Name,
			Parent:      strings.Join(cls.Bases, ", "),
			Methods:     methodNames(cls),
			HasValidate: hasValidate,
		})
	}
	return sers
}

func extractQuerysetOps(code string) []string {
	seen := make(map[string]bool)
	for _, m := range reQuerysetOp.FindAllStringSubmatch(code, -1) {
		seen[m[1]] = true
	}
	var ops []string
	for _, op := range querysetOpNames {
		if seen[op] {
			ops = append(ops, op)
		}
	}
	return ops
}

func extractQuerysetChains(code string) []QuerysetChain {
	var chains []QuerysetChain
	for _, m := range reMethodChain.FindAllStringIndex(code, -1) {
		chain := code[m[0]:m[1]]
		var names []string
		for _, cm := range reChainMethod.FindAllStringSubmatch(chain, -1) {
			names = append(names, cm[1])
		}
		if len(names) >= 2 {
			chains = append(chains, QuerysetChain{Methods: names, Line: lineOf(code, m[0])})
		}
	}
	return chains
}

func extractURLPatterns(code string) []URLPatternFact {
	var patterns []URLPatternFact
	kinds := []struct {
		re   *regexp.Regexp
		kind string
	}{
		{rePathCall, "path"},
		{reRePathCall, "re_path"},
		{reURLCall, "url"},
	}
	for _, k := range kinds {
		for _, m := range k.re.FindAllStringSubmatchIndex(code, -1) {
			patterns = append(patterns, URLPatternFact{
				Kind: k.kind,
				Path: code[m[2]:m[3]],
				View: strings.TrimSpace(code[m[4]:m[5]]),
				Line: lineOf(code, m[0]),
			})
		}
	}
	return patterns
}

func extractURLIncludes(code string) []string {
	var includes []string
	for _, m := range reURLInclude.FindAllStringSubmatch(code, -1) {
		includes = append(includes, m[1])
	}
	return includes
}

func extractTemplateUsage(code string) TemplateUsage {
	return TemplateUsage{
		RenderCalls:      len(reRenderCall.FindAllString(code, -1)),
		TemplateName:     reTemplateName.MatchString(code),
		GetTemplateCalls: len(reGetTemplate.FindAllString(code, -1)),
		LoaderCalls:      len(reLoaderCall.FindAllString(code, -1)),
		TemplateResponse: reTemplateResp.MatchString(code),
		ContextAssigned:  reContextVar.MatchString(code),
	}
}

func extractContextData(code string) []ContextEntry {
	m := reContextMethod.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	body := m[1]
	var entries []ContextEntry
	for _, km := range reContextKey.FindAllStringSubmatch(body, -1) {
		entries = append(entries, ContextEntry{Key: km[1], Value: strings.TrimSpace(km[2])})
	}
	for _, um := range reContextUpdate.FindAllStringSubmatch(body, -1) {
		for _, pair := range reDictPair.FindAllStringSubmatch(um[1], -1) {
			entries = append(entries, ContextEntry{Key: pair[1], Value: strings.TrimSpace(pair[2])})
		}
	}
	return entries
}

func extractFormClasses(parsed *parser.ParseResult) []ClassFact {
	var forms []ClassFact
	for _, cls := range parsed.Classes {
		if !strings.HasSuffix(cls.Name, "Form") {
			continue
		}
		forms = append(forms, ClassFact{
			Name:     cls.Name,
			Parent:   strings.Join(cls.Bases, ", "),
			Methods:  methodNames(cls),
			HasClean: hasMethod(cls, "clean"),
			HasSave:  hasMethod(cls, "save"),
		})
	}
	return forms
}

func extractSignalHandlers(code string) []CheckFact {
	var handlers []CheckFact
	for _, m := range reReceiver.FindAllStringSubmatchIndex(code, -1) {
		handlers = append(handlers, CheckFact{
			Kind:  "receiver",
			Match: code[m[2]:m[3]],
			Line:  lineOf(code, m[0]),
		})
	}
	for _, m := range reSignalConnect.FindAllStringSubmatchIndex(code, -1) {
		handlers = append(handlers, CheckFact{
			Kind:  "connect",
			Match: code[m[2]:m[3]],
			Line:  lineOf(code, m[0]),
		})
	}
	return handlers
}

func extractSignalConnections(code string) []CheckFact {
	var conns []CheckFact
	for _, m := range reSignalConnect.FindAllStringSubmatchIndex(code, -1) {
		conns = append(conns, CheckFact{
			Kind:  "connect",
			Match: code[m[2]:m[3]],
			Line:  lineOf(code, m[0]),
		})
	}
	return conns
}

func extractAdminClasses(parsed *parser.ParseResult) []ClassFact {
	var admins []ClassFact
	for _, cls := range parsed.Classes {
		if !strings.HasSuffix(cls.Name, "Admin") {
			continue
		}
		admins = append(admins, ClassFact{
			Name:    cls.Name,
			Parent:  strings.Join(cls.Bases, ", "),
			Methods: methodNames(cls),
		})
	}
	return admins
}

func extractAdminRegistrations(code string) []string {
	var regs []string
	for _, m := range reAdminRegister.FindAllStringSubmatch(code, -1) {
		regs = append(regs, strings.TrimSpace(m[1]))
	}
	return regs
}

func extractTestClasses(parsed *parser.ParseResult) []ClassFact {
	var tests []ClassFact
	for _, cls := range parsed.Classes {
		if !hasAnyBase(cls, testBaseClasses) {
			continue
		}
		var testMethods []string
		for _, m := range cls.Methods {
			if strings.HasPrefix(m.Name, "test_") {
				testMethods = append(testMethods, m.Name)
			}
		}
		tests = append(tests, ClassFact{
			Name:        cls.Name,
			Parent:      strings.Join(cls.Bases, ", "),
			Methods:     methodNames(cls),
			TestMethods: testMethods,
		})
	}
	return tests
}

func extractTestMethods(code string) []string {
	var methods []string
	for _, m := range reTestDef.FindAllStringSubmatch(code, -1) {
		methods = append(methods, m[1])
	}
	return methods
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
