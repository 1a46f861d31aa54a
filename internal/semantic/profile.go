package semantic

// Fact is a generic derived fact with line-level evidence, used for
// the ad-hoc side channel and for categories that need no richer type.
type Fact struct {
	Name   string
	Value  string
	Params string
	Line   int
}

// Profile holds the framework-specific facts derived from one
// submission. Exactly one of the per-framework sections is populated;
// profiles live for a single validation call and are read-only.
type Profile struct {
	Framework Framework
	Django    *DjangoFacts
	React     *ReactFacts

	// Extra carries genuinely one-off facts that have no typed home.
	Extra map[string][]Fact
}

// FieldFact is a declared field: model, serializer, or form.
type FieldFact struct {
	Name      string
	FieldType string
	Params    string
	Line      int
}

// RelationshipFact is a model relationship field.
type RelationshipFact struct {
	FieldName    string
	Kind         string // ForeignKey, ManyToManyField, OneToOneField
	RelatedModel string
	Params       string
	Line         int
}

// ClassFact describes a class recognized by role (view, serializer,
// middleware, form, admin, test).
type ClassFact struct {
	Name        string
	Parent      string
	Methods     []string
	Decorators  []string
	TestMethods []string
	HasValidate bool
	HasClean    bool
	HasSave     bool
}

// MiddlewareFact is a middleware class with its lifecycle hooks.
type MiddlewareFact struct {
	Name               string
	Methods            []string
	HasProcessRequest  bool
	HasProcessView     bool
	HasProcessResponse bool
}

// AuthUsage summarizes authentication-related constructs.
type AuthUsage struct {
	LoginRequired         bool
	PermissionRequired    bool
	UserPassesTest        bool
	HasPermCalls          int
	HasPermsCalls         int
	CheckPermissionCalls  int
	AuthenticationClasses []string
}

// Any reports whether any authentication construct was seen.
func (a AuthUsage) Any() bool {
	return a.LoginRequired || a.PermissionRequired || a.UserPassesTest ||
		a.HasPermCalls > 0 || a.HasPermsCalls > 0 || a.CheckPermissionCalls > 0 ||
		len(a.AuthenticationClasses) > 0
}

// GroupPermissions summarizes group/permission management patterns.
type GroupPermissions struct {
	GroupCreation        bool
	PermissionAssignment bool
	UserGroupAssignment  bool
	ContentTypeUsage     bool
	PermissionCreation   bool
	RoleChecks           []string
}

// CheckFact is a located occurrence of a recognized construct
// (permission check, signal handler, form validation, ...).
type CheckFact struct {
	Kind  string
	Match string
	Line  int
}

// URLPatternFact is one path()/re_path()/url() route.
type URLPatternFact struct {
	Kind string
	Path string
	View string
	Line int
}

// TemplateUsage summarizes template rendering constructs.
type TemplateUsage struct {
	RenderCalls      int
	TemplateName     bool
	GetTemplateCalls int
	LoaderCalls      int
	TemplateResponse bool
	ContextAssigned  bool
}

// Any reports whether any template construct was seen.
func (t TemplateUsage) Any() bool {
	return t.RenderCalls > 0 || t.TemplateName || t.GetTemplateCalls > 0 ||
		t.LoaderCalls > 0 || t.TemplateResponse || t.ContextAssigned
}

// ContextEntry is one key set on a view's template context.
type ContextEntry struct {
	Key   string
	Value string
}

// QuerysetChain is a chained ORM call such as .filter().order_by().
type QuerysetChain struct {
	Methods []string
	Line    int
}

// DjangoFacts is the Django fact battery.
type DjangoFacts struct {
	ModelFields   []FieldFact
	ModelMeta     map[string]string
	Relationships []RelationshipFact
	ModelMethods  []Fact

	ViewClasses    []ClassFact
	ViewMethods    []string
	ViewDecorators []string

	PermissionClasses []string
	AuthUsage         AuthUsage
	PermissionChecks  []CheckFact
	GroupPermissions  GroupPermissions

	MiddlewareClasses []MiddlewareFact
	MiddlewareMethods []string

	SerializerFields  []FieldFact
	SerializerClasses []ClassFact

	QuerysetOps    []string
	QuerysetChains []QuerysetChain

	URLPatterns []URLPatternFact
	URLIncludes []string

	TemplateUsage TemplateUsage
	ContextData   []ContextEntry

	FormFields  []FieldFact
	FormClasses []ClassFact

	SignalHandlers    []CheckFact
	SignalConnections []CheckFact

	AdminClasses       []ClassFact
	AdminRegistrations []string

	TestClasses []ClassFact
	TestMethods []string
}

// HookCall is one React hook invocation with per-hook param analysis.
type HookCall struct {
	Hook     string
	Params   string
	Line     int
	Context  string
	Analysis HookParams
}

// HookParams is the per-hook parameter breakdown.
type HookParams struct {
	InitialValue    string
	FuncInitializer bool
	Dependencies    []string
	HasDependencies bool
	EmptyDeps       bool
}

// DependencyList is an explicit dependency array on an effect-like hook.
type DependencyList struct {
	Hook         string
	Dependencies []string
	Line         int
}

// CustomHook is a learner-defined use* function.
type CustomHook struct {
	Name           string
	Params         []string
	UsesReactHooks bool
	ReturnsValue   bool
	Line           int
}

// ComponentCounts tallies component declaration styles.
type ComponentCounts struct {
	Function   int
	Class      int
	Memo       int
	ForwardRef int
	Lazy       int
}

// StateDeclaration is one useState destructuring.
type StateDeclaration struct {
	Variable string
	Setter   string
	Initial  string
	Line     int
}

// StateUpdate is one setter invocation.
type StateUpdate struct {
	Setter     string
	Argument   string
	Functional bool
	Line       int
}

// EffectFact is one useEffect with its cleanup and dependency shape.
type EffectFact struct {
	Dependencies []string
	HasDeps      bool
	EmptyDeps    bool
	HasCleanup   bool
	Line         int
}

// MemoizationUsage tallies memoization constructs.
type MemoizationUsage struct {
	UseMemo     int
	UseCallback int
	ReactMemo   int
}

// Any reports whether any memoization construct was seen.
func (m MemoizationUsage) Any() bool {
	return m.UseMemo > 0 || m.UseCallback > 0 || m.ReactMemo > 0
}

// EventHandlerFact is one JSX event binding or handler function.
type EventHandlerFact struct {
	Name  string
	Event string
	Line  int
}

// FormHandling summarizes form constructs in a component.
type FormHandling struct {
	OnSubmit         bool
	PreventDefault   bool
	ControlledInputs int
}

// Any reports whether any form construct was seen.
func (f FormHandling) Any() bool {
	return f.OnSubmit || f.PreventDefault || f.ControlledInputs > 0
}

// RoutingUsage summarizes react-router constructs.
type RoutingUsage struct {
	UsesRouter  bool
	Routes      []URLPatternFact
	RouterHooks []string
	Links       int
}

// Any reports whether any routing construct was seen.
func (r RoutingUsage) Any() bool {
	return r.UsesRouter || len(r.Routes) > 0 || len(r.RouterHooks) > 0 || r.Links > 0
}

// APICallFact is one fetch/axios invocation.
type APICallFact struct {
	Kind    string // fetch, axios
	URL     string
	Method  string
	Awaited bool
	Line    int
}

// AsyncFact is one async function with its body traits.
type AsyncFact struct {
	Name      string
	UsesFetch bool
	UsesAwait bool
	Line      int
}

// JSXAttributeFact is one attribute on a JSX element.
type JSXAttributeFact struct {
	Element  string
	Name     string
	Category string // event, style, data, aria, dom, custom
	Line     int
}

// TypeScriptFacts tallies TS-only constructs.
type TypeScriptFacts struct {
	Interfaces  int
	TypeAliases int
	Enums       int
	Generics    bool
	Annotations bool
}

// ReactFacts is the React fact battery.
type ReactFacts struct {
	HookCalls        []HookCall
	HookDependencies []DependencyList
	CustomHooks      []CustomHook

	ComponentTypes ComponentCounts
	ComponentProps []Fact

	StateDeclarations []StateDeclaration
	StateUpdates      []StateUpdate
	StateLibs         []string

	Effects []EffectFact

	Memoization          MemoizationUsage
	OptimizationPatterns []string

	EventHandlers []EventHandlerFact
	EventTypes    []string

	FormHandling   FormHandling
	FormValidation []CheckFact

	Routing RoutingUsage

	APICalls       []APICallFact
	AsyncFunctions []AsyncFact

	JSXElements   []string
	JSXAttributes []JSXAttributeFact

	TypeScript TypeScriptFacts
}
