// Package decl models the declaration tree of a compiled module: namespaces,
// types and members with their accessibility, generics and type references.
// It also defines the display-part vocabulary and the Provider interface that
// turns declarations into canonical display text.
package decl

import "strings"

// Symbol is a declaration in the tree. The set of implementations is closed:
// *Namespace, *Type and *Member.
type Symbol interface {
	// Module returns the module that declares the symbol.
	Module() *Module
	isSymbol()
}

// Module is the root of a declaration tree.
type Module struct {
	Name         string
	Version      string
	Global       *Namespace
	Attributes   []Attribute
	Dependencies []Dependency
}

// Dependency is a package the module references.
type Dependency struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Attribute is an attribute application such as [InternalsVisibleTo("X")].
// Args hold decoded argument values. Source, when set, holds each argument
// as written, literal quotes and named argument prefixes included.
type Attribute struct {
	Name   string   `yaml:"name"`
	Args   []string `yaml:"args"`
	Source []string `yaml:"-"`
}

// NewModule creates a module with an empty global namespace.
func NewModule(name, version string) *Module {
	m := &Module{Name: name, Version: version}
	m.Global = &Namespace{module: m}
	return m
}

// Namespace is a named scope holding nested namespaces and types.
type Namespace struct {
	Name       string
	Parent     *Namespace
	Namespaces []*Namespace
	Types      []*Type

	module *Module
}

func (*Namespace) isSymbol() {}

// Module returns the declaring module.
func (n *Namespace) Module() *Module { return n.module }

// IsGlobal reports whether n is the unnamed root namespace.
func (n *Namespace) IsGlobal() bool { return n.Parent == nil }

// FullName returns the dotted namespace name, empty for the global namespace.
func (n *Namespace) FullName() string {
	if n.IsGlobal() {
		return ""
	}
	if n.Parent.IsGlobal() {
		return n.Name
	}
	return n.Parent.FullName() + "." + n.Name
}

// Namespace returns the namespace with the given dotted name relative to n,
// creating missing segments.
func (n *Namespace) Namespace(dotted string) *Namespace {
	cur := n
	for _, seg := range strings.Split(dotted, ".") {
		if seg == "" {
			continue
		}
		cur = cur.child(seg)
	}
	return cur
}

func (n *Namespace) child(name string) *Namespace {
	for _, c := range n.Namespaces {
		if c.Name == name {
			return c
		}
	}
	c := &Namespace{Name: name, Parent: n, module: n.module}
	n.Namespaces = append(n.Namespaces, c)
	return c
}

// AddType appends t to the namespace and returns it.
func (n *Namespace) AddType(t *Type) *Type {
	t.Namespace = n
	t.Containing = nil
	n.Types = append(n.Types, t)
	t.link()
	return t
}

// TypeKind distinguishes the shapes of named types.
type TypeKind int

const (
	Class TypeKind = iota
	Struct
	Interface
	Enum
	Delegate
)

var typeKindNames = [...]string{"class", "struct", "interface", "enum", "delegate"}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "unknown"
}

// ParseTypeKind maps a keyword such as "class" to its TypeKind.
func ParseTypeKind(s string) (TypeKind, bool) {
	for i, name := range typeKindNames {
		if name == s {
			return TypeKind(i), true
		}
	}
	return 0, false
}

// TypeParam is a generic parameter with optional variance and constraints.
type TypeParam struct {
	Name        string
	Variance    string // "", "in" or "out"
	Constraints []string
}

// Type is a named type declaration.
type Type struct {
	Name       string
	Kind       TypeKind
	Access     Accessibility
	TypeParams []TypeParam
	Base       *TypeRef
	Interfaces []*TypeRef
	Members    []*Member
	Nested     []*Type
	Attributes []Attribute

	Abstract bool
	Sealed   bool
	Static   bool
	ReadOnly bool
	Record   bool

	// Invoke is the signature of a delegate type.
	Invoke *Member

	Namespace  *Namespace
	Containing *Type
}

func (*Type) isSymbol() {}

// Module returns the declaring module.
func (t *Type) Module() *Module {
	if t.Containing != nil {
		return t.Containing.Module()
	}
	if t.Namespace != nil {
		return t.Namespace.Module()
	}
	return nil
}

// AddMember appends m to the type's member list and returns it.
func (t *Type) AddMember(m *Member) *Member {
	m.Containing = t
	t.Members = append(t.Members, m)
	return m
}

// AddNested appends a nested type and returns it.
func (t *Type) AddNested(n *Type) *Type {
	n.Containing = t
	n.Namespace = t.Namespace
	t.Nested = append(t.Nested, n)
	n.link()
	return n
}

// link re-parents members and nested types after t has been placed.
func (t *Type) link() {
	for _, m := range t.Members {
		m.Containing = t
	}
	for _, n := range t.Nested {
		n.Containing = t
		n.Namespace = t.Namespace
		n.link()
	}
	if t.Invoke != nil {
		t.Invoke.Containing = t
	}
}

// Exposed reports whether t and every type containing it are visible.
func (t *Type) Exposed() bool {
	for c := t; c != nil; c = c.Containing {
		if !c.Access.Visible() {
			return false
		}
	}
	return true
}

// MemberKind distinguishes member declarations.
type MemberKind int

const (
	Field MemberKind = iota
	Property
	Event
	Method
)

var memberKindNames = [...]string{"field", "property", "event", "method"}

func (k MemberKind) String() string {
	if int(k) < len(memberKindNames) {
		return memberKindNames[k]
	}
	return "unknown"
}

// ParseMemberKind maps a name such as "field" to its MemberKind.
func ParseMemberKind(s string) (MemberKind, bool) {
	for i, name := range memberKindNames {
		if name == s {
			return MemberKind(i), true
		}
	}
	return 0, false
}

// MethodKind refines Method members.
type MethodKind int

const (
	Ordinary MethodKind = iota
	Constructor
	PropertyGet
	PropertySet
	EventAdd
	EventRemove
	EventRaise
	UserOperator
	Conversion
	Destructor
)

var methodKindNames = [...]string{
	"ordinary", "constructor", "get", "set", "add", "remove", "raise", "operator", "conversion", "destructor",
}

func (k MethodKind) String() string {
	if int(k) < len(methodKindNames) {
		return methodKindNames[k]
	}
	return "unknown"
}

// ParseMethodKind maps a name such as "constructor" to its MethodKind.
func ParseMethodKind(s string) (MethodKind, bool) {
	if s == "" {
		return Ordinary, true
	}
	for i, name := range methodKindNames {
		if name == s {
			return MethodKind(i), true
		}
	}
	return 0, false
}

// IsAccessor reports whether k is a property or event accessor method.
func (k MethodKind) IsAccessor() bool {
	switch k {
	case PropertyGet, PropertySet, EventAdd, EventRemove, EventRaise:
		return true
	}
	return false
}

// Param is a method, indexer or delegate parameter.
type Param struct {
	Name     string
	Type     *TypeRef
	Modifier string // "", "ref", "out", "in", "params" or "this"
	Default  string
}

// Accessor describes one property accessor.
type Accessor struct {
	Present bool
	Access  Accessibility // NotApplicable means same as the property
}

// Member is a field, property, event or method declaration.
type Member struct {
	Name       string
	Kind       MemberKind
	MethodKind MethodKind
	Access     Accessibility
	Type       *TypeRef
	Params     []Param
	TypeParams []TypeParam
	Attributes []Attribute

	// Implicit marks compiler-synthesized members.
	Implicit bool

	Static   bool
	Abstract bool
	Virtual  bool
	Override bool
	Sealed   bool
	ReadOnly bool
	Const    bool

	ConstValue string

	Getter Accessor
	Setter Accessor
	Init   bool

	Indexer bool
	// Operator is the operator token ("+", "==") or, for conversions,
	// "implicit"/"explicit".
	Operator string

	Containing *Type
}

func (*Member) isSymbol() {}

// Module returns the declaring module.
func (m *Member) Module() *Module {
	if m.Containing == nil {
		return nil
	}
	return m.Containing.Module()
}

// TypeRef is a reference to a type from a signature.
type TypeRef struct {
	// Name is the simple name of a named type or type parameter.
	Name string
	// Namespace qualifies an unresolved or external named type.
	Namespace string
	// Target is the referenced declaration, nil when unknown.
	Target *Type
	// Special is a predefined type keyword such as "int" or "string".
	Special   string
	Args      []*TypeRef
	ArrayRank int
	Nullable  bool
	TypeParam bool
	// Raw carries type text that could not be decomposed.
	Raw string
}

// Special returns a reference to a predefined type keyword.
func Special(keyword string) *TypeRef { return &TypeRef{Special: keyword} }

// Ref returns a reference to a declared type.
func Ref(t *Type, args ...*TypeRef) *TypeRef {
	return &TypeRef{Name: t.Name, Target: t, Args: args}
}

// External returns a reference to a type outside any loaded module.
func External(namespace, name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Namespace: namespace, Name: name, Args: args}
}

// TypeParamRef returns a reference to a generic parameter.
func TypeParamRef(name string) *TypeRef { return &TypeRef{Name: name, TypeParam: true} }

// Walk calls fn for every type in the namespace tree rooted at n, parents
// before nested types.
func Walk(n *Namespace, fn func(*Type)) {
	var visit func(t *Type)
	visit = func(t *Type) {
		fn(t)
		for _, nested := range t.Nested {
			visit(nested)
		}
	}
	for _, t := range n.Types {
		visit(t)
	}
	for _, c := range n.Namespaces {
		Walk(c, fn)
	}
}
