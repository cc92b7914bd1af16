// Package csharp renders declaration trees as C# display parts and builds
// declaration trees from C# sources.
package csharp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/julianshen/apiview/internal/decl"
)

// Provider is the C# display service over one module's declaration tree.
// Referenced modules are used to resolve generic constraints; their types
// are never treated as part of the module.
type Provider struct {
	module   *decl.Module
	resolver *decl.Resolver
}

// NewProvider returns a display service for m.
func NewProvider(m *decl.Module, references ...*decl.Module) *Provider {
	return &Provider{
		module:   m,
		resolver: decl.NewResolver(append([]*decl.Module{m}, references...)...),
	}
}

// Module returns the module being displayed.
func (p *Provider) Module() *decl.Module { return p.module }

// DisplayParts expands sym into classified parts according to f.
func (p *Provider) DisplayParts(sym decl.Symbol, f decl.Format) ([]decl.Part, error) {
	w := &writer{p: p, f: f}
	switch s := sym.(type) {
	case *decl.Namespace:
		if s == nil {
			return nil, decl.UnknownSymbolError(sym)
		}
		w.namespace(s)
	case *decl.Type:
		if s == nil {
			return nil, decl.UnknownSymbolError(sym)
		}
		w.typeDecl(s)
	case *decl.Member:
		if s == nil {
			return nil, decl.UnknownSymbolError(sym)
		}
		if s.Containing == nil {
			return nil, fmt.Errorf("member %s has no containing type", s.Name)
		}
		if err := w.member(s); err != nil {
			return nil, err
		}
	default:
		return nil, decl.UnknownSymbolError(sym)
	}
	return w.parts, nil
}

type writer struct {
	p     *Provider
	f     decl.Format
	parts []decl.Part
}

func (w *writer) add(kind decl.PartKind, text string, sym decl.Symbol) {
	w.parts = append(w.parts, decl.Part{Kind: kind, Text: text, Symbol: sym})
}

func (w *writer) keyword(text string) { w.add(decl.PartKeyword, text, nil) }
func (w *writer) punct(text string)   { w.add(decl.PartPunctuation, text, nil) }
func (w *writer) space()              { w.add(decl.PartSpace, " ", nil) }

func (w *writer) ident(name string) string {
	return escapeIdentifier(name, w.f.Misc.Has(decl.EscapeKeywordIdentifiers))
}

// keywords writes a possibly multi-word keyword such as "protected internal"
// followed by a space.
func (w *writer) keywords(text string) {
	for _, kw := range strings.Fields(text) {
		w.keyword(kw)
		w.space()
	}
}

func (w *writer) namespace(n *decl.Namespace) {
	if n.IsGlobal() {
		return
	}
	if w.f.Qualification == decl.NameAndContainingTypesAndNamespaces {
		w.namespacePrefix(n.Parent)
	}
	w.add(decl.PartNamespaceName, w.ident(n.Name), n)
}

// namespacePrefix writes "A.B." for a non-global namespace.
func (w *writer) namespacePrefix(n *decl.Namespace) {
	if n == nil || n.IsGlobal() {
		return
	}
	w.namespacePrefix(n.Parent)
	w.add(decl.PartNamespaceName, w.ident(n.Name), n)
	w.punct(".")
}

func namePartKind(k decl.TypeKind) decl.PartKind {
	switch k {
	case decl.Struct:
		return decl.PartStructName
	case decl.Interface:
		return decl.PartInterfaceName
	case decl.Enum:
		return decl.PartEnumName
	case decl.Delegate:
		return decl.PartDelegateName
	}
	return decl.PartClassName
}

// typePrefix writes the containing types or namespaces of t as the
// qualification style asks.
func (w *writer) typePrefix(t *decl.Type) {
	if w.f.Qualification == decl.NameOnly {
		return
	}
	if t.Containing != nil {
		w.typeName(t.Containing)
		w.punct(".")
		return
	}
	if w.f.Qualification == decl.NameAndContainingTypesAndNamespaces {
		w.namespacePrefix(t.Namespace)
	}
}

// typeName writes the qualified name of a type definition.
func (w *writer) typeName(t *decl.Type) {
	w.typePrefix(t)
	w.add(namePartKind(t.Kind), w.ident(t.Name), t)
	w.typeParams(t.TypeParams, false)
}

func (w *writer) typeParams(tps []decl.TypeParam, variance bool) {
	if !w.f.Generics.Has(decl.IncludeTypeParameters) || len(tps) == 0 {
		return
	}
	w.punct("<")
	for i, tp := range tps {
		if i > 0 {
			w.punct(",")
			w.space()
		}
		if variance && tp.Variance != "" {
			w.keyword(tp.Variance)
			w.space()
		}
		w.add(decl.PartTypeParameterName, w.ident(tp.Name), nil)
	}
	w.punct(">")
}

func (w *writer) typeDecl(t *decl.Type) {
	delegate := t.Kind == decl.Delegate
	if w.f.Kinds.Has(decl.IncludeTypeKeyword) {
		if w.f.Members.Has(decl.IncludeModifiers) {
			w.typeModifiers(t)
		}
		w.typeKeyword(t)
		w.space()
	}
	if delegate && w.f.Delegates == decl.DelegateNameAndSignature && t.Invoke != nil && t.Invoke.Type != nil {
		w.typeRef(t.Invoke.Type)
		w.space()
	}

	w.typePrefix(t)
	w.add(namePartKind(t.Kind), w.ident(t.Name), t)
	w.typeParams(t.TypeParams, w.f.Generics.Has(decl.IncludeVariance))

	if delegate && w.f.Delegates != decl.DelegateNameOnly && t.Invoke != nil {
		w.params(t.Invoke.Params)
	}
	if !delegate && w.f.Misc.Has(decl.IncludeBaseList) {
		w.baseList(t)
	}
	if w.f.Generics.Has(decl.IncludeTypeConstraints) {
		w.constraints(t.TypeParams, decl.Scope{Namespace: t.Namespace, Type: t})
	}
}

func (w *writer) typeModifiers(t *decl.Type) {
	switch t.Kind {
	case decl.Class:
		if t.Static {
			w.keywords("static")
			return
		}
		if t.Abstract {
			w.keywords("abstract")
		}
		if t.Sealed {
			w.keywords("sealed")
		}
	case decl.Struct:
		if t.ReadOnly {
			w.keywords("readonly")
		}
	}
}

func (w *writer) typeKeyword(t *decl.Type) {
	switch {
	case t.Record && t.Kind == decl.Struct:
		w.keyword("record")
		w.space()
		w.keyword("struct")
	case t.Record:
		w.keyword("record")
	default:
		w.keyword(t.Kind.String())
	}
}

// baseList writes ": Base, IFoo". Interfaces declared in the module but not
// exposed are left out.
func (w *writer) baseList(t *decl.Type) {
	var refs []*decl.TypeRef
	if t.Base != nil && t.Base.Special != "object" {
		refs = append(refs, t.Base)
	}
	for _, iface := range t.Interfaces {
		if iface == nil || (iface.Target != nil && !iface.Target.Exposed()) {
			continue
		}
		refs = append(refs, iface)
	}
	if len(refs) == 0 {
		return
	}
	w.space()
	w.punct(":")
	w.space()
	for i, ref := range refs {
		if i > 0 {
			w.punct(",")
			w.space()
		}
		w.typeRef(ref)
	}
}

func (w *writer) constraints(tps []decl.TypeParam, scope decl.Scope) {
	for _, tp := range tps {
		if len(tp.Constraints) == 0 {
			continue
		}
		w.space()
		w.keyword("where")
		w.space()
		w.add(decl.PartTypeParameterName, w.ident(tp.Name), nil)
		w.space()
		w.punct(":")
		w.space()
		for i, c := range tp.Constraints {
			if i > 0 {
				w.punct(",")
				w.space()
			}
			w.constraint(c, scope)
		}
	}
}

func (w *writer) constraint(c string, scope decl.Scope) {
	c = strings.TrimSpace(c)
	switch {
	case c == "new()":
		w.keyword("new")
		w.punct("(")
		w.punct(")")
	case constraintKeywords[c]:
		w.keyword(c)
	case strings.HasSuffix(c, "?") && constraintKeywords[strings.TrimSuffix(c, "?")]:
		w.keyword(strings.TrimSuffix(c, "?"))
		w.punct("?")
	default:
		ref := decl.ParseTypeRef(c)
		w.p.resolver.Resolve(ref, scope)
		w.typeRef(ref)
	}
}

func (w *writer) typeRef(r *decl.TypeRef) {
	switch {
	case r == nil:
		return
	case r.Raw != "":
		w.add(decl.PartText, r.Raw, nil)
		return
	case r.Special != "":
		w.specialType(r.Special)
	case r.TypeParam:
		w.add(decl.PartTypeParameterName, w.ident(r.Name), nil)
	case r.Target != nil:
		w.typePrefix(r.Target)
		w.add(namePartKind(r.Target.Kind), w.ident(r.Target.Name), r.Target)
		w.typeArgs(r.Args)
	default:
		if w.f.Qualification == decl.NameAndContainingTypesAndNamespaces && r.Namespace != "" {
			for _, seg := range strings.Split(r.Namespace, ".") {
				w.add(decl.PartNamespaceName, w.ident(seg), nil)
				w.punct(".")
			}
		}
		w.add(decl.PartClassName, w.ident(r.Name), nil)
		w.typeArgs(r.Args)
	}
	if r.Nullable {
		w.punct("?")
	}
	if r.ArrayRank > 0 {
		w.punct("[")
		for i := 1; i < r.ArrayRank; i++ {
			w.punct(",")
		}
		w.punct("]")
	}
}

func (w *writer) typeArgs(args []*decl.TypeRef) {
	if len(args) == 0 {
		return
	}
	w.punct("<")
	for i, a := range args {
		if i > 0 {
			w.punct(",")
			w.space()
		}
		w.typeRef(a)
	}
	w.punct(">")
}

func (w *writer) specialType(kw string) {
	if w.f.Misc.Has(decl.UseSpecialTypes) {
		w.keyword(kw)
		return
	}
	name, ok := decl.SpecialTypeName(kw)
	if !ok {
		w.keyword(kw)
		return
	}
	if w.f.Qualification == decl.NameAndContainingTypesAndNamespaces {
		w.add(decl.PartNamespaceName, "System", nil)
		w.punct(".")
	}
	kind := decl.PartStructName
	switch kw {
	case "object", "string", "dynamic":
		kind = decl.PartClassName
	}
	w.add(kind, name, nil)
}

func (w *writer) params(ps []decl.Param) {
	w.punct("(")
	w.paramList(ps)
	w.punct(")")
}

func (w *writer) paramList(ps []decl.Param) {
	for i, p := range ps {
		if i > 0 {
			w.punct(",")
			w.space()
		}
		w.param(p)
	}
}

func (w *writer) param(p decl.Param) {
	po := w.f.Parameters
	switch {
	case p.Modifier == "this" && po.Has(decl.ParamExtensionThis),
		p.Modifier != "" && p.Modifier != "this" && po.Has(decl.ParamModifiers):
		w.keyword(p.Modifier)
		w.space()
	}
	typed := false
	if po.Has(decl.ParamType) && p.Type != nil {
		w.typeRef(p.Type)
		typed = true
		switch p.Modifier {
		case "ref", "out", "in":
			if po.Has(decl.ParamRefMarker) {
				w.punct("@")
			}
		}
	}
	if po.Has(decl.ParamName) && p.Name != "" {
		if typed {
			w.space()
		}
		w.add(decl.PartParameterName, w.ident(p.Name), nil)
	}
	if po.Has(decl.ParamDefaultValue) && p.Default != "" {
		w.space()
		w.punct("=")
		w.space()
		w.literal(p.Default)
	}
}

func (w *writer) literal(v string) {
	switch {
	case v == "null" || v == "true" || v == "false" || v == "default":
		w.keyword(v)
	case strings.HasPrefix(v, `"`) || strings.HasPrefix(v, `@"`) || strings.HasPrefix(v, "'"):
		w.add(decl.PartStringLiteral, v, nil)
	case isNumeric(v):
		w.add(decl.PartNumericLiteral, v, nil)
	default:
		w.add(decl.PartText, v, nil)
	}
}

func isNumeric(v string) bool {
	v = strings.TrimPrefix(v, "-")
	v = strings.TrimPrefix(v, ".")
	return v != "" && unicode.IsDigit(rune(v[0]))
}

func (w *writer) member(m *decl.Member) error {
	enumMember := m.Containing.Kind == decl.Enum && m.Kind == decl.Field
	if !enumMember {
		if w.f.Members.Has(decl.IncludeAccessibility) && m.Access != decl.NotApplicable {
			w.keywords(m.Access.Effective().Keyword())
		}
		if w.f.Members.Has(decl.IncludeModifiers) {
			w.memberModifiers(m)
		}
	}

	switch m.Kind {
	case decl.Field:
		w.field(m, enumMember)
	case decl.Property:
		w.property(m)
	case decl.Event:
		w.event(m)
	case decl.Method:
		w.method(m)
	default:
		return fmt.Errorf("member %s: unsupported member kind %s", m.Name, m.Kind)
	}
	return nil
}

func (w *writer) memberModifiers(m *decl.Member) {
	if m.Const {
		w.keywords("const")
		return
	}
	if m.Static {
		w.keywords("static")
	}
	if m.Abstract && m.Containing.Kind != decl.Interface {
		w.keywords("abstract")
	}
	if m.Virtual {
		w.keywords("virtual")
	}
	if m.Sealed && m.Override {
		w.keywords("sealed")
	}
	if m.Override {
		w.keywords("override")
	}
	if m.ReadOnly {
		w.keywords("readonly")
	}
}

// memberPrefix writes the containing type and a dot when asked to.
func (w *writer) memberPrefix(m *decl.Member) {
	if !w.f.Members.Has(decl.IncludeContainingType) {
		return
	}
	w.typeName(m.Containing)
	w.punct(".")
}

func (w *writer) memberType(m *decl.Member) {
	if w.f.Members.Has(decl.IncludeType) && m.Type != nil {
		w.typeRef(m.Type)
		w.space()
	}
}

func (w *writer) field(m *decl.Member, enumMember bool) {
	if !enumMember {
		w.memberType(m)
	}
	w.memberPrefix(m)
	kind := decl.PartFieldName
	switch {
	case enumMember:
		kind = decl.PartEnumMemberName
	case m.Const:
		kind = decl.PartConstantName
	}
	w.add(kind, w.ident(m.Name), m)
	if w.f.Members.Has(decl.IncludeConstantValue) && (m.Const || enumMember) && m.ConstValue != "" {
		w.space()
		w.punct("=")
		w.space()
		w.literal(m.ConstValue)
	}
}

func (w *writer) property(m *decl.Member) {
	w.memberType(m)
	w.memberPrefix(m)
	if m.Indexer {
		w.add(decl.PartKeyword, "this", m)
		if w.f.Members.Has(decl.IncludeParameters) {
			w.punct("[")
			w.paramList(m.Params)
			w.punct("]")
		}
	} else {
		w.add(decl.PartPropertyName, w.ident(m.Name), m)
	}
	if w.f.Properties == decl.PropertyReadWriteDescriptor {
		w.accessors(m)
	}
}

func (w *writer) accessors(m *decl.Member) {
	w.space()
	w.punct("{")
	if m.Getter.Present && accessorVisible(m.Getter) {
		w.space()
		w.accessorAccess(m, m.Getter)
		w.keyword("get")
		w.punct(";")
	}
	if (m.Setter.Present || m.Init) && accessorVisible(m.Setter) {
		w.space()
		w.accessorAccess(m, m.Setter)
		if m.Init {
			w.keyword("init")
		} else {
			w.keyword("set")
		}
		w.punct(";")
	}
	w.space()
	w.punct("}")
}

func accessorVisible(a decl.Accessor) bool {
	return a.Access == decl.NotApplicable || a.Access.Visible()
}

func (w *writer) accessorAccess(m *decl.Member, a decl.Accessor) {
	if a.Access == decl.NotApplicable || a.Access.Effective() == m.Access.Effective() {
		return
	}
	if w.f.Members.Has(decl.IncludeAccessibility) {
		w.keywords(a.Access.Effective().Keyword())
	}
}

func (w *writer) event(m *decl.Member) {
	if w.f.Kinds.Has(decl.IncludeMemberKeyword) {
		w.keyword("event")
		w.space()
	}
	w.memberType(m)
	w.memberPrefix(m)
	w.add(decl.PartEventName, w.ident(m.Name), m)
}

func (w *writer) method(m *decl.Member) {
	switch m.MethodKind {
	case decl.Constructor:
		w.memberPrefix(m)
		w.add(decl.PartMethodName, w.ident(m.Containing.Name), m)
	case decl.Destructor:
		w.memberPrefix(m)
		w.punct("~")
		w.add(decl.PartMethodName, w.ident(m.Containing.Name), m)
	case decl.UserOperator:
		w.memberType(m)
		w.memberPrefix(m)
		w.keyword("operator")
		w.space()
		w.add(decl.PartOperator, m.Operator, m)
	case decl.Conversion:
		w.memberPrefix(m)
		op := m.Operator
		if op == "" {
			op = "implicit"
		}
		w.keyword(op)
		w.space()
		w.add(decl.PartKeyword, "operator", m)
		w.space()
		w.typeRef(m.Type)
	default:
		w.memberType(m)
		w.memberPrefix(m)
		w.add(decl.PartMethodName, w.ident(m.Name), m)
		w.typeParams(m.TypeParams, false)
	}
	if w.f.Members.Has(decl.IncludeParameters) {
		w.params(m.Params)
	}
	if w.f.Generics.Has(decl.IncludeTypeConstraints) {
		w.constraints(m.TypeParams, decl.Scope{
			Namespace:  m.Containing.Namespace,
			Type:       m.Containing,
			TypeParams: m.TypeParams,
		})
	}
}
