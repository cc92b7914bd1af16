package decl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML description of a module's declarations. It lets a
// module be described without compiling sources, e.g. when metadata has
// already been dumped by another front end.
type Manifest struct {
	Name         string              `yaml:"name"`
	Version      string              `yaml:"version"`
	Usings       []string            `yaml:"usings"`
	Dependencies []Dependency        `yaml:"dependencies"`
	Attributes   []Attribute         `yaml:"attributes"`
	Types        []ManifestType      `yaml:"types"`
	Namespaces   []ManifestNamespace `yaml:"namespaces"`
	// References are modules whose types may be referenced but which are
	// not part of the extracted surface.
	References []Manifest `yaml:"references"`
}

// ManifestNamespace lists the types declared in one namespace.
type ManifestNamespace struct {
	Name  string         `yaml:"name"`
	Types []ManifestType `yaml:"types"`
}

// ManifestType describes a type declaration.
type ManifestType struct {
	Name       string              `yaml:"name"`
	Kind       string              `yaml:"kind"`
	Access     string              `yaml:"access"`
	TypeParams []ManifestTypeParam `yaml:"typeParams"`
	Base       string              `yaml:"base"`
	Interfaces []string            `yaml:"interfaces"`
	Abstract   bool                `yaml:"abstract"`
	Sealed     bool                `yaml:"sealed"`
	Static     bool                `yaml:"static"`
	ReadOnly   bool                `yaml:"readonly"`
	Record     bool                `yaml:"record"`
	Returns    string              `yaml:"returns"`
	Params     []ManifestParam     `yaml:"params"`
	Attributes []Attribute         `yaml:"attributes"`
	Members    []ManifestMember    `yaml:"members"`
	Nested     []ManifestType      `yaml:"nested"`
}

// ManifestTypeParam describes a generic parameter.
type ManifestTypeParam struct {
	Name        string   `yaml:"name"`
	Variance    string   `yaml:"variance"`
	Constraints []string `yaml:"constraints"`
}

// ManifestMember describes a member declaration.
type ManifestMember struct {
	Name       string              `yaml:"name"`
	Kind       string              `yaml:"kind"`
	MethodKind string              `yaml:"methodKind"`
	Access     string              `yaml:"access"`
	Type       string              `yaml:"type"`
	Params     []ManifestParam     `yaml:"params"`
	TypeParams []ManifestTypeParam `yaml:"typeParams"`
	Implicit   bool                `yaml:"implicit"`
	Static     bool                `yaml:"static"`
	Abstract   bool                `yaml:"abstract"`
	Virtual    bool                `yaml:"virtual"`
	Override   bool                `yaml:"override"`
	Sealed     bool                `yaml:"sealed"`
	ReadOnly   bool                `yaml:"readonly"`
	Const      bool                `yaml:"const"`
	Value      string              `yaml:"value"`
	Get        string              `yaml:"get"`
	Set        string              `yaml:"set"`
	Init       bool                `yaml:"init"`
	Indexer    bool                `yaml:"indexer"`
	Operator   string              `yaml:"operator"`
	Attributes []Attribute         `yaml:"attributes"`
}

// ManifestParam describes a parameter.
type ManifestParam struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Modifier string `yaml:"modifier"`
	Default  string `yaml:"default"`
}

// LoadManifest reads a YAML manifest from path and builds its module.
func LoadManifest(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest builds a module from YAML manifest bytes. Type references
// are resolved against the module itself and then its references.
func ParseManifest(data []byte) (*Module, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("parse manifest: module name is required")
	}

	refs := make([]*Module, 0, len(m.References))
	for _, rm := range m.References {
		mod, pending, err := buildManifest(rm)
		if err != nil {
			return nil, fmt.Errorf("reference %s: %w", rm.Name, err)
		}
		resolvePending(NewResolver(mod), pending)
		refs = append(refs, mod)
	}

	mod, pending, err := buildManifest(m)
	if err != nil {
		return nil, err
	}
	resolvePending(NewResolver(append([]*Module{mod}, refs...)...), pending)
	return mod, nil
}

type pendingRef struct {
	ref   *TypeRef
	scope Scope
}

func resolvePending(r *Resolver, pending []pendingRef) {
	for _, p := range pending {
		r.Resolve(p.ref, p.scope)
	}
}

type manifestBuilder struct {
	usings  []string
	pending []pendingRef
}

func buildManifest(m Manifest) (*Module, []pendingRef, error) {
	mod := NewModule(m.Name, m.Version)
	mod.Dependencies = m.Dependencies
	mod.Attributes = m.Attributes

	b := &manifestBuilder{usings: m.Usings}
	for _, mt := range m.Types {
		t, err := b.buildType(mt, mod.Global, nil)
		if err != nil {
			return nil, nil, err
		}
		mod.Global.AddType(t)
	}
	for _, mn := range m.Namespaces {
		ns := mod.Global.Namespace(mn.Name)
		for _, mt := range mn.Types {
			t, err := b.buildType(mt, ns, nil)
			if err != nil {
				return nil, nil, err
			}
			ns.AddType(t)
		}
	}
	return mod, b.pending, nil
}

func (b *manifestBuilder) ref(text string, scope Scope) *TypeRef {
	ref := ParseTypeRef(text)
	if ref != nil {
		b.pending = append(b.pending, pendingRef{ref: ref, scope: scope})
	}
	return ref
}

func (b *manifestBuilder) buildType(mt ManifestType, ns *Namespace, containing *Type) (*Type, error) {
	kind := Class
	if mt.Kind != "" {
		k, ok := ParseTypeKind(mt.Kind)
		if !ok {
			return nil, fmt.Errorf("type %s: unknown kind %q", mt.Name, mt.Kind)
		}
		kind = k
	}
	access, err := ParseAccessibility(mt.Access)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", mt.Name, err)
	}
	if mt.Access == "" {
		access = Internal
		if containing != nil {
			access = Private
		}
	}

	t := &Type{
		Name:       mt.Name,
		Kind:       kind,
		Access:     access,
		TypeParams: manifestTypeParams(mt.TypeParams),
		Abstract:   mt.Abstract,
		Sealed:     mt.Sealed,
		Static:     mt.Static,
		ReadOnly:   mt.ReadOnly,
		Record:     mt.Record,
		Attributes: mt.Attributes,
		Namespace:  ns,
		Containing: containing,
	}
	scope := Scope{Namespace: ns, Type: t, Usings: b.usings}
	if mt.Base != "" {
		t.Base = b.ref(mt.Base, scope)
	}
	for _, iface := range mt.Interfaces {
		t.Interfaces = append(t.Interfaces, b.ref(iface, scope))
	}

	if kind == Delegate {
		t.Invoke = &Member{
			Name:       "Invoke",
			Kind:       Method,
			Access:     Public,
			Type:       b.ref(orVoid(mt.Returns), scope),
			Params:     b.params(mt.Params, scope),
			Containing: t,
		}
	}

	for _, mm := range mt.Members {
		m, err := b.buildMember(mm, t, scope, kind)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", mt.Name, err)
		}
		t.AddMember(m)
	}
	for _, nt := range mt.Nested {
		n, err := b.buildType(nt, ns, t)
		if err != nil {
			return nil, err
		}
		t.AddNested(n)
	}
	return t, nil
}

func (b *manifestBuilder) buildMember(mm ManifestMember, t *Type, typeScope Scope, owner TypeKind) (*Member, error) {
	kind := Field
	if mm.Kind != "" {
		k, ok := ParseMemberKind(mm.Kind)
		if !ok {
			return nil, fmt.Errorf("member %s: unknown kind %q", mm.Name, mm.Kind)
		}
		kind = k
	}
	methodKind, ok := ParseMethodKind(mm.MethodKind)
	if !ok {
		return nil, fmt.Errorf("member %s: unknown method kind %q", mm.Name, mm.MethodKind)
	}
	access, err := ParseAccessibility(mm.Access)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", mm.Name, err)
	}
	if mm.Access == "" {
		access = defaultMemberAccess(owner)
	}

	m := &Member{
		Name:       mm.Name,
		Kind:       kind,
		MethodKind: methodKind,
		Access:     access,
		TypeParams: manifestTypeParams(mm.TypeParams),
		Attributes: mm.Attributes,
		Implicit:   mm.Implicit,
		Static:     mm.Static,
		Abstract:   mm.Abstract,
		Virtual:    mm.Virtual,
		Override:   mm.Override,
		Sealed:     mm.Sealed,
		ReadOnly:   mm.ReadOnly,
		Const:      mm.Const,
		ConstValue: mm.Value,
		Init:       mm.Init,
		Indexer:    mm.Indexer,
		Operator:   mm.Operator,
		Containing: t,
	}
	scope := typeScope
	scope.TypeParams = m.TypeParams
	if mm.Type != "" {
		m.Type = b.ref(mm.Type, scope)
	} else if kind == Method && methodKind != Constructor && methodKind != Destructor {
		m.Type = b.ref("void", scope)
	}
	m.Params = b.params(mm.Params, scope)

	if kind == Property {
		if m.Getter, err = manifestAccessor(mm.Get, mm.Set == "" && !mm.Init); err != nil {
			return nil, fmt.Errorf("member %s getter: %w", mm.Name, err)
		}
		if m.Setter, err = manifestAccessor(mm.Set, false); err != nil {
			return nil, fmt.Errorf("member %s setter: %w", mm.Name, err)
		}
	}
	if owner == Enum && kind == Field {
		m.Const = true
		m.Static = true
	}
	return m, nil
}

// manifestAccessor parses "", "yes"/"true", or an accessibility keyword.
func manifestAccessor(s string, fallback bool) (Accessor, error) {
	switch s {
	case "":
		return Accessor{Present: fallback}, nil
	case "yes", "true":
		return Accessor{Present: true}, nil
	case "no", "false":
		return Accessor{}, nil
	}
	a, err := ParseAccessibility(s)
	if err != nil {
		return Accessor{}, err
	}
	return Accessor{Present: true, Access: a}, nil
}

func (b *manifestBuilder) params(mps []ManifestParam, scope Scope) []Param {
	if len(mps) == 0 {
		return nil
	}
	params := make([]Param, 0, len(mps))
	for _, mp := range mps {
		params = append(params, Param{
			Name:     mp.Name,
			Type:     b.ref(mp.Type, scope),
			Modifier: mp.Modifier,
			Default:  mp.Default,
		})
	}
	return params
}

func manifestTypeParams(mtps []ManifestTypeParam) []TypeParam {
	if len(mtps) == 0 {
		return nil
	}
	tps := make([]TypeParam, 0, len(mtps))
	for _, mtp := range mtps {
		tps = append(tps, TypeParam(mtp))
	}
	return tps
}

// defaultMemberAccess is the accessibility of a member declared without a
// modifier.
func defaultMemberAccess(owner TypeKind) Accessibility {
	switch owner {
	case Interface, Enum:
		return Public
	}
	return Private
}

func orVoid(s string) string {
	if s == "" {
		return "void"
	}
	return s
}
