package csharp

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sourcegraph/conc/pool"

	"github.com/julianshen/apiview/internal/decl"
	"github.com/julianshen/apiview/internal/parser"
)

// LoaderConfig controls how sources are turned into a module.
type LoaderConfig struct {
	// Name and Version override the module identity. When empty they come
	// from a .csproj next to the sources, then from the directory name.
	Name    string
	Version string
	// Exclude holds glob patterns, relative to the source root, of files to
	// skip. DefaultExcludes is used when nil.
	Exclude []string
	// Concurrency bounds the number of files parsed at once.
	Concurrency int
	// References are modules whose types may be referenced from sources.
	References []*decl.Module
	// Dependencies override those read from the project file.
	Dependencies []decl.Dependency
}

// Loader builds declaration trees from C# sources.
type Loader struct {
	cfg     LoaderConfig
	exclude []compiledPattern
}

// NewLoader validates cfg and returns a Loader.
func NewLoader(cfg LoaderConfig) (*Loader, error) {
	patterns := cfg.Exclude
	if patterns == nil {
		patterns = DefaultExcludes
	}
	exclude, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	return &Loader{cfg: cfg, exclude: exclude}, nil
}

// Source is one named C# compilation unit.
type Source struct {
	Path string
	Data []byte
}

// LoadPath loads every C# file under path, or the single file path names.
func (l *Loader) LoadPath(ctx context.Context, path string) (*decl.Module, error) {
	files, err := discover(path, l.exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no C# sources found in %s", path)
	}

	name, version, deps := l.cfg.Name, l.cfg.Version, l.cfg.Dependencies
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	if proj := findProject(dir); proj != "" {
		p, err := ReadProject(proj)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = p.AssemblyName
		}
		if version == "" {
			version = p.Version
		}
		if deps == nil {
			deps = p.Dependencies
		}
	}
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", dir, err)
		}
		name = filepath.Base(abs)
	}

	sources := make([]Source, len(files))
	for i, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		sources[i] = Source{Path: f, Data: data}
	}

	mod, err := l.Load(ctx, name, version, sources)
	if err != nil {
		return nil, err
	}
	mod.Dependencies = deps
	return mod, nil
}

// Load builds a module from in-memory sources. Files are parsed
// concurrently but declarations are merged in the order given, so the
// resulting tree is deterministic.
func (l *Loader) Load(ctx context.Context, name, version string, sources []Source) (*decl.Module, error) {
	trees := make([]*parser.Tree, len(sources))
	errs := make([]error, len(sources))

	p := pool.New().WithMaxGoroutines(l.cfg.Concurrency)
	for i, src := range sources {
		p.Go(func() {
			tree, err := parser.NewParser().ParseCtx(ctx, src.Path, src.Data)
			trees[i], errs[i] = tree, err
		})
	}
	p.Wait()
	defer func() {
		for _, t := range trees {
			if t != nil {
				t.Close()
			}
		}
	}()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	mod := decl.NewModule(name, version)
	mod.Dependencies = l.cfg.Dependencies
	b := &builder{mod: mod}
	for i, tree := range trees {
		if tree.HasError() {
			log.Printf("warning: %s: syntax errors, declarations may be incomplete", sources[i].Path)
		}
		fb := &fileBuilder{builder: b, tree: tree, usings: tree.Usings()}
		fb.walk(tree.RootNode(), mod.Global, nil)
	}
	b.resolve(append([]*decl.Module{mod}, l.cfg.References...))
	return mod, nil
}

type pendingRef struct {
	ref   *decl.TypeRef
	scope decl.Scope
}

type baseFixup struct {
	t    *decl.Type
	refs []*decl.TypeRef
}

// builder accumulates declarations from all files of one module.
type builder struct {
	mod     *decl.Module
	pending []pendingRef
	bases   []baseFixup
}

// resolve binds every recorded type reference, then splits base lists into
// base class and interfaces now that targets are known.
func (b *builder) resolve(modules []*decl.Module) {
	r := decl.NewResolver(modules...)
	for _, p := range b.pending {
		r.Resolve(p.ref, p.scope)
	}
	for _, fx := range b.bases {
		refs := fx.refs
		if len(refs) == 0 {
			continue
		}
		switch fx.t.Kind {
		case decl.Class:
			if isClassRef(refs[0]) {
				fx.t.Base = refs[0]
				refs = refs[1:]
			}
		case decl.Enum:
			fx.t.Base = refs[0]
			refs = refs[1:]
		}
		fx.t.Interfaces = append(fx.t.Interfaces, refs...)
	}
}

// isClassRef guesses whether a base-list entry names a class. Unresolved
// names follow the IName convention for interfaces.
func isClassRef(ref *decl.TypeRef) bool {
	if ref.Target != nil {
		return ref.Target.Kind == decl.Class
	}
	if ref.Special != "" {
		return ref.Special == "object"
	}
	name := ref.Name
	if len(name) > 1 && name[0] == 'I' && name[1] >= 'A' && name[1] <= 'Z' {
		return false
	}
	return true
}

type fileBuilder struct {
	*builder
	tree   *parser.Tree
	usings []string
}

func (fb *fileBuilder) text(n *sitter.Node) string {
	return strings.TrimSpace(fb.tree.Content(n))
}

func (fb *fileBuilder) ref(text string, scope decl.Scope) *decl.TypeRef {
	ref := decl.ParseTypeRef(text)
	if ref != nil {
		fb.pending = append(fb.pending, pendingRef{ref: ref, scope: scope})
	}
	return ref
}

func (fb *fileBuilder) scope(ns *decl.Namespace, t *decl.Type, tps []decl.TypeParam) decl.Scope {
	return decl.Scope{Namespace: ns, Type: t, TypeParams: tps, Usings: fb.usings}
}

var typeNodes = map[string]bool{
	"class_declaration":         true,
	"struct_declaration":        true,
	"interface_declaration":     true,
	"enum_declaration":          true,
	"record_declaration":        true,
	"record_struct_declaration": true,
	"delegate_declaration":      true,
}

// walk visits the top-level or namespace-level declarations under node.
func (fb *fileBuilder) walk(node *sitter.Node, ns *decl.Namespace, container *decl.Type) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch typ := child.Type(); {
		case typ == "namespace_declaration":
			inner := ns.Namespace(fb.text(child.ChildByFieldName("name")))
			body := child.ChildByFieldName("body")
			if body == nil {
				body = parser.ChildByType(child, "declaration_list")
			}
			if body != nil {
				fb.walk(body, inner, nil)
			}
		case typ == "file_scoped_namespace_declaration":
			ns = ns.Namespace(fb.text(child.ChildByFieldName("name")))
			fb.walk(child, ns, nil)
		case typ == "global_attribute" || typ == "global_attribute_list" || typ == "attribute_list":
			if isAssemblyTarget(fb.text(child)) {
				fb.mod.Attributes = append(fb.mod.Attributes, fb.attributes(child)...)
			}
		case typeNodes[typ]:
			fb.typeDecl(child, ns, container)
		}
	}
}

func isAssemblyTarget(text string) bool {
	text = strings.TrimLeft(text, "[ \t")
	return strings.HasPrefix(text, "assembly") && strings.Contains(text, ":")
}

// attributes collects every attribute below node.
func (fb *fileBuilder) attributes(node *sitter.Node) []decl.Attribute {
	var attrs []decl.Attribute
	parser.Walk(node, func(n *sitter.Node) {
		if n.Type() != "attribute" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			nameNode = n.NamedChild(0)
		}
		name := fb.text(nameNode)
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		name = strings.TrimSuffix(name, "Attribute")

		attr := decl.Attribute{Name: name}
		if args := parser.ChildByType(n, "attribute_argument_list"); args != nil {
			for _, a := range parser.ChildrenByType(args, "attribute_argument") {
				attr.Args = append(attr.Args, unquote(fb.text(a)))
				attr.Source = append(attr.Source, fb.text(a))
			}
		}
		attrs = append(attrs, attr)
	})
	return attrs
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}

var modifierKeywords = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true, "file": true,
	"static": true, "readonly": true, "const": true, "abstract": true, "sealed": true,
	"virtual": true, "override": true, "new": true, "partial": true, "async": true,
	"extern": true, "volatile": true, "unsafe": true, "required": true,
}

// modifiers returns the modifier keywords applied to a declaration.
func (fb *fileBuilder) modifiers(node *sitter.Node) map[string]bool {
	mods := make(map[string]bool)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch typ := child.Type(); {
		case typ == "modifier":
			for _, m := range strings.Fields(fb.text(child)) {
				mods[m] = true
			}
		case modifierKeywords[typ]:
			mods[typ] = true
		}
	}
	return mods
}

// accessibility derives the declared accessibility from modifiers. ok is
// false when no access modifier is present.
func accessibility(mods map[string]bool) (decl.Accessibility, bool) {
	switch {
	case mods["protected"] && mods["internal"]:
		return decl.ProtectedOrInternal, true
	case mods["private"] && mods["protected"]:
		return decl.ProtectedAndInternal, true
	case mods["public"]:
		return decl.Public, true
	case mods["protected"]:
		return decl.Protected, true
	case mods["internal"]:
		return decl.Internal, true
	case mods["private"], mods["file"]:
		return decl.Private, true
	}
	return decl.NotApplicable, false
}

func defaultMemberAccess(owner decl.TypeKind) decl.Accessibility {
	switch owner {
	case decl.Interface, decl.Enum:
		return decl.Public
	}
	return decl.Private
}

func typeKindOf(node *sitter.Node) (decl.TypeKind, bool) {
	switch node.Type() {
	case "class_declaration":
		return decl.Class, false
	case "struct_declaration":
		return decl.Struct, false
	case "interface_declaration":
		return decl.Interface, false
	case "enum_declaration":
		return decl.Enum, false
	case "delegate_declaration":
		return decl.Delegate, false
	case "record_struct_declaration":
		return decl.Struct, true
	}
	// record_declaration, possibly "record struct"
	if parser.ChildByType(node, "struct") != nil {
		return decl.Struct, true
	}
	return decl.Class, true
}

func (fb *fileBuilder) typeDecl(node *sitter.Node, ns *decl.Namespace, container *decl.Type) {
	name := fb.text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}
	kind, record := typeKindOf(node)
	mods := fb.modifiers(node)
	access, explicit := accessibility(mods)
	if !explicit {
		access = decl.Internal
		if container != nil {
			access = decl.Private
		}
	}
	tps := fb.typeParams(node)

	t := fb.existing(name, len(tps), ns, container)
	if t == nil {
		t = &decl.Type{Name: name, Kind: kind, Access: access, TypeParams: tps, Record: record}
		if container != nil {
			container.AddNested(t)
		} else {
			ns.AddType(t)
		}
	} else if explicit {
		// partial declarations: the first explicit modifier wins
		if t.Access == decl.Internal || t.Access == decl.Private {
			t.Access = access
		}
	}
	t.Abstract = t.Abstract || mods["abstract"]
	t.Sealed = t.Sealed || mods["sealed"]
	t.Static = t.Static || mods["static"]
	t.ReadOnly = t.ReadOnly || mods["readonly"]
	t.Attributes = append(t.Attributes, fb.declAttributes(node)...)

	scope := fb.scope(ns, t, nil)
	fb.constraints(node, t.TypeParams)

	if bl := parser.ChildByType(node, "base_list"); bl != nil {
		var refs []*decl.TypeRef
		for _, entry := range splitTopLevel(strings.TrimPrefix(fb.text(bl), ":"), ',') {
			entry = stripArguments(entry)
			if ref := fb.ref(entry, scope); ref != nil {
				refs = append(refs, ref)
			}
		}
		fb.bases = append(fb.bases, baseFixup{t: t, refs: refs})
	}

	if kind == decl.Delegate {
		t.Invoke = &decl.Member{
			Name:       "Invoke",
			Kind:       decl.Method,
			Access:     decl.Public,
			Type:       fb.ref(fb.returnType(node), scope),
			Params:     fb.params(node.ChildByFieldName("parameters"), scope),
			Containing: t,
		}
		return
	}

	if record {
		fb.positional(node, t, scope)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		for _, typ := range []string{"declaration_list", "enum_member_declaration_list"} {
			if body = parser.ChildByType(node, typ); body != nil {
				break
			}
		}
	}
	if body != nil {
		fb.members(body, t, ns)
	}
}

// existing finds an already declared type for partial declarations.
func (fb *fileBuilder) existing(name string, arity int, ns *decl.Namespace, container *decl.Type) *decl.Type {
	candidates := ns.Types
	if container != nil {
		candidates = container.Nested
	}
	for _, t := range candidates {
		if t.Name == name && len(t.TypeParams) == arity {
			return t
		}
	}
	return nil
}

func (fb *fileBuilder) declAttributes(node *sitter.Node) []decl.Attribute {
	var attrs []decl.Attribute
	for _, al := range parser.ChildrenByType(node, "attribute_list") {
		// [return: X] and friends describe something other than node.
		if parser.ChildByType(al, "attribute_target_specifier") != nil {
			continue
		}
		attrs = append(attrs, fb.attributes(al)...)
	}
	return attrs
}

func (fb *fileBuilder) typeParams(node *sitter.Node) []decl.TypeParam {
	tpl := node.ChildByFieldName("type_parameters")
	if tpl == nil {
		tpl = parser.ChildByType(node, "type_parameter_list")
	}
	if tpl == nil {
		return nil
	}
	var tps []decl.TypeParam
	for _, tp := range parser.ChildrenByType(tpl, "type_parameter") {
		fields := strings.Fields(fb.text(tp))
		if len(fields) == 0 {
			continue
		}
		p := decl.TypeParam{Name: fields[len(fields)-1]}
		if len(fields) > 1 && (fields[len(fields)-2] == "in" || fields[len(fields)-2] == "out") {
			p.Variance = fields[len(fields)-2]
		}
		tps = append(tps, p)
	}
	return tps
}

// constraints attaches "where" clauses to the matching type parameters.
func (fb *fileBuilder) constraints(node *sitter.Node, tps []decl.TypeParam) {
	for _, clause := range parser.ChildrenByType(node, "type_parameter_constraints_clause") {
		text := strings.TrimPrefix(fb.text(clause), "where")
		name, list, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		for i := range tps {
			if tps[i].Name != name {
				continue
			}
			for _, c := range splitTopLevel(list, ',') {
				tps[i].Constraints = append(tps[i].Constraints, strings.Join(strings.Fields(c), ""))
			}
		}
	}
}

func (fb *fileBuilder) returnType(node *sitter.Node) string {
	for _, field := range []string{"returns", "return_type", "type"} {
		if n := node.ChildByFieldName(field); n != nil {
			return fb.text(n)
		}
	}
	return "void"
}

func (fb *fileBuilder) params(list *sitter.Node, scope decl.Scope) []decl.Param {
	if list == nil {
		return nil
	}
	var params []decl.Param
	for i := 0; i < int(list.NamedChildCount()); i++ {
		pn := list.NamedChild(i)
		if pn == nil || (pn.Type() != "parameter" && pn.Type() != "parameter_array") {
			continue
		}
		p := decl.Param{Name: fb.text(pn.ChildByFieldName("name"))}
		if pn.Type() == "parameter_array" {
			p.Modifier = "params"
		}
		typeNode := pn.ChildByFieldName("type")
		for j := 0; j < int(pn.ChildCount()); j++ {
			c := pn.Child(j)
			switch c.Type() {
			case "ref", "out", "in", "this", "params":
				if p.Modifier == "" {
					p.Modifier = c.Type()
				}
			case "parameter_modifier", "modifier":
				if p.Modifier == "" {
					p.Modifier = fb.text(c)
				}
			case "array_type":
				if typeNode == nil {
					typeNode = c
				}
			case "identifier":
				if p.Name == "" {
					p.Name = fb.text(c)
				}
			}
		}
		if typeNode != nil {
			p.Type = fb.ref(fb.text(typeNode), scope)
		}
		p.Default = fb.valueAfterEquals(pn)
		params = append(params, p)
	}
	// The grammar puts a params array's type and name fields directly on
	// the list instead of wrapping them in a parameter node.
	if typeNode := list.ChildByFieldName("type"); typeNode != nil {
		params = append(params, decl.Param{
			Modifier: "params",
			Type:     fb.ref(fb.text(typeNode), scope),
			Name:     fb.text(list.ChildByFieldName("name")),
		})
	}
	return params
}

// valueAfterEquals returns the initializer text of a declarator or
// parameter, or "" when there is none.
func (fb *fileBuilder) valueAfterEquals(node *sitter.Node) string {
	if evc := parser.ChildByType(node, "equals_value_clause"); evc != nil {
		return strings.TrimSpace(strings.TrimPrefix(fb.text(evc), "="))
	}
	seen := false
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c.Type() == "=" {
			seen = true
			continue
		}
		if seen && c.IsNamed() {
			return fb.text(c)
		}
	}
	return ""
}

// positional adds the constructor and init-only properties of a record's
// parameter list.
func (fb *fileBuilder) positional(node *sitter.Node, t *decl.Type, scope decl.Scope) {
	list := parser.ChildByType(node, "parameter_list")
	if list == nil {
		return
	}
	params := fb.params(list, scope)
	t.AddMember(&decl.Member{
		Name:       t.Name,
		Kind:       decl.Method,
		MethodKind: decl.Constructor,
		Access:     decl.Public,
		Params:     params,
	})
	for _, p := range params {
		t.AddMember(&decl.Member{
			Name:   p.Name,
			Kind:   decl.Property,
			Access: decl.Public,
			Type:   p.Type,
			Getter: decl.Accessor{Present: true},
			Init:   true,
		})
	}
}

func (fb *fileBuilder) members(body *sitter.Node, t *decl.Type, ns *decl.Namespace) {
	ordinal := int64(0)
	for i := 0; i < int(body.NamedChildCount()); i++ {
		n := body.NamedChild(i)
		if n == nil {
			continue
		}
		typ := n.Type()
		if typeNodes[typ] {
			fb.typeDecl(n, ns, t)
			continue
		}
		if typ == "enum_member_declaration" {
			ordinal = fb.enumMember(n, t, ordinal)
			continue
		}

		mods := fb.modifiers(n)
		access, ok := accessibility(mods)
		if !ok {
			access = defaultMemberAccess(t.Kind)
		}
		if parser.ChildByType(n, "explicit_interface_specifier") != nil || n.ChildByFieldName("explicit_interface_specifier") != nil {
			access = decl.Private
		}
		base := decl.Member{
			Access:     access,
			Static:     mods["static"],
			Abstract:   mods["abstract"],
			Virtual:    mods["virtual"],
			Override:   mods["override"],
			Sealed:     mods["sealed"],
			ReadOnly:   mods["readonly"],
			Const:      mods["const"],
			Attributes: fb.declAttributes(n),
		}
		scope := fb.scope(ns, t, nil)

		switch typ {
		case "field_declaration", "event_field_declaration":
			kind := decl.Field
			if typ == "event_field_declaration" {
				kind = decl.Event
			}
			fb.variables(n, t, base, kind, scope)
		case "event_declaration":
			m := base
			m.Kind = decl.Event
			m.Name = fb.text(n.ChildByFieldName("name"))
			m.Type = fb.ref(fb.text(n.ChildByFieldName("type")), scope)
			t.AddMember(&m)
		case "property_declaration":
			m := base
			m.Kind = decl.Property
			m.Name = fb.text(n.ChildByFieldName("name"))
			m.Type = fb.ref(fb.text(n.ChildByFieldName("type")), scope)
			fb.accessors(n, &m)
			t.AddMember(&m)
		case "indexer_declaration":
			m := base
			m.Kind = decl.Property
			m.Name = "this[]"
			m.Indexer = true
			m.Type = fb.ref(fb.text(n.ChildByFieldName("type")), scope)
			list := n.ChildByFieldName("parameters")
			if list == nil {
				list = parser.ChildByType(n, "bracketed_parameter_list")
			}
			m.Params = fb.params(list, scope)
			fb.accessors(n, &m)
			t.AddMember(&m)
		case "method_declaration":
			m := base
			m.Kind = decl.Method
			m.Name = fb.text(n.ChildByFieldName("name"))
			m.TypeParams = fb.typeParams(n)
			fb.constraints(n, m.TypeParams)
			mscope := fb.scope(ns, t, m.TypeParams)
			m.Type = fb.ref(fb.returnType(n), mscope)
			m.Params = fb.params(n.ChildByFieldName("parameters"), mscope)
			t.AddMember(&m)
		case "constructor_declaration", "destructor_declaration":
			m := base
			m.Kind = decl.Method
			m.Name = t.Name
			m.MethodKind = decl.Constructor
			if typ == "destructor_declaration" {
				m.MethodKind = decl.Destructor
				m.Access = decl.Protected
			}
			m.Params = fb.params(n.ChildByFieldName("parameters"), scope)
			t.AddMember(&m)
		case "operator_declaration":
			m := base
			m.Kind = decl.Method
			m.MethodKind = decl.UserOperator
			m.Operator = fb.operatorToken(n)
			m.Name = "op " + m.Operator
			m.Type = fb.ref(fb.returnType(n), scope)
			m.Params = fb.params(n.ChildByFieldName("parameters"), scope)
			t.AddMember(&m)
		case "conversion_operator_declaration":
			m := base
			m.Kind = decl.Method
			m.MethodKind = decl.Conversion
			m.Operator = "implicit"
			if parser.ChildByType(n, "explicit") != nil || strings.Contains(fb.text(n), "explicit operator") {
				m.Operator = "explicit"
			}
			m.Name = m.Operator + " operator"
			m.Type = fb.ref(fb.returnType(n), scope)
			m.Params = fb.params(n.ChildByFieldName("parameters"), scope)
			t.AddMember(&m)
		}
	}
}

// variables adds one member per declarator of a field or event field.
func (fb *fileBuilder) variables(n *sitter.Node, t *decl.Type, base decl.Member, kind decl.MemberKind, scope decl.Scope) {
	vd := parser.ChildByType(n, "variable_declaration")
	if vd == nil {
		return
	}
	typeText := fb.text(vd.ChildByFieldName("type"))
	for _, d := range parser.ChildrenByType(vd, "variable_declarator") {
		name := fb.text(d.ChildByFieldName("name"))
		if name == "" {
			name = fb.text(parser.ChildByType(d, "identifier"))
		}
		if name == "" {
			continue
		}
		m := base
		m.Kind = kind
		m.Name = name
		m.Type = fb.ref(typeText, scope)
		if m.Const {
			m.Static = true
			m.ConstValue = fb.valueAfterEquals(d)
		}
		t.AddMember(&m)
	}
}

// accessors fills in the getter and setter of a property or indexer.
func (fb *fileBuilder) accessors(n *sitter.Node, m *decl.Member) {
	list := n.ChildByFieldName("accessors")
	if list == nil {
		list = parser.ChildByType(n, "accessor_list")
	}
	if list == nil {
		// expression-bodied: read only
		m.Getter = decl.Accessor{Present: true}
		return
	}
	for _, a := range parser.ChildrenByType(list, "accessor_declaration") {
		access, _ := accessibility(fb.modifiers(a))
		acc := decl.Accessor{Present: true, Access: access}
		switch fb.accessorKeyword(a) {
		case "get":
			m.Getter = acc
		case "set":
			m.Setter = acc
		case "init":
			m.Setter = acc
			m.Init = true
		}
	}
}

func (fb *fileBuilder) accessorKeyword(a *sitter.Node) string {
	if n := a.ChildByFieldName("name"); n != nil {
		return fb.text(n)
	}
	for i := 0; i < int(a.ChildCount()); i++ {
		switch typ := a.Child(i).Type(); typ {
		case "get", "set", "init", "add", "remove":
			return typ
		}
	}
	for _, f := range strings.FieldsFunc(fb.text(a), func(r rune) bool {
		return r == ' ' || r == ';' || r == '{' || r == '=' || r == '>'
	}) {
		switch f {
		case "get", "set", "init":
			return f
		}
	}
	return ""
}

func (fb *fileBuilder) operatorToken(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return fb.text(op)
	}
	text := fb.text(n)
	if _, rest, ok := strings.Cut(text, "operator"); ok {
		if op, _, ok := strings.Cut(rest, "("); ok {
			return strings.TrimSpace(op)
		}
	}
	return ""
}

// enumMember adds an enum member and returns the implicit value of the next
// one.
func (fb *fileBuilder) enumMember(n *sitter.Node, t *decl.Type, next int64) int64 {
	name := fb.text(n.ChildByFieldName("name"))
	if name == "" {
		name = fb.text(parser.ChildByType(n, "identifier"))
	}
	if name == "" {
		return next
	}
	value := fb.valueAfterEquals(n)
	if value == "" {
		value = fb.text(n.ChildByFieldName("value"))
	}
	if value == "" {
		value = strconv.FormatInt(next, 10)
	}
	if v, err := strconv.ParseInt(value, 0, 64); err == nil {
		next = v
	}
	t.AddMember(&decl.Member{
		Name:       name,
		Kind:       decl.Field,
		Access:     decl.Public,
		Static:     true,
		Const:      true,
		ConstValue: value,
		Attributes: fb.declAttributes(n),
	})
	return next + 1
}

// splitTopLevel splits s at sep characters not nested in <>, () or [].
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}

// stripArguments drops a primary constructor argument list such as the
// "(name)" in "Base(name)".
func stripArguments(entry string) string {
	if i := strings.Index(entry, "("); i > 0 {
		return strings.TrimSpace(entry[:i])
	}
	return entry
}
