package decl

import "strconv"

// Scope is the lexical context a type reference appears in.
type Scope struct {
	Namespace *Namespace
	// Type is the innermost type enclosing the reference, if any.
	Type *Type
	// TypeParams are generic parameters of the enclosing member.
	TypeParams []TypeParam
	// Usings are namespaces imported into the source file.
	Usings []string
}

// Resolver binds named type references to declarations using C# lookup
// order: enclosing types, enclosing namespaces, then imported namespaces.
type Resolver struct {
	index map[string]*Type
}

// NewResolver indexes every type of the given modules. Earlier modules win
// when two modules declare the same full name.
func NewResolver(modules ...*Module) *Resolver {
	r := &Resolver{index: make(map[string]*Type)}
	for _, m := range modules {
		if m == nil || m.Global == nil {
			continue
		}
		Walk(m.Global, func(t *Type) {
			key := typeKey(FullTypeName(t), len(t.TypeParams))
			if _, exists := r.index[key]; !exists {
				r.index[key] = t
			}
		})
	}
	return r
}

// Lookup finds a type by its dotted full name and generic arity.
func (r *Resolver) Lookup(fullName string, arity int) *Type {
	return r.index[typeKey(fullName, arity)]
}

// Resolve binds ref and its type arguments in place.
func (r *Resolver) Resolve(ref *TypeRef, s Scope) {
	if ref == nil {
		return
	}
	for _, arg := range ref.Args {
		r.Resolve(arg, s)
	}
	if ref.Target != nil || ref.TypeParam || ref.Special != "" || ref.Raw != "" || ref.Name == "" {
		return
	}
	arity := len(ref.Args)

	if ref.Namespace == "" && arity == 0 && inTypeParams(ref.Name, s) {
		ref.TypeParam = true
		return
	}

	if t := r.find(ref, arity, s); t != nil {
		ref.Target = t
		ref.Namespace = ""
	}
}

func (r *Resolver) find(ref *TypeRef, arity int, s Scope) *Type {
	name := ref.Name
	if ref.Namespace != "" {
		name = ref.Namespace + "." + ref.Name
	}

	if ref.Namespace == "" {
		for t := s.Type; t != nil; t = t.Containing {
			for _, n := range t.Nested {
				if n.Name == ref.Name && len(n.TypeParams) == arity {
					return n
				}
			}
			if t.Name == ref.Name && len(t.TypeParams) == arity {
				return t
			}
		}
	}
	for ns := s.Namespace; ns != nil; ns = ns.Parent {
		if t := r.Lookup(joinName(ns.FullName(), name), arity); t != nil {
			return t
		}
	}
	if s.Namespace == nil {
		if t := r.Lookup(name, arity); t != nil {
			return t
		}
	}
	for _, u := range s.Usings {
		if t := r.Lookup(joinName(u, name), arity); t != nil {
			return t
		}
	}
	return nil
}

func inTypeParams(name string, s Scope) bool {
	for _, tp := range s.TypeParams {
		if tp.Name == name {
			return true
		}
	}
	for t := s.Type; t != nil; t = t.Containing {
		for _, tp := range t.TypeParams {
			if tp.Name == name {
				return true
			}
		}
	}
	return false
}

// FullTypeName returns the dotted name of t including its namespace and
// containing types, without generic parameters.
func FullTypeName(t *Type) string {
	if t.Containing != nil {
		return FullTypeName(t.Containing) + "." + t.Name
	}
	if t.Namespace == nil {
		return t.Name
	}
	return joinName(t.Namespace.FullName(), t.Name)
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func typeKey(fullName string, arity int) string {
	if arity == 0 {
		return fullName
	}
	return fullName + "`" + strconv.Itoa(arity)
}
