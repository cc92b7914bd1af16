package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildResolveFixture() (*Module, *Module) {
	lib := NewModule("Contoso.Core", "1.0.0")
	core := lib.Global.Namespace("Contoso.Core")
	core.AddType(&Type{Name: "Widget", Kind: Class, Access: Public})
	core.AddType(&Type{Name: "Box", Kind: Class, Access: Public, TypeParams: []TypeParam{{Name: "T"}}})

	other := NewModule("Other", "2.0.0")
	other.Global.Namespace("Other.Util").AddType(&Type{Name: "Helper", Kind: Class, Access: Public})
	return lib, other
}

func TestResolverLookup(t *testing.T) {
	lib, other := buildResolveFixture()
	r := NewResolver(lib, other)

	assert.NotNil(t, r.Lookup("Contoso.Core.Widget", 0))
	assert.NotNil(t, r.Lookup("Contoso.Core.Box", 1))
	assert.Nil(t, r.Lookup("Contoso.Core.Box", 0))
	assert.NotNil(t, r.Lookup("Other.Util.Helper", 0))
}

func TestResolveEnclosingNamespace(t *testing.T) {
	lib, _ := buildResolveFixture()
	r := NewResolver(lib)
	ns := lib.Global.Namespace("Contoso.Core")

	ref := ParseTypeRef("Box<Widget>")
	r.Resolve(ref, Scope{Namespace: ns})

	require.NotNil(t, ref.Target)
	assert.Equal(t, "Box", ref.Target.Name)
	require.NotNil(t, ref.Args[0].Target)
	assert.Equal(t, "Widget", ref.Args[0].Target.Name)
}

func TestResolveUsings(t *testing.T) {
	lib, other := buildResolveFixture()
	r := NewResolver(lib, other)
	ns := lib.Global.Namespace("Contoso.Core")

	ref := ParseTypeRef("Helper")
	r.Resolve(ref, Scope{Namespace: ns, Usings: []string{"Other.Util"}})
	require.NotNil(t, ref.Target)
	assert.Same(t, other, ref.Target.Module())

	unresolved := ParseTypeRef("Helper")
	r.Resolve(unresolved, Scope{Namespace: ns})
	assert.Nil(t, unresolved.Target)
}

func TestResolveTypeParameters(t *testing.T) {
	lib, _ := buildResolveFixture()
	r := NewResolver(lib)
	box := r.Lookup("Contoso.Core.Box", 1)

	ref := ParseTypeRef("T")
	r.Resolve(ref, Scope{Namespace: box.Namespace, Type: box})
	assert.True(t, ref.TypeParam)
	assert.Nil(t, ref.Target)

	ref = ParseTypeRef("U")
	r.Resolve(ref, Scope{Namespace: box.Namespace, Type: box, TypeParams: []TypeParam{{Name: "U"}}})
	assert.True(t, ref.TypeParam)
}

func TestResolveNestedType(t *testing.T) {
	m := NewModule("Nest", "1.0.0")
	outer := m.Global.Namespace("N").AddType(&Type{Name: "Outer", Kind: Class, Access: Public})
	inner := outer.AddNested(&Type{Name: "Inner", Kind: Class, Access: Public})
	r := NewResolver(m)

	ref := ParseTypeRef("Inner")
	r.Resolve(ref, Scope{Namespace: outer.Namespace, Type: outer})
	assert.Same(t, inner, ref.Target)

	assert.Equal(t, "N.Outer.Inner", FullTypeName(inner))
	assert.Same(t, inner, r.Lookup("N.Outer.Inner", 0))
}
