package csharp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/apiview/internal/decl"
)

const widgetSource = `using System;

namespace Contoso.Widgets
{
    public interface IShape
    {
        double Area { get; }
    }

    public class Widget : Base, IShape
    {
        public const int Max = 10;
        private int count;

        public Widget(int count) { }

        public int Count { get; private set; }
        public double Area => 1.0;

        public void Render<T>(T value, int times = 1) where T : class { }
        internal void Hidden() { }

        public class Part { }
    }

    public abstract class Base { }

    public enum Color { Red, Green = 5, Blue }

    public delegate void Handler(object sender);
}
`

const partialSource = `namespace Contoso.Widgets
{
    public partial class Split { public int A; }
}

class Hoisted { }
`

const partialSource2 = `namespace Contoso.Widgets
{
    partial class Split { public int B; }
}
`

func loadSources(t *testing.T, sources ...Source) *decl.Module {
	t.Helper()
	l, err := NewLoader(LoaderConfig{Concurrency: 2})
	require.NoError(t, err)
	mod, err := l.Load(context.Background(), "Contoso", "1.0.0", sources)
	require.NoError(t, err)
	return mod
}

func typeNames(types []*decl.Type) []string {
	var names []string
	for _, t := range types {
		names = append(names, t.Name)
	}
	return names
}

func memberNamed(t *decl.Type, name string) *decl.Member {
	for _, m := range t.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func TestLoadDeclarations(t *testing.T) {
	mod := loadSources(t, Source{Path: "Widget.cs", Data: []byte(widgetSource)})
	assert.Equal(t, "Contoso", mod.Name)
	assert.Equal(t, "1.0.0", mod.Version)

	r := decl.NewResolver(mod)
	ns := mod.Global.Namespace("Contoso.Widgets")
	assert.Equal(t, []string{"IShape", "Widget", "Base", "Color", "Handler"}, typeNames(ns.Types))

	widget := r.Lookup("Contoso.Widgets.Widget", 0)
	require.NotNil(t, widget)
	assert.Equal(t, decl.Public, widget.Access)
	require.NotNil(t, widget.Base)
	assert.Same(t, r.Lookup("Contoso.Widgets.Base", 0), widget.Base.Target)
	require.Len(t, widget.Interfaces, 1)
	assert.Same(t, r.Lookup("Contoso.Widgets.IShape", 0), widget.Interfaces[0].Target)

	maxField := memberNamed(widget, "Max")
	require.NotNil(t, maxField)
	assert.True(t, maxField.Const)
	assert.Equal(t, "10", maxField.ConstValue)

	field := memberNamed(widget, "count")
	require.NotNil(t, field)
	assert.Equal(t, decl.Private, field.Access)

	prop := memberNamed(widget, "Count")
	require.NotNil(t, prop)
	assert.Equal(t, decl.Property, prop.Kind)
	assert.True(t, prop.Getter.Present)
	assert.Equal(t, decl.Private, prop.Setter.Access)

	area := memberNamed(widget, "Area")
	require.NotNil(t, area)
	assert.True(t, area.Getter.Present)
	assert.False(t, area.Setter.Present)

	render := memberNamed(widget, "Render")
	require.NotNil(t, render)
	require.Len(t, render.TypeParams, 1)
	assert.Equal(t, []string{"class"}, render.TypeParams[0].Constraints)
	require.Len(t, render.Params, 2)
	assert.True(t, render.Params[0].Type.TypeParam)
	assert.Equal(t, "1", render.Params[1].Default)

	hidden := memberNamed(widget, "Hidden")
	require.NotNil(t, hidden)
	assert.Equal(t, decl.Internal, hidden.Access)

	ctor := memberNamed(widget, "Widget")
	require.NotNil(t, ctor)
	assert.Equal(t, decl.Constructor, ctor.MethodKind)

	require.Len(t, widget.Nested, 1)
	assert.Equal(t, "Part", widget.Nested[0].Name)
	assert.Same(t, widget, widget.Nested[0].Containing)

	shape := r.Lookup("Contoso.Widgets.IShape", 0)
	require.Len(t, shape.Members, 1)
	assert.Equal(t, decl.Public, shape.Members[0].Access)

	base := r.Lookup("Contoso.Widgets.Base", 0)
	assert.True(t, base.Abstract)
}

func TestLoadEnumValues(t *testing.T) {
	mod := loadSources(t, Source{Path: "Widget.cs", Data: []byte(widgetSource)})
	color := decl.NewResolver(mod).Lookup("Contoso.Widgets.Color", 0)
	require.NotNil(t, color)

	var values []string
	for _, m := range color.Members {
		values = append(values, m.Name+"="+m.ConstValue)
	}
	assert.Equal(t, []string{"Red=0", "Green=5", "Blue=6"}, values)
}

func TestLoadDelegate(t *testing.T) {
	mod := loadSources(t, Source{Path: "Widget.cs", Data: []byte(widgetSource)})
	handler := decl.NewResolver(mod).Lookup("Contoso.Widgets.Handler", 0)
	require.NotNil(t, handler)
	assert.Equal(t, decl.Delegate, handler.Kind)
	require.NotNil(t, handler.Invoke)
	assert.Equal(t, "void", handler.Invoke.Type.Special)
	require.Len(t, handler.Invoke.Params, 1)
	assert.Equal(t, "sender", handler.Invoke.Params[0].Name)

	p := NewProvider(mod)
	s, err := decl.DisplayString(p, handler, decl.DisplayFormat())
	require.NoError(t, err)
	assert.Equal(t, "delegate void Handler(object sender)", s)
}

func TestLoadMergesPartialTypes(t *testing.T) {
	mod := loadSources(t,
		Source{Path: "A.cs", Data: []byte(partialSource)},
		Source{Path: "B.cs", Data: []byte(partialSource2)},
	)
	ns := mod.Global.Namespace("Contoso.Widgets")
	require.Len(t, ns.Types, 1)
	split := ns.Types[0]
	assert.Equal(t, decl.Public, split.Access)
	require.Len(t, split.Members, 2)
	assert.Equal(t, "A", split.Members[0].Name)
	assert.Equal(t, "B", split.Members[1].Name)

	require.Len(t, mod.Global.Types, 1)
	assert.Equal(t, "Hoisted", mod.Global.Types[0].Name)
	assert.Equal(t, decl.Internal, mod.Global.Types[0].Access)
}

func TestLoadResolvesAgainstReferences(t *testing.T) {
	ref := decl.NewModule("Contoso.Core", "2.0.0")
	core := ref.Global.Namespace("Contoso.Core").AddType(&decl.Type{Name: "Entity", Kind: decl.Class, Access: decl.Public})

	l, err := NewLoader(LoaderConfig{References: []*decl.Module{ref}})
	require.NoError(t, err)
	mod, err := l.Load(context.Background(), "App", "", []Source{{Path: "App.cs", Data: []byte(`using Contoso.Core;
namespace App
{
    public class Order : Entity { }
}
`)}})
	require.NoError(t, err)

	order := mod.Global.Namespace("App").Types[0]
	require.NotNil(t, order.Base)
	assert.Same(t, core, order.Base.Target)
	assert.Same(t, ref, order.Base.Target.Module())
}

func TestLoadRecordParameters(t *testing.T) {
	mod := loadSources(t, Source{Path: "Point.cs", Data: []byte(`namespace Geo
{
    public record Point(int X, int Y);
}
`)})
	point := mod.Global.Namespace("Geo").Types[0]
	assert.True(t, point.Record)
	assert.Equal(t, decl.Class, point.Kind)

	x := memberNamed(point, "X")
	require.NotNil(t, x)
	assert.Equal(t, decl.Property, x.Kind)
	assert.True(t, x.Init)
	ctor := memberNamed(point, "Point")
	require.NotNil(t, ctor)
	assert.Len(t, ctor.Params, 2)
}

const overloadSource = `using System;

namespace Contoso
{
    public class Calls
    {
        public void V() { }
        public void V(params string[] xs) { }
        public void W(int n) { }
        public void W(ref int n, out string s, params object[] rest) { s = null; }

        [Obsolete("Use V")]
        public int Old;

        [return: NotNull]
        public string Name() => "";
    }
}
`

func TestLoadParameterModifiers(t *testing.T) {
	mod := loadSources(t, Source{Path: "Calls.cs", Data: []byte(overloadSource)})
	calls := decl.NewResolver(mod).Lookup("Contoso.Calls", 0)
	require.NotNil(t, calls)

	var vs, ws []*decl.Member
	for _, m := range calls.Members {
		switch m.Name {
		case "V":
			vs = append(vs, m)
		case "W":
			ws = append(ws, m)
		}
	}
	require.Len(t, vs, 2)
	require.Len(t, ws, 2)

	assert.Empty(t, vs[0].Params)
	require.Len(t, vs[1].Params, 1)
	assert.Equal(t, "params", vs[1].Params[0].Modifier)
	assert.Equal(t, "xs", vs[1].Params[0].Name)
	assert.Equal(t, "string", vs[1].Params[0].Type.Special)
	assert.Equal(t, 1, vs[1].Params[0].Type.ArrayRank)

	require.Len(t, ws[1].Params, 3)
	var mods, names []string
	for _, p := range ws[1].Params {
		mods = append(mods, p.Modifier)
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"ref", "out", "params"}, mods)
	assert.Equal(t, []string{"n", "s", "rest"}, names)

	p := NewProvider(mod)
	s, err := decl.DisplayString(p, ws[1], decl.DisplayFormat())
	require.NoError(t, err)
	assert.Equal(t, "public void W(ref int n, out string s, params object[] rest)", s)

	ids := make(map[string]bool)
	for _, m := range append(vs, ws...) {
		id, err := decl.DisplayString(p, m, decl.IDFormat())
		require.NoError(t, err)
		assert.False(t, ids[id], "duplicate id %s", id)
		ids[id] = true
	}
	assert.True(t, ids["Contoso.Calls.V(System.String[])"])
	assert.True(t, ids["Contoso.Calls.W(System.Int32@, System.String@, System.Object[])"])
}

func TestLoadMemberAttributes(t *testing.T) {
	mod := loadSources(t, Source{Path: "Calls.cs", Data: []byte(overloadSource)})
	calls := decl.NewResolver(mod).Lookup("Contoso.Calls", 0)
	require.NotNil(t, calls)

	old := memberNamed(calls, "Old")
	require.NotNil(t, old)
	require.Len(t, old.Attributes, 1)
	assert.Equal(t, "Obsolete", old.Attributes[0].Name)
	assert.Equal(t, []string{"Use V"}, old.Attributes[0].Args)
	assert.Equal(t, []string{`"Use V"`}, old.Attributes[0].Source)

	name := memberNamed(calls, "Name")
	require.NotNil(t, name)
	assert.Empty(t, name.Attributes)
}

func TestLoadPathReadsProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Contoso.Widgets.csproj"), []byte(`<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <Version>3.1.0</Version>
  </PropertyGroup>
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0.3" />
    <PackageReference Include="Azure.Core" Version="1.38.0" />
  </ItemGroup>
</Project>
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Widget.cs"), []byte(widgetSource), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "obj"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "obj", "Generated.cs"), []byte("public class Generated { }"), 0o644))

	l, err := NewLoader(LoaderConfig{})
	require.NoError(t, err)
	mod, err := l.LoadPath(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "Contoso.Widgets", mod.Name)
	assert.Equal(t, "3.1.0", mod.Version)
	assert.Equal(t, []decl.Dependency{
		{Name: "Azure.Core", Version: "1.38.0"},
		{Name: "Newtonsoft.Json", Version: "13.0.3"},
	}, mod.Dependencies)
	assert.Empty(t, mod.Global.Types)
}

func TestLoadPathNoSources(t *testing.T) {
	l, err := NewLoader(LoaderConfig{})
	require.NoError(t, err)
	_, err = l.LoadPath(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestNewLoaderRejectsBadPattern(t *testing.T) {
	_, err := NewLoader(LoaderConfig{Exclude: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestDiscoverExcludes(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{"A.cs", "sub/B.cs", "sub/B.g.cs", "bin/C.cs", ".git/D.cs", "notes.txt"} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	patterns, err := compilePatterns(DefaultExcludes)
	require.NoError(t, err)

	files, err := discover(dir, patterns)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "A.cs"), filepath.Join(dir, "sub", "B.cs")}, files)
}

func TestSplitTopLevel(t *testing.T) {
	assert.Equal(t, []string{"Base<int, string>", "IFoo"}, splitTopLevel(" Base<int, string>, IFoo", ','))
	assert.Equal(t, "Base", stripArguments("Base(name, 1)"))
}
