package decl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
name: Contoso.Widgets
version: 1.2.0
usings: [System]
dependencies:
  - name: Contoso.Core
    version: 3.0.0
attributes:
  - name: InternalsVisibleTo
    args: ["Contoso.Widgets.Tests"]
namespaces:
  - name: Contoso.Widgets
    types:
      - name: Widget
        access: public
        interfaces: [IDisposable]
        members:
          - name: Count
            kind: property
            access: public
            type: int
          - name: Render
            kind: method
            access: public
            params:
              - name: box
                type: Box<Widget>
          - name: secret
            type: string
        nested:
          - name: Part
            access: public
      - name: Box
        access: public
        typeParams:
          - name: T
            variance: out
      - name: Color
        kind: enum
        access: public
        members:
          - name: Red
            value: "0"
      - name: Handler
        kind: delegate
        access: public
        params:
          - name: sender
            type: object
references:
  - name: System.Runtime
    namespaces:
      - name: System
        types:
          - name: IDisposable
            kind: interface
            access: public
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "Contoso.Widgets", m.Name)
	assert.Equal(t, "1.2.0", m.Version)
	require.Len(t, m.Dependencies, 1)
	assert.Equal(t, "Contoso.Core", m.Dependencies[0].Name)
	require.Len(t, m.Attributes, 1)
	assert.Equal(t, []string{"Contoso.Widgets.Tests"}, m.Attributes[0].Args)

	ns := m.Global.Namespace("Contoso.Widgets")
	require.Len(t, ns.Types, 4)
	widget := ns.Types[0]
	assert.Equal(t, Public, widget.Access)
	assert.Same(t, m, widget.Module())

	require.Len(t, widget.Interfaces, 1)
	require.NotNil(t, widget.Interfaces[0].Target, "IDisposable resolves through references")
	assert.Equal(t, "System.Runtime", widget.Interfaces[0].Target.Module().Name)

	require.Len(t, widget.Members, 3)
	count := widget.Members[0]
	assert.Equal(t, Property, count.Kind)
	assert.True(t, count.Getter.Present)
	assert.False(t, count.Setter.Present)

	render := widget.Members[1]
	assert.Equal(t, "void", render.Type.Special)
	require.Len(t, render.Params, 1)
	box := render.Params[0].Type
	require.NotNil(t, box.Target)
	assert.Equal(t, "Box", box.Target.Name)
	assert.Same(t, widget, box.Args[0].Target)

	assert.Equal(t, Private, widget.Members[2].Access)

	require.Len(t, widget.Nested, 1)
	assert.Same(t, widget, widget.Nested[0].Containing)

	color := ns.Types[2]
	assert.Equal(t, Enum, color.Kind)
	assert.Equal(t, Public, color.Members[0].Access)
	assert.True(t, color.Members[0].Const)

	handler := ns.Types[3]
	require.NotNil(t, handler.Invoke)
	assert.Equal(t, "void", handler.Invoke.Type.Special)
	assert.Equal(t, "object", handler.Invoke.Params[0].Type.Special)
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "version: 1.0.0\n"},
		{"bad yaml", "name: [\n"},
		{"bad kind", "name: X\ntypes:\n  - name: T\n    kind: module\n"},
		{"bad access", "name: X\ntypes:\n  - name: T\n    access: friend\n"},
		{"bad member kind", "name: X\ntypes:\n  - name: T\n    members:\n      - name: M\n        kind: local\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "Contoso.Widgets", m.Name)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
