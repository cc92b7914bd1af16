package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/apiview/internal/codefile"
	"github.com/julianshen/apiview/internal/csharp"
	"github.com/julianshen/apiview/internal/token"
)

const attributed = `
name: Contoso
namespaces:
  - name: Contoso
    types:
      - name: Widget
        access: public
        attributes:
          - name: Serializable
          - name: Obsolete
            args: ["Use Gadget"]
          - name: EditorBrowsable
            args: ["Never"]
          - name: Secret
          - name: Friend
        members:
          - name: Old
            access: public
            type: int
            attributes:
              - name: ObsoleteAttribute
              - name: Marker
      - name: MarkerAttribute
        access: public
      - name: SecretAttribute
        access: internal
      - name: FriendAttribute
        access: internal
`

func TestAttributeLines(t *testing.T) {
	cf := extract(t, attributed)
	out := plain(cf.Tokens)

	assert.Contains(t, out, "    [Serializable]\n    [Obsolete(\"Use Gadget\")]\n    internal [Friend]\n    public class Widget\n")
	assert.Contains(t, out, "        [Obsolete]\n        [Marker]\n        public int Old;\n")
	assert.NotContains(t, out, "EditorBrowsable")
	assert.NotContains(t, out, "[Secret")
	assert.NoError(t, cf.Validate())

	marker, ok := findToken(cf.Tokens, "Marker", token.TypeName)
	require.True(t, ok)
	assert.Equal(t, "Contoso.MarkerAttribute", marker.NavigateToID)

	obsolete, ok := findToken(cf.Tokens, "Obsolete", token.TypeName)
	require.True(t, ok)
	assert.Empty(t, obsolete.NavigateToID)

	msg, ok := findToken(cf.Tokens, `"Use Gadget"`, token.StringLiteral)
	require.True(t, ok)
	assert.Empty(t, msg.DefinitionID)
}

func TestNamedArgument(t *testing.T) {
	tests := []struct {
		src         string
		name, value string
		ok          bool
	}{
		{`DiagnosticId = "X0001"`, "DiagnosticId", `"X0001"`, true},
		{`"a = b"`, "", "", false},
		{`true`, "", "", false},
		{`a == b`, "", "", false},
		{` = 1`, "", "", false},
	}
	for _, tt := range tests {
		name, value, ok := namedArgument(tt.src)
		assert.Equal(t, tt.ok, ok, tt.src)
		assert.Equal(t, tt.name, name, tt.src)
		assert.Equal(t, tt.value, value, tt.src)
	}
}

const callsSource = `using System;

namespace Contoso
{
    public class Calls
    {
        public void V() { }
        public void V(params string[] xs) { }
        public void W(int n) { }
        public void W(ref int n) { }
        public void W(ref int n, params object[] rest) { }
        public void W(string s) { }
        public int this[int i] => i;
        public int this[string key] => 0;

        [Obsolete("Use V", DiagnosticId = "CT0001")]
        public int Old;
    }
}
`

func extractSource(t *testing.T, src string) *codefile.CodeFile {
	t.Helper()
	l, err := csharp.NewLoader(csharp.LoaderConfig{})
	require.NoError(t, err)
	mod, err := l.Load(context.Background(), "Contoso", "1.0.0", []csharp.Source{{Path: "Calls.cs", Data: []byte(src)}})
	require.NoError(t, err)
	cf, err := New(csharp.NewProvider(mod)).Extract()
	require.NoError(t, err)
	return cf
}

func TestOverloadsHaveDistinctIDs(t *testing.T) {
	cf := extractSource(t, callsSource)

	seen := make(map[string]bool)
	for _, tok := range cf.Tokens {
		if tok.Kind != token.LineIDMarker {
			continue
		}
		// namespaces anchor each name segment separately
		if tok.DefinitionID == "Contoso" {
			continue
		}
		assert.False(t, seen[tok.DefinitionID], "duplicate id %s", tok.DefinitionID)
		seen[tok.DefinitionID] = true
	}
	for _, id := range []string{
		"Contoso.Calls.V()",
		"Contoso.Calls.V(System.String[])",
		"Contoso.Calls.W(System.Int32)",
		"Contoso.Calls.W(System.Int32@)",
		"Contoso.Calls.W(System.Int32@, System.Object[])",
		"Contoso.Calls.W(System.String)",
	} {
		assert.True(t, seen[id], id)
	}

	out := plain(cf.Tokens)
	assert.Contains(t, out, "public void V(params string[] xs) {}")
	assert.Contains(t, out, "public void W(ref int n, params object[] rest) {}")
}

func TestSourceAttributesAreListed(t *testing.T) {
	out := plain(extractSource(t, callsSource).Tokens)
	assert.Contains(t, out, "        [Obsolete(\"Use V\", DiagnosticId = \"CT0001\")]\n        public int Old;\n")
}
