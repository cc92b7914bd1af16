// internal/output/text_test.go
package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/apiview/internal/render"
)

func TestTextFormatter(t *testing.T) {
	out, err := NewTextFormatter().Format(sampleDocument())
	require.NoError(t, err)

	want := "public class Foo\n{\n    public int Bar;\n    ^ warning AZC0012: Avoid single word names\n}\n"
	assert.Equal(t, want, string(out))
}

func TestTextFormatterEmpty(t *testing.T) {
	out, err := NewTextFormatter().Format(&Document{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTextFormatterNotesFollowTheirLines(t *testing.T) {
	doc := &Document{Lines: []render.Line{
		{DisplayString: "public class Foo", ElementID: "Foo", Diagnostics: []render.Diagnostic{{DiagnosticID: "A1", Text: "first", Level: render.Info}}},
		{DisplayString: "{"},
		{DisplayString: "    public int Bar;", ElementID: "Foo.Bar", Diagnostics: []render.Diagnostic{
			{DiagnosticID: "A2", Text: "second", Level: render.Error},
			{DiagnosticID: "A3", Text: "third", Level: render.Warning},
		}},
	}}
	out, err := NewTextFormatter().Format(doc)
	require.NoError(t, err)

	want := "public class Foo\n^ info A1: first\n{\n    public int Bar;\n    ^ error A2: second\n    ^ warning A3: third\n"
	assert.Equal(t, want, string(out))
}
