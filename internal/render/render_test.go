package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/apiview/internal/csharp"
	"github.com/julianshen/apiview/internal/decl"
	"github.com/julianshen/apiview/internal/extract"
	"github.com/julianshen/apiview/internal/token"
)

const scenarioManifest = `
name: Scenario
types:
  - name: Foo
    access: public
    members:
      - name: Bar
        access: public
        type: int
      - name: Next
        access: public
        type: Foo
`

func extractTokens(t *testing.T, manifest string) []token.Token {
	t.Helper()
	m, err := decl.ParseManifest([]byte(manifest))
	require.NoError(t, err)
	cf, err := extract.New(csharp.NewProvider(m)).Extract()
	require.NoError(t, err)
	return cf.Tokens
}

func TestRenderAnchorsAndDiagnostics(t *testing.T) {
	tokens := []token.Token{
		{Kind: token.LineIDMarker, DefinitionID: "A"},
		token.New("public", token.Keyword),
		token.New(" ", token.Whitespace),
		{Value: "A", Kind: token.TypeName, DefinitionID: "A"},
		{Kind: token.Newline},
		token.New("x", token.Text),
		{Kind: token.Newline},
		token.New("tail", token.Text),
	}
	d1 := Diagnostic{DiagnosticID: "AZC0001", TargetID: "A", Text: "rename", Level: Warning}
	diags := []Diagnostic{d1, {TargetID: "B", Text: "orphan"}, {Text: "untargeted"}}

	lines := Render(tokens, diags, Text{})
	assert.Equal(t, []Line{
		{DisplayString: "public A", ElementID: "A", Diagnostics: []Diagnostic{d1}},
		{DisplayString: "x"},
		{DisplayString: "tail"},
	}, lines)
}

func TestRenderUsesLatestDefinitionOnLine(t *testing.T) {
	tokens := []token.Token{
		{Value: "A", Kind: token.Text, DefinitionID: "A"},
		{Value: "B", Kind: token.Text, DefinitionID: "B"},
		{Kind: token.Newline},
		{Kind: token.Newline},
	}
	lines := Render(tokens, []Diagnostic{{TargetID: "A"}, {TargetID: "B", Text: "on b"}}, Text{})
	require.Len(t, lines, 2)
	assert.Equal(t, "B", lines[0].ElementID)
	require.Len(t, lines[0].Diagnostics, 1)
	assert.Equal(t, "on b", lines[0].Diagnostics[0].Text)
	assert.Equal(t, Line{}, lines[1])
}

func TestRenderLinesDoNotShareDiagnostics(t *testing.T) {
	tokens := []token.Token{
		{Value: "a", Kind: token.Text, DefinitionID: "A"},
		{Kind: token.Newline},
		{Value: "again", Kind: token.Text, DefinitionID: "A"},
		{Kind: token.Newline},
	}
	diags := []Diagnostic{{TargetID: "A", Text: "one"}, {TargetID: "A", Text: "two"}}
	lines := Render(tokens, diags, Text{})
	require.Len(t, lines, 2)

	first := lines[0].Diagnostics[:1]
	_ = append(first, Diagnostic{TargetID: "A", Text: "replaced"})
	lines[0].Diagnostics[0].Text = "edited"

	assert.Equal(t, diags, lines[1].Diagnostics)
	assert.Equal(t, "one", diags[0].Text)
}

func TestRenderEmpty(t *testing.T) {
	assert.Empty(t, Render(nil, nil, Text{}))
}

func TestRenderScenarioPlainText(t *testing.T) {
	lines := Render(extractTokens(t, scenarioManifest), nil, Text{})
	assert.Equal(t, "public class Foo\n{\n    public int Bar;\n    public Foo Next;\n}\n", Join(lines))

	var ids []string
	for _, l := range lines {
		ids = append(ids, l.ElementID)
	}
	assert.Equal(t, []string{"Foo", "", "Foo.Bar", "Foo.Next", ""}, ids)
}

func TestRenderScenarioHTML(t *testing.T) {
	tokens := extractTokens(t, scenarioManifest)
	lines := Render(tokens, []Diagnostic{{TargetID: "Foo.Bar", Text: "check"}}, HTML{})
	require.Len(t, lines, 5)

	bar := lines[2]
	assert.Equal(t, "Foo.Bar", bar.ElementID)
	assert.Equal(t,
		`    <span class="keyword">public</span> <span class="keyword">int</span> <a id="Foo.Bar" class="name commentable" href="#">Bar</a>;`,
		bar.DisplayString)
	require.Len(t, bar.Diagnostics, 1)

	next := lines[3]
	assert.Contains(t, next.DisplayString, `<a href="#Foo" class="class">Foo</a>`)
	assert.Contains(t, lines[0].DisplayString, `<a id="Foo" class="class commentable" href="#">Foo</a>`)
}

func TestRenderIsIdempotent(t *testing.T) {
	tokens := extractTokens(t, scenarioManifest)
	assert.Equal(t, Render(tokens, nil, HTML{}), Render(tokens, nil, HTML{}))
}

func TestTextStrategyUnescapes(t *testing.T) {
	var sb strings.Builder
	Text{}.RenderToken(&sb, token.New("List&lt;T&gt;", token.TypeName))
	assert.Equal(t, "List<T>", sb.String())
}

func TestHTMLStrategy(t *testing.T) {
	tests := []struct {
		name string
		tok  token.Token
		want string
	}{
		{"escapes plain text", token.New("<", token.Punctuation), "&lt;"},
		{"string literal", token.New(`"a&b"`, token.StringLiteral), `<span class="value">&#34;a&amp;b&#34;</span>`},
		{"unclassified definition", token.Token{Value: "Azure.Core", Kind: token.Text, DefinitionID: "Azure.Core"},
			`<a id="Azure.Core" class="commentable" href="#">Azure.Core</a>`},
		{"unclassified reference", token.Token{Value: "X", Kind: token.Text, NavigateToID: "X"}, `<a href="#X">X</a>`},
		{"line marker", token.Token{Kind: token.LineIDMarker, DefinitionID: "X"}, ""},
		{"empty definition", token.Token{Kind: token.MemberName, DefinitionID: "X"}, ""},
		{"empty reference", token.Token{Kind: token.TypeName, NavigateToID: "X"}, ""},
		{"empty keyword", token.Token{Kind: token.Keyword}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			HTML{}.RenderToken(&sb, tt.tok)
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

func TestANSIStrategy(t *testing.T) {
	tokens := extractTokens(t, scenarioManifest)

	plain := Join(Render(tokens, nil, NewANSI(termenv.Ascii)))
	assert.Equal(t, Join(Render(tokens, nil, Text{})), plain)

	colored := Join(Render(tokens, nil, NewANSI(termenv.ANSI)))
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "public")
	assert.Equal(t, colored, Join(Render(tokens, nil, NewANSI(termenv.ANSI))))
}

func TestLoadDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diags.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"DiagnosticId": "AZC0012", "TargetId": "Foo.Bar", "Text": "Avoid single word names", "HelpLinkUri": "https://aka.ms/azsdk/naming", "Level": 2}
]`), 0o644))

	diags, err := LoadDiagnostics(path)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, Diagnostic{
		DiagnosticID: "AZC0012",
		TargetID:     "Foo.Bar",
		Text:         "Avoid single word names",
		HelpLinkURI:  "https://aka.ms/azsdk/naming",
		Level:        Warning,
	}, diags[0])

	_, err = LoadDiagnostics(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("Error")
	require.NoError(t, err)
	assert.Equal(t, Error, l)
	assert.Equal(t, "error", l.String())

	_, err = ParseLevel("fatal")
	assert.Error(t, err)
}
