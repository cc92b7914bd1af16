package render

import (
	"html"
	"strings"

	"github.com/julianshen/apiview/internal/token"
)

// Strategy formats a single token into the line being built.
type Strategy interface {
	RenderToken(b *strings.Builder, t token.Token)
}

var unescape = strings.NewReplacer("&lt;", "<", "&gt;", ">")

// Text renders token values verbatim, undoing angle bracket escapes.
type Text struct{}

func (Text) RenderToken(b *strings.Builder, t token.Token) {
	b.WriteString(unescape.Replace(t.Value))
}

// HTML renders tokens as hypertext. Definitions become commentable anchors,
// references become links to their definition and classified tokens are
// wrapped in spans. Tokens without a value, line id markers included,
// produce no output; the line itself carries their id.
type HTML struct{}

func (HTML) RenderToken(b *strings.Builder, t token.Token) {
	if t.Value == "" {
		return
	}
	cls := htmlClass(t.Kind)
	text := html.EscapeString(t.Value)
	switch {
	case t.DefinitionID != "":
		b.WriteString(`<a id="`)
		b.WriteString(html.EscapeString(t.DefinitionID))
		b.WriteString(`" class="`)
		b.WriteString(strings.TrimSpace(cls + " commentable"))
		b.WriteString(`" href="#">`)
		b.WriteString(text)
		b.WriteString("</a>")
	case t.NavigateToID != "":
		b.WriteString(`<a href="#`)
		b.WriteString(html.EscapeString(t.NavigateToID))
		b.WriteString(`"`)
		if cls != "" {
			b.WriteString(` class="`)
			b.WriteString(cls)
			b.WriteString(`"`)
		}
		b.WriteString(">")
		b.WriteString(text)
		b.WriteString("</a>")
	case cls != "":
		b.WriteString(`<span class="`)
		b.WriteString(cls)
		b.WriteString(`">`)
		b.WriteString(text)
		b.WriteString("</span>")
	default:
		b.WriteString(text)
	}
}

func htmlClass(k token.Kind) string {
	switch k {
	case token.TypeName:
		return "class"
	case token.MemberName:
		return "name"
	case token.Keyword:
		return "keyword"
	case token.StringLiteral:
		return "value"
	}
	return ""
}
