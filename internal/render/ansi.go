package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/julianshen/apiview/internal/token"
)

// ANSI renders tokens with terminal colours. Output depends only on the
// colour profile it was built with, not on the attached terminal.
type ANSI struct {
	keyword    lipgloss.Style
	typeName   lipgloss.Style
	member     lipgloss.Style
	literal    lipgloss.Style
	definition lipgloss.Style
	reference  lipgloss.Style
}

// NewANSI returns an ANSI strategy for the given colour profile. Use
// termenv.Ascii for uncoloured output.
func NewANSI(profile termenv.Profile) *ANSI {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return &ANSI{
		keyword:    r.NewStyle().Foreground(lipgloss.Color("5")),
		typeName:   r.NewStyle().Foreground(lipgloss.Color("6")),
		member:     r.NewStyle().Foreground(lipgloss.Color("4")),
		literal:    r.NewStyle().Foreground(lipgloss.Color("2")),
		definition: r.NewStyle().Bold(true),
		reference:  r.NewStyle().Underline(true),
	}
}

func (a *ANSI) RenderToken(b *strings.Builder, t token.Token) {
	v := unescape.Replace(t.Value)
	if strings.TrimSpace(v) == "" {
		b.WriteString(v)
		return
	}

	var style lipgloss.Style
	styled := true
	switch t.Kind {
	case token.Keyword:
		style = a.keyword
	case token.TypeName:
		style = a.typeName
	case token.MemberName:
		style = a.member
	case token.StringLiteral:
		style = a.literal
	default:
		styled = false
	}

	switch {
	case t.DefinitionID != "":
		if styled {
			style = style.Inherit(a.definition)
		} else {
			style, styled = a.definition, true
		}
	case t.NavigateToID != "":
		if styled {
			style = style.Inherit(a.reference)
		} else {
			style, styled = a.reference, true
		}
	}

	if !styled {
		b.WriteString(v)
		return
	}
	b.WriteString(style.Render(v))
}
