// Package render turns a token stream into display lines, attaching review
// diagnostics to the lines they target.
package render

import (
	"slices"
	"strings"

	"github.com/julianshen/apiview/internal/token"
)

// Line is one rendered line. ElementID is the definition anchoring the line,
// empty when the line declares nothing.
type Line struct {
	DisplayString string       `json:"displayString"`
	ElementID     string       `json:"elementId,omitempty"`
	Diagnostics   []Diagnostic `json:"diagnostics,omitempty"`
}

// Render splits tokens into lines, formatting each token with s. A line's
// anchor is the last definition id seen on it; diagnostics whose TargetID
// equals the anchor are attached. Lines without an anchor get none.
func Render(tokens []token.Token, diagnostics []Diagnostic, s Strategy) []Line {
	byTarget := make(map[string][]Diagnostic)
	for _, d := range diagnostics {
		if d.TargetID == "" {
			continue
		}
		byTarget[d.TargetID] = append(byTarget[d.TargetID], d)
	}

	var (
		lines   []Line
		sb      strings.Builder
		anchor  string
		pending bool
	)
	flush := func() {
		line := Line{DisplayString: sb.String(), ElementID: anchor}
		if anchor != "" {
			line.Diagnostics = slices.Clone(byTarget[anchor])
		}
		lines = append(lines, line)
		sb.Reset()
		anchor = ""
		pending = false
	}

	for _, tok := range tokens {
		if tok.Kind == token.Newline {
			flush()
			continue
		}
		if tok.DefinitionID != "" {
			anchor = tok.DefinitionID
		}
		s.RenderToken(&sb, tok)
		pending = true
	}
	if pending {
		flush()
	}
	return lines
}

// Join concatenates the display strings of lines, terminating each with a
// newline.
func Join(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.DisplayString)
		sb.WriteByte('\n')
	}
	return sb.String()
}
