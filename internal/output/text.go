// internal/output/text.go
package output

import (
	"fmt"
	"strings"

	"github.com/julianshen/apiview/internal/render"
)

// TextFormatter outputs the listing line by line. Diagnostics follow the
// line they target as indented notes.
type TextFormatter struct{}

// NewTextFormatter creates a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format renders the Document as plain lines.
func (f *TextFormatter) Format(doc *Document) ([]byte, error) {
	var b strings.Builder
	start := 0
	for i, line := range doc.Lines {
		if len(line.Diagnostics) == 0 {
			continue
		}
		b.WriteString(render.Join(doc.Lines[start : i+1]))
		start = i + 1
		indent := len(line.DisplayString) - len(strings.TrimLeft(line.DisplayString, " "))
		for _, d := range line.Diagnostics {
			b.WriteString(strings.Repeat(" ", indent))
			b.WriteString(fmt.Sprintf("^ %s %s: %s\n", d.Level, d.DiagnosticID, d.Text))
		}
	}
	b.WriteString(render.Join(doc.Lines[start:]))
	return []byte(b.String()), nil
}
