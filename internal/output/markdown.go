// internal/output/markdown.go
package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter outputs the listing as a fenced C# block followed by a
// diagnostics list, suitable for review comments.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the Document as Markdown.
func (f *MarkdownFormatter) Format(doc *Document) ([]byte, error) {
	var b strings.Builder

	if doc.Title != "" {
		b.WriteString("# " + doc.Title + "\n\n")
	}

	b.WriteString("```csharp\n")
	diagnostics := 0
	for _, line := range doc.Lines {
		b.WriteString(line.DisplayString)
		b.WriteString("\n")
		diagnostics += len(line.Diagnostics)
	}
	b.WriteString("```\n")

	if diagnostics > 0 {
		b.WriteString("\n## Diagnostics\n\n")
		for _, line := range doc.Lines {
			for _, d := range line.Diagnostics {
				b.WriteString(fmt.Sprintf("- **%s** (%s %s): %s", line.ElementID, d.Level, d.DiagnosticID, d.Text))
				if d.HelpLinkURI != "" {
					b.WriteString(fmt.Sprintf(" [help](%s)", d.HelpLinkURI))
				}
				b.WriteString("\n")
			}
		}
	}

	label := "lines"
	if len(doc.Lines) == 1 {
		label = "line"
	}
	b.WriteString(fmt.Sprintf("\n---\n*%d %s, %d diagnostics*\n", len(doc.Lines), label, diagnostics))

	return []byte(b.String()), nil
}
