// internal/output/formatter.go
package output

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/julianshen/apiview/internal/render"
)

// Output format names accepted by New.
const (
	FormatText     = "text"
	FormatANSI     = "ansi"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Document is a rendered API listing ready to be written out.
type Document struct {
	Title          string        `json:"title"`
	PackageName    string        `json:"packageName,omitempty"`
	PackageVersion string        `json:"packageVersion,omitempty"`
	Lines          []render.Line `json:"lines"`
}

// Formatter formats a Document into output bytes.
type Formatter interface {
	Format(doc *Document) ([]byte, error)
}

// New returns the formatter for the named format.
func New(format string) (Formatter, error) {
	switch format {
	case FormatText, FormatANSI:
		return NewTextFormatter(), nil
	case FormatHTML:
		return NewHTMLFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatMarkdown:
		return NewMarkdownFormatter(), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Strategy returns the token strategy lines must be rendered with for the
// named format. profile only matters for ANSI output.
func Strategy(format string, profile termenv.Profile) render.Strategy {
	switch format {
	case FormatHTML:
		return render.HTML{}
	case FormatANSI:
		return render.NewANSI(profile)
	}
	return render.Text{}
}
