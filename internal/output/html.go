// internal/output/html.go
package output

import (
	"html"
	"strings"
)

const htmlStyle = `body { font-family: monospace; }
pre { line-height: 1.4; }
.keyword { color: #0000ff; }
.class { color: #2b91af; }
.name { color: #74531f; }
.value { color: #a31515; }
.commentable { color: inherit; text-decoration: none; }
.diagnostic { margin-left: 2em; font-style: italic; }
.diagnostic.warning { color: #9a6700; }
.diagnostic.error { color: #cf222e; }`

// HTMLFormatter outputs a standalone HTML page. Lines must already be
// rendered with the HTML strategy. Commentable rows carry their element id
// in a data-line-id attribute.
type HTMLFormatter struct{}

// NewHTMLFormatter creates a new HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Format renders the Document as an HTML page.
func (f *HTMLFormatter) Format(doc *Document) ([]byte, error) {
	var b strings.Builder
	title := html.EscapeString(doc.Title)

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + title + "</title>\n")
	b.WriteString("<style>\n" + htmlStyle + "\n</style>\n</head>\n<body>\n")
	if title != "" {
		b.WriteString("<h1>" + title + "</h1>\n")
	}
	b.WriteString("<pre class=\"code\">\n")
	for _, line := range doc.Lines {
		if line.ElementID != "" {
			b.WriteString(`<div class="line" data-line-id="` + html.EscapeString(line.ElementID) + `">`)
		} else {
			b.WriteString(`<div class="line">`)
		}
		b.WriteString(line.DisplayString)
		b.WriteString("</div>\n")
		for _, d := range line.Diagnostics {
			b.WriteString(`<div class="diagnostic ` + d.Level.String() + `">`)
			b.WriteString(html.EscapeString(d.DiagnosticID + ": " + d.Text))
			if d.HelpLinkURI != "" {
				b.WriteString(` <a href="` + html.EscapeString(d.HelpLinkURI) + `">help</a>`)
			}
			b.WriteString("</div>\n")
		}
	}
	b.WriteString("</pre>\n</body>\n</html>\n")
	return []byte(b.String()), nil
}
