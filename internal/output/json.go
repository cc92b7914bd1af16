// internal/output/json.go
package output

import "encoding/json"

// JSONFormatter outputs a Document as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format marshals the Document as indented JSON.
func (f *JSONFormatter) Format(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
