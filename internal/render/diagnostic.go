package render

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Level is the severity of a diagnostic.
type Level int

const (
	Default Level = iota
	Info
	Warning
	Error
)

var levelNames = [...]string{"default", "info", "warning", "error"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel maps a level name, case-insensitively, to its Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return Level(i), nil
		}
	}
	return Default, fmt.Errorf("unknown diagnostic level %q", s)
}

// Diagnostic is a review note attached to the declaration with id TargetID.
type Diagnostic struct {
	DiagnosticID string `json:"DiagnosticId"`
	TargetID     string `json:"TargetId"`
	Text         string `json:"Text"`
	HelpLinkURI  string `json:"HelpLinkUri,omitempty"`
	Level        Level  `json:"Level"`
}

// LoadDiagnostics reads a JSON array of diagnostics from path.
func LoadDiagnostics(path string) ([]Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read diagnostics: %w", err)
	}
	var diags []Diagnostic
	if err := json.Unmarshal(data, &diags); err != nil {
		return nil, fmt.Errorf("parse diagnostics %s: %w", path, err)
	}
	return diags, nil
}
