// Package codefile defines the persisted artifact produced by one extraction
// run: a versioned flat token stream plus a navigation tree.
package codefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianshen/apiview/internal/token"
)

// CurrentVersion is the artifact format version. Bump it whenever token
// semantics change; consumers select decoding behavior from it.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned when reading an artifact written by a
// newer format version.
var ErrUnsupportedVersion = errors.New("unsupported code file version")

// CodeFile is the extracted API surface of one module.
type CodeFile struct {
	Version        int              `json:"Version"`
	Name           string           `json:"Name,omitempty"`
	Language       string           `json:"Language,omitempty"`
	PackageName    string           `json:"PackageName,omitempty"`
	PackageVersion string           `json:"PackageVersion,omitempty"`
	Tokens         []token.Token    `json:"Tokens"`
	Navigation     []NavigationItem `json:"Navigation"`
}

// NavigationItem is one entry of the table of contents.
type NavigationItem struct {
	Text         string            `json:"Text"`
	NavigationID string            `json:"NavigationId,omitempty"`
	ChildItems   []NavigationItem  `json:"ChildItems"`
	Tags         map[string]string `json:"Tags,omitempty"`
}

// Write encodes f as indented JSON.
func (f *CodeFile) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode code file: %w", err)
	}
	return nil
}

// WriteFile writes f to path. The file is written to a temporary sibling and
// renamed into place, so a failed write never leaves a partial artifact.
func (f *CodeFile) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename code file: %w", err)
	}
	return nil
}

// Read decodes a code file from r.
func Read(r io.Reader) (*CodeFile, error) {
	var f CodeFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode code file: %w", err)
	}
	if f.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (supported up to %d)", ErrUnsupportedVersion, f.Version, CurrentVersion)
	}
	return &f, nil
}

// ReadFile reads a code file from path.
func ReadFile(path string) (*CodeFile, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open code file: %w", err)
	}
	defer fh.Close()
	return Read(fh)
}

// Unmarshal decodes a code file held in memory.
func Unmarshal(data []byte) (*CodeFile, error) {
	var f CodeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode code file: %w", err)
	}
	if f.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (supported up to %d)", ErrUnsupportedVersion, f.Version, CurrentVersion)
	}
	return &f, nil
}

// Validate checks the token-level invariants of f: newline tokens carry no
// value and no token is both a definition and a reference. It returns the
// first violation found.
func (f *CodeFile) Validate() error {
	for i, t := range f.Tokens {
		if t.Kind == token.Newline && t.Value != "" {
			return fmt.Errorf("token %d: newline carries value %q", i, t.Value)
		}
		if t.DefinitionID != "" && t.NavigateToID != "" {
			return fmt.Errorf("token %d: both definition %q and reference %q", i, t.DefinitionID, t.NavigateToID)
		}
	}
	return nil
}

// DefinitionIDs returns every definition id in stream order, without
// duplicates.
func (f *CodeFile) DefinitionIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, t := range f.Tokens {
		if t.DefinitionID == "" || seen[t.DefinitionID] {
			continue
		}
		seen[t.DefinitionID] = true
		ids = append(ids, t.DefinitionID)
	}
	return ids
}
