// Package parser provides tree-sitter based parsing of source files with
// language detection from file extensions. It exposes the syntax tree along
// with helpers for walking nodes and reading using directives.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// langInfo holds tree-sitter language metadata including which node types
// represent imports for a given language.
type langInfo struct {
	name           string
	lang           *sitter.Language
	importNodeType []string
}

// registry maps file extensions to language info for auto-detection.
var registry = map[string]langInfo{
	".cs": {
		name: "csharp",
		lang:           csharp.GetLanguage(),
		importNodeType: []string{"using_directive"},
	},
}

// Supported reports whether filename has an extension in the registry.
func Supported(filename string) bool {
	_, ok := registry[filepath.Ext(filename)]
	return ok
}

// Language returns the registry name for filename's language, or "" when
// the extension is unknown.
func Language(filename string) string {
	return registry[filepath.Ext(filename)].name
}

// Parser wraps tree-sitter to parse source files with automatic language
// detection. A Parser is not safe for concurrent use.
type Parser struct {
	inner *sitter.Parser
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		inner: sitter.NewParser(),
	}
}

// Parse parses source code from the given filename, auto-detecting the language
// from the file extension. Returns an error for unsupported extensions.
func (p *Parser) Parse(filename string, source []byte) (*Tree, error) {
	return p.ParseCtx(context.Background(), filename, source)
}

// ParseCtx is Parse with a caller-supplied context.
func (p *Parser) ParseCtx(ctx context.Context, filename string, source []byte) (*Tree, error) {
	ext := filepath.Ext(filename)
	info, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension %q: language not in registry", ext)
	}

	p.inner.SetLanguage(info.lang)
	sitterTree, err := p.inner.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	return &Tree{
		tree:   sitterTree,
		source: source,
		info:   info,
	}, nil
}

// Tree wraps a parsed tree-sitter syntax tree.
type Tree struct {
	tree   *sitter.Tree
	source []byte
	info   langInfo
}

// RootNode returns the root node of the parsed syntax tree.
func (t *Tree) RootNode() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the parsed source bytes.
func (t *Tree) Source() []byte {
	return t.source
}

// Content returns the source text spanned by n.
func (t *Tree) Content(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.source)
}

// HasError reports whether the tree contains syntax errors.
func (t *Tree) HasError() bool {
	return t.RootNode().HasError()
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Usings extracts the namespaces imported by non-alias, non-static using
// directives.
func (t *Tree) Usings() []string {
	var usings []string
	importTypes := make(map[string]bool, len(t.info.importNodeType))
	for _, it := range t.info.importNodeType {
		importTypes[it] = true
	}

	Walk(t.RootNode(), func(node *sitter.Node) {
		if !importTypes[node.Type()] {
			return
		}
		if path := extractUsingPath(node.Content(t.source)); path != "" {
			usings = append(usings, path)
		}
	})
	return usings
}

// Walk performs a depth-first traversal of the syntax tree, calling fn for each node.
func Walk(node *sitter.Node, fn func(*sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// ChildByType returns the first direct child of node with the given type.
func ChildByType(node *sitter.Node, typ string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == typ {
			return child
		}
	}
	return nil
}

// ChildrenByType returns every direct child of node with the given type.
func ChildrenByType(node *sitter.Node, typ string) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == typ {
			out = append(out, child)
		}
	}
	return out
}

// extractUsingPath cleans a using directive down to its namespace. Alias and
// static usings yield "".
func extractUsingPath(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "global ")
	text = strings.TrimPrefix(text, "using ")
	text = strings.TrimSuffix(text, ";")
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "static ") || strings.Contains(text, "=") {
		return ""
	}
	return text
}
