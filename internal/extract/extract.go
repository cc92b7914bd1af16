// Package extract walks a module's declaration tree and emits the flat,
// cross-referenced token stream of its public API surface.
package extract

import (
	"errors"
	"fmt"

	"github.com/julianshen/apiview/internal/codefile"
	"github.com/julianshen/apiview/internal/decl"
	"github.com/julianshen/apiview/internal/token"
)

// Language is the language name recorded on extracted artifacts.
const Language = "C#"

// Profiles are the two formatting profiles an extraction uses: one for
// canonical ids and one for the declaration text.
type Profiles struct {
	ID      decl.Format
	Display decl.Format
}

// DefaultProfiles returns the standard id and display profiles.
func DefaultProfiles() Profiles {
	return Profiles{ID: decl.IDFormat(), Display: decl.DisplayFormat()}
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithProfiles replaces the formatting profiles.
func WithProfiles(p Profiles) Option {
	return func(e *Extractor) { e.profiles = p }
}

// WithDependencies toggles the "Dependencies:" header.
func WithDependencies(on bool) Option {
	return func(e *Extractor) { e.dependencies = on }
}

// WithInternalsVisibleTo toggles the "Exposes internals to:" header.
func WithInternalsVisibleTo(on bool) Option {
	return func(e *Extractor) { e.internals = on }
}

// Extractor produces code files from a declaration provider. It holds no
// per-run state, so Extract may be called repeatedly.
type Extractor struct {
	provider     decl.Provider
	profiles     Profiles
	dependencies bool
	internals    bool
}

// New returns an Extractor over p. Both headers are enabled by default.
func New(p decl.Provider, opts ...Option) *Extractor {
	e := &Extractor{
		provider:     p,
		profiles:     DefaultProfiles(),
		dependencies: true,
		internals:    true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract walks the module and returns its code file. Any provider failure
// aborts the run and no partial artifact is returned.
func (e *Extractor) Extract() (*codefile.CodeFile, error) {
	m := e.provider.Module()
	if m == nil || m.Global == nil {
		return nil, errors.New("extract: provider has no module")
	}

	r := &run{
		Extractor: e,
		mod:       m,
		b:         token.NewBuilder(),
		ids:       make(map[decl.Symbol]string),
	}
	if e.dependencies {
		r.dependencyHeader(m.Dependencies)
	}
	if e.internals {
		r.internalsHeader(m.Attributes)
	}

	var nav []codefile.NavigationItem
	for _, t := range m.Global.Types {
		if err := r.typeDecl(t, &nav); err != nil {
			return nil, fmt.Errorf("extract %s: %w", m.Name, err)
		}
	}
	if err := r.namespaces(m.Global, &nav); err != nil {
		return nil, fmt.Errorf("extract %s: %w", m.Name, err)
	}

	name := m.Name
	if m.Version != "" {
		name = fmt.Sprintf("%s (%s)", m.Name, m.Version)
	}
	return &codefile.CodeFile{
		Version:        codefile.CurrentVersion,
		Name:           name,
		Language:       Language,
		PackageName:    m.Name,
		PackageVersion: m.Version,
		Tokens:         r.b.Tokens(),
		Navigation: []codefile.NavigationItem{{
			Text:       m.Name + ".dll",
			ChildItems: nav,
			Tags:       map[string]string{"TypeKind": "assembly"},
		}},
	}, nil
}

// run is the state of one extraction.
type run struct {
	*Extractor
	mod *decl.Module
	b   *token.Builder
	ids map[decl.Symbol]string

	attrTypes map[string]*decl.Type
}

// id returns the canonical id of sym, computing it once per run.
func (r *run) id(sym decl.Symbol) (string, error) {
	if id, ok := r.ids[sym]; ok {
		return id, nil
	}
	id, err := decl.DisplayString(r.provider, sym, r.profiles.ID)
	if err != nil {
		return "", err
	}
	r.ids[sym] = id
	return id, nil
}

// namespaces emits a block for every namespace below ns that directly
// declares a visible type. Subtrees without visible types are skipped.
func (r *run) namespaces(ns *decl.Namespace, nav *[]codefile.NavigationItem) error {
	for _, child := range ns.Namespaces {
		if !hasVisibleType(child) {
			continue
		}
		if declaresVisibleType(child) {
			if err := r.namespace(child, nav); err != nil {
				return err
			}
		}
		if err := r.namespaces(child, nav); err != nil {
			return err
		}
	}
	return nil
}

func declaresVisibleType(ns *decl.Namespace) bool {
	for _, t := range ns.Types {
		if t.Access.Visible() {
			return true
		}
	}
	return false
}

func hasVisibleType(ns *decl.Namespace) bool {
	if declaresVisibleType(ns) {
		return true
	}
	for _, child := range ns.Namespaces {
		if hasVisibleType(child) {
			return true
		}
	}
	return false
}

func (r *run) namespace(ns *decl.Namespace, nav *[]codefile.NavigationItem) error {
	id, err := r.id(ns)
	if err != nil {
		return err
	}
	r.b.WriteIndent()
	r.b.Keyword(token.NamespaceKeyword)
	r.b.Space()
	if err := r.namespaceName(ns); err != nil {
		return err
	}
	r.openBlock()

	var children []codefile.NavigationItem
	for _, t := range ns.Types {
		if err := r.typeDecl(t, &children); err != nil {
			return err
		}
	}
	r.closeBlock()

	*nav = append(*nav, codefile.NavigationItem{
		Text:         ns.FullName(),
		NavigationID: id,
		ChildItems:   children,
		Tags:         map[string]string{"TypeKind": "namespace"},
	})
	return nil
}

// namespaceName writes A.B.C with each segment anchored to its own
// namespace.
func (r *run) namespaceName(ns *decl.Namespace) error {
	if !ns.Parent.IsGlobal() {
		if err := r.namespaceName(ns.Parent); err != nil {
			return err
		}
		r.b.Punctuation(token.Dot)
	}
	return r.declaration(ns)
}

func (r *run) typeDecl(t *decl.Type, nav *[]codefile.NavigationItem) error {
	if !t.Access.Visible() {
		return nil
	}
	id, err := r.id(t)
	if err != nil {
		return err
	}
	text, err := decl.DisplayString(r.provider, t, decl.MinimalFormat())
	if err != nil {
		return err
	}
	*nav = append(*nav, codefile.NavigationItem{
		Text:         text,
		NavigationID: id,
		Tags:         map[string]string{"TypeKind": t.Kind.String()},
	})

	if err := r.attributes(t.Attributes); err != nil {
		return err
	}
	r.b.WriteIndent()
	r.b.Append(token.Token{Kind: token.LineIDMarker, DefinitionID: id})
	r.b.Keyword(t.Access.Effective().Keyword())
	r.b.Space()
	if err := r.parts(t, id); err != nil {
		return err
	}
	if t.Kind == decl.Delegate {
		r.b.Punctuation(token.Semicolon)
		r.b.NewLine()
		return nil
	}

	r.openBlock()
	for _, nested := range t.Nested {
		if err := r.typeDecl(nested, nav); err != nil {
			return err
		}
	}
	for _, m := range t.Members {
		if !emitted(m) {
			continue
		}
		if err := r.member(m); err != nil {
			return err
		}
	}
	r.closeBlock()
	return nil
}

// emitted reports whether m belongs to the API surface listing.
func emitted(m *decl.Member) bool {
	if m.Implicit || !m.Access.Visible() {
		return false
	}
	return !(m.Kind == decl.Method && m.MethodKind.IsAccessor())
}

func (r *run) member(m *decl.Member) error {
	if err := r.attributes(m.Attributes); err != nil {
		return err
	}
	r.b.WriteIndent()
	if err := r.declaration(m); err != nil {
		return err
	}
	switch {
	case m.Kind == decl.Field && m.Containing.Kind == decl.Enum:
		r.b.Punctuation(token.Comma)
	case m.Kind == decl.Property:
	case m.Kind == decl.Method:
		r.b.Space()
		r.b.Punctuation(token.OpenBrace)
		r.b.Punctuation(token.CloseBrace)
	default:
		r.b.Punctuation(token.Semicolon)
	}
	r.b.NewLine()
	return nil
}

// declaration writes the line id marker of sym followed by its display
// parts.
func (r *run) declaration(sym decl.Symbol) error {
	id, err := r.id(sym)
	if err != nil {
		return err
	}
	r.b.Append(token.Token{Kind: token.LineIDMarker, DefinitionID: id})
	return r.parts(sym, id)
}

// parts appends the classified display parts of sym. The part naming sym
// becomes its definition; parts naming other exposed types of the same
// module link to them.
func (r *run) parts(sym decl.Symbol, id string) error {
	parts, err := r.provider.DisplayParts(sym, r.profiles.Display)
	if err != nil {
		return err
	}
	for _, p := range parts {
		kind := token.Classify(p.Kind)
		if kind == token.Newline {
			r.b.NewLine()
			continue
		}
		tok := token.New(p.Text, kind)
		switch {
		case p.Symbol == nil:
		case p.Symbol == sym:
			tok.DefinitionID = id
		default:
			if t, ok := p.Symbol.(*decl.Type); ok && t.Module() == sym.Module() && t.Exposed() {
				if tok.NavigateToID, err = r.id(t); err != nil {
					return err
				}
			}
		}
		r.b.Append(tok)
	}
	return nil
}

func (r *run) openBlock() {
	r.b.NewLine()
	r.b.WriteIndent()
	r.b.Punctuation(token.OpenBrace)
	r.b.IncrementIndent()
	r.b.NewLine()
}

func (r *run) closeBlock() {
	r.b.DecrementIndent()
	r.b.WriteIndent()
	r.b.Punctuation(token.CloseBrace)
	r.b.NewLine()
}
