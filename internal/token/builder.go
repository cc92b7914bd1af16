package token

import "strings"

// Canonical punctuation and keywords emitted by the extractor.
const (
	OpenBrace    = "{"
	CloseBrace   = "}"
	OpenBracket  = "["
	CloseBracket = "]"
	OpenParen    = "("
	CloseParen   = ")"
	Semicolon    = ";"
	Comma        = ","
	Dot          = "."
	Equals       = "="

	NamespaceKeyword = "namespace"
)

// IndentSize is the number of spaces written per indent level.
const IndentSize = 4

// Builder accumulates tokens and tracks the current indent level. It does
// not check that increments and decrements are balanced.
type Builder struct {
	tokens []Token
	indent int
}

// NewBuilder returns an empty builder at indent level zero.
func NewBuilder() *Builder {
	return &Builder{}
}

// Append adds t as is.
func (b *Builder) Append(t Token) {
	b.tokens = append(b.tokens, t)
}

// AppendValue adds a token with the given value and kind.
func (b *Builder) AppendValue(v string, k Kind) {
	b.Append(New(v, k))
}

// WriteIndent emits the current indentation as a Whitespace token. Nothing is
// emitted at level zero.
func (b *Builder) WriteIndent() {
	if b.indent > 0 {
		b.AppendValue(strings.Repeat(" ", b.indent*IndentSize), Whitespace)
	}
}

// NewLine emits a Newline token, which never carries a value.
func (b *Builder) NewLine() {
	b.Append(Token{Kind: Newline})
}

// Space emits a single space.
func (b *Builder) Space() {
	b.AppendValue(" ", Whitespace)
}

// Keyword emits a keyword.
func (b *Builder) Keyword(text string) {
	b.AppendValue(text, Keyword)
}

// Punctuation emits a punctuation token.
func (b *Builder) Punctuation(text string) {
	b.AppendValue(text, Punctuation)
}

// Text emits plain text.
func (b *Builder) Text(text string) {
	b.AppendValue(text, Text)
}

func (b *Builder) IncrementIndent() { b.indent++ }

func (b *Builder) DecrementIndent() { b.indent-- }

// Indent returns the current indent level.
func (b *Builder) Indent() int { return b.indent }

// Tokens returns the accumulated tokens.
func (b *Builder) Tokens() []Token {
	return b.tokens
}
