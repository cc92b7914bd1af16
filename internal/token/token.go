// Package token defines the classified tokens that make up an extracted API
// surface, the classifier mapping display parts onto token kinds, and the
// indent-tracking builder used to emit them.
package token

// Kind is the category of a token. The numeric values are part of the
// persisted artifact format and must not be reordered.
type Kind int

const (
	Text Kind = iota
	Newline
	Whitespace
	Punctuation
	Keyword
	LineIDMarker
	TypeName
	MemberName
	StringLiteral
)

var kindNames = [...]string{
	"Text", "Newline", "Whitespace", "Punctuation", "Keyword",
	"LineIdMarker", "TypeName", "MemberName", "StringLiteral",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Token is one element of the flat token stream. DefinitionID marks the token
// as the anchor of a declaration; NavigateToID marks it as a reference to
// another declaration's anchor. A token never carries both.
type Token struct {
	Value        string `json:"Value,omitempty"`
	DefinitionID string `json:"DefinitionId,omitempty"`
	NavigateToID string `json:"NavigateToId,omitempty"`
	Kind         Kind   `json:"Kind"`
}

// New returns a token of kind k with value v.
func New(v string, k Kind) Token {
	return Token{Value: v, Kind: k}
}
