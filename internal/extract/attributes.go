package extract

import (
	"strconv"
	"strings"

	"github.com/julianshen/apiview/internal/decl"
	"github.com/julianshen/apiview/internal/token"
)

// skippedAttributes are compiler or tooling attributes that say nothing
// about the API. Names are given without the Attribute suffix.
var skippedAttributes = map[string]bool{
	"AsyncIteratorStateMachine": true,
	"AsyncStateMachine":         true,
	"DebuggerStepThrough":       true,
	"DefaultMember":             true,
	"EditorBrowsable":           true,
	"IteratorStateMachine":      true,
	"Nullable":                  true,
	"NullableContext":           true,
}

// attributeType finds the module type declaring the attribute called name,
// or nil for attributes defined elsewhere.
func (r *run) attributeType(name string) *decl.Type {
	if r.attrTypes == nil {
		r.attrTypes = make(map[string]*decl.Type)
		decl.Walk(r.mod.Global, func(t *decl.Type) {
			key := strings.TrimSuffix(t.Name, "Attribute")
			if _, ok := r.attrTypes[key]; !ok && len(t.TypeParams) == 0 {
				r.attrTypes[key] = t
			}
		})
	}
	return r.attrTypes[strings.TrimSuffix(name, "Attribute")]
}

// attributes writes one line per attribute applied to a declaration.
// Attributes declared by the module but hidden from consumers are left
// out, except Friend, which is shown as internal.
func (r *run) attributes(attrs []decl.Attribute) error {
	for _, a := range attrs {
		name := strings.TrimSuffix(a.Name, "Attribute")
		if name == "" || skippedAttributes[name] {
			continue
		}
		t := r.attributeType(name)
		internal := t != nil && !t.Exposed()
		if internal && name != "Friend" {
			continue
		}

		r.b.WriteIndent()
		if internal {
			r.b.Keyword(decl.Internal.Keyword())
			r.b.Space()
		}
		r.b.Punctuation(token.OpenBracket)
		tok := token.New(name, token.TypeName)
		if t != nil && !internal {
			id, err := r.id(t)
			if err != nil {
				return err
			}
			tok.NavigateToID = id
		}
		r.b.Append(tok)
		if len(a.Args) > 0 {
			r.b.Punctuation(token.OpenParen)
			for i := range a.Args {
				if i > 0 {
					r.b.Punctuation(token.Comma)
					r.b.Space()
				}
				r.attributeArgument(a, i)
			}
			r.b.Punctuation(token.CloseParen)
		}
		r.b.Punctuation(token.CloseBracket)
		r.b.NewLine()
	}
	return nil
}

// attributeArgument writes argument i of a. Arguments without source text
// are string values.
func (r *run) attributeArgument(a decl.Attribute, i int) {
	if i >= len(a.Source) {
		r.b.AppendValue(strconv.Quote(a.Args[i]), token.StringLiteral)
		return
	}
	src := strings.TrimSpace(a.Source[i])
	if name, value, ok := namedArgument(src); ok {
		r.b.Text(name)
		r.b.Space()
		r.b.Punctuation(token.Equals)
		r.b.Space()
		src = value
	}
	switch {
	case strings.HasPrefix(src, `"`), strings.HasPrefix(src, `@"`):
		r.b.AppendValue(src, token.StringLiteral)
	case src == "true", src == "false", src == "null":
		r.b.Keyword(src)
	default:
		r.b.Text(src)
	}
}

// namedArgument splits a "Name = value" argument.
func namedArgument(src string) (name, value string, ok bool) {
	i := strings.IndexByte(src, '=')
	if i <= 0 || strings.HasPrefix(src[i:], "==") {
		return "", "", false
	}
	name = strings.TrimSpace(src[:i])
	if name == "" {
		return "", "", false
	}
	for j, c := range name {
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || j > 0 && c >= '0' && c <= '9') {
			return "", "", false
		}
	}
	return name, strings.TrimSpace(src[i+1:]), true
}
