package decl

import (
	"strings"
	"unicode"
)

// specialTypes maps predefined type keywords to their runtime type names in
// namespace System.
var specialTypes = map[string]string{
	"bool":    "Boolean",
	"byte":    "Byte",
	"sbyte":   "SByte",
	"char":    "Char",
	"decimal": "Decimal",
	"double":  "Double",
	"float":   "Single",
	"int":     "Int32",
	"uint":    "UInt32",
	"nint":    "IntPtr",
	"nuint":   "UIntPtr",
	"long":    "Int64",
	"ulong":   "UInt64",
	"short":   "Int16",
	"ushort":  "UInt16",
	"object":  "Object",
	"string":  "String",
	"void":    "Void",
	"dynamic": "Object",
}

// SpecialTypeName returns the System type name behind a predefined keyword.
func SpecialTypeName(keyword string) (string, bool) {
	name, ok := specialTypes[keyword]
	return name, ok
}

// IsSpecialType reports whether s is a predefined type keyword.
func IsSpecialType(s string) bool {
	_, ok := specialTypes[s]
	return ok
}

// ParseTypeRef parses type syntax such as "List<Foo>[]", "int?" or
// "System.Threading.Tasks.Task<T>" into an unresolved TypeRef. Text it cannot
// decompose is kept verbatim in Raw.
func ParseTypeRef(text string) *TypeRef {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	p := &typeParser{src: text}
	ref, ok := p.parseType()
	p.skipSpace()
	if !ok || p.pos != len(p.src) {
		return &TypeRef{Raw: text}
	}
	return ref
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '_' || r == '@' || unicode.IsLetter(r) || unicode.IsDigit(r) || r >= 0x80 {
			p.pos++
			continue
		}
		break
	}
	return strings.TrimPrefix(p.src[start:p.pos], "@")
}

func (p *typeParser) parseType() (*TypeRef, bool) {
	if p.peek() == '(' {
		return nil, false
	}
	name := p.ident()
	if name == "" {
		return nil, false
	}
	if name == "global" && strings.HasPrefix(p.src[p.pos:], "::") {
		p.pos += 2
		name = p.ident()
	}
	segments := []string{name}
	var args []*TypeRef
	for {
		c := p.peek()
		if c == '.' {
			if args != nil {
				return nil, false
			}
			p.pos++
			seg := p.ident()
			if seg == "" {
				return nil, false
			}
			segments = append(segments, seg)
			continue
		}
		if c == '<' && args == nil {
			p.pos++
			for {
				arg, ok := p.parseType()
				if !ok {
					return nil, false
				}
				args = append(args, arg)
				c = p.peek()
				if c == ',' {
					p.pos++
					continue
				}
				if c == '>' {
					p.pos++
					break
				}
				return nil, false
			}
			continue
		}
		break
	}

	ref := &TypeRef{Args: args}
	last := segments[len(segments)-1]
	if len(segments) == 1 && len(args) == 0 && IsSpecialType(last) {
		ref.Special = last
	} else {
		ref.Name = last
		ref.Namespace = strings.Join(segments[:len(segments)-1], ".")
	}

	// Only T, T?, T[], T?[] are representable; anything else falls back to Raw.
	if p.peek() == '?' {
		p.pos++
		ref.Nullable = true
	}
	if p.peek() == '[' {
		p.pos++
		rank := 1
		for p.peek() == ',' {
			p.pos++
			rank++
		}
		if p.peek() != ']' {
			return nil, false
		}
		p.pos++
		ref.ArrayRank = rank
	}
	switch p.peek() {
	case '?', '[', '*':
		return nil, false
	}
	return ref, true
}
