package decl

import "fmt"

// Accessibility is the declared accessibility of a type or member.
type Accessibility int

const (
	NotApplicable Accessibility = iota
	Private
	ProtectedAndInternal
	Protected
	Internal
	ProtectedOrInternal
	Public
)

var accessKeywords = [...]string{
	NotApplicable:        "",
	Private:              "private",
	ProtectedAndInternal: "private protected",
	Protected:            "protected",
	Internal:             "internal",
	ProtectedOrInternal:  "protected internal",
	Public:               "public",
}

// Keyword returns the source keyword(s) for a, e.g. "protected internal".
func (a Accessibility) Keyword() string {
	if a < 0 || int(a) >= len(accessKeywords) {
		return ""
	}
	return accessKeywords[a]
}

func (a Accessibility) String() string {
	if kw := a.Keyword(); kw != "" {
		return kw
	}
	return "not-applicable"
}

// Effective collapses both protected/internal combinations to Protected,
// which is how they appear to consumers outside the module.
func (a Accessibility) Effective() Accessibility {
	switch a {
	case ProtectedAndInternal, ProtectedOrInternal:
		return Protected
	}
	return a
}

// Visible reports whether a declaration with accessibility a is part of the
// public API surface.
func (a Accessibility) Visible() bool {
	switch a.Effective() {
	case Public, Protected:
		return true
	}
	return false
}

// ParseAccessibility parses a keyword form such as "protected internal".
// The empty string parses as NotApplicable.
func ParseAccessibility(s string) (Accessibility, error) {
	switch s {
	case "internal protected":
		return ProtectedOrInternal, nil
	case "protected private":
		return ProtectedAndInternal, nil
	}
	for i, kw := range accessKeywords {
		if kw == s {
			return Accessibility(i), nil
		}
	}
	return NotApplicable, fmt.Errorf("unknown accessibility %q", s)
}
