package decl

import (
	"errors"
	"fmt"
)

// ErrUnknownSymbol is returned by providers asked to display a symbol they
// do not know how to render.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Provider exposes a declaration tree together with its canonical display
// service. Implementations must be deterministic: the same symbol and format
// always yield the same parts.
type Provider interface {
	// Module returns the root of the declaration tree.
	Module() *Module
	// DisplayParts expands sym into classified display parts using f.
	DisplayParts(sym Symbol, f Format) ([]Part, error)
}

// DisplayString renders sym with f as a single string. With IDFormat this is
// the canonical id service.
func DisplayString(p Provider, sym Symbol, f Format) (string, error) {
	parts, err := p.DisplayParts(sym, f)
	if err != nil {
		return "", err
	}
	return PartsString(parts), nil
}

// UnknownSymbolError wraps ErrUnknownSymbol with the offending value.
func UnknownSymbolError(sym Symbol) error {
	return fmt.Errorf("%w: %T", ErrUnknownSymbol, sym)
}
