package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfilesAreFreshValues(t *testing.T) {
	id := IDFormat()
	id.Parameters |= ParamName
	id.Qualification = NameOnly
	assert.False(t, IDFormat().Parameters.Has(ParamName))
	assert.Equal(t, NameAndContainingTypesAndNamespaces, IDFormat().Qualification)

	display := DisplayFormat()
	display.Misc = 0
	assert.True(t, DisplayFormat().Misc.Has(UseSpecialTypes))

	minimal := MinimalFormat()
	minimal.Generics = 0
	assert.True(t, MinimalFormat().Generics.Has(IncludeTypeParameters))
}

func TestIDProfileLeavesOutNamesAndModifiers(t *testing.T) {
	f := IDFormat()
	assert.True(t, f.Parameters.Has(ParamType))
	assert.True(t, f.Parameters.Has(ParamRefMarker))
	assert.False(t, f.Parameters.Has(ParamName))
	assert.False(t, f.Parameters.Has(ParamModifiers))
	assert.False(t, f.Members.Has(IncludeType))
	assert.False(t, f.Members.Has(IncludeModifiers))
}
