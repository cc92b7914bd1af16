package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessibilityEffective(t *testing.T) {
	tests := []struct {
		in   Accessibility
		want Accessibility
	}{
		{Public, Public},
		{Protected, Protected},
		{ProtectedOrInternal, Protected},
		{ProtectedAndInternal, Protected},
		{Internal, Internal},
		{Private, Private},
		{NotApplicable, NotApplicable},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Effective())
		})
	}
}

func TestAccessibilityVisible(t *testing.T) {
	assert.True(t, Public.Visible())
	assert.True(t, Protected.Visible())
	assert.True(t, ProtectedOrInternal.Visible())
	assert.True(t, ProtectedAndInternal.Visible())
	assert.False(t, Internal.Visible())
	assert.False(t, Private.Visible())
	assert.False(t, NotApplicable.Visible())
}

func TestAccessibilityKeyword(t *testing.T) {
	assert.Equal(t, "protected internal", ProtectedOrInternal.Keyword())
	assert.Equal(t, "private protected", ProtectedAndInternal.Keyword())
	assert.Equal(t, "public", Public.Keyword())
	assert.Equal(t, "", NotApplicable.Keyword())
	assert.Equal(t, "not-applicable", NotApplicable.String())
}

func TestParseAccessibility(t *testing.T) {
	tests := map[string]Accessibility{
		"":                   NotApplicable,
		"public":             Public,
		"internal":           Internal,
		"protected internal": ProtectedOrInternal,
		"internal protected": ProtectedOrInternal,
		"private protected":  ProtectedAndInternal,
		"protected private":  ProtectedAndInternal,
	}
	for in, want := range tests {
		got, err := ParseAccessibility(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAccessibility("friend")
	assert.Error(t, err)
}
