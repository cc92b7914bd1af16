// internal/output/json_test.go
package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatterBasic(t *testing.T) {
	f := NewJSONFormatter()
	out, err := f.Format(sampleDocument())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "Contoso (1.0.0)", decoded["title"])
	assert.Equal(t, "Contoso", decoded["packageName"])

	lines, ok := decoded["lines"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 4)

	first := lines[0].(map[string]any)
	assert.Equal(t, "public class Foo", first["displayString"])
	assert.Equal(t, "Foo", first["elementId"])

	second := lines[1].(map[string]any)
	_, hasID := second["elementId"]
	assert.False(t, hasID)
}

func TestJSONFormatterDiagnostics(t *testing.T) {
	out, err := NewJSONFormatter().Format(sampleDocument())
	require.NoError(t, err)

	var decoded struct {
		Lines []struct {
			Diagnostics []map[string]any `json:"diagnostics"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Lines[2].Diagnostics, 1)
	assert.Equal(t, "AZC0012", decoded.Lines[2].Diagnostics[0]["DiagnosticId"])
	assert.Equal(t, float64(2), decoded.Lines[2].Diagnostics[0]["Level"])
}
