package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmdDefaultFlags(t *testing.T) {
	cmd := extractCmd()
	assert.Equal(t, "extract <input> <output>", cmd.Use)

	for _, name := range []string{"no-dependencies", "no-internals", "save"} {
		v, err := cmd.Flags().GetBool(name)
		require.NoError(t, err)
		assert.False(t, v, name)
	}
	name, _ := cmd.Flags().GetString("name")
	assert.Empty(t, name)
	refs, _ := cmd.Flags().GetStringSlice("reference")
	assert.Empty(t, refs)
}

func TestExtractCSharpSources(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Widget.cs"), []byte(`namespace Contoso
{
    public class Widget
    {
        public int Size { get; set; }
        internal void Hidden() { }
    }
}
`), 0o644))
	artifact := filepath.Join(dir, "contoso.json")

	_, err := execute(t, "extract", src, artifact, "--name", "Contoso", "--package-version", "1.0.0")
	require.NoError(t, err)

	out, err := execute(t, "render", artifact, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "namespace Contoso\n")
	assert.Contains(t, out, "public class Widget\n")
	assert.Contains(t, out, "public int Size { get; set; }")
	assert.NotContains(t, out, "Hidden")
}

func TestExtractMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "extract", filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "out.json"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "out.json"))
}

func TestIsManifest(t *testing.T) {
	assert.True(t, isManifest("api.yaml"))
	assert.True(t, isManifest("API.YML"))
	assert.False(t, isManifest("src"))
	assert.False(t, isManifest("Widget.cs"))
}
