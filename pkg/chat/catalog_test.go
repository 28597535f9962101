package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, DefaultModel, catalog.Default)
	assert.True(t, catalog.Contains(DefaultModel))
	assert.True(t, catalog.Contains("gemini-2.5-pro"))
	assert.False(t, catalog.Contains("gemini-2.0-flash-exp"))
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "models.yaml")
		content := "default: gemini-2.5-flash\nmodels:\n  - gemini-2.0-flash\n  - gemini-2.5-flash\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		catalog, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-flash", catalog.Default)
		assert.Len(t, catalog.Models, 2)
	})

	t.Run("missing default falls back to first model", func(t *testing.T) {
		path := filepath.Join(dir, "nodefault.yaml")
		require.NoError(t, os.WriteFile(path, []byte("models:\n  - gemini-2.0-flash\n"), 0644))

		catalog, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.0-flash", catalog.Default)
	})

	t.Run("default not in list", func(t *testing.T) {
		path := filepath.Join(dir, "baddefault.yaml")
		content := "default: gemini-9.9-ultra\nmodels:\n  - gemini-2.0-flash\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})

	t.Run("empty model list", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("models: []\n"), 0644))

		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadCatalogWithFallback(t *testing.T) {
	catalog := LoadCatalogWithFallback(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, DefaultCatalog(), catalog)
}
