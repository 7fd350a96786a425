package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "fs", cfg.Adapter)
	assert.NotEmpty(t, cfg.Path)
	assert.Equal(t, cfg.Path, cfg.URI())
}

func TestLoadConfig_FileDiscoveredUpwards(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	content := "adapter: redis\nredis_url: redis://example:6379/1\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0644))

	cfg, err := LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Adapter)
	assert.Equal(t, "redis://example:6379/1", cfg.URI())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("adapter: fs\n"), 0644))
	t.Setenv("CUEBOOK_ADAPTER", "memory")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Adapter)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not yaml"), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestFactoryAdapters(t *testing.T) {
	repo, err := New(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, repo)

	repo, err = New("", WithAdapter("memory"))
	require.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = New("", WithAdapter("carrier-pigeon"))
	assert.Error(t, err)
}
