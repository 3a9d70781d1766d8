package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergedConfigDefaults(t *testing.T) {
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultRunConfig(), cfg)
}

func TestLoadMergedConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_lines: 10\nleaf_only: true\n"), 0o644))

	cfg, err := loadMergedConfig(path)
	require.NoError(t, err)

	// Set fields override; absent fields keep their defaults.
	assert.Equal(t, 10, cfg.PageLines)
	assert.True(t, cfg.LeafOnly)
	assert.Equal(t, defaultRunConfig().PreviewWidth, cfg.PreviewWidth)
	assert.Equal(t, defaultRunConfig().LogLevel, cfg.LogLevel)
}

func TestLoadMergedConfigErrors(t *testing.T) {
	_, err := loadMergedConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("page_lines: [not an int\n"), 0o644))
	_, err = loadMergedConfig(bad)
	require.Error(t, err)
}

func TestResolveConfigPathExplicitWins(t *testing.T) {
	assert.Equal(t, "/tmp/custom.yaml", resolveConfigPath("/tmp/custom.yaml"))
}

func TestResolveConfigPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// Absent file: no path resolved.
	assert.Empty(t, resolveConfigPath(""))

	cfgDir := filepath.Join(dir, "jex")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	cfgPath := filepath.Join(cfgDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("page_lines: 5\n"), 0o644))
	assert.Equal(t, cfgPath, resolveConfigPath(""))
}
