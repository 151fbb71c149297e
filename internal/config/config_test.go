package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPack_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadPack(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPack(), cfg)
}

func TestLoadPack_OverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetpack.yaml")
	yml := `
log_level: debug
gui:
  scale: 3
mods:
  jobs: 4
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadPack(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.GUI.Scale)
	assert.Equal(t, 4, cfg.Mods.Jobs)
	// untouched keys keep their defaults
	assert.Equal(t, "src/assets/gui", cfg.GUI.SourceDir)
	assert.Equal(t, ".bin", cfg.Missions.Extension)
}

func TestLoadPack_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gui: [unterminated"), 0o644))

	_, err := LoadPack(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadPack_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gui:\n  scale: 0\n"), 0o644))

	_, err := LoadPack(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gui.scale")
}

func TestResolve(t *testing.T) {
	cfg := DefaultPack()
	cfg.Mods.OutputDir = "/abs/mods"

	got := cfg.Resolve("/work/game")

	assert.Equal(t, filepath.Join("/work/game", "src/assets/gui"), got.GUI.SourceDir)
	assert.Equal(t, filepath.Join("/work/game", "dist"), got.DistDir)
	assert.Equal(t, filepath.Join("/work/game", "src/assets/parts/order.json"), got.Parts.OrderFile)
	assert.Equal(t, "/abs/mods", got.Mods.OutputDir)
	// non-path settings are untouched
	assert.Equal(t, cfg.Aseprite, got.Aseprite)
	assert.Equal(t, "src/assets/gui", cfg.GUI.SourceDir, "receiver must not change")
}

func TestLoadPack_SampleMatchesDefaults(t *testing.T) {
	cfg, err := LoadPack(filepath.Join("..", "..", "config", "assetpack.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPack(), cfg)
}
