package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadDecodesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pallene.toml")
	body := "cc = \"clang\"\ncflags = [\"-O2\"]\nout_dir = \"build\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "clang", cfg.CC)
	assert.Equal(t, []string{"-O2"}, cfg.CFlags)
	assert.Equal(t, "build", cfg.OutDir)
}
