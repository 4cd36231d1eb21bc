package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "explicit missing config file should fail")

	def := DefaultConfig()
	require.Equal(t, "Calculator - Blue & White", def.WindowTitle)
	require.Equal(t, 340, def.WindowWidth)
	require.True(t, def.LogEnabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calculator.yaml")
	content := "window_title: Test Calc\nwindow_width: 400\nlog_enabled: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "Test Calc", cfg.WindowTitle)
	require.Equal(t, 400, cfg.WindowWidth)
	require.False(t, cfg.LogEnabled)
	// Unset keys keep their defaults.
	require.Equal(t, DefaultConfig().WindowHeight, cfg.WindowHeight)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calculator.yaml")
	content := "window_title: From File\nlog_dir: " + filepath.Join(dir, "logs") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("CALC_WINDOW_TITLE", "From Env")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "From Env", cfg.WindowTitle)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.LogDir = filepath.Join(dir, "logs")
	require.NoError(t, cfg.EnsureDirectories())

	info, err := os.Stat(cfg.LogDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// Logging disabled creates nothing.
	cfg2 := DefaultConfig()
	cfg2.LogEnabled = false
	cfg2.LogDir = filepath.Join(dir, "never")
	require.NoError(t, cfg2.EnsureDirectories())
	_, err = os.Stat(cfg2.LogDir)
	require.True(t, os.IsNotExist(err))
}
