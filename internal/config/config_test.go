package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envs {
		for _, n := range names {
			t.Setenv(n, "")
			os.Unsetenv(n)
		}
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "focusrune.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "port: \"9090\"\nhistory_limit: 50\ndark_mode: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.False(t, cfg.DarkMode)
	assert.Equal(t, "./web", cfg.WasmDir, "unset keys keep defaults")
}

func TestLoadDefaultFileInWorkingDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("api_base: http://tasks.local/\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://tasks.local/", cfg.APIBase)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "port: \"9090\"\n")
	t.Setenv("FOCUSRUNE_PORT", "7000")
	t.Setenv("FOCUSRUNE_STREAM_BUFFER", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, 8, cfg.StreamBuffer)
}

func TestPlainEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://localhost/focusrune")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres://localhost/focusrune", cfg.DatabaseURL)

	t.Setenv("FOCUSRUNE_PORT", "4000")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port, "prefixed variable wins")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.HistoryLimit = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.StreamBuffer = 0
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}
