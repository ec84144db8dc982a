package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.BaseDir)
	assert.Equal(t, "https://civitai.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 60, cfg.API.RateLimit)
	assert.Equal(t, 15, cfg.Cache.TTLMinutes)
	assert.Empty(t, cfg.API.Key)
}

func TestLoad_EnvOverrides(t *testing.T) {
	base := t.TempDir()
	t.Setenv("CIVITDECK_BASE_DIR", base)
	t.Setenv("CIVITAI_BASE_URL", "http://localhost:9999/api/v1")
	t.Setenv("CIVITAI_API_KEY", "env-key")
	t.Setenv("CIVITDECK_RATE_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, base, cfg.BaseDir)
	assert.Equal(t, "http://localhost:9999/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, 10, cfg.API.RateLimit)
}

func TestLoad_InvalidRateLimitIgnored(t *testing.T) {
	t.Setenv("CIVITDECK_BASE_DIR", t.TempDir())
	t.Setenv("CIVITDECK_RATE_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.API.RateLimit)
}

func TestLoad_ConfigFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("CIVITDECK_BASE_DIR", base)
	t.Setenv("CIVITAI_API_KEY", "")
	t.Setenv("CIVITAI_BASE_URL", "")
	t.Setenv("CIVITDECK_RATE_LIMIT", "")

	// The file lives at the env-selected base dir. Env vars were cleared
	// above so the file values win over defaults.
	yaml := "api:\n  key: file-key\n  rate_limit: 30\ncache:\n  ttl_minutes: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, 30, cfg.API.RateLimit)
	assert.Equal(t, 5, cfg.Cache.TTLMinutes)

	// Unset file fields keep their defaults.
	assert.Equal(t, "https://civitai.com/api/v1", cfg.API.BaseURL)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("CIVITDECK_BASE_DIR", base)
	t.Setenv("CIVITAI_API_KEY", "env-key")

	yaml := "api:\n  key: file-key\n"
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
}

func TestLoad_CreatesDirectories(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "civitdeck")
	t.Setenv("CIVITDECK_BASE_DIR", base)

	_, err := Load()
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(base, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/data/civitdeck"}
	paths := GetPaths(cfg)

	assert.Equal(t, filepath.Join("/data/civitdeck", "civitdeck.db"), paths.Database)
	assert.Equal(t, filepath.Join("/data/civitdeck", "config.yaml"), paths.Config)
	assert.Equal(t, filepath.Join("/data/civitdeck", "logs"), paths.Logs)
}
