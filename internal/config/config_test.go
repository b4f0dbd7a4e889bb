package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aloud/internal/catalog"
)

var envKeys = []string{
	"ALOUD_API_URL", "API_URL", "ALOUD_HOST", "ALOUD_PORT", "PORT", "ALOUD_DB",
	"ALOUD_CATALOG", "ALOUD_DIFFICULTY", "ALOUD_REDIS_ADDR", "ALOUD_REDIS_PASSWORD",
	"ALOUD_CACHE_TTL", "ALOUD_LOG_LEVEL", "ALOUD_LOG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
	assert.Equal(t, catalog.Easy, cfg.Difficulty)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "http://fallback:1")
	t.Setenv("ALOUD_API_URL", "http://api.example:8080")
	t.Setenv("PORT", "8081")
	t.Setenv("ALOUD_HOST", "127.0.0.1")
	t.Setenv("ALOUD_DIFFICULTY", "hard")
	t.Setenv("ALOUD_CACHE_TTL", "90s")
	t.Setenv("ALOUD_REDIS_ADDR", "localhost:6379")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://api.example:8080", cfg.APIURL)
	assert.Equal(t, "127.0.0.1:8081", cfg.Addr())
	assert.Equal(t, catalog.Hard, cfg.Difficulty)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestFromEnv_APIURLFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "http://fallback:1")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://fallback:1", cfg.APIURL)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"port not a number": {"PORT", "abc"},
		"port out of range": {"ALOUD_PORT", "70000"},
		"bad ttl":           {"ALOUD_CACHE_TTL", "soon"},
		"bad difficulty":    {"ALOUD_DIFFICULTY", "nightmare"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALOUD_LOG_LEVEL=debug\nALOUD_PORT=4000\n"), 0o644))

	// Already-set variables win over the file.
	t.Setenv("ALOUD_PORT", "5000")
	// An empty variable still counts as set, so drop it entirely.
	os.Unsetenv("ALOUD_LOG_LEVEL")

	require.NoError(t, LoadDotEnv(path))
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
