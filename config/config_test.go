package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TRIPMIND_CONFIG", "PORT", "MONGO_DB", "BACKEND_URL",
		"PLAN_CACHE_TTL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "JWT_SECRET", "DEVELOPMENT"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.PlanTTL)
	assert.Equal(t, "tripmind", cfg.MongoDB)
	assert.False(t, cfg.EnvFileLoaded, "no .env next to the package")
}

func TestCheckJWTSecret(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.InsecureJWTSecret())
	assert.ErrorIs(t, cfg.CheckJWTSecret(), ErrInsecureJWTSecret)

	cfg.JWTSecret = ""
	assert.ErrorIs(t, cfg.CheckJWTSecret(), ErrInsecureJWTSecret)

	cfg.Development = true
	assert.NoError(t, cfg.CheckJWTSecret())
	assert.True(t, cfg.InsecureJWTSecret())

	cfg = Default()
	cfg.JWTSecret = "s3cr3t-from-vault"
	assert.NoError(t, cfg.CheckJWTSecret())
	assert.False(t, cfg.InsecureJWTSecret())
}

func TestLoadJWTSecretFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cr3t")
	cfg, err := Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.CheckJWTSecret())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tripmind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
backend_url: http://planner.internal
plan_cache_ttl: 2m
rate_limit:
  rps: 1
  burst: 3
`), 0o644))

	clearEnv(t)
	t.Setenv("TRIPMIND_CONFIG", path)
	t.Setenv("BACKEND_URL", "http://override")
	t.Setenv("RATE_LIMIT_BURST", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "http://override", cfg.BackendURL)
	assert.Equal(t, 2*time.Minute, cfg.PlanTTL)
	assert.InDelta(t, 1, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
}

func TestLoadBadOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLAN_CACHE_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIPMIND_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
