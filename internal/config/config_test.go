package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DefaultDSN, cfg.DatabaseDSN)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.False(t, cfg.TokenEndpointEnabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_InvalidDurationNamesKey(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("TOKEN_ENDPOINT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.TokenEndpointEnabled)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\nAPP_ADDR=:9999\n"), 0o644))
	chdir(t, tmp)

	t.Setenv("DB_DSN", "from_env")
	t.Setenv("APP_ADDR", "")
	require.NoError(t, os.Unsetenv("APP_ADDR"))

	LoadEnvFiles()
	t.Cleanup(func() { _ = os.Unsetenv("APP_ADDR") })

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
	assert.Equal(t, ":9999", os.Getenv("APP_ADDR"))
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://***@db:5432/x", RedactDSN("postgres://user:pw@db:5432/x"))
	assert.Equal(t, "no-credentials", RedactDSN("no-credentials"))
}
