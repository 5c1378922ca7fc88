package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "POSTGRES_DSN", "REDIS_DB", "HUGGINGFACE_API_KEY", "APP_ENV", "AUTH_COOKIE_SECURE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "auth-token", cfg.Auth.CookieName)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL())
	assert.False(t, cfg.Inference.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.Inference.CacheTTL())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HUGGINGFACE_API_KEY", "hf_test")
	t.Setenv("HUGGINGFACE_TIMEOUT_SECONDS", "-1")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Auth.CookieSecure, "production enables secure cookies")
	assert.True(t, cfg.Inference.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Inference.Timeout())
	assert.Equal(t, 7*24*60, cfg.Auth.AccessTokenTTLMinutes, "unparsable ints fall back")
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid REDIS_DB")
}
