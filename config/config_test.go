package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFailsWithoutUpstream(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrUpstreamURLMissing)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "https://script.example.com/exec")
	t.Setenv("APP_PORT", "")
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("SESSION_EXPIRY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://script.example.com/exec", cfg.Upstream.URL)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "http://localhost:5173", cfg.CORS.Origin)
	assert.Equal(t, 12*time.Hour, cfg.Session.Expiry)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "https://script.example.com/exec")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CORS_ORIGIN", "https://frontdesk.example.com")
	t.Setenv("SESSION_EXPIRY", "30m")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "https://frontdesk.example.com", cfg.CORS.Origin)
	assert.Equal(t, 30*time.Minute, cfg.Session.Expiry)
	assert.Equal(t, 2, cfg.Redis.DB)
}
