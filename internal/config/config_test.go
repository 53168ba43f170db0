package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8084", cfg.Addr())
	assert.Equal(t, ":9094", cfg.MetricsAddr())
	assert.Equal(t, 10, cfg.DebateRateLimit)
}

func TestLoadRateLimitDisable(t *testing.T) {
	// zero means "no limiting" and must survive Load untouched
	t.Setenv("DEBATE_RATE_LIMIT", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.DebateRateLimit)

	t.Setenv("DEBATE_RATE_LIMIT", "-5")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.DebateRateLimit)
}

func TestLoadAuthValidation(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("AUTH_ISSUER", "https://issuer.example.com")
	t.Setenv("AUTH_AUDIENCE", "council-api")
	t.Setenv("AUTH_JWKS_URL", "https://issuer.example.com/jwks")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AuthEnabled)
}
