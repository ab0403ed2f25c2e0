package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProductionForcesSecureCookie(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("JWT_SECRET", "prod-secret")

	cfg := Load()
	assert.True(t, cfg.AuthCookieSecure)
	assert.True(t, cfg.IsProduction())
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsDevSecretInProduction(t *testing.T) {
	cfg := Config{Environment: "production", AuthJWTSecret: DevJWTSecret}
	assert.ErrorIs(t, cfg.Validate(), ErrInsecureJWTSecret)

	cfg.Environment = "development"
	assert.NoError(t, cfg.Validate())
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("X_DURATION", "30d")
	assert.Equal(t, 30*24*time.Hour, getenvDuration("X_DURATION", time.Minute))

	t.Setenv("X_DURATION", "90m")
	assert.Equal(t, 90*time.Minute, getenvDuration("X_DURATION", time.Minute))

	t.Setenv("X_DURATION", "nope")
	assert.Equal(t, time.Minute, getenvDuration("X_DURATION", time.Minute))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Empty(t, splitList(""))
}
