package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.HTTP.Port)
	require.False(t, cfg.HTTP.EnableHTTPS)
	require.Equal(t, "test-secret", cfg.JWT.Secret)
	require.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	require.Equal(t, 24*time.Hour, cfg.JWT.RefreshTTL)
	require.Contains(t, cfg.Database.DSN, "postgres://")
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("JWT_REFRESH_TTL", "72h")
	t.Setenv("GOOGLE_CLIENT_ID", "cid")

	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.HTTP.Port)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	require.Equal(t, 72*time.Hour, cfg.JWT.RefreshTTL)
	require.Equal(t, "cid", cfg.Google.ClientID)
}

func TestNewConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewConfig()
	require.Error(t, err)
}
