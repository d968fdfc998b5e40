package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "http", cfg.APIScheme)
	require.Equal(t, "127.0.0.1", cfg.APIHost)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.Equal(t, "default", cfg.TerminalName)
	require.False(t, cfg.DevProxy)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigRejectsBadScheme(t *testing.T) {
	t.Setenv("PHARMADESK_API_SCHEME", "ftp")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PHARMADESK_BASE_URL", "https://api.example.com")
	t.Setenv("PHARMADESK_REQUEST_TIMEOUT", "5s")
	t.Setenv("PHARMADESK_TERMINAL", "till-3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, "https://api.example.com", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, "till-3", cfg.TerminalName)
}

func TestRefreshTestMode(t *testing.T) {
	t.Setenv("PHARMADESK_TEST_MODE", "1")
	RefreshTestMode()
	require.True(t, InTestMode())

	t.Setenv("PHARMADESK_TEST_MODE", "")
	RefreshTestMode()
	require.False(t, InTestMode())
}
