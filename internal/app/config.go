package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the client.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	// BaseURL, when set, wins over scheme/host/port derivation.
	BaseURL   string `envconfig:"PHARMADESK_BASE_URL"`
	APIScheme string `envconfig:"PHARMADESK_API_SCHEME" default:"http"`
	APIHost   string `envconfig:"PHARMADESK_API_HOST" default:"127.0.0.1"`
	APIPort   int    `envconfig:"PHARMADESK_API_PORT"`

	// DevProxy routes every request through the fixed /api prefix served
	// by pharmadesk-proxy instead of talking to the backend directly.
	DevProxy     bool   `envconfig:"PHARMADESK_DEV_PROXY" default:"false"`
	DevProxyAddr string `envconfig:"PHARMADESK_DEV_PROXY_ADDR" default:"127.0.0.1:3000"`

	RequestTimeout time.Duration `envconfig:"PHARMADESK_REQUEST_TIMEOUT" default:"15s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// SessionPath overrides the default session file location.
	SessionPath string `envconfig:"PHARMADESK_SESSION_PATH"`

	// RedisAddr switches the session store and list cache to Redis for
	// shared-terminal deployments. Empty keeps both local.
	RedisAddr string `envconfig:"PHARMADESK_REDIS_ADDR"`
	// TerminalName scopes the Redis session key per workstation.
	TerminalName string        `envconfig:"PHARMADESK_TERMINAL" default:"default"`
	SessionTTL   time.Duration `envconfig:"PHARMADESK_SESSION_TTL" default:"720h"`
	CacheTTL     time.Duration `envconfig:"PHARMADESK_CACHE_TTL" default:"30s"`

	// ProxyAddr is where pharmadesk-proxy listens.
	ProxyAddr string `envconfig:"PHARMADESK_PROXY_ADDR" default:":3000"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIScheme != "http" && cfg.APIScheme != "https" {
		return nil, errors.New("api scheme must be http or https")
	}
	return &cfg, nil
}

// IsProduction returns true when the client runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
