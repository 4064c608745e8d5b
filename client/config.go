package client

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds client configuration.
type Config struct {
	// API
	APIKey  string `env:"PAYAPI_KEY"`
	BaseURL string `env:"PAYAPI_BASE_URL" envDefault:"https://api.payapi.dev/v1"`

	// HTTP
	Timeout time.Duration `env:"PAYAPI_TIMEOUT" envDefault:"30s"`

	// Retries
	MaxRetries           int           `env:"PAYAPI_MAX_RETRIES"        envDefault:"2"`
	InitialRetryInterval time.Duration `env:"PAYAPI_RETRY_INITIAL_WAIT" envDefault:"500ms"`
	MaxRetryInterval     time.Duration `env:"PAYAPI_RETRY_MAX_WAIT"     envDefault:"5s"`

	// Logging
	LogLevel  string `env:"PAYAPI_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"PAYAPI_LOG_FORMAT" envDefault:"json"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
