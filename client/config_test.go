package client_test

import (
	"testing"
	"time"

	"github.com/iho/payapi/client"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PAYAPI_KEY", "sk_test_abc")
	t.Setenv("PAYAPI_BASE_URL", "")
	t.Setenv("PAYAPI_TIMEOUT", "")
	t.Setenv("PAYAPI_MAX_RETRIES", "")

	cfg, err := client.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.APIKey != "sk_test_abc" {
		t.Fatalf("expected API key from env, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != "https://api.payapi.dev/v1" {
		t.Fatalf("expected default base URL, got %s", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %s", cfg.Timeout)
	}
	if cfg.MaxRetries != 2 {
		t.Fatalf("expected default max retries 2, got %d", cfg.MaxRetries)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected default log level warn, got %s", cfg.LogLevel)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PAYAPI_KEY", "sk_live_xyz")
	t.Setenv("PAYAPI_BASE_URL", "http://localhost:12111/v1")
	t.Setenv("PAYAPI_TIMEOUT", "45s")
	t.Setenv("PAYAPI_MAX_RETRIES", "5")
	t.Setenv("PAYAPI_RETRY_INITIAL_WAIT", "100ms")
	t.Setenv("PAYAPI_LOG_LEVEL", "debug")

	cfg, err := client.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.BaseURL != "http://localhost:12111/v1" {
		t.Fatalf("expected base URL override, got %s", cfg.BaseURL)
	}
	if cfg.Timeout != 45*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Fatalf("expected max retries override, got %d", cfg.MaxRetries)
	}
	if cfg.InitialRetryInterval != 100*time.Millisecond {
		t.Fatalf("expected retry interval override, got %s", cfg.InitialRetryInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level override, got %s", cfg.LogLevel)
	}
}
