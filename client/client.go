// Package client implements payapi.Backend over HTTP: bearer authentication,
// query/form encoding, exponential-backoff retries and idempotency keys.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/iho/payapi"
)

const userAgent = "payapi-go/1.0"

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("api key is required")

var _ payapi.Backend = (*Client)(nil)

// Client is the HTTP implementation of payapi.Backend. It is safe for
// concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *Metrics

	maxRetries           int
	initialRetryInterval time.Duration
	maxRetryInterval     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger replaces the configured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics enables Prometheus instrumentation of API calls.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client from config.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:               cfg.APIKey,
		baseURL:              strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:           &http.Client{Timeout: cfg.Timeout},
		logger:               NewLogger(cfg.LogLevel, cfg.LogFormat),
		maxRetries:           cfg.MaxRetries,
		initialRetryInterval: cfg.InitialRetryInterval,
		maxRetryInterval:     cfg.MaxRetryInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FromEnv creates a Client from environment configuration.
func FromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Call implements payapi.Backend. Requests failing with a network error, a
// 429 or a 5xx are retried with exponential backoff up to the configured
// maximum; other failures are permanent. Mutating requests carry an
// Idempotency-Key that stays stable across retries.
func (c *Client) Call(ctx context.Context, method, path string, params, v any) error {
	values, err := payapi.EncodeParams(params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	encoded := values.Encode()

	var idempotencyKey string
	if method != http.MethodGet && method != http.MethodHead {
		idempotencyKey = ulid.Make().String()
	}

	var body []byte
	operation := func() error {
		req, err := c.newRequest(ctx, method, path, encoded, idempotencyKey)
		if err != nil {
			return backoff.Permanent(err)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		c.observe(method, path, resp.StatusCode, time.Since(start))
		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("api call")

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body = data
			return nil
		}

		apiErr := decodeError(resp, data)
		if isRetryableStatus(resp.StatusCode) {
			return apiErr
		}
		return backoff.Permanent(apiErr)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialRetryInterval
	bo.MaxInterval = c.maxRetryInterval

	retries := 0
	err = backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return err
		}

		retries++
		if retries > c.maxRetries {
			return backoff.Permanent(err)
		}

		if c.metrics != nil {
			c.metrics.Retries.Inc()
		}
		c.logger.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Int("retry", retries).
			Msg("retrying api call")

		return err
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return err
	}

	if v == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, encoded, idempotencyKey string) (*http.Request, error) {
	url := c.baseURL + path

	var req *http.Request
	var err error
	if method == http.MethodGet || method == http.MethodHead {
		if encoded != "" {
			url += "?" + encoded
		}
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, strings.NewReader(encoded))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	return req, nil
}

// decodeError maps an error response to *payapi.Error, falling back to a
// synthesized one when the body does not carry the error envelope.
func decodeError(resp *http.Response, data []byte) error {
	envelope := payapi.ErrorEnvelope{}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != nil {
		envelope.Error.StatusCode = resp.StatusCode
		envelope.Error.RequestID = resp.Header.Get("Request-Id")
		return envelope.Error
	}

	return &payapi.Error{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("Request-Id"),
		Type:       payapi.ErrorTypeAPI,
		Message:    fmt.Sprintf("unexpected response status %d", resp.StatusCode),
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
