package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"kitabcloud-admin/internal/config"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 10 << 20
)

// Credentials supplies the bearer token for outgoing requests and is told
// when the backend rejects it.
type Credentials interface {
	BearerToken(ctx context.Context) string
	Revoke(ctx context.Context)
}

// ========================================
// FACTORY
// ========================================

// Factory holds what every client shares: base URL, transport, metrics.
type Factory struct {
	baseURL string
	http    *http.Client
	metrics *Metrics
}

type Option func(*Factory)

// WithMetrics counts every backend request.
func WithMetrics(m *Metrics) Option {
	return func(f *Factory) { f.metrics = m }
}

// WithHTTPClient replaces the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Factory) { f.http = c }
}

func NewFactory(cfg config.APIConfig, opts ...Option) *Factory {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	f := &Factory{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BaseURL returns the backend base URL without a trailing slash.
func (f *Factory) BaseURL() string { return f.baseURL }

// Client binds a client to one set of credentials.
func (f *Factory) Client(creds Credentials) *Client {
	return &Client{factory: f, creds: creds}
}

// ========================================
// CLIENT
// ========================================

// Client issues requests against the backend on behalf of one session.
// A failed request fails exactly once; there is no retry.
type Client struct {
	factory *Factory
	creds   Credentials
}

func (c *Client) Post(ctx context.Context, path string, body Body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Do sends one request and decodes a JSON response into out (when non-nil).
// A 401 revokes the credentials before the error is returned.
func (c *Client) Do(ctx context.Context, method, path string, body Body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}

	start := time.Now()
	resp, err := c.factory.http.Do(req)
	latency := time.Since(start)

	if err != nil {
		c.factory.metrics.observe(method, 0, latency)
		log.Debug().
			Err(err).
			Str("method", method).
			Str("path", path).
			Dur("latency", latency).
			Msg("backend request failed")
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.factory.metrics.observe(method, resp.StatusCode, latency)

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", latency).
		Msg("backend request")

	if resp.StatusCode == http.StatusUnauthorized {
		if c.creds != nil {
			c.creds.Revoke(ctx)
		}
		return &RequestError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: extractMessage(raw),
			Body:    raw,
			Err:     ErrUnauthorized,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: extractMessage(raw),
			Body:    raw,
		}
	}

	if readErr != nil {
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Err: readErr}
	}

	if out == nil || len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   raw,
			Err:    fmt.Errorf("%w: %v", ErrDecode, err),
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body Body) (*http.Request, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		r, ct, err := body.encode()
		if err != nil {
			return nil, err
		}
		reader, contentType = r, ct
	}

	req, err := http.NewRequestWithContext(ctx, method, c.factory.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.creds != nil {
		if token := c.creds.BearerToken(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
