// Package api is the typed client for the storefront backend. The backend owns
// all business logic (pricing, inventory, payments, auth); this package only
// shapes requests, attaches the session token and maps failures onto the
// client error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/ymgs-pharma/storefront/pkg/errors"
	"github.com/ymgs-pharma/storefront/pkg/metrics"
)

const (
	defaultTimeout            = 30 * time.Second
	responseBodyLimit   int64 = 1 << 20
	headerAuthorization       = "Authorization"
	headerLegacyToken         = "token"
	tokenScheme               = "Token"
)

// TokenSource yields the current bearer token, or empty when anonymous.
// The session owns the value; the client never caches it.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a func to the TokenSource interface.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// Client issues JSON requests against the backend base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	metrics    *metrics.RequestMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenSource attaches the session token provider.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		if tokens != nil {
			c.tokens = tokens
		}
	}
}

// WithMetrics records request outcomes on the provided collector.
func WithMetrics(m *metrics.RequestMetrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewClient builds a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	if parsed, err := url.Parse(trimmed); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", baseURL)
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return client, nil
}

// envelope is the backend's uniform response wrapper. Each endpoint decodes
// its payload fields from the same body alongside it.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

func (e envelope) serverMessage() string {
	if e.Err != "" {
		return e.Err
	}
	return e.Message
}

// do executes one request and decodes the success payload into out when the
// call succeeds. Failures come back as typed errors; nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyAuth(req)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, path, 0, time.Since(started))
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()
	c.observe(method, path, resp.StatusCode, time.Since(started))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	if !env.Success {
		msg := env.serverMessage()
		if msg == "" {
			msg = "request failed"
		}
		return pkgerrors.New(pkgerrors.CodeBusiness, msg)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode payload")
		}
	}
	return nil
}

func (c *Client) statusError(status int, raw []byte) error {
	msg := serverMessageFrom(raw)
	switch {
	case status == http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	case status == http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	case status == http.StatusNotFound:
		if msg == "" {
			msg = "not found"
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	case status >= 400 && status < 500:
		if msg != "" {
			return pkgerrors.New(pkgerrors.CodeBusiness, msg)
		}
		return pkgerrors.New(pkgerrors.CodeBusiness, fmt.Sprintf("request rejected (status %d)", status))
	default:
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("backend unavailable (status %d)", status))
	}
}

func serverMessageFrom(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.serverMessage()
}

// applyAuth sets both header forms the backend accepts: the documented
// "Authorization: Token <t>" and the legacy bare "token" header.
func (c *Client) applyAuth(req *http.Request) {
	if c.tokens == nil {
		return
	}
	token := strings.TrimSpace(c.tokens.Token())
	if token == "" {
		return
	}
	req.Header.Set(headerAuthorization, tokenScheme+" "+token)
	req.Header.Set(headerLegacyToken, token)
}

func (c *Client) observe(method, path string, status int, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.Observe(method, path, status, elapsed)
}

func (c *Client) buildURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}
