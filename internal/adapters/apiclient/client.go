// Package apiclient is the typed HTTP client for the network monitor backend
// API and the resource facades built on it.
package apiclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/netmon/pkg/logger"
	"github.com/okian/netmon/pkg/metrics"
)

const (
	// DefaultBaseURL is the backend API root used when none is configured.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout bounds every backend call.
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader correlates dashboard logs with backend logs.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes        = 8 << 20
	tlsHandshakeTimeout = 10 * time.Second
	idleConnTimeout     = 90 * time.Second
	maxIdleConnsPerHost = 10
)

// Getter is the subset of Client the facades depend on.
type Getter interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

// Client performs JSON requests against a fixed base URL.
type Client struct {
	rawBase string
	base    *url.URL
	timeout time.Duration
	http    *http.Client
	logger  logger.Logger
	metrics *metrics.Manager
}

// New builds a Client. The base URL must be absolute.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		rawBase: DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  logger.Nop(),
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base, err := url.Parse(strings.TrimRight(c.rawBase, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidBaseURL, c.rawBase, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q must be absolute", ErrInvalidBaseURL, c.rawBase)
	}
	c.base = base

	if c.http == nil {
		c.http = newHTTPClient(c.timeout)
	}
	return c, nil
}

// newHTTPClient returns a client with bounded timeouts and TLS 1.2+.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			IdleConnTimeout:       idleConnTimeout,
			MaxIdleConnsPerHost:   maxIdleConnsPerHost,
			ResponseHeaderTimeout: timeout,
		},
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Get issues a GET and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, out)
}

// Do performs a request relative to the base URL. On 2xx the body is decoded
// into out (when non-nil); every failure is returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, out any) error {
	start := time.Now()
	target := c.resolve(path, query)

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: DefaultErrorMessage, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	c.logger.Info(ctx, fmt.Sprintf("API Request: %s %s", method, target),
		logger.String("request_id", req.Header.Get(RequestIDHeader)))

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := c.transportError(ctx, err)
		c.logger.Error(ctx, "API Error", logger.String("path", path), logger.Error(err))
		c.record(path, apiErr.Kind.String(), start)
		return apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		apiErr := c.transportError(ctx, err)
		c.logger.Error(ctx, "API Error", logger.String("path", path), logger.Error(err))
		c.record(path, apiErr.Kind.String(), start)
		return apiErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := statusError(resp.StatusCode, body)
		detail := string(body)
		if detail == "" {
			detail = resp.Status
		}
		c.logger.Error(ctx, "API Error",
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
			logger.String("body", detail))
		c.record(path, apiErr.Kind.String(), start)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			c.logger.Error(ctx, "API Error", logger.String("path", path), logger.Error(err))
			c.record(path, KindApplication.String(), start)
			return &Error{Kind: KindApplication, Status: resp.StatusCode, Message: ErrDecode.Error(), Body: body, Cause: err}
		}
	}
	c.record(path, "ok", start)
	return nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) transportError(ctx context.Context, err error) *Error {
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return &Error{Kind: KindCanceled, Message: DefaultErrorMessage, Cause: ctx.Err()}
	}
	return &Error{Kind: KindNetwork, Message: DefaultErrorMessage, Cause: err}
}

func (c *Client) record(path, outcome string, start time.Time) {
	c.metrics.RecordUpstreamRequest(path, outcome, float64(time.Since(start).Milliseconds()))
}

// statusError normalizes a non-2xx response. The backend reports failures as
// {"success": false, "error": "..."}. An empty body gets the default message;
// a body without an "error" field leaves Message empty so callers apply
// their own fallback.
func statusError(status int, body []byte) *Error {
	e := &Error{Kind: KindHTTPStatus, Status: status}
	if len(body) == 0 {
		e.Message = DefaultErrorMessage
		return e
	}
	e.Body = body
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Message = payload.Error
	}
	return e
}
