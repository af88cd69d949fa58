package apiclient

import (
	"net/http"
	"time"

	"github.com/okian/netmon/pkg/logger"
	"github.com/okian/netmon/pkg/metrics"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the backend API base URL, e.g. http://localhost:8080/api.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.rawBase = base
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is left as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the request/response logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics manager used for upstream call metrics.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}
