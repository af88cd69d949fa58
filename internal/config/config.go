// Package config defines the dashboard configuration and its loader.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and NETMON_* env vars on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the dashboard HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// APIURL is the backend API base URL (NETMON_API_URL).
	APIURL string `koanf:"api_url"`

	// APITimeoutMS bounds every backend call.
	APITimeoutMS int `koanf:"api_timeout_ms"`

	// ProjectID optionally scopes network queries to one project.
	ProjectID string `koanf:"project_id"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":3000",
		APIURL:       "http://localhost:8080/api",
		APITimeoutMS: 10_000,
	}
}

// APITimeout returns APITimeoutMS as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutMS) * time.Millisecond
}
