// Package service wires the backend API client and its facades into the
// dependencies the dashboard handlers and the probe tool consume.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/netmon/internal/adapters/apiclient"
	"github.com/okian/netmon/internal/domain/model"
	"github.com/okian/netmon/pkg/logger"
	"github.com/okian/netmon/pkg/metrics"
)

// ErrNotStarted is returned by calls made before Start.
var ErrNotStarted = errors.New("service not started")

// Service owns the API client and exposes the typed facades.
type Service struct {
	mu sync.RWMutex

	network *apiclient.NetworkAPI
	metrics *apiclient.MetricsAPI
	client  *apiclient.Client

	// Configuration
	baseURL   string
	timeout   time.Duration
	projectID string

	started bool

	logger  logger.Logger
	manager *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBaseURL sets the backend API root.
func WithBaseURL(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.baseURL = base
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithProjectID scopes network queries to one project.
func WithProjectID(id string) Option {
	return func(s *Service) {
		s.projectID = id
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager upstream calls are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.manager = m
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		baseURL: apiclient.DefaultBaseURL,
		timeout: apiclient.DefaultTimeout,
		logger:  logger.Nop(),
		manager: metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the client and facades. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	client, err := apiclient.New(
		apiclient.WithBaseURL(s.baseURL),
		apiclient.WithTimeout(s.timeout),
		apiclient.WithLogger(s.logger.Named("apiclient")),
		apiclient.WithMetrics(s.manager),
	)
	if err != nil {
		return err
	}
	s.client = client
	s.network = apiclient.NewNetworkAPI(client)
	s.metrics = apiclient.NewMetricsAPI(client)
	s.started = true

	s.logger.Info(ctx, "network monitor service started",
		logger.String("baseURL", client.BaseURL()),
		logger.Duration("timeout", client.Timeout()),
		logger.String("projectID", s.projectID),
	)
	return nil
}

// Stop releases the facades. Calls after Stop fail with ErrNotStarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.client, s.network, s.metrics = nil, nil, nil
	s.started = false
	s.logger.Info(context.Background(), "network monitor service stopped")
}

// Network returns the network resource facade, or nil before Start.
func (s *Service) Network() *apiclient.NetworkAPI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.network
}

// Metrics returns the metrics facade, or nil before Start.
func (s *Service) Metrics() *apiclient.MetricsAPI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

// ProjectID returns the configured project scope.
func (s *Service) ProjectID() string { return s.projectID }

// Summary fetches the dashboard summary.
func (s *Service) Summary(ctx context.Context) (model.Envelope[model.Summary], error) {
	m := s.Metrics()
	if m == nil {
		return model.Envelope[model.Summary]{}, ErrNotStarted
	}
	return m.Summary(ctx)
}

// GetStats returns service state for diagnostics.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":   s.started,
		"baseURL":   s.baseURL,
		"timeout":   s.timeout.String(),
		"projectID": s.projectID,
	}
	if s.client != nil {
		stats["baseURL"] = s.client.BaseURL()
	}
	return stats
}
