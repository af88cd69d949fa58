// Package api registers the dashboard's operational endpoints and the
// middleware shared by every route.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Operational paths.
const (
	PathHealth  = "/healthz"
	PathMetrics = "/internal/metrics"
)

// Server wires the operational HTTP routes.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler http.Handler
}

// NewServer creates the operational API server. service names the process in
// health responses.
func NewServer(service string) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(service),
		metricsHandler: NewMetricsHandler(),
	}
}

// Register attaches all operational routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc(PathHealth, MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle(PathMetrics, s.metricsHandler)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError replies with the backend's error envelope shape.
func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}
