package apiclient

import (
	"context"
	"strconv"

	"github.com/okian/netmon/internal/domain/model"
)

// Defaults applied when callers pass a non-positive window.
const (
	DefaultTimeSeriesHours = 24
	DefaultCostDays        = 30
)

// MetricsAPI maps metrics and cost operations to backend requests.
type MetricsAPI struct {
	client Getter
}

// NewMetricsAPI returns the metrics facade over client.
func NewMetricsAPI(client Getter) *MetricsAPI {
	return &MetricsAPI{client: client}
}

// TimeSeries fetches GET /metrics/timeseries?type=…&hours=…
// hours <= 0 selects DefaultTimeSeriesHours.
func (a *MetricsAPI) TimeSeries(ctx context.Context, resourceType string, hours int) (model.Envelope[[]model.Record], error) {
	if hours <= 0 {
		hours = DefaultTimeSeriesHours
	}
	var env model.Envelope[[]model.Record]
	q := params("type", resourceType, "hours", strconv.Itoa(hours))
	err := a.client.Get(ctx, PathTimeSeries, q, &env)
	return env, err
}

// Summary fetches GET /metrics/summary.
func (a *MetricsAPI) Summary(ctx context.Context) (model.Envelope[model.Summary], error) {
	var env model.Envelope[model.Summary]
	err := a.client.Get(ctx, PathSummary, nil, &env)
	return env, err
}

// Costs fetches GET /metrics/costs?days=…
// days <= 0 selects DefaultCostDays.
func (a *MetricsAPI) Costs(ctx context.Context, days int) (model.Envelope[[]model.Record], error) {
	if days <= 0 {
		days = DefaultCostDays
	}
	var env model.Envelope[[]model.Record]
	err := a.client.Get(ctx, PathCosts, params("days", strconv.Itoa(days)), &env)
	return env, err
}
