package apiclient

import (
	"context"
	"net/url"

	"github.com/okian/netmon/internal/domain/model"
)

// Backend paths, relative to the base URL.
const (
	PathTopology   = "/network/topology"
	PathResources  = "/network/resources"
	PathTimeSeries = "/metrics/timeseries"
	PathSummary    = "/metrics/summary"
	PathCosts      = "/metrics/costs"
)

// NetworkAPI maps network inventory operations to backend requests.
type NetworkAPI struct {
	client Getter
}

// NewNetworkAPI returns the network facade over client.
func NewNetworkAPI(client Getter) *NetworkAPI {
	return &NetworkAPI{client: client}
}

// Topology fetches GET /network/topology?project_id=…
// An empty projectID asks for every project the backend knows about.
func (a *NetworkAPI) Topology(ctx context.Context, projectID string) (model.Envelope[model.Topology], error) {
	var env model.Envelope[model.Topology]
	q := params("project_id", projectID)
	err := a.client.Get(ctx, PathTopology, q, &env)
	return env, err
}

// Resources fetches GET /network/resources?project_id=…&type=…
func (a *NetworkAPI) Resources(ctx context.Context, projectID, resourceType string) (model.Envelope[[]model.Record], error) {
	var env model.Envelope[[]model.Record]
	q := params("project_id", projectID, "type", resourceType)
	err := a.client.Get(ctx, PathResources, q, &env)
	return env, err
}

// params builds a query from key/value pairs, skipping empty values.
func params(kv ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	return q
}
