package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/netmon/internal/adapters/apiclient"
	"github.com/okian/netmon/internal/domain/model"
	"github.com/okian/netmon/pkg/logger"
)

// CheckOptions selects the query parameters used by Check.
type CheckOptions struct {
	ResourceType string
	Hours        int
	Days         int
}

// CheckResult is the outcome of one backend endpoint call.
type CheckResult struct {
	Path     string
	OK       bool
	Success  bool
	Count    int
	Message  string
	Kind     string
	Duration time.Duration
}

// Passed reports whether the call succeeded at both transport and envelope level.
func (r CheckResult) Passed() bool { return r.OK && r.Success }

// Check calls every backend endpoint concurrently and returns one result per
// endpoint in a fixed order.
func (s *Service) Check(ctx context.Context, opts CheckOptions) ([]CheckResult, error) {
	network, mets := s.Network(), s.Metrics()
	if network == nil || mets == nil {
		return nil, ErrNotStarted
	}

	calls := []struct {
		path string
		fn   func(context.Context) CheckResult
	}{
		{apiclient.PathTopology, func(ctx context.Context) CheckResult {
			env, err := network.Topology(ctx, s.projectID)
			return outcome(env, env.Data.Size(), err)
		}},
		{apiclient.PathResources, func(ctx context.Context) CheckResult {
			env, err := network.Resources(ctx, s.projectID, opts.ResourceType)
			return outcome(env, len(env.Data), err)
		}},
		{apiclient.PathTimeSeries, func(ctx context.Context) CheckResult {
			env, err := mets.TimeSeries(ctx, opts.ResourceType, opts.Hours)
			return outcome(env, len(env.Data), err)
		}},
		{apiclient.PathSummary, func(ctx context.Context) CheckResult {
			env, err := mets.Summary(ctx)
			return outcome(env, 1, err)
		}},
		{apiclient.PathCosts, func(ctx context.Context) CheckResult {
			env, err := mets.Costs(ctx, opts.Days)
			return outcome(env, len(env.Data), err)
		}},
	}

	results := make([]CheckResult, len(calls))
	var wg sync.WaitGroup
	for i, c := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			res := c.fn(ctx)
			res.Path = c.path
			res.Duration = time.Since(start)
			results[i] = res
		}()
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if !r.Passed() {
			failed++
		}
	}
	s.logger.Info(ctx, "backend check finished",
		logger.Int("endpoints", len(results)),
		logger.Int("failed", failed))
	return results, ctx.Err()
}

func outcome[T any](env model.Envelope[T], count int, err error) CheckResult {
	if err != nil {
		res := CheckResult{Message: apiclient.MessageOf(err)}
		if res.Message == "" {
			res.Message = err.Error()
		}
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) {
			res.Kind = apiErr.Kind.String()
		}
		return res
	}
	if !env.Success {
		return CheckResult{OK: true, Message: env.Error, Kind: apiclient.KindApplication.String()}
	}
	return CheckResult{OK: true, Success: true, Count: count}
}
