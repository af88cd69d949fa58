// Package probe implements the netmon-probe command, which exercises the
// backend API from a terminal using the same client and overview logic as the
// dashboard.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	service "github.com/okian/netmon/internal/app"
	"github.com/okian/netmon/internal/config"
	"github.com/okian/netmon/internal/domain/overview"
	"github.com/okian/netmon/pkg/logger"
)

// Error constants.
var (
	ErrCheckFailed   = errors.New("one or more endpoints failed")
	ErrSummaryFailed = errors.New("summary unavailable")
)

// Options holds the flags shared by every subcommand.
type Options struct {
	APIURL       string
	Timeout      time.Duration
	ProjectID    string
	ResourceType string
	Hours        int
	Days         int
	Verbose      bool
}

// NewRootCommand builds the command tree. Flag defaults come from the same
// configuration layers as the dashboard server.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	if cfg == nil {
		cfg = config.New()
	}
	opts := &Options{
		APIURL:    cfg.APIURL,
		Timeout:   cfg.APITimeout(),
		ProjectID: cfg.ProjectID,
	}

	root := &cobra.Command{
		Use:           "netmon-probe",
		Short:         "Query the network monitor backend from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.APIURL, "api-url", opts.APIURL, "backend API root")
	pf.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "per-request timeout")
	pf.StringVar(&opts.ProjectID, "project", opts.ProjectID, "project scope for network queries")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "log every API request to stderr")

	root.AddCommand(newSummaryCommand(opts), newCheckCommand(opts))
	return root
}

func newSummaryCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the overview stat cards",
		Long: `Fetch /metrics/summary once and render the same four stat cards the
dashboard overview shows, or the error panel when the summary is unavailable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc *service.Service) error {
				state := overview.New(svc).Mount(ctx)
				_, _ = io.WriteString(cmd.OutOrStdout(), RenderOverview(state))
				if state.Phase != overview.PhaseSuccess {
					return ErrSummaryFailed
				}
				return nil
			})
		},
	}
}

func newCheckCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Call every backend endpoint and report the outcome",
		Long: `Call topology, resources, time series, summary and costs concurrently.

Examples:
  netmon-probe check
  netmon-probe check --type vpc --hours 6 --days 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc *service.Service) error {
				results, err := svc.Check(ctx, service.CheckOptions{
					ResourceType: opts.ResourceType,
					Hours:        opts.Hours,
					Days:         opts.Days,
				})
				if err != nil {
					return err
				}
				_, _ = io.WriteString(cmd.OutOrStdout(), RenderCheck(results))
				for _, r := range results {
					if !r.Passed() {
						return ErrCheckFailed
					}
				}
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.ResourceType, "type", "", "resource type filter for resources and time series")
	f.IntVar(&opts.Hours, "hours", 0, "time series window in hours (0 selects 24)")
	f.IntVar(&opts.Days, "days", 0, "cost window in days (0 selects 30)")
	return cmd
}

func withService(cmd *cobra.Command, opts *Options, fn func(context.Context, *service.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.Nop()
	if opts.Verbose {
		if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
			return err
		}
		_ = logger.SetLevelString("debug")
		log = logger.Get()
	}

	svc := service.New(
		service.WithBaseURL(opts.APIURL),
		service.WithTimeout(opts.Timeout),
		service.WithProjectID(opts.ProjectID),
		service.WithLogger(log),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	defer svc.Stop()
	return fn(ctx, svc)
}
