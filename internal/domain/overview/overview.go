// Package overview holds the Overview page lifecycle: one summary fetch per
// page, three phases, and the stat cards derived from the result.
package overview

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/netmon/internal/domain/model"
	"github.com/okian/netmon/pkg/logger"
)

// User-visible error messages.
const (
	MsgSummaryFailed = "Failed to load summary data"
	MsgNetworkError  = "Network error occurred"
)

// Phase is the page's position in its lifecycle.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can leave p.
func (p Phase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseError
}

// State is a snapshot of the page. Summary is set only in PhaseSuccess and
// Message only in PhaseError.
type State struct {
	Phase   Phase
	Summary *model.Summary
	Message string
}

// SummaryFetcher is satisfied by *apiclient.MetricsAPI.
type SummaryFetcher interface {
	Summary(ctx context.Context) (model.Envelope[model.Summary], error)
}

// Page owns the state of one Overview page instance.
type Page struct {
	fetcher SummaryFetcher
	logger  logger.Logger

	once  sync.Once
	mu    sync.Mutex
	state State
}

// Option applies a configuration option to the Page.
type Option func(*Page)

// WithLogger sets the logger used for fetch failures.
func WithLogger(l logger.Logger) Option {
	return func(p *Page) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a page in PhaseLoading.
func New(fetcher SummaryFetcher, opts ...Option) *Page {
	p := &Page{
		fetcher: fetcher,
		logger:  logger.Nop(),
		state:   State{Phase: PhaseLoading},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current snapshot.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mount performs the page's single summary fetch and returns the resulting
// state. ctx scopes the page: if it is done by the time the fetch resolves,
// the result is dropped and the page stays in PhaseLoading. Later calls do not
// fetch again and return the current state.
func (p *Page) Mount(ctx context.Context) State {
	p.once.Do(func() {
		env, err := p.fetcher.Summary(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			msg := userMessage(err)
			p.logger.Error(ctx, "Error fetching summary", logger.Error(err))
			p.transition(State{Phase: PhaseError, Message: msg})
			return
		}
		if !env.Success {
			p.transition(State{Phase: PhaseError, Message: MsgSummaryFailed})
			return
		}
		summary := env.Data
		p.transition(State{Phase: PhaseSuccess, Summary: &summary})
	})
	return p.State()
}

// userMessage extracts the message a failed call carries for display, falling
// back to MsgNetworkError when it has none.
func userMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return MsgNetworkError
}

// transition moves the page out of PhaseLoading; terminal phases are final.
func (p *Page) transition(next State) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Phase.Terminal() {
		return false
	}
	p.state = next
	return true
}
