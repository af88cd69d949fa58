// Package site renders the dashboard pages: the layout shell, the Overview
// page and the placeholder shown for sections that do not exist yet.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/okian/netmon/internal/adapters/http/api"
	"github.com/okian/netmon/internal/domain/overview"
	"github.com/okian/netmon/pkg/logger"
	"github.com/okian/netmon/pkg/metrics"
)

// Paths served by the site.
const (
	PathRoot          = "/"
	PathOverview      = "/overview"
	PathOverviewPanel = "/overview/panel"
	PathStatic        = "/static/"
)

type navItem struct {
	Href   string
	Label  string
	Icon   string
	Active bool
}

var navigation = []navItem{
	{Href: "/", Label: "Overview", Icon: "🏠"},
	{Href: "/topology", Label: "Topology", Icon: "🗺️"},
	{Href: "/metrics", Label: "Metrics", Icon: "📊"},
	{Href: "/costs", Label: "Costs", Icon: "💰"},
}

// pageData is the view model shared by full pages.
type pageData struct {
	Title     string
	Nav       []navItem
	PanelPath string
}

// panelData is the view model for the overview panel fragment.
type panelData struct {
	Error          bool
	Message        string
	Stats          []overview.Stat
	BytesProcessed string
}

// Server renders dashboard pages.
type Server struct {
	fetcher     overview.SummaryFetcher
	logger      logger.Logger
	overview    *template.Template
	placeholder *template.Template
	panel       *template.Template
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger for render failures and page fetches.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New parses the embedded templates and returns a Server whose Overview page
// loads its summary through fetcher.
func New(fetcher overview.SummaryFetcher, opts ...Option) (*Server, error) {
	s := &Server{fetcher: fetcher, logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.overview, err = template.ParseFS(templateFS, "templates/layout.html", "templates/overview.html"); err != nil {
		return nil, fmt.Errorf("%w: overview: %v", ErrTemplate, err)
	}
	if s.placeholder, err = template.ParseFS(templateFS, "templates/layout.html", "templates/placeholder.html"); err != nil {
		return nil, fmt.Errorf("%w: placeholder: %v", ErrTemplate, err)
	}
	if s.panel, err = template.ParseFS(templateFS, "templates/panel.html"); err != nil {
		return nil, fmt.Errorf("%w: panel: %v", ErrTemplate, err)
	}
	return s, nil
}

// Register attaches the site routes to mux. Every path not claimed by a more
// specific pattern lands on the router.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(PathStatic, http.StripPrefix(PathStatic, http.FileServer(StaticFS())))
	mux.HandleFunc(PathOverviewPanel, api.MetricsMiddleware(s.HandleOverviewPanel, "overview_panel"))
	mux.HandleFunc(PathRoot, api.MetricsMiddleware(s.HandlePage, "page"))
}

// HandlePage routes / and /overview to the Overview page and everything else
// to the placeholder.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case PathRoot, PathOverview:
		s.render(w, r, s.overview, "layout", pageData{
			Title:     "Overview",
			Nav:       navFor(PathRoot),
			PanelPath: PathOverviewPanel,
		})
	default:
		s.render(w, r, s.placeholder, "layout", pageData{
			Title: "Coming Soon",
			Nav:   navFor(r.URL.Path),
		})
	}
}

// HandleOverviewPanel mounts an Overview page for the lifetime of the request
// and renders its success or error fragment. When the client goes away
// before the summary resolves nothing is written.
func (s *Server) HandleOverviewPanel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	st := overview.New(s.fetcher, overview.WithLogger(s.logger)).Mount(ctx)
	if !st.Phase.Terminal() {
		s.logger.Debug(ctx, "overview request ended before summary resolved")
		return
	}
	metrics.RecordOverviewRender(st.Phase.String())

	data := panelData{
		Error:          st.Phase == overview.PhaseError,
		Message:        st.Message,
		Stats:          st.Stats(),
		BytesProcessed: st.BytesProcessed(),
	}
	s.render(w, r, s.panel, "panel", data)
}

// render executes into a buffer first so a template failure still yields a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, t *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error(r.Context(), "render failed", logger.String("template", name), logger.Error(fmt.Errorf("%w: %v", ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// navFor returns the sidebar with the item matching path marked active.
func navFor(path string) []navItem {
	items := make([]navItem, len(navigation))
	copy(items, navigation)
	for i := range items {
		items[i].Active = items[i].Href == path
	}
	return items
}
