package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/netmon/internal/adapters/apiclient"
	"github.com/okian/netmon/internal/domain/model"
)

type stubFetcher struct {
	env   model.Envelope[model.Summary]
	err   error
	calls atomic.Int32
}

func (f *stubFetcher) Summary(context.Context) (model.Envelope[model.Summary], error) {
	f.calls.Add(1)
	return f.env, f.err
}

func serve(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func newMux(f *stubFetcher) *http.ServeMux {
	s, err := New(f)
	if err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	s.Register(context.Background(), mux)
	return mux
}

func TestLayoutAndRouter(t *testing.T) {
	Convey("Given the site registered on a mux", t, func() {
		f := &stubFetcher{env: model.Envelope[model.Summary]{Success: true}}
		mux := newMux(f)

		for _, path := range []string{"/", "/overview"} {
			Convey("When requesting "+path, func() {
				w := serve(mux, path)
				body := w.Body.String()

				Convey("Then the overview shell renders in the loading state", func() {
					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
					So(body, ShouldContainSubstring, "Loading dashboard...")
					So(body, ShouldContainSubstring, "loading-spinner")
					So(body, ShouldContainSubstring, `data-panel="/overview/panel"`)
					So(body, ShouldNotContainSubstring, "stats-grid")
				})

				Convey("Then the layout has the header and sidebar", func() {
					So(body, ShouldContainSubstring, "Network Monitor")
					So(body, ShouldContainSubstring, "Connected")
					for _, href := range []string{`href="/"`, `href="/topology"`, `href="/metrics"`, `href="/costs"`} {
						So(body, ShouldContainSubstring, href)
					}
					So(body, ShouldContainSubstring, `class="nav-item active"`)
				})

				Convey("Then a failed panel response falls back to the error panel", func() {
					So(body, ShouldContainSubstring, "if (!r.ok)")
					So(body, ShouldContainSubstring, ".catch(")
					So(body, ShouldContainSubstring, "Error Loading Dashboard")
					So(body, ShouldContainSubstring, "window.location.reload()")
				})

				Convey("Then the shell itself does not call the API", func() {
					So(f.calls.Load(), ShouldEqual, 0)
				})
			})
		}

		for _, path := range []string{"/topology", "/metrics", "/costs", "/no/such/page"} {
			Convey("When requesting the unmapped path "+path, func() {
				w := serve(mux, path)

				Convey("Then the placeholder renders without any API call", func() {
					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Body.String(), ShouldContainSubstring, "Page Coming Soon")
					So(w.Body.String(), ShouldContainSubstring, "Connected")
					So(f.calls.Load(), ShouldEqual, 0)
				})
			})
		}

		Convey("When requesting the topology section", func() {
			body := serve(mux, "/topology").Body.String()

			Convey("Then only the topology nav item is active", func() {
				So(strings.Count(body, "nav-item active"), ShouldEqual, 1)
				idx := strings.Index(body, "nav-item active")
				So(body[idx:], ShouldStartWith, `nav-item active">`)
				So(strings.Index(body[idx:], "Topology"), ShouldBeLessThan, strings.Index(body[idx:], "Metrics"))
			})
		})

		Convey("When requesting the stylesheet", func() {
			w := serve(mux, "/static/app.css")

			Convey("Then it is served from the embedded assets", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
			})
		})

		Convey("When posting to a page", func() {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestOverviewPanel(t *testing.T) {
	Convey("Given the overview panel", t, func() {
		Convey("When the summary loads", func() {
			f := &stubFetcher{env: model.Envelope[model.Summary]{
				Success: true,
				Data: model.Summary{
					TotalVPCs:           3,
					TotalNATGateways:    1,
					TotalLoadBalancers:  2,
					AvgUtilization:      model.Float64(12.3),
					TotalBytesProcessed: 2_000_000,
				},
			}}
			w := serve(newMux(f), "/overview/panel")
			body := w.Body.String()

			Convey("Then the four stat cards render", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(f.calls.Load(), ShouldEqual, 1)
				So(body, ShouldContainSubstring, "Network Overview")
				So(strings.Count(body, `class="stat-card"`), ShouldEqual, 4)
				So(body, ShouldContainSubstring, `<div class="stat-value">3</div>`)
				So(body, ShouldContainSubstring, `<div class="stat-value">1</div>`)
				So(body, ShouldContainSubstring, `<div class="stat-value">2</div>`)
				So(body, ShouldContainSubstring, `<div class="stat-value">12.3%</div>`)
				So(body, ShouldContainSubstring, "2.0 MB")
				So(body, ShouldNotContainSubstring, "Error Loading Dashboard")
			})
		})

		Convey("When utilization is absent", func() {
			f := &stubFetcher{env: model.Envelope[model.Summary]{Success: true}}
			body := serve(newMux(f), "/overview/panel").Body.String()

			Convey("Then counts show 0 and utilization N/A", func() {
				So(strings.Count(body, `<div class="stat-value">0</div>`), ShouldEqual, 3)
				So(body, ShouldContainSubstring, `<div class="stat-value">N/A</div>`)
			})
		})

		Convey("When the envelope reports failure", func() {
			f := &stubFetcher{env: model.Envelope[model.Summary]{Success: false}}
			body := serve(newMux(f), "/overview/panel").Body.String()

			Convey("Then the error panel with a full reload control renders", func() {
				So(body, ShouldContainSubstring, "Error Loading Dashboard")
				So(body, ShouldContainSubstring, "Failed to load summary data")
				So(body, ShouldContainSubstring, "window.location.reload()")
				So(body, ShouldNotContainSubstring, "stats-grid")
			})
		})

		Convey("When the backend is unavailable", func() {
			f := &stubFetcher{err: &apiclient.Error{Kind: apiclient.KindHTTPStatus, Status: 503, Message: "Service unavailable"}}
			body := serve(newMux(f), "/overview/panel").Body.String()

			Convey("Then the server's message is shown", func() {
				So(body, ShouldContainSubstring, "Service unavailable")
			})
		})

		Convey("When the request is gone before the summary resolves", func() {
			f := &stubFetcher{env: model.Envelope[model.Summary]{Success: true}}
			s, err := New(f)
			So(err, ShouldBeNil)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			req := httptest.NewRequest(http.MethodGet, "/overview/panel", nil).WithContext(ctx)
			w := httptest.NewRecorder()
			s.HandleOverviewPanel(w, req)

			Convey("Then nothing is rendered", func() {
				So(w.Body.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		s, err := New(&stubFetcher{})
		So(err, ShouldBeNil)

		Convey("Then registering panics", func() {
			So(func() { s.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestSiteErrors(t *testing.T) {
	Convey("Given site error constants", t, func() {
		So(ErrTemplate.Error(), ShouldEqual, "site template parse failed")
		So(ErrRender.Error(), ShouldEqual, "site render failed")
		So(ErrTemplate, ShouldNotEqual, ErrRender)
	})
}
