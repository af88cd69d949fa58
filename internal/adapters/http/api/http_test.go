package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/netmon/internal/adapters/http/api"
)

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		server := api.NewServer("netmon-dashboard")
		mux := http.NewServeMux()
		server.Register(context.Background(), mux)

		Convey("When requesting /healthz", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it reports healthy with the service name", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["status"], ShouldEqual, "healthy")
				So(body["service"], ShouldEqual, "netmon-dashboard")
			})
		})

		Convey("When posting to /healthz", func() {
			req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is rejected with the error envelope", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				var body map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["success"], ShouldEqual, false)
				So(body["error"], ShouldEqual, "method not allowed")
			})
		})

		Convey("When scraping metrics after a request", func() {
			mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

			req := httptest.NewRequest(http.MethodGet, api.PathMetrics, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the dashboard request counter is exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "netmon_dashboard_http_requests_total")
				So(w.Body.String(), ShouldContainSubstring, `endpoint="healthz"`)
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() { api.NewServer("x").Register(context.Background(), nil) }, ShouldPanic)
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a handler wrapped with the metrics middleware", t, func() {
		Convey("When the handler writes an error status", func() {
			h := api.MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.WriteHeader(http.StatusOK)
			}, "test_error")
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			Convey("Then the first status is what reaches the client", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
			})
		})

		Convey("When the handler only writes a body", func() {
			h := api.MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			}, "test_ok")
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			Convey("Then the implicit 200 is kept", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, "ok")
			})
		})
	})
}
