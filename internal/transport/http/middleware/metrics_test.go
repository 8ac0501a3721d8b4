package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_UsesRoutePatternLabel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Metrics(mux)

	rawPaths := []string{"/api/v1/things/1", "/api/v1/things/2"}
	for _, path := range rawPaths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	pattern := "GET /api/v1/things/{id}"
	if got := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, pattern, "200")); got != 2 {
		t.Errorf("requests under pattern label = %v, want 2", got)
	}
	for _, raw := range rawPaths {
		if got := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, raw, "200")); got != 0 {
			t.Errorf("raw path %q leaked into the path label (count %v)", raw, got)
		}
	}
}

func TestMetrics_UnmatchedRequestsShareOneLabel(t *testing.T) {
	mux := http.NewServeMux()
	handler := Metrics(mux)

	before := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	if after != before+1 {
		t.Errorf("unmatched counter went %v -> %v, want +1", before, after)
	}
	if got := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/no/such/route", "404")); got != 0 {
		t.Error("unmatched request recorded under its raw path")
	}
}
