package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/ask", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"wiki"}`))
	})
	r.Post("/fact-check", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/language", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"language":"en"}`))
	})
	r.Put("/language", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"language":"bn"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return r
}

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := newRouter()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/ask", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/ask", "200")); got < 1 {
		t.Errorf("http_requests_total = %f, want >= 1", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusAndMethodLabels(t *testing.T) {
	r := newRouter()

	tests := []struct {
		method string
		path   string
		status string
	}{
		{"POST", "/fact-check", "400"},
		{"GET", "/language", "200"},
		{"PUT", "/language", "200"},
		{"GET", "/health", "503"},
	}
	for _, tc := range tests {
		t.Run(tc.method+tc.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, http.NoBody))

			if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.path, tc.status)); got < 1 {
				t.Errorf("requests_total{%s %s %s} = %f, want >= 1", tc.method, tc.path, tc.status, got)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != "unknown" {
		t.Errorf("normalizePath(\"\") = %q", got)
	}
	if got := normalizePath("/ask"); got != "/ask" {
		t.Errorf("normalizePath(/ask) = %q", got)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	RegisterAssistantMetrics()
	RegisterAssistantMetrics()
	RegisterTranslationMetrics()
	RegisterTranslationMetrics()
	RegisterLLMMetrics()
	RegisterLLMMetrics()
}

func TestRateLimitedTotal(t *testing.T) {
	before := testutil.ToFloat64(RateLimitedTotal.WithLabelValues("local"))
	RateLimitedTotal.WithLabelValues("local").Inc()
	if got := testutil.ToFloat64(RateLimitedTotal.WithLabelValues("local")); got != before+1 {
		t.Errorf("rate_limited_total = %f, want %f", got, before+1)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	var during float64
	r.Get("/language", func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(httpInFlight)
		w.WriteHeader(http.StatusOK)
	})

	before := testutil.ToFloat64(httpInFlight)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/language", http.NoBody))

	if during != before+1 {
		t.Errorf("in-flight during request = %f, want %f", during, before+1)
	}
	if got := testutil.ToFloat64(httpInFlight); got != before {
		t.Errorf("in-flight after request = %f, want %f", got, before)
	}
}
