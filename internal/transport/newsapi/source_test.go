package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain/answer"
)

func newTestSource(endpoint, key string) *Source {
	return New(Config{APIKey: key, Endpoint: endpoint, Logger: zap.NewNop()})
}

func TestResolve_FirstArticle(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("X-Api-Key = %q", r.Header.Get("X-Api-Key"))
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q": q.Get("q"), "language": q.Get("language"),
			"pageSize": q.Get("pageSize"), "sortBy": q.Get("sortBy"),
		}
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"title":"Floods hit Sylhet","description":"Heavy rain continues.","url":"https://news.example.com/1"},
			{"title":"Older","description":"ignored","url":"https://news.example.com/2"}]}`))
	}))
	defer srv.Close()

	got := newTestSource(srv.URL, "test-key").Resolve(context.Background(), "sylhet floods", answer.Brief)

	if !got.IsFound() {
		t.Fatal("expected Found")
	}
	if got.Summary() != "Floods hit Sylhet: Heavy rain continues." {
		t.Errorf("Summary() = %q", got.Summary())
	}
	if got.CitationURL() != "https://news.example.com/1" {
		t.Errorf("CitationURL() = %q", got.CitationURL())
	}
	want := map[string]string{"q": "sylhet floods", "language": "en", "pageSize": "1", "sortBy": "publishedAt"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("%s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestResolve_DetailedPageSize(t *testing.T) {
	var pageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageSize = r.URL.Query().Get("pageSize")
		_, _ = w.Write([]byte(`{"status":"ok","articles":[{"title":"T","description":"D","url":"u"}]}`))
	}))
	defer srv.Close()

	newTestSource(srv.URL, "k").Resolve(context.Background(), "x", answer.Detailed)
	if pageSize != "3" {
		t.Errorf("pageSize = %q, want 3", pageSize)
	}
}

func TestResolve_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no articles", http.StatusOK, `{"status":"ok","articles":[]}`},
		{"api error", http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid","message":"bad key"}`},
		{"error status with 200", http.StatusOK, `{"status":"error","code":"rateLimited","message":"slow down"}`},
		{"empty article", http.StatusOK, `{"status":"ok","articles":[{"title":"","description":"","url":"u"}]}`},
		{"malformed", http.StatusOK, `[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			if got := newTestSource(srv.URL, "k").Resolve(context.Background(), "x", answer.Brief); got.IsFound() {
				t.Errorf("expected NotFound, got %q", got.Summary())
			}
		})
	}
}

func TestResolve_NoKeySkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	if got := newTestSource(srv.URL, "").Resolve(context.Background(), "x", answer.Brief); got.IsFound() {
		t.Error("expected NotFound without key")
	}
	if called {
		t.Error("request sent without key")
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(" Title ", " Desc "); got != "Title: Desc" {
		t.Errorf("Summary = %q", got)
	}
	if got := Summary("Title", ""); got != "Title: " {
		t.Errorf("Summary = %q", got)
	}
	if got := Summary("", ""); got != "" {
		t.Errorf("Summary = %q", got)
	}
}

func TestOrigin(t *testing.T) {
	if New(Config{}).Origin() != answer.News {
		t.Error("Origin() must be news")
	}
}
