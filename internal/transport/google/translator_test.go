package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kailas-cloud/onimo/internal/domain"
)

func TestTranslate_JoinsSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if r.PostForm.Get("client") != "gtx" || r.PostForm.Get("sl") != "auto" || r.PostForm.Get("dt") != "t" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		if r.PostForm.Get("tl") != "bn" {
			t.Errorf("tl = %q", r.PostForm.Get("tl"))
		}
		if r.PostForm.Get("q") != "Hello! How can I help you?" {
			t.Errorf("q = %q", r.PostForm.Get("q"))
		}
		_, _ = w.Write([]byte(`[[["হ্যালো! ","Hello! ",null,null,10],["আমি কীভাবে সাহায্য করতে পারি?","How can I help you?",null,null,10]],null,"en",null,null,null,1]`))
	}))
	defer srv.Close()

	out, err := New(srv.URL, srv.Client()).Translate(context.Background(), "Hello! How can I help you?", domain.LanguageBangla)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "হ্যালো! আমি কীভাবে সাহায্য করতে পারি?" {
		t.Errorf("Translate = %q", out)
	}
}

func TestDetect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[["Dhaka","ঢাকা",null,null,1]],null,"bn"]`))
	}))
	defer srv.Close()

	lang, err := New(srv.URL, nil).Detect(context.Background(), "ঢাকা")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if lang != domain.LanguageBangla {
		t.Errorf("Detect = %q, want bn", lang)
	}
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `boom`},
		{"empty array", http.StatusOK, `[]`},
		{"no segments", http.StatusOK, `[null,null,"en"]`},
		{"blank text", http.StatusOK, `[[[" ","x"]],null,"en"]`},
		{"not json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, nil).Translate(context.Background(), "x", domain.LanguageBangla)
			if !errors.Is(err, domain.ErrTranslationFailed) {
				t.Errorf("expected ErrTranslationFailed, got %v", err)
			}
		})
	}
}
