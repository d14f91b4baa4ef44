package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterLLMMetrics()
	os.Exit(m.Run())
}

// chatServer answers /chat/completions with content and records the request.
func chatServer(t *testing.T, content string, got *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if got != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17},
		})
	}))
}

func newTestClient(url string) *Client {
	return New(&Config{
		APIKey:   "test-key",
		BaseURL:  url,
		Model:    "test-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})
}

func TestClient_Entities(t *testing.T) {
	var req map[string]any
	server := chatServer(t, `{"entities":[{"text":" Sheikh Hasina ","category":"PERSON"},{"text":"Dhaka","category":"location"}]}`, &req)
	defer server.Close()

	got, err := newTestClient(server.URL).Entities(context.Background(), "sheikh hasina visited dhaka")
	if err != nil {
		t.Fatalf("Entities failed: %v", err)
	}

	want := []domain.Entity{
		{Text: "Sheikh Hasina", Category: domain.EntityPerson},
		{Text: "Dhaka", Category: domain.EntityLocation},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entity[%d] = %+v, expected %+v", i, got[i], want[i])
		}
	}

	rf, _ := req["response_format"].(map[string]any)
	if rf["type"] != "json_object" {
		t.Errorf("response_format = %v, expected json_object", req["response_format"])
	}
}

func TestClient_EntitiesMalformed(t *testing.T) {
	server := chatServer(t, `not json`, nil)
	defer server.Close()

	if _, err := newTestClient(server.URL).Entities(context.Background(), "x"); err == nil {
		t.Fatal("expected error for malformed completion")
	}
}

func TestClient_Translate(t *testing.T) {
	var req map[string]any
	server := chatServer(t, " ঢাকা বাংলাদেশের রাজধানী। ", &req)
	defer server.Close()

	out, err := newTestClient(server.URL).Translate(context.Background(), "Dhaka is the capital of Bangladesh.", domain.LanguageBangla)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "ঢাকা বাংলাদেশের রাজধানী।" {
		t.Errorf("Translate = %q", out)
	}

	msgs, _ := req["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	system, _ := msgs[0].(map[string]any)
	if !strings.Contains(system["content"].(string), "Bangla") {
		t.Errorf("system prompt does not name the target: %v", system["content"])
	}
	if _, ok := req["response_format"]; ok {
		t.Error("translation must not force JSON output")
	}
}

func TestClient_TranslateUnsupported(t *testing.T) {
	_, err := newTestClient("http://unused").Translate(context.Background(), "x", domain.Language("fr"))
	if !errors.Is(err, domain.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "rate limit exceeded",
				"type":    "rate_limit_error",
			},
		})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Translate(context.Background(), "hello", domain.LanguageBangla)
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !errors.Is(err, domain.ErrTranslationFailed) || !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("unexpected error chain: %v", err)
	}
}

func TestClient_EmptyCompletion(t *testing.T) {
	server := chatServer(t, "   ", nil)
	defer server.Close()

	if _, err := newTestClient(server.URL).Entities(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty completion")
	}
}

func TestClient_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-model","object":"model"}]}`))
	}))
	defer server.Close()

	if err := newTestClient(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
}
