package config

import (
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/onimo/internal/domain"
)

func validConfig() Config {
	cfg := Config{
		News: NewsConfig{Provider: "gnews"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.HTTP.Port != 5000 {
		t.Errorf("http.port = %d, want 5000", cfg.HTTP.Port)
	}
	if cfg.RateLimit.RequestsPerMinute != 10 || cfg.RateLimit.Burst != 10 {
		t.Errorf("rate_limit = %+v, want 10/min burst 10", cfg.RateLimit)
	}
	if !cfg.RateLimit.IsEnabled() {
		t.Error("rate limiting must default to enabled")
	}
	if cfg.Cache.Driver != "memory" {
		t.Errorf("cache.driver = %q, want memory", cfg.Cache.Driver)
	}
	if cfg.Resolver.Mode != "race" {
		t.Errorf("resolver.mode = %q, want race", cfg.Resolver.Mode)
	}
	if cfg.SourceTimeout() != 8*time.Second {
		t.Errorf("SourceTimeout() = %v, want 8s", cfg.SourceTimeout())
	}
	if len(cfg.Translate.Providers) != 1 || cfg.Translate.Providers[0] != "google" {
		t.Errorf("translate.providers = %v, want [google]", cfg.Translate.Providers)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestApplyDefaults_NewsProviderFollowsKey(t *testing.T) {
	var noKey Config
	noKey.ApplyDefaults()
	if noKey.News.Provider != "gnews" {
		t.Errorf("provider without key = %q, want gnews", noKey.News.Provider)
	}

	withKey := Config{News: NewsConfig{APIKey: "k"}}
	withKey.ApplyDefaults()
	if withKey.News.Provider != "newsapi" {
		t.Errorf("provider with key = %q, want newsapi", withKey.News.Provider)
	}
}

func TestApplyDefaults_LLMJoinsTranslateChain(t *testing.T) {
	cfg := Config{LLM: LLMConfig{APIKey: "k"}}
	cfg.ApplyDefaults()
	if strings.Join(cfg.Translate.Providers, ",") != "google,llm" {
		t.Errorf("translate.providers = %v", cfg.Translate.Providers)
	}
}

func TestAssistantSettings(t *testing.T) {
	cfg := validConfig()
	got := cfg.AssistantSettings()

	if got.CreatorName != "Alamin" {
		t.Errorf("CreatorName = %q", got.CreatorName)
	}
	if got.DefaultLanguage != domain.LanguageEnglish {
		t.Errorf("DefaultLanguage = %q", got.DefaultLanguage)
	}
	if len(got.TranscriptLanguages) != 2 || got.TranscriptLanguages[1] != domain.LanguageBangla {
		t.Errorf("TranscriptLanguages = %v", got.TranscriptLanguages)
	}
	if got.MaxQueryRunes != 2000 {
		t.Errorf("MaxQueryRunes = %d", got.MaxQueryRunes)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"unknown cache driver", func(c *Config) { c.Cache.Driver = "etcd" }, "cache.driver"},
		{"redis without addrs", func(c *Config) { c.Cache.Driver = "redis" }, "cache.addrs"},
		{"bad rate limit backend", func(c *Config) { c.RateLimit.Backend = "cluster" }, "rate_limit.backend"},
		{"unsupported default language", func(c *Config) { c.Assistant.DefaultLanguage = "fr" }, "assistant.default_language"},
		{"unsupported transcript language", func(c *Config) { c.Assistant.TranscriptLanguages = []string{"en", "de"} }, "assistant.transcript_languages"},
		{"bad resolver mode", func(c *Config) { c.Resolver.Mode = "fastest" }, "resolver.mode"},
		{"newsapi without key", func(c *Config) { c.News.Provider = "newsapi" }, "news.api_key"},
		{"unknown news provider", func(c *Config) { c.News.Provider = "bing" }, "news.provider"},
		{"llm translation without key", func(c *Config) { c.Translate.Providers = []string{"llm"} }, "llm.api_key"},
		{"unknown translate provider", func(c *Config) { c.Translate.Providers = []string{"deepl"} }, "unknown provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("ONIMO_TEST_NEWS_KEY", "secret")

	cfg, err := Parse([]byte(`
http:
  port: 8081
news:
  api_key: ${ONIMO_TEST_NEWS_KEY}
resolver:
  mode: ${ONIMO_TEST_UNSET_MODE:-sequential}
rate_limit:
  enabled: false
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("http.port = %d", cfg.HTTP.Port)
	}
	if cfg.News.APIKey != "secret" || cfg.News.Provider != "newsapi" {
		t.Errorf("news = %+v", cfg.News)
	}
	if cfg.Resolver.Mode != "sequential" {
		t.Errorf("resolver.mode = %q", cfg.Resolver.Mode)
	}
	if cfg.RateLimit.IsEnabled() {
		t.Error("rate_limit.enabled: false was ignored")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected YAML error")
	}
	if _, err := Parse([]byte("cache:\n  driver: etcd\n")); err == nil {
		t.Fatal("expected validation error")
	}
}
