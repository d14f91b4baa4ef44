package onimo

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "memory", "valkey" or "redis"
	addrs    []string
	password string

	newsAPIKey string
	gnews      bool
	region     string

	llmKey   string
	llmURL   string
	llmModel string

	translator     Translator
	translationTTL time.Duration

	creatorName     string
	defaultLanguage Language
	sequential      bool
	sourceTimeout   time.Duration
	httpClient      *http.Client

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey caches translations in a Valkey instance. The default is an
// in-process cache.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches translations in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithNewsAPI reads news from newsapi.org with the given key.
func WithNewsAPI(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.newsAPIKey = apiKey
		c.gnews = false
	})
}

// WithGoogleNews reads news from the Google News RSS search feed, which
// needs no key. region is an ISO country code such as "US" or "BD".
// This is the default when no news key is set.
func WithGoogleNews(region string) Option {
	return optionFunc(func(c *clientConfig) {
		c.gnews = true
		c.region = region
	})
}

// WithLLM enables an OpenAI-compatible model for entity recognition and as a
// translation fallback. Empty baseURL and model select the provider defaults.
func WithLLM(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.llmKey = apiKey
		c.llmURL = baseURL
		c.llmModel = model
	})
}

// WithTranslator replaces the built-in translation providers.
func WithTranslator(t Translator) Option {
	return optionFunc(func(c *clientConfig) {
		c.translator = t
	})
}

// WithTranslationTTL expires cached translations. Default: never.
func WithTranslationTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.translationTTL = ttl
	})
}

// WithCreatorName sets the name given in reply to "who made you".
func WithCreatorName(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.creatorName = name
	})
}

// WithDefaultLanguage sets the starting reply language. Default: English.
func WithDefaultLanguage(l Language) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLanguage = l
	})
}

// WithSequentialSources asks the encyclopedia first and the news source only
// when it has nothing. The default races them.
func WithSequentialSources() Option {
	return optionFunc(func(c *clientConfig) {
		c.sequential = true
	})
}

// WithSourceTimeout bounds each source lookup. Default: 8s.
func WithSourceTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.sourceTimeout = d
	})
}

// WithHTTPClient sets the client used for every outbound request.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
