package onimo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/db"
	"github.com/kailas-cloud/onimo/internal/db/memory"
	dbRedis "github.com/kailas-cloud/onimo/internal/db/redis"
	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/response"
	"github.com/kailas-cloud/onimo/internal/domain/session"
	"github.com/kailas-cloud/onimo/internal/langdetect"
	"github.com/kailas-cloud/onimo/internal/metrics"
	"github.com/kailas-cloud/onimo/internal/repository/transcache"
	"github.com/kailas-cloud/onimo/internal/transport/gnews"
	"github.com/kailas-cloud/onimo/internal/transport/google"
	"github.com/kailas-cloud/onimo/internal/transport/newsapi"
	openaiClient "github.com/kailas-cloud/onimo/internal/transport/openai"
	"github.com/kailas-cloud/onimo/internal/transport/wikipedia"
	"github.com/kailas-cloud/onimo/internal/transport/youtube"
	healthuc "github.com/kailas-cloud/onimo/internal/usecase/health"
	intentuc "github.com/kailas-cloud/onimo/internal/usecase/intent"
	"github.com/kailas-cloud/onimo/internal/usecase/keyword"
	"github.com/kailas-cloud/onimo/internal/usecase/pipeline"
	"github.com/kailas-cloud/onimo/internal/usecase/resolve"
	"github.com/kailas-cloud/onimo/internal/usecase/translation"
)

const defaultReadinessTimeout = 10 * time.Second

// assistantUseCase is the internal interface for the pipeline, swapped in tests.
type assistantUseCase interface {
	Ask(ctx context.Context, sess *session.State, query string) response.Response
	FactCheckVideo(ctx context.Context, sess *session.State, urlOrID string) response.Response
}

// Client is the onimo SDK entry point. It is safe for concurrent use; all
// callers share one reply language.
type Client struct {
	store     db.Store
	sess      *session.State
	assistant assistantUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. The provided context is used for the cache store
// readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{driver: "memory"}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.defaultLanguage != "" && !domain.Language(cfg.defaultLanguage).IsSupported() {
		return nil, fmt.Errorf("onimo: default language %q: %w", cfg.defaultLanguage, ErrUnsupportedLanguage)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("onimo: cache store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	client, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return client, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory", "":
		return memory.New(time.Minute), nil
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("onimo: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("onimo: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	// Internal components log through zap; the SDK reports through its observer.
	logger := zap.NewNop()

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}

	var llm *openaiClient.Client
	if cfg.llmKey != "" {
		llm = openaiClient.New(&openaiClient.Config{
			APIKey:  cfg.llmKey,
			BaseURL: cfg.llmURL,
			Model:   cfg.llmModel,
			Logger:  logger,
		})
	}

	// Translator: custom or google (+ llm) -> cache -> safe
	var providers []domain.Translator
	if cfg.translator != nil {
		providers = append(providers, &translatorAdapter{inner: cfg.translator})
	} else {
		providers = append(providers, google.New("", hc))
		if llm != nil {
			providers = append(providers, llm)
		}
	}
	cached := transcache.New(translation.NewChain(providers...), store, cfg.translationTTL, metrics.TranslationCacheTotal, logger)
	translator := translation.NewSafe(cached, langdetect.New(domain.LanguageEnglish), logger)

	ranker, err := keyword.NewRanker()
	if err != nil {
		return nil, fmt.Errorf("onimo: keyword ranker: %w", err)
	}
	var entities domain.EntityRecognizer
	if llm != nil {
		entities = llm
	}

	mode := resolve.ModeRace
	if cfg.sequential {
		mode = resolve.ModeSequential
	}
	var news resolve.Source
	if cfg.newsAPIKey != "" && !cfg.gnews {
		news = newsapi.New(newsapi.Config{APIKey: cfg.newsAPIKey, HTTPClient: hc, Logger: logger})
	} else {
		news = gnews.New(gnews.Config{Region: cfg.region, HTTPClient: hc, Logger: logger})
	}
	resolver := resolve.New(resolve.Config{Mode: mode, SourceTimeout: cfg.sourceTimeout}, logger,
		wikipedia.New(wikipedia.Config{HTTPClient: hc, Logger: logger}),
		news,
	)

	assistantCfg := domain.DefaultAssistantConfig()
	if cfg.creatorName != "" {
		assistantCfg.CreatorName = cfg.creatorName
	}
	if cfg.defaultLanguage != "" {
		assistantCfg.DefaultLanguage = domain.Language(cfg.defaultLanguage)
	}

	assistant := pipeline.New(
		assistantCfg,
		intentuc.New(intentuc.DefaultPhrases()),
		keyword.New(ranker, entities),
		resolver,
		translator,
	).WithTranscripts(youtube.New(youtube.Config{HTTPClient: hc, Logger: logger}))

	var llmChecker healthuc.LLMChecker
	if llm != nil {
		llmChecker = llm
	}

	return &Client{
		store:     store,
		sess:      session.New(assistantCfg.DefaultLanguage),
		assistant: assistant,
		healthSvc: healthuc.New(store, llmChecker),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ask answers a free-text query. Language switch commands change the reply
// language for every later call on this Client.
func (c *Client) Ask(ctx context.Context, query string) Response {
	start := time.Now()
	resp := fromDomain(c.assistant.Ask(ctx, c.sess, query))
	c.obs.observe("ask", start, resp.Status)
	return resp
}

// FactCheckVideo answers from the transcript of a YouTube video. urlOrID is
// a video link or a bare 11-character identifier.
func (c *Client) FactCheckVideo(ctx context.Context, urlOrID string) Response {
	start := time.Now()
	resp := fromDomain(c.assistant.FactCheckVideo(ctx, c.sess, urlOrID))
	c.obs.observe("fact_check", start, resp.Status)
	return resp
}

// Language returns the current reply language.
func (c *Client) Language() Language {
	return Language(c.sess.Language())
}

// SetLanguage sets the reply language and returns the previous one. It accepts
// BCP 47 tags such as "bn-BD".
func (c *Client) SetLanguage(tag string) (Language, error) {
	l, err := domain.ParseLanguage(tag)
	if err != nil {
		return c.Language(), fmt.Errorf("onimo: %w", err)
	}
	prev, err := c.sess.Set(l)
	if err != nil {
		return Language(prev), fmt.Errorf("onimo: %w", err)
	}
	return Language(prev), nil
}

// errNoStore is returned by Ping on a Client built without a store.
var errNoStore = errors.New("onimo: client has no store")
