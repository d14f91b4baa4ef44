package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/config"
	"github.com/kailas-cloud/onimo/internal/db"
	"github.com/kailas-cloud/onimo/internal/db/memory"
	dbRedis "github.com/kailas-cloud/onimo/internal/db/redis"
	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/session"
	"github.com/kailas-cloud/onimo/internal/langdetect"
	logpkg "github.com/kailas-cloud/onimo/internal/logger"
	"github.com/kailas-cloud/onimo/internal/metrics"
	"github.com/kailas-cloud/onimo/internal/ratelimit"
	"github.com/kailas-cloud/onimo/internal/repository/ratewindow"
	"github.com/kailas-cloud/onimo/internal/repository/transcache"
	chiTransport "github.com/kailas-cloud/onimo/internal/transport/chi"
	"github.com/kailas-cloud/onimo/internal/transport/gnews"
	"github.com/kailas-cloud/onimo/internal/transport/google"
	"github.com/kailas-cloud/onimo/internal/transport/newsapi"
	openaiClient "github.com/kailas-cloud/onimo/internal/transport/openai"
	"github.com/kailas-cloud/onimo/internal/transport/wikipedia"
	"github.com/kailas-cloud/onimo/internal/transport/youtube"
	"github.com/kailas-cloud/onimo/internal/version"
	healthuc "github.com/kailas-cloud/onimo/internal/usecase/health"
	intentuc "github.com/kailas-cloud/onimo/internal/usecase/intent"
	"github.com/kailas-cloud/onimo/internal/usecase/keyword"
	"github.com/kailas-cloud/onimo/internal/usecase/pipeline"
	"github.com/kailas-cloud/onimo/internal/usecase/resolve"
	"github.com/kailas-cloud/onimo/internal/usecase/translation"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	logger = logpkg.WithFile(logger, logpkg.FileOptions{
		Path:       cfg.Logging.File.Path,
		MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
		MaxBackups: cfg.Logging.File.MaxBackups,
		MaxAgeDays: cfg.Logging.File.MaxAgeDays,
		Compress:   cfg.Logging.File.Compress,
	})
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting onimo API server",
		zap.String("version", version.String()),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.String("resolver_mode", cfg.Resolver.Mode),
		zap.String("news_provider", cfg.News.Provider),
		zap.Bool("llm", cfg.LLM.Enabled()),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterAssistantMetrics()
	metrics.RegisterTranslationMetrics()
	metrics.RegisterLLMMetrics()

	store, err := buildStore(cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Cache store not ready", zap.Error(err))
	}
	logger.Info("Connected to cache store")

	httpClient := &http.Client{Timeout: 15 * time.Second}

	// Optional LLM: entity recognition, a translation fallback and a health check.
	var llm *openaiClient.Client
	if cfg.LLM.Enabled() {
		llm = openaiClient.New(&openaiClient.Config{
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Model:    cfg.LLM.Model,
			Provider: cfg.LLM.Provider,
			Logger:   logger,
		})
	}

	translator := buildTranslator(cfg, store, httpClient, llm, logger)

	// Keyword extraction: ranker -> entities -> leading tokens
	ranker, err := keyword.NewRanker()
	if err != nil {
		logger.Fatal("Failed to build keyword ranker", zap.Error(err))
	}
	// Pass nil interface (not typed nil pointer) when the LLM is off.
	var entities domain.EntityRecognizer
	if llm != nil {
		entities = llm
	}
	extractor := keyword.New(ranker, entities)

	mode, err := resolve.ParseMode(cfg.Resolver.Mode)
	if err != nil {
		logger.Fatal("Invalid resolver mode", zap.Error(err))
	}
	resolver := resolve.New(resolve.Config{Mode: mode, SourceTimeout: cfg.SourceTimeout()}, logger,
		wikipedia.New(wikipedia.Config{
			Endpoint:   cfg.Wikipedia.Endpoint,
			Language:   domain.LanguageOrDefault(cfg.Wikipedia.Language, domain.LanguageEnglish),
			UserAgent:  cfg.Wikipedia.UserAgent,
			HTTPClient: httpClient,
			Logger:     logger,
		}),
		buildNewsSource(cfg.News, httpClient, logger),
	)

	assistantCfg := cfg.AssistantSettings()
	assistant := pipeline.New(
		assistantCfg,
		intentuc.New(intentuc.DefaultPhrases()),
		extractor,
		resolver,
		translator,
	).WithTranscripts(youtube.New(youtube.Config{
		HTTPClient: httpClient,
		Logger:     logger,
	}))

	sess := session.New(assistantCfg.DefaultLanguage)

	// Health service. Pass a nil interface when the LLM is off.
	var llmChecker healthuc.LLMChecker
	if llm != nil {
		llmChecker = llm
	}
	healthSvc := healthuc.New(store, llmChecker)

	routerCfg := chiTransport.RouterConfig{
		APIKeys: cfg.Auth.APIKeys,
		Logger:  logger,
	}
	if cfg.RateLimit.IsEnabled() {
		routerCfg.Limiter = buildLimiter(cfg.RateLimit, store)
		routerCfg.RateLimitBackend = cfg.RateLimit.Backend
	}

	server := chiTransport.NewServer(assistant, sess, healthSvc, logger)
	handler := chiTransport.NewRouter(server, routerCfg)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildStore picks the cache store by driver. Redis and Valkey share one client.
func buildStore(c config.CacheConfig) (db.Store, error) {
	switch c.Driver {
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    c.Addrs,
			Password: c.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("%s store: %w", c.Driver, err)
		}
		return s, nil
	default:
		return memory.New(time.Minute), nil
	}
}

// buildTranslator assembles the decorator chain:
// providers (instrumented each) -> Chain -> Cached -> Safe.
func buildTranslator(
	cfg config.Config,
	store db.Store,
	client *http.Client,
	llm *openaiClient.Client,
	logger *zap.Logger,
) *translation.Safe {
	var providers []domain.Translator
	for _, name := range cfg.Translate.Providers {
		switch name {
		case "google":
			providers = append(providers, translation.NewInstrumentedTranslator(
				google.New(cfg.Translate.GoogleEndpoint, client), name, logger,
			))
		case "llm":
			if llm != nil {
				providers = append(providers, translation.NewInstrumentedTranslator(llm, name, logger))
			}
		}
	}

	chain := translation.NewChain(providers...)
	if chain.Len() == 0 {
		logger.Warn("No translation provider available, replies stay untranslated",
			zap.Strings("configured", cfg.Translate.Providers))
	}
	var inner domain.Translator = transcache.New(
		chain,
		store,
		time.Duration(cfg.Cache.TranslationTTL)*time.Second,
		metrics.TranslationCacheTotal,
		logger,
	)

	logger.Info("Translator created", zap.Strings("providers", cfg.Translate.Providers))
	return translation.NewSafe(inner, langdetect.New(domain.LanguageEnglish), logger)
}

// buildNewsSource picks the news adapter. Both report the News origin.
func buildNewsSource(c config.NewsConfig, client *http.Client, logger *zap.Logger) resolve.Source {
	lang := domain.LanguageOrDefault(c.Language, domain.LanguageEnglish)
	if c.Provider == "gnews" {
		return gnews.New(gnews.Config{
			Endpoint:   c.Endpoint,
			Language:   lang,
			Region:     c.Region,
			HTTPClient: client,
			Logger:     logger,
		})
	}
	return newsapi.New(newsapi.Config{
		APIKey:     c.APIKey,
		Endpoint:   c.Endpoint,
		Language:   lang,
		HTTPClient: client,
		Logger:     logger,
	})
}

// buildLimiter returns a per-instance limiter, or one shared through the store.
func buildLimiter(c config.RateLimitConfig, store db.Store) chiTransport.Limiter {
	if c.Backend == "store" {
		return ratelimit.NewShared(ratewindow.New(store, time.Minute), c.RequestsPerMinute)
	}
	return ratelimit.NewLocal(c.RequestsPerMinute, c.Burst, 10*time.Minute)
}
