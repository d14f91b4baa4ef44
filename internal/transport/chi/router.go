package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain/response"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

// RouterConfig holds the cross-cutting middleware settings.
type RouterConfig struct {
	// APIKeys enables bearer authentication when non-empty.
	APIKeys []string
	// Limiter is optional. RateLimitBackend labels its rejections in metrics.
	Limiter          Limiter
	RateLimitBackend string
	Logger           *zap.Logger
}

// NewRouter mounts the API routes and middleware.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	if cfg.Limiter != nil {
		r.Use(RateLimitMiddleware(cfg.Limiter, cfg.RateLimitBackend, logger))
	}

	r.Post("/ask", s.Ask)
	r.Post("/fact-check", s.FactCheck)
	r.Get("/language", s.GetLanguage)
	r.Put("/language", s.SetLanguage)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, response.Error(msgNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, response.Error(msgMethodNotAllowed))
	})

	return r
}
