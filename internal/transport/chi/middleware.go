package chi

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/response"
	logpkg "github.com/kailas-cloud/onimo/internal/logger"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

// JSONRecoverer turns a handler panic into a 500 with an error response body.
func JSONRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					writeJSON(w, http.StatusInternalServerError, response.Error(msgInternal))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WideEventMiddleware emits a canonical log line per request, propagates
// X-Request-ID and carries the pipeline trace in the request context.
func WideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)
			ctx, tr := domain.NewContextWithTrace(ctx)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			}
			if tr.Intent != "" {
				fields = append(fields, zap.String("intent", tr.Intent))
			}
			if tr.Keyword != "" {
				fields = append(fields, zap.String("keyword", tr.Keyword))
			}
			if tr.Origin != "" {
				fields = append(fields, zap.String("origin", tr.Origin))
			}
			if tr.Language != "" {
				fields = append(fields, zap.String("language", string(tr.Language)))
			}

			// Canonical log line
			reqLogger.Info("http_request", fields...)
		})
	}
}

// RateLimitMiddleware rejects clients over their request budget with 429.
// Clients are keyed by remote IP. A limiter error lets the request through.
func RateLimitMiddleware(limiter Limiter, backend string, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			client := clientIP(r.RemoteAddr)
			d, err := limiter.Allow(r.Context(), client)
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request",
					zap.String("client", client),
					zap.Error(err),
				)
				d.Allowed = true
			}

			if d.Limit > 0 {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			}

			if !d.Allowed {
				metrics.RateLimitedTotal.WithLabelValues(backend).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(d.RetryAfter)))
				writeJSON(w, http.StatusTooManyRequests, response.Error(msgRateLimited))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// retryAfterSeconds rounds up, never below one second.
func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
