package chi

import (
	"context"

	"github.com/kailas-cloud/onimo/internal/domain/response"
	"github.com/kailas-cloud/onimo/internal/domain/session"
	"github.com/kailas-cloud/onimo/internal/ratelimit"
	healthuc "github.com/kailas-cloud/onimo/internal/usecase/health"
)

// Assistant is the pipeline the HTTP API fronts.
type Assistant interface {
	Ask(ctx context.Context, sess *session.State, query string) response.Response
	FactCheckVideo(ctx context.Context, sess *session.State, urlOrID string) response.Response
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Limiter decides whether a client may make another request.
type Limiter interface {
	Allow(ctx context.Context, client string) (ratelimit.Decision, error)
}
