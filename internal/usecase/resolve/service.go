package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain/answer"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

// DefaultSourceTimeout bounds a single source lookup when none is configured.
const DefaultSourceTimeout = 8 * time.Second

// Mode selects how sources are combined.
type Mode string

// Resolution modes.
const (
	// ModeRace runs all sources concurrently; the first Found wins and the rest are canceled.
	ModeRace Mode = "race"
	// ModeSequential asks sources one by one in configured order.
	ModeSequential Mode = "sequential"
)

// ParseMode converts a config value to a Mode. Empty means ModeRace.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeRace:
		return ModeRace, nil
	case ModeSequential:
		return ModeSequential, nil
	}
	return "", fmt.Errorf("unknown resolver mode %q", s)
}

// Config for the resolver.
type Config struct {
	Mode          Mode
	SourceTimeout time.Duration
}

// Resolver reconciles several sources into one answer.
type Resolver struct {
	sources []Source
	mode    Mode
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a resolver over sources. In sequential mode sources are asked in the given order.
func New(cfg Config, logger *zap.Logger, sources ...Source) *Resolver {
	if cfg.Mode == "" {
		cfg.Mode = ModeRace
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = DefaultSourceTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		sources: sources,
		mode:    cfg.Mode,
		timeout: cfg.SourceTimeout,
		logger:  logger,
	}
}

// Resolve looks keyword up and returns the winning answer, or answer.NoAnswer
// when every source came back empty.
func (r *Resolver) Resolve(ctx context.Context, keyword string, detail answer.Detail) answer.Resolved {
	var res answer.Resolved
	if r.mode == ModeSequential {
		res = r.sequential(ctx, keyword, detail)
	} else {
		res = r.race(ctx, keyword, detail)
	}

	origin := "none"
	if res.Found() {
		origin = string(res.Origin())
	}
	metrics.ResolverOutcomesTotal.WithLabelValues(string(r.mode), origin).Inc()
	return res
}

type outcome struct {
	origin answer.Origin
	result answer.SourceResult
}

func (r *Resolver) race(ctx context.Context, keyword string, detail answer.Detail) answer.Resolved {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so that losers finishing after the winner never block.
	results := make(chan outcome, len(r.sources))
	for _, s := range r.sources {
		go func(s Source) {
			results <- outcome{origin: s.Origin(), result: r.lookup(ctx, s, keyword, detail)}
		}(s)
	}

	for range r.sources {
		select {
		case o := <-results:
			if o.result.IsFound() {
				return answer.NewResolved(o.origin, o.result)
			}
		case <-ctx.Done():
			return answer.NoAnswer()
		}
	}
	return answer.NoAnswer()
}

func (r *Resolver) sequential(ctx context.Context, keyword string, detail answer.Detail) answer.Resolved {
	for _, s := range r.sources {
		if ctx.Err() != nil {
			break
		}
		if res := r.lookup(ctx, s, keyword, detail); res.IsFound() {
			return answer.NewResolved(s.Origin(), res)
		}
	}
	return answer.NoAnswer()
}

// lookup runs one source under the per-source deadline. Timeouts, cancellation
// and panics all become NotFound.
func (r *Resolver) lookup(ctx context.Context, s Source, keyword string, detail answer.Detail) answer.SourceResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	source := string(s.Origin())
	start := time.Now()

	done := make(chan lookupResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("Source panicked",
					zap.String("source", source),
					zap.String("keyword", keyword),
					zap.Any("panic", p),
				)
				done <- lookupResult{result: answer.NotFound(), status: "panic"}
			}
		}()
		res := s.Resolve(ctx, keyword, detail)
		status := "not_found"
		if res.IsFound() {
			status = "found"
		}
		done <- lookupResult{result: res, status: status}
	}()

	var o lookupResult
	select {
	case o = <-done:
	case <-ctx.Done():
		o = lookupResult{result: answer.NotFound(), status: "canceled"}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			o.status = "timeout"
			r.logger.Warn("Source timed out",
				zap.String("source", source),
				zap.String("keyword", keyword),
				zap.Duration("timeout", r.timeout),
			)
		}
	}

	metrics.SourceRequestsTotal.WithLabelValues(source, o.status).Inc()
	metrics.SourceRequestDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	return o.result
}

type lookupResult struct {
	result answer.SourceResult
	status string
}
