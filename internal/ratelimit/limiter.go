// Package ratelimit decides whether a client may make another request.
//
// Local keeps a token bucket per client in process memory. Shared counts
// requests in fixed windows on the cache store, so every instance behind a
// load balancer enforces the same limit.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Local is an in-process per-client token bucket limiter.
type Local struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	perMinute int
	buckets   *cache.Cache
}

// NewLocal allows perMinute requests per client with the given burst.
// Buckets of clients idle for longer than idle are dropped.
func NewLocal(perMinute, burst int, idle time.Duration) *Local {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = perMinute
	}
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	return &Local{
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		perMinute: perMinute,
		buckets:   cache.New(idle, idle),
	}
}

// Allow implements Limiter. It never fails.
func (l *Local) Allow(_ context.Context, client string) (Decision, error) {
	lim := l.bucket(client)

	now := time.Now()
	if !lim.AllowN(now, 1) {
		missing := 1 - lim.TokensAt(now)
		retry := time.Duration(missing / float64(l.limit) * float64(time.Second))
		return Decision{Limit: l.perMinute, RetryAfter: retry}, nil
	}
	return Decision{
		Allowed:   true,
		Limit:     l.perMinute,
		Remaining: int(lim.TokensAt(now)),
	}, nil
}

func (l *Local) bucket(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.buckets.Get(client); ok {
		lim := v.(*rate.Limiter)
		// Touch to extend the idle expiry.
		l.buckets.SetDefault(client, lim)
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.buckets.SetDefault(client, lim)
	return lim
}

// counter is the consumer interface for the shared window counter (ISP).
type counter interface {
	Hit(ctx context.Context, client string) (int64, error)
	ResetIn() time.Duration
}

// Shared is a fixed-window limiter backed by the cache store.
type Shared struct {
	counter   counter
	perWindow int
}

// NewShared allows perWindow requests per client per counter window.
func NewShared(c counter, perWindow int) *Shared {
	if perWindow <= 0 {
		perWindow = 10
	}
	return &Shared{counter: c, perWindow: perWindow}
}

// Allow implements Limiter. On a store error the request is allowed and the
// error is returned for logging.
func (s *Shared) Allow(ctx context.Context, client string) (Decision, error) {
	n, err := s.counter.Hit(ctx, client)
	if err != nil {
		return Decision{Allowed: true, Limit: s.perWindow}, err
	}
	if n > int64(s.perWindow) {
		return Decision{Limit: s.perWindow, RetryAfter: s.counter.ResetIn()}, nil
	}
	return Decision{Allowed: true, Limit: s.perWindow, Remaining: s.perWindow - int(n)}, nil
}
