// Package ratewindow counts requests per client in fixed time windows on top
// of a shared key-value store, so several instances can enforce one limit.
package ratewindow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/onimo/internal/domain"
)

var keyPrefix = domain.KeyPrefix + "rate:"

// store is the consumer interface for window counters (ISP).
type store interface {
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store implements fixed-window counting on top of DB (INCRBY + EXPIRE NX).
type Store struct {
	store  store
	window time.Duration
	now    func() time.Time
}

// New creates a window counter. window is the length of one counting window.
func New(s store, window time.Duration) *Store {
	if window <= 0 {
		window = time.Minute
	}
	return &Store{store: s, window: window, now: time.Now}
}

// Hit records one request for client in the current window and returns the
// number of requests seen in that window so far, this one included.
func (s *Store) Hit(ctx context.Context, client string) (int64, error) {
	key := s.key(client)

	n, err := s.store.IncrBy(ctx, key, 1)
	if err != nil {
		return 0, fmt.Errorf("rate INCRBY %s: %w", key, err)
	}

	// Set TTL only if the key has no expiry yet (NX, not reset on repeat).
	if err := s.store.Expire(ctx, key, 2*s.window, true); err != nil {
		return 0, fmt.Errorf("rate EXPIRE %s: %w", key, err)
	}

	return n, nil
}

// Window returns the window length.
func (s *Store) Window() time.Duration { return s.window }

// ResetIn returns the time left until the current window closes.
func (s *Store) ResetIn() time.Duration {
	elapsed := time.Duration(s.now().UnixNano() % int64(s.window))
	return s.window - elapsed
}

// key follows the pattern onimo:rate:{client}:{window index}.
func (s *Store) key(client string) string {
	idx := s.now().UnixNano() / int64(s.window)
	return keyPrefix + client + ":" + strconv.FormatInt(idx, 10)
}
