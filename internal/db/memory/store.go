// Package memory is an in-process db.Store backed by go-cache.
// It is the default cache driver and needs no external service.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kailas-cloud/onimo/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DefaultCleanupInterval is how often expired items are purged.
const DefaultCleanupInterval = 10 * time.Minute

// Store keeps values in process memory. Values are copied on the way in and out.
type Store struct {
	c  *cache.Cache
	mu sync.Mutex // serializes read-modify-write ops (IncrBy, Expire)
}

// New creates an empty store. Items without a TTL never expire.
func New(cleanupInterval time.Duration) *Store {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &Store{c: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Close drops every item.
func (s *Store) Close() { s.c.Flush() }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	switch val := v.(type) {
	case []byte:
		return append([]byte(nil), val...), nil
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	}
	return nil, db.ErrKeyNotFound
}

// Set stores a value without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.c.Set(key, append([]byte(nil), value...), cache.NoExpiration)
	return nil
}

// SetWithTTL stores a value with an expiration. A non-positive ttl stores without expiry.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	s.c.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Del removes a key.
func (s *Store) Del(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}

// IncrBy increments a counter, creating it at val when missing, and returns the new value.
func (s *Store) IncrBy(_ context.Context, key string, val int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.c.Add(key, val, cache.NoExpiration); err == nil {
		return val, nil
	}
	n, err := s.c.IncrementInt64(key, val)
	if err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Err: db.ErrNotInteger}
	}
	return n, nil
}

// Expire sets TTL on an existing key. When nx=true, only keys without an expiry are touched.
// Missing keys are ignored, as in Redis.
func (s *Store) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exp, ok := s.c.GetWithExpiration(key)
	if !ok {
		return nil
	}
	if nx && !exp.IsZero() {
		return nil
	}
	s.c.Set(key, v, ttl)
	return nil
}
