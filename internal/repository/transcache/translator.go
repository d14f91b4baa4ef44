package transcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/db"
	"github.com/kailas-cloud/onimo/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "tr_cache:"

// store is the consumer interface for the translation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedTranslator caches translations in a key-value store.
type CachedTranslator struct {
	inner      domain.Translator
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. A non-positive ttl caches forever.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Translator,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedTranslator {
	return &CachedTranslator{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Translate returns a cached translation or calls the inner translator.
// Failed translations are never cached.
func (c *CachedTranslator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	key := c.cacheKey(text, target)

	if out, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return out, nil
	}

	c.incCache("miss")

	out, err := c.inner.Translate(ctx, text, target)
	if err != nil {
		return "", fmt.Errorf("translate text: %w", err)
	}

	c.putToCache(ctx, key, out)
	return out, nil
}

func (c *CachedTranslator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the target language together with the text; NUL cannot occur in a language code.
func (c *CachedTranslator) cacheKey(text string, target domain.Language) string {
	h := sha256.New()
	h.Write([]byte(target))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return cacheKeyPrefix + string(target) + ":" + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedTranslator) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached translation", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (c *CachedTranslator) putToCache(ctx context.Context, key, text string) {
	if text == "" {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Warn("Failed to cache translation", zap.String("key", key), zap.Error(err))
	}
}
