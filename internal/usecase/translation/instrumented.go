package translation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

// InstrumentedTranslator wraps one provider with request metrics and logging.
type InstrumentedTranslator struct {
	inner    domain.Translator
	provider string
	logger   *zap.Logger
}

// NewInstrumentedTranslator wraps a provider with observability.
func NewInstrumentedTranslator(inner domain.Translator, provider string, logger *zap.Logger) *InstrumentedTranslator {
	return &InstrumentedTranslator{
		inner:    inner,
		provider: provider,
		logger:   logger,
	}
}

// Translate delegates to the inner provider and records the outcome.
func (p *InstrumentedTranslator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	start := time.Now()

	out, err := p.inner.Translate(ctx, text, target)

	duration := time.Since(start)
	metrics.TranslationRequestDuration.WithLabelValues(p.provider).Observe(duration.Seconds())

	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(p.provider, string(target), "error").Inc()
		p.logger.Warn("Translation request failed",
			zap.String("provider", p.provider),
			zap.String("target", string(target)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", fmt.Errorf("%s translate: %w", p.provider, err)
	}

	metrics.TranslationRequestsTotal.WithLabelValues(p.provider, string(target), "success").Inc()
	p.logger.Debug("Translation request completed",
		zap.String("provider", p.provider),
		zap.String("target", string(target)),
		zap.Duration("duration", duration),
		zap.Int("chars", len(text)),
	)

	return out, nil
}
