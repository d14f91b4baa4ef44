package translation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

// Safe is the never-failing translator the pipeline consumes. Any provider
// failure yields the input text unchanged.
type Safe struct {
	inner    domain.Translator
	detector Detector
	logger   *zap.Logger
}

// NewSafe wraps inner. detector may be nil; when set, text already in the
// target language is returned without calling inner.
func NewSafe(inner domain.Translator, detector Detector, logger *zap.Logger) *Safe {
	if inner == nil {
		inner = domain.IdentityTranslator
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Safe{inner: inner, detector: detector, logger: logger}
}

// Translate returns text in target, or text itself when translation is
// impossible or fails.
func (s *Safe) Translate(ctx context.Context, text string, target domain.Language) string {
	if strings.TrimSpace(text) == "" || !target.IsSupported() {
		return text
	}
	if s.detector != nil && s.detector.Detect(text) == target {
		return text
	}

	out, err := s.inner.Translate(ctx, text, target)
	if err == nil && strings.TrimSpace(out) != "" {
		return out
	}

	metrics.TranslationFallbacksTotal.WithLabelValues(string(target)).Inc()
	s.logger.Warn("Translation unavailable, using original text",
		zap.String("target", string(target)),
		zap.Error(err),
	)
	return text
}
