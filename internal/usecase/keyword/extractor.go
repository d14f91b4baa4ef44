package keyword

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/logger"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

// fallbackTokens is how many leading tokens the last-resort stage keeps.
const fallbackTokens = 3

// Extraction stages, used as metric labels.
const (
	StageRanker   = "ranker"
	StageEntity   = "entity"
	StageFallback = "fallback"
)

// Extractor reduces text to a short search phrase. Stages run in order and the
// first non-empty result wins: keyphrase ranking, named entities, leading tokens.
type Extractor struct {
	ranker   *Ranker
	entities domain.EntityRecognizer
}

// New creates an Extractor. Both ranker and entities may be nil; the
// leading-token stage is always available.
func New(ranker *Ranker, entities domain.EntityRecognizer) *Extractor {
	return &Extractor{ranker: ranker, entities: entities}
}

// Extract returns the keyword for text. The result is never empty for
// non-empty input.
func (e *Extractor) Extract(ctx context.Context, text string) string {
	kw, stage := e.extract(ctx, text)
	if kw != "" {
		metrics.KeywordStageTotal.WithLabelValues(stage).Inc()
		logger.FromContext(ctx).Debug("Keyword extracted",
			zap.String("keyword", kw),
			zap.String("stage", stage),
		)
	}
	return kw
}

func (e *Extractor) extract(ctx context.Context, text string) (string, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text, StageFallback
	}

	if e.ranker != nil {
		if kw := e.ranker.Top(trimmed); kw != "" {
			return kw, StageRanker
		}
	}

	if e.entities != nil {
		if kw := e.firstEntity(ctx, trimmed); kw != "" {
			return kw, StageEntity
		}
	}

	return LeadingTokens(trimmed, fallbackTokens), StageFallback
}

func (e *Extractor) firstEntity(ctx context.Context, text string) string {
	ents, err := e.entities.Entities(ctx, text)
	if err != nil {
		logger.FromContext(ctx).Warn("Entity recognition failed", zap.Error(err))
		return ""
	}
	for _, ent := range ents {
		if !ent.Category.IsSearchable() {
			continue
		}
		if t := strings.TrimSpace(ent.Text); t != "" {
			return t
		}
	}
	return ""
}

// LeadingTokens returns the first n whitespace-delimited tokens of text joined
// by single spaces, or text itself when it has fewer than n tokens.
func LeadingTokens(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) < n {
		return text
	}
	return strings.Join(fields[:n], " ")
}
