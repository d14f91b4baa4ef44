package pipeline

import (
	"context"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/answer"
	domintent "github.com/kailas-cloud/onimo/internal/domain/intent"
	"github.com/kailas-cloud/onimo/internal/domain/session"
)

// Classifier decides what a query asks for. A language switch is applied to sess.
type Classifier interface {
	Classify(sess *session.State, query, normalized string) domintent.Intent
}

// Extractor reduces text to a search keyword. Never empty for non-empty input.
type Extractor interface {
	Extract(ctx context.Context, text string) string
}

// Resolver looks a keyword up across the fact sources.
type Resolver interface {
	Resolve(ctx context.Context, keyword string, detail answer.Detail) answer.Resolved
}

// Translator translates text and returns the input unchanged on failure.
type Translator interface {
	Translate(ctx context.Context, text string, target domain.Language) string
}

// TranscriptFetcher retrieves the spoken text of a video, trying languages in order.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string, languages []domain.Language) (string, error)
}
