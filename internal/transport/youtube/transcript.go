// Package youtube fetches video transcripts through the kkdai/youtube client.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	yt "github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
)

// videoClient is the consumer interface over *yt.Client (ISP).
type videoClient interface {
	GetVideoContext(ctx context.Context, id string) (*yt.Video, error)
	GetTranscriptCtx(ctx context.Context, video *yt.Video, lang string) (yt.VideoTranscript, error)
}

// Config holds the transcript fetcher settings.
type Config struct {
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Fetcher implements pipeline.TranscriptFetcher.
type Fetcher struct {
	client videoClient
	logger *zap.Logger
}

// New creates a transcript Fetcher.
func New(cfg Config) *Fetcher {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return newFetcher(&yt.Client{HTTPClient: hc}, cfg.Logger)
}

func newFetcher(c videoClient, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: c, logger: logger}
}

// FetchTranscript returns the transcript of videoID as one space-joined
// string, using the first of languages that has a caption track. Tracks
// match on base language, so en-US serves en.
func (f *Fetcher) FetchTranscript(ctx context.Context, videoID string, languages []domain.Language) (string, error) {
	video, err := f.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", domain.NewSourceError("youtube", 0, fmt.Errorf("%w: %w", domain.ErrTranscriptUnavailable, err))
	}

	codes := pickLanguages(video.CaptionTracks, languages)
	if len(codes) == 0 {
		return "", fmt.Errorf("%w: no track in %v", domain.ErrTranscriptUnavailable, languages)
	}

	var errs []error
	for _, code := range codes {
		segments, err := f.client.GetTranscriptCtx(ctx, video, code)
		if errors.Is(err, yt.ErrTranscriptDisabled) {
			return "", fmt.Errorf("%w: %w", domain.ErrTranscriptUnavailable, err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", code, err))
			continue
		}
		text := joinSegments(segments)
		if text == "" {
			errs = append(errs, fmt.Errorf("%s: empty track", code))
			continue
		}

		f.logger.Debug("Transcript fetched",
			zap.String("video_id", videoID),
			zap.String("language", code),
			zap.Int("segments", len(segments)),
			zap.Int("chars", len(text)),
		)
		return text, nil
	}
	return "", fmt.Errorf("%w: %w", domain.ErrTranscriptUnavailable, errors.Join(errs...))
}

// pickLanguages returns the track language codes to try, in preference
// order. Within a language the code of a manual track wins over an "asr" one.
func pickLanguages(tracks []yt.CaptionTrack, languages []domain.Language) []string {
	var codes []string
	for _, lang := range languages {
		generated := ""
		manual := ""
		for _, t := range tracks {
			if domain.LanguageOrDefault(t.LanguageCode, "") != lang {
				continue
			}
			if t.Kind != "asr" && manual == "" {
				manual = t.LanguageCode
			}
			if t.Kind == "asr" && generated == "" {
				generated = t.LanguageCode
			}
		}
		switch {
		case manual != "":
			codes = append(codes, manual)
		case generated != "":
			codes = append(codes, generated)
		}
	}
	return codes
}

// joinSegments folds line breaks inside cues and joins them with spaces.
func joinSegments(segments yt.VideoTranscript) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if cue := strings.Join(strings.Fields(s.Text), " "); cue != "" {
			parts = append(parts, cue)
		}
	}
	return strings.Join(parts, " ")
}
