package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/answer"
	domintent "github.com/kailas-cloud/onimo/internal/domain/intent"
	"github.com/kailas-cloud/onimo/internal/domain/response"
	"github.com/kailas-cloud/onimo/internal/domain/session"
	"github.com/kailas-cloud/onimo/internal/domain/video"
	"github.com/kailas-cloud/onimo/internal/logger"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

// Entry point labels for metrics.
const (
	entryAsk       = "ask"
	entryFactCheck = "fact_check"
)

// Service runs the two assistant entry points. Every call returns a
// well-formed response; collaborator failures are absorbed along the way.
type Service struct {
	classifier  Classifier
	extractor   Extractor
	resolver    Resolver
	translator  Translator
	transcripts TranscriptFetcher
	cfg         domain.AssistantConfig
	msgs        Messages
}

// New creates a pipeline service.
func New(cfg domain.AssistantConfig, classifier Classifier, extractor Extractor, resolver Resolver, translator Translator) *Service {
	return &Service{
		classifier: classifier,
		extractor:  extractor,
		resolver:   resolver,
		translator: translator,
		cfg:        cfg,
		msgs:       DefaultMessages(),
	}
}

// WithTranscripts enables the video fact-check path.
func (s *Service) WithTranscripts(f TranscriptFetcher) *Service {
	s.transcripts = f
	return s
}

// WithMessages replaces the stock replies.
func (s *Service) WithMessages(m Messages) *Service {
	s.msgs = m
	return s
}

// Ask answers a free-text query.
func (s *Service) Ask(ctx context.Context, sess *session.State, query string) response.Response {
	resp := s.ask(ctx, sess, query)
	metrics.ResponsesTotal.WithLabelValues(entryAsk, string(resp.Status)).Inc()
	return resp
}

func (s *Service) ask(ctx context.Context, sess *session.State, query string) response.Response {
	q, err := s.validQuery(query)
	if err != nil {
		return s.rejected(ctx, err)
	}

	normalized := strings.ToLower(s.translator.Translate(ctx, q, domain.CanonicalLanguage))

	it := s.classifier.Classify(sess, q, normalized)
	domain.TraceFromContext(ctx).SetIntent(it.String())
	metrics.IntentsTotal.WithLabelValues(string(it.Kind())).Inc()

	switch it.Kind() {
	case domintent.LanguageSwitch:
		msg := s.msgs.SwitchedToEnglish
		if it.Target() == domain.LanguageBangla {
			msg = s.msgs.SwitchedToBangla
		}
		return s.message(ctx, sess, response.StatusLanguageChanged, msg)
	case domintent.Greeting:
		return s.message(ctx, sess, response.StatusChat, s.msgs.Greeting)
	case domintent.CreatorQuery:
		return s.message(ctx, sess, response.StatusInfo, fmt.Sprintf(s.msgs.CreatorFormat, s.cfg.CreatorName))
	default:
		detail := answer.DetailFor(it.Detailed())
		keyword := s.extractor.Extract(ctx, normalized)
		res := s.resolve(ctx, keyword, detail)
		return s.fact(ctx, sess, res, response.FactStatus(res.Origin(), detail))
	}
}

// FactCheckVideo answers from the transcript of a video. urlOrID is a video
// link or a bare identifier.
func (s *Service) FactCheckVideo(ctx context.Context, sess *session.State, urlOrID string) response.Response {
	resp := s.factCheckVideo(ctx, sess, urlOrID)
	metrics.ResponsesTotal.WithLabelValues(entryFactCheck, string(resp.Status)).Inc()
	return resp
}

func (s *Service) factCheckVideo(ctx context.Context, sess *session.State, urlOrID string) response.Response {
	id, err := video.ExtractID(urlOrID)
	if err != nil {
		return s.rejected(ctx, err)
	}
	ctx = logger.With(ctx, zap.String("video_id", id))

	if s.transcripts == nil {
		return s.rejected(ctx, fmt.Errorf("%w: no transcript fetcher", domain.ErrTranscriptUnavailable))
	}
	text, err := s.transcripts.FetchTranscript(ctx, id, s.cfg.TranscriptLanguages)
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%w: empty transcript", domain.ErrTranscriptUnavailable)
	}
	if err != nil {
		return s.rejected(ctx, err)
	}

	domain.TraceFromContext(ctx).SetIntent(string(domintent.FactQuery))

	keyword := s.extractor.Extract(ctx, text)
	res := s.resolve(ctx, keyword, answer.Brief)
	return s.fact(ctx, sess, res, response.VideoStatus(res.Origin()))
}

func (s *Service) validQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", domain.ErrEmptyQuery
	}
	if s.cfg.MaxQueryRunes > 0 && utf8.RuneCountInString(q) > s.cfg.MaxQueryRunes {
		return "", fmt.Errorf("%w: %d runes", domain.ErrQueryTooLong, utf8.RuneCountInString(q))
	}
	return q, nil
}

// rejected maps a failure that ends the request early to its stock reply.
// Any transcript fetch failure reads as a missing transcript to the caller.
func (s *Service) rejected(ctx context.Context, err error) response.Response {
	log := logger.FromContext(ctx)
	if domain.UserError(err) {
		log.Debug("Request rejected", zap.Error(err))
	} else {
		log.Info("Transcript fetch failed", zap.Error(err))
	}

	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return response.Error(s.msgs.EmptyQuery)
	case errors.Is(err, domain.ErrQueryTooLong):
		return response.Error(s.msgs.QueryTooLong)
	case errors.Is(err, domain.ErrInvalidVideoURL):
		return response.Error(s.msgs.InvalidVideo)
	default:
		return response.Error(s.msgs.NoTranscript)
	}
}

func (s *Service) resolve(ctx context.Context, keyword string, detail answer.Detail) answer.Resolved {
	domain.TraceFromContext(ctx).SetKeyword(keyword)

	res := s.resolver.Resolve(ctx, keyword, detail)
	if res.Found() {
		domain.TraceFromContext(ctx).SetOrigin(string(res.Origin()))
	}
	logger.FromContext(ctx).Debug("Fact resolved",
		zap.String("keyword", keyword),
		zap.String("detail", detail.String()),
		zap.Bool("found", res.Found()),
		zap.String("origin", string(res.Origin())),
	)
	return res
}

// message formats a message-only reply. The session language is read here,
// at formatting time, not when the request began.
func (s *Service) message(ctx context.Context, sess *session.State, status response.Status, msg string) response.Response {
	lang := sess.Language()
	domain.TraceFromContext(ctx).SetLanguage(lang)
	return response.Message(status, s.translator.Translate(ctx, msg, lang), lang)
}

func (s *Service) fact(ctx context.Context, sess *session.State, res answer.Resolved, status response.Status) response.Response {
	if !res.Found() {
		return s.message(ctx, sess, response.StatusUnknown, s.msgs.NoAnswer)
	}
	lang := sess.Language()
	domain.TraceFromContext(ctx).SetLanguage(lang)
	return response.Fact(status, s.translator.Translate(ctx, res.Summary(), lang), res.CitationURL(), lang)
}
