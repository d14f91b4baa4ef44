// Package newsapi answers fact queries with the most recent matching article
// from newsapi.org.
package newsapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/answer"
	"github.com/kailas-cloud/onimo/internal/httputil"
)

const defaultEndpoint = "https://newsapi.org/v2/everything"

// Config holds the news source settings.
type Config struct {
	APIKey     string
	Endpoint   string
	Language   domain.Language
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Source queries the "everything" endpoint ordered by publication time.
type Source struct {
	apiKey   string
	endpoint string
	lang     domain.Language
	client   *http.Client
	logger   *zap.Logger
}

// New creates a newsapi.org source.
func New(cfg Config) *Source {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	lang := cfg.Language
	if !lang.IsSupported() {
		lang = domain.LanguageEnglish
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{apiKey: cfg.APIKey, endpoint: endpoint, lang: lang, client: client, logger: logger}
}

// Origin implements resolve.Source.
func (s *Source) Origin() answer.Origin { return answer.News }

type articlesResponse struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

type article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// PageSize is the number of articles requested; only the first is used.
func PageSize(detail answer.Detail) int {
	if detail == answer.Detailed {
		return 3
	}
	return 1
}

// Resolve returns "<title>: <description>" of the newest article matching
// keyword, citing the article URL.
func (s *Source) Resolve(ctx context.Context, keyword string, detail answer.Detail) answer.SourceResult {
	a, err := s.latest(ctx, keyword, PageSize(detail))
	if err != nil {
		s.logger.Info("News lookup missed", zap.String("keyword", keyword), zap.Error(err))
		return answer.NotFound()
	}
	return answer.Found(Summary(a.Title, a.Description), a.URL)
}

// Summary joins an article headline and description.
func Summary(title, description string) string {
	title, description = strings.TrimSpace(title), strings.TrimSpace(description)
	if title == "" && description == "" {
		return ""
	}
	return title + ": " + description
}

func (s *Source) latest(ctx context.Context, keyword string, pageSize int) (article, error) {
	if s.apiKey == "" {
		return article{}, fmt.Errorf("newsapi key: %w", domain.ErrNotConfigured)
	}

	q := url.Values{}
	q.Set("q", keyword)
	q.Set("language", string(s.lang))
	q.Set("pageSize", fmt.Sprint(pageSize))
	q.Set("sortBy", "publishedAt")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return article{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return article{}, domain.NewSourceError("newsapi", 0, err)
	}
	var out articlesResponse
	if err := httputil.DecodeJSON(resp, &out); err != nil {
		return article{}, domain.NewSourceError("newsapi", resp.StatusCode, err)
	}
	if out.Status != "ok" {
		return article{}, domain.NewSourceError("newsapi", resp.StatusCode,
			fmt.Errorf("%w: %s: %s", domain.ErrSourceUnavailable, out.Code, out.Message))
	}
	if len(out.Articles) == 0 {
		return article{}, domain.ErrNoResults
	}
	return out.Articles[0], nil
}
