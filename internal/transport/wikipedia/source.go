// Package wikipedia answers fact queries from the MediaWiki API.
package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/answer"
	"github.com/kailas-cloud/onimo/internal/httputil"
)

const (
	defaultEndpoint  = "https://%s.wikipedia.org/w/api.php"
	defaultUserAgent = "onimo/1.0 (https://github.com/kailas-cloud/onimo)"

	briefSentences    = 2
	detailedSentences = 5
)

// Config holds the encyclopedia source settings.
type Config struct {
	// Endpoint is the api.php URL. A %s verb is replaced with Language.
	Endpoint   string
	Language   domain.Language
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Source looks a keyword up in one Wikipedia edition.
type Source struct {
	endpoint  string
	lang      domain.Language
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

// New creates a Wikipedia source.
func New(cfg Config) *Source {
	lang := cfg.Language
	if !lang.IsSupported() {
		lang = domain.LanguageEnglish
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if strings.Contains(endpoint, "%s") {
		endpoint = fmt.Sprintf(endpoint, lang)
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{endpoint: endpoint, lang: lang, userAgent: ua, client: client, logger: logger}
}

// Origin implements resolve.Source.
func (s *Source) Origin() answer.Origin { return answer.Encyclopedia }

// Resolve searches for keyword, takes the top hit and returns the first two
// (brief) or five (detailed) sentences of its article.
func (s *Source) Resolve(ctx context.Context, keyword string, detail answer.Detail) answer.SourceResult {
	title, err := s.search(ctx, keyword)
	if err != nil {
		s.miss(keyword, "search", err)
		return answer.NotFound()
	}

	sentences := briefSentences
	if detail == answer.Detailed {
		sentences = detailedSentences
	}
	page, err := s.extract(ctx, title, sentences)
	if err != nil {
		s.miss(keyword, "extract", err)
		return answer.NotFound()
	}

	return answer.Found(page.Extract, PageURL(s.lang, page.Title))
}

func (s *Source) miss(keyword, stage string, err error) {
	s.logger.Info("Encyclopedia lookup missed",
		zap.String("keyword", keyword),
		zap.String("stage", stage),
		zap.Error(err),
	)
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type extractResponse struct {
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type page struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Missing   bool   `json:"missing"`
	PageProps struct {
		Disambiguation *string `json:"disambiguation"`
	} `json:"pageprops"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) err() error {
	return fmt.Errorf("%w: %s: %s", domain.ErrSourceUnavailable, e.Code, e.Info)
}

func (s *Source) search(ctx context.Context, keyword string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", keyword)
	q.Set("srlimit", "1")
	q.Set("srprop", "")
	q.Set("format", "json")
	q.Set("utf8", "1")

	var out searchResponse
	if err := s.get(ctx, q, &out); err != nil {
		return "", err
	}
	if out.Error != nil {
		return "", out.Error.err()
	}
	if len(out.Query.Search) == 0 || out.Query.Search[0].Title == "" {
		return "", domain.ErrNoResults
	}
	return out.Query.Search[0].Title, nil
}

func (s *Source) extract(ctx context.Context, title string, sentences int) (page, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "extracts|pageprops")
	q.Set("ppprop", "disambiguation")
	q.Set("exintro", "1")
	q.Set("explaintext", "1")
	q.Set("exsentences", strconv.Itoa(sentences))
	q.Set("redirects", "1")
	q.Set("titles", title)
	q.Set("format", "json")
	q.Set("formatversion", "2")

	var out extractResponse
	if err := s.get(ctx, q, &out); err != nil {
		return page{}, err
	}
	if out.Error != nil {
		return page{}, out.Error.err()
	}
	if len(out.Query.Pages) == 0 {
		return page{}, domain.ErrNoResults
	}
	p := out.Query.Pages[0]
	switch {
	case p.Missing:
		return page{}, fmt.Errorf("page %q missing: %w", title, domain.ErrNoResults)
	case p.PageProps.Disambiguation != nil:
		return page{}, fmt.Errorf("page %q is a disambiguation page: %w", p.Title, domain.ErrNoResults)
	case strings.TrimSpace(p.Extract) == "":
		return page{}, fmt.Errorf("page %q has no extract: %w", p.Title, domain.ErrNoResults)
	}
	if p.Title == "" {
		p.Title = title
	}
	return p, nil
}

func (s *Source) get(ctx context.Context, q url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return domain.NewSourceError("wikipedia", 0, err)
	}
	if err := httputil.DecodeJSON(resp, v); err != nil {
		return domain.NewSourceError("wikipedia", resp.StatusCode, err)
	}
	return nil
}

// PageURL builds the canonical article link for title: spaces become
// underscores and each path segment is percent-escaped.
func PageURL(lang domain.Language, title string) string {
	segs := strings.Split(strings.ReplaceAll(title, " ", "_"), "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return "https://" + string(lang) + ".wikipedia.org/wiki/" + strings.Join(segs, "/")
}
