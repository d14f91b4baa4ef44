// Package gnews answers fact queries from the Google News RSS search feed.
// It needs no API key, so it also serves as the keyless news source.
package gnews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/answer"
	"github.com/kailas-cloud/onimo/internal/httputil"
	"github.com/kailas-cloud/onimo/internal/transport/newsapi"
)

const defaultEndpoint = "https://news.google.com/rss/search"

// Config holds the feed source settings.
type Config struct {
	Endpoint   string
	Language   domain.Language
	Region     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Source reads the newest item of a search feed.
type Source struct {
	endpoint string
	lang     domain.Language
	region   string
	client   *http.Client
	parser   *gofeed.Parser
	logger   *zap.Logger
}

// New creates a Google News source.
func New(cfg Config) *Source {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	lang := cfg.Language
	if !lang.IsSupported() {
		lang = domain.LanguageEnglish
	}
	region := strings.ToUpper(cfg.Region)
	if region == "" {
		region = "US"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		endpoint: endpoint,
		lang:     lang,
		region:   region,
		client:   client,
		parser:   gofeed.NewParser(),
		logger:   logger,
	}
}

// Origin implements resolve.Source.
func (s *Source) Origin() answer.Origin { return answer.News }

// Resolve returns "<title>: <description>" of the most recently published
// feed item, citing its link.
func (s *Source) Resolve(ctx context.Context, keyword string, detail answer.Detail) answer.SourceResult {
	items, err := s.search(ctx, keyword)
	if err != nil {
		s.logger.Info("News feed lookup missed", zap.String("keyword", keyword), zap.Error(err))
		return answer.NotFound()
	}
	if n := newsapi.PageSize(detail); len(items) > n {
		items = items[:n]
	}
	it := items[0]
	return answer.Found(newsapi.Summary(it.Title, plainText(it.Description)), strings.TrimSpace(it.Link))
}

func (s *Source) feedURL(keyword string) string {
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("hl", string(s.lang)+"-"+s.region)
	q.Set("gl", s.region)
	q.Set("ceid", s.region+":"+string(s.lang))
	return s.endpoint + "?" + q.Encode()
}

// search returns feed items newest first.
func (s *Source) search(ctx context.Context, keyword string) ([]*gofeed.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL(keyword), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return nil, domain.NewSourceError("gnews", 0, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewSourceError("gnews", resp.StatusCode, domain.ErrSourceUnavailable)
	}

	feed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, domain.NewSourceError("gnews", resp.StatusCode, fmt.Errorf("parse feed: %w", err))
	}

	items := make([]*gofeed.Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		if strings.TrimSpace(it.Title) != "" {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return nil, domain.ErrNoResults
	}
	sort.SliceStable(items, func(i, j int) bool {
		return published(items[i]).After(published(items[j]))
	})
	return items, nil
}

func published(it *gofeed.Item) time.Time {
	switch {
	case it.PublishedParsed != nil:
		return *it.PublishedParsed
	case it.UpdatedParsed != nil:
		return *it.UpdatedParsed
	}
	return time.Time{}
}

// plainText strips the HTML markup feed descriptions carry.
func plainText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
