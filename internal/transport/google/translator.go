// Package google translates text through the public Google Translate
// endpoint used by browser extensions (client=gtx). It needs no key.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/httputil"
)

const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// Translator implements domain.Translator with source-language auto-detection.
type Translator struct {
	endpoint string
	client   *http.Client
}

// New creates a Translator. An empty endpoint selects the public one.
func New(endpoint string, client *http.Client) *Translator {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Translator{endpoint: endpoint, client: client}
}

// Translate implements domain.Translator.
func (t *Translator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	out, _, err := t.translate(ctx, text, target)
	return out, err
}

// Detect asks the endpoint which language text is in.
func (t *Translator) Detect(ctx context.Context, text string) (domain.Language, error) {
	_, src, err := t.translate(ctx, text, domain.CanonicalLanguage)
	if err != nil {
		return "", err
	}
	return domain.LanguageOrDefault(src, domain.CanonicalLanguage), nil
}

func (t *Translator) translate(ctx context.Context, text string, target domain.Language) (string, string, error) {
	form := url.Values{}
	form.Set("client", "gtx")
	form.Set("sl", "auto")
	form.Set("tl", string(target))
	form.Set("dt", "t")
	form.Set("q", text)

	// POST keeps long transcripts out of the URL.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httputil.DoWithRetry(ctx, t.client, req, 0)
	if err != nil {
		return "", "", fmt.Errorf("%w: google: %w", domain.ErrTranslationFailed, err)
	}

	var raw []json.RawMessage
	if err := httputil.DecodeJSON(resp, &raw); err != nil {
		return "", "", fmt.Errorf("%w: google: %w", domain.ErrTranslationFailed, err)
	}
	out, src, err := parseResponse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: google: %w", domain.ErrTranslationFailed, err)
	}
	return out, src, nil
}

// parseResponse reads the positional array the endpoint returns:
// [[["translated","original",...],...], null, "detected-source", ...].
func parseResponse(raw []json.RawMessage) (string, string, error) {
	if len(raw) == 0 {
		return "", "", errors.New("empty response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", "", fmt.Errorf("decode segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if json.Unmarshal(seg[0], &part) == nil {
			b.WriteString(part)
		}
	}

	var src string
	if len(raw) > 2 {
		_ = json.Unmarshal(raw[2], &src)
	}

	out := b.String()
	if strings.TrimSpace(out) == "" {
		return "", src, errors.New("no translated text")
	}
	return out, src, nil
}
