package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/metrics"
)

const (
	opEntities  = "entities"
	opTranslate = "translate"
)

// Client talks to an OpenAI-compatible chat API. It serves as the entity
// recognizer of the keyword extractor and as a fallback translator.
type Client struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the LLM provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	User     string
	Provider string
	Logger   *zap.Logger
}

// New creates an OpenAI-compatible client.
func New(cfg *Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: cfg.Provider,
		logger:   logger,
	}
}

const entitiesPrompt = `Extract the named entities from the user's text.
Reply with a JSON object {"entities":[{"text":"...","category":"..."}]} in order of appearance.
category is one of: person, organization, location, event, creative_work, other.
Copy entity text exactly as written. Reply {"entities":[]} when there are none.`

// Entities implements domain.EntityRecognizer.
func (c *Client) Entities(ctx context.Context, text string) ([]domain.Entity, error) {
	content, err := c.complete(ctx, opEntities, entitiesPrompt, text, true)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Entities []domain.Entity `json:"entities"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}
	for i := range parsed.Entities {
		parsed.Entities[i].Text = strings.TrimSpace(parsed.Entities[i].Text)
		parsed.Entities[i].Category = domain.EntityCategory(strings.ToLower(string(parsed.Entities[i].Category)))
	}
	return parsed.Entities, nil
}

var languageNames = map[domain.Language]string{
	domain.LanguageEnglish: "English",
	domain.LanguageBangla:  "Bangla (Bengali script)",
}

// Translate implements domain.Translator.
func (c *Client) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	name, ok := languageNames[target]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, target)
	}
	prompt := "Translate the user's text into " + name +
		". Keep names, numbers and URLs intact. Reply with the translation only."

	out, err := c.complete(ctx, opTranslate, prompt, text, false)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTranslationFailed, err)
	}
	return out, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func (c *Client) complete(ctx context.Context, op, system, user string, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
		User:        c.user,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(c.provider, c.model, op, "error").Inc()
		c.logger.Warn("LLM request failed", zap.String("operation", op), zap.Error(err))
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.LLMRequestsTotal.WithLabelValues(c.provider, c.model, op, "error").Inc()
		return "", fmt.Errorf("empty completion: %w", domain.ErrSourceUnavailable)
	}

	metrics.LLMRequestsTotal.WithLabelValues(c.provider, c.model, op, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(c.provider, c.model, op).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.LLMTokensTotal.WithLabelValues(c.provider, c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.LLMTokensTotal.WithLabelValues(c.provider, c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrSourceUnavailable.
func parseAPIError(err error) error {
	wrap := domain.ErrSourceUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("llm API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("llm API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("llm API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("llm request: %w: %w", err, wrap)
	}
	return fmt.Errorf("llm request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
