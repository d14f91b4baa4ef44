package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/onimo/internal/domain"
)

var errEmptyTranslation = errors.New("empty translation")

// Chain tries providers in order and returns the first non-empty translation.
type Chain struct {
	providers []domain.Translator
}

// NewChain creates a provider chain. Nil providers are skipped.
func NewChain(providers ...domain.Translator) *Chain {
	c := &Chain{}
	for _, p := range providers {
		if p != nil {
			c.providers = append(c.providers, p)
		}
	}
	return c
}

// Len returns the number of providers in the chain.
func (c *Chain) Len() int { return len(c.providers) }

// Translate implements domain.Translator.
func (c *Chain) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	if len(c.providers) == 0 {
		return "", fmt.Errorf("translation chain: %w", domain.ErrNotConfigured)
	}

	errs := make([]error, 0, len(c.providers))
	for _, p := range c.providers {
		out, err := p.Translate(ctx, text, target)
		if err == nil && strings.TrimSpace(out) != "" {
			return out, nil
		}
		if err == nil {
			err = errEmptyTranslation
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %w", domain.ErrTranslationFailed, errors.Join(errs...))
}
