package onimo

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/onimo/internal/domain"
)

// Translator translates text into a target language code ("en", "bn").
// Plug one in with WithTranslator to replace the built-in providers.
type Translator interface {
	Translate(ctx context.Context, text string, target Language) (string, error)
}

// translatorAdapter wraps a public Translator to satisfy domain.Translator.
type translatorAdapter struct {
	inner Translator
}

func (a *translatorAdapter) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	out, err := a.inner.Translate(ctx, text, Language(target))
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return out, nil
}
