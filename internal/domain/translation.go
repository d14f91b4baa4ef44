package domain

import "context"

// Translator is the shared translation contract between layers.
// Implementations may fail; callers that must never fail wrap them
// with usecase/translation.Safe.
type Translator interface {
	Translate(ctx context.Context, text string, target Language) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(ctx context.Context, text string, target Language) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(ctx context.Context, text string, target Language) (string, error) {
	return f(ctx, text, target)
}

// IdentityTranslator returns the input unchanged. Used when no provider is configured.
var IdentityTranslator = TranslatorFunc(func(_ context.Context, text string, _ Language) (string, error) {
	return text, nil
})
