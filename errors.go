package onimo

import "github.com/kailas-cloud/onimo/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUnsupportedLanguage = domain.ErrUnsupportedLanguage
	ErrNotConfigured       = domain.ErrNotConfigured
	ErrTranslationFailed   = domain.ErrTranslationFailed
)
