package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported reply language code.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageBangla  Language = "bn"
)

// CanonicalLanguage is the language queries are normalized to for matching.
const CanonicalLanguage = LanguageEnglish

// IsSupported reports whether l is one of the reply languages.
func (l Language) IsSupported() bool {
	return l == LanguageEnglish || l == LanguageBangla
}

// String returns the language code.
func (l Language) String() string { return string(l) }

// ParseLanguage accepts BCP 47 tags ("bn", "bn-BD", "EN") and reduces them
// to a supported base language.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty code", ErrUnsupportedLanguage)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	base, _ := tag.Base()
	l := Language(base.String())
	if !l.IsSupported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return l, nil
}

// LanguageOrDefault parses s and falls back to def when s is not supported.
func LanguageOrDefault(s string, def Language) Language {
	l, err := ParseLanguage(s)
	if err != nil {
		return def
	}
	return l
}
