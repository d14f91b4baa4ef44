// Package langdetect guesses which supported language a text is written in.
//
// Only English and Bangla are supported, and the two use different scripts,
// so detection is a script census: the share of Bengali-block letters among
// all letters. Anything that is not clearly Bangla is reported as the default.
package langdetect

import (
	"unicode"

	"github.com/kailas-cloud/onimo/internal/domain"
)

// defaultThreshold is the share of Bengali letters above which text is Bangla.
const defaultThreshold = 0.3

// Detector reports the language of a text.
type Detector struct {
	fallback  domain.Language
	threshold float64
}

// New creates a Detector that reports fallback for undecidable input.
func New(fallback domain.Language) *Detector {
	if !fallback.IsSupported() {
		fallback = domain.LanguageEnglish
	}
	return &Detector{fallback: fallback, threshold: defaultThreshold}
}

// Detect returns the language of text, or the fallback when text has no letters.
func (d *Detector) Detect(text string) domain.Language {
	var letters, bengali int
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) && !unicode.Is(unicode.Mc, r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Bengali, r) {
			bengali++
		}
	}
	if letters == 0 {
		return d.fallback
	}
	if float64(bengali)/float64(letters) >= d.threshold {
		return domain.LanguageBangla
	}
	return domain.LanguageEnglish
}
