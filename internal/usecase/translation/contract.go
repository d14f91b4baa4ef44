package translation

import "github.com/kailas-cloud/onimo/internal/domain"

// Detector guesses the language of a text.
type Detector interface {
	Detect(text string) domain.Language
}
