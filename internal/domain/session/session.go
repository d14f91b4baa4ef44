// Package session holds the reply-language state shared across requests.
package session

import (
	"sync/atomic"

	"github.com/kailas-cloud/onimo/internal/domain"
)

// State is the active reply language. One State lives for the whole process and
// is passed explicitly into every pipeline call. Reads and writes are atomic;
// there is no per-client isolation.
type State struct {
	lang atomic.Value // domain.Language
}

// New creates a State starting at initial. Unsupported codes start at English.
func New(initial domain.Language) *State {
	if !initial.IsSupported() {
		initial = domain.LanguageEnglish
	}
	s := &State{}
	s.lang.Store(initial)
	return s
}

// Language returns the current reply language.
func (s *State) Language() domain.Language {
	return s.lang.Load().(domain.Language)
}

// Set replaces the reply language and returns the previous one.
func (s *State) Set(l domain.Language) (domain.Language, error) {
	if !l.IsSupported() {
		return s.Language(), domain.ErrUnsupportedLanguage
	}
	return s.lang.Swap(l).(domain.Language), nil
}
