package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals a blank user query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrQueryTooLong signals a query over the accepted length.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidVideoURL signals that no video identifier could be derived.
	ErrInvalidVideoURL = errors.New("invalid video url")
	// ErrTranscriptUnavailable signals that the video has no retrievable transcript.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	// ErrUnsupportedLanguage signals a language code outside the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoResults signals that a source answered but had nothing for the keyword.
	ErrNoResults = errors.New("no results")
	// ErrSourceUnavailable signals a source transport or protocol failure.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrTranslationFailed signals a translation provider failure.
	ErrTranslationFailed = errors.New("translation failed")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotConfigured signals an optional provider that has no credentials.
	ErrNotConfigured = errors.New("not configured")
)

// UserError reports whether err belongs to the user-input class:
// reported to the caller as status=error and never retried.
func UserError(err error) bool {
	return errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrQueryTooLong) ||
		errors.Is(err, ErrInvalidVideoURL) ||
		errors.Is(err, ErrTranscriptUnavailable) ||
		errors.Is(err, ErrUnsupportedLanguage)
}

// SourceError wraps a source failure with the source name and HTTP status, if any.
type SourceError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *SourceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: http %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// NewSourceError creates a SourceError.
func NewSourceError(source string, statusCode int, err error) error {
	return &SourceError{Source: source, StatusCode: statusCode, Err: err}
}
