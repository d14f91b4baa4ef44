// Package response defines the labeled outcome returned by both pipeline entry points.
package response

import (
	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/answer"
)

// Status labels a response.
type Status string

// Status constants.
const (
	StatusError           Status = "error"
	StatusLanguageChanged Status = "language_changed"
	StatusChat            Status = "chat"
	StatusInfo            Status = "info"
	StatusWiki            Status = "wiki"
	StatusNews            Status = "news"
	StatusWikiDetailed    Status = "wiki_detailed"
	StatusNewsDetailed    Status = "news_detailed"
	StatusYouTubeWiki     Status = "youtube_wiki"
	StatusYouTubeNews     Status = "youtube_news"
	StatusUnknown         Status = "unknown"
)

// Response is the wire shape of every pipeline outcome.
type Response struct {
	Status   Status          `json:"status"`
	Message  string          `json:"message,omitempty"`
	Summary  string          `json:"summary,omitempty"`
	Source   string          `json:"source,omitempty"`
	Language domain.Language `json:"language,omitempty"`
}

// Error creates an error response. Error responses carry no language.
func Error(message string) Response {
	return Response{Status: StatusError, Message: message}
}

// Message creates a message-only response (language_changed, chat, info, unknown).
func Message(status Status, message string, lang domain.Language) Response {
	return Response{Status: status, Message: message, Language: lang}
}

// Fact creates a fact-resolved response.
func Fact(status Status, summary, source string, lang domain.Language) Response {
	return Response{Status: status, Summary: summary, Source: source, Language: lang}
}

// FactStatus picks the status label for a resolved answer on the direct-query path.
func FactStatus(origin answer.Origin, detail answer.Detail) Status {
	switch {
	case origin == answer.News && detail == answer.Detailed:
		return StatusNewsDetailed
	case origin == answer.News:
		return StatusNews
	case detail == answer.Detailed:
		return StatusWikiDetailed
	default:
		return StatusWiki
	}
}

// VideoStatus picks the status label for a resolved answer on the transcript path.
func VideoStatus(origin answer.Origin) Status {
	if origin == answer.News {
		return StatusYouTubeNews
	}
	return StatusYouTubeWiki
}
