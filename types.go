package onimo

import "github.com/kailas-cloud/onimo/internal/domain/response"

// Status labels a Response.
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

// Language is a reply language code.
type Language string

// Supported reply languages.
const (
	English Language = "en"
	Bangla  Language = "bn"
)

// Response is the outcome of Ask or FactCheckVideo.
// Summary and Source are set only for fact statuses; Language is empty on error.
type Response struct {
	Status   Status   `json:"status"`
	Message  string   `json:"message,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Source   string   `json:"source,omitempty"`
	Language Language `json:"language,omitempty"`
}

// Text returns the human-readable part: Summary for facts, Message otherwise.
func (r Response) Text() string {
	if r.Summary != "" {
		return r.Summary
	}
	return r.Message
}

func fromDomain(r response.Response) Response {
	return Response{
		Status:   Status(r.Status),
		Message:  r.Message,
		Summary:  r.Summary,
		Source:   r.Source,
		Language: Language(r.Language),
	}
}
