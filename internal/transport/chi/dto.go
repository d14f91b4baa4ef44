package chi

import "github.com/kailas-cloud/onimo/internal/domain"

type askRequest struct {
	Query string `json:"query" validate:"required"`
}

// factCheckRequest accepts a video link or a bare identifier.
type factCheckRequest struct {
	URL     string `json:"url" validate:"required_without=VideoID"`
	VideoID string `json:"video_id" validate:"omitempty,len=11"`
}

func (r factCheckRequest) target() string {
	if r.URL != "" {
		return r.URL
	}
	return r.VideoID
}

type languageRequest struct {
	Language string `json:"language" validate:"required,bcp47_language_tag"`
}

type languageResponse struct {
	Language domain.Language `json:"language"`
	Previous domain.Language `json:"previous,omitempty"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}
