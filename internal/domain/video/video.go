// Package video derives video identifiers from user-supplied links.
package video

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/onimo/internal/domain"
)

// IDLength is the length of a YouTube video identifier.
const IDLength = 11

var (
	// An 11-character token after "v=" or a path separator.
	idInURL = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)
	bareID  = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
)

// ExtractID returns the video identifier in urlOrID. A bare identifier is
// accepted as-is.
func ExtractID(urlOrID string) (string, error) {
	s := strings.TrimSpace(urlOrID)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", domain.ErrInvalidVideoURL)
	}
	if bareID.MatchString(s) {
		return s, nil
	}
	m := idInURL.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidVideoURL, s)
	}
	return m[1], nil
}
