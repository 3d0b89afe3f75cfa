package domain

import (
	"fmt"
	"regexp"
)

// VideoID is the 11 character token YouTube uses to identify a video.
type VideoID string

// videoIDPattern matches watch?v=ID, youtu.be/ID and /embed/ID. The token must
// be followed by a query delimiter or the end of the string.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[&?]|$)`)

// ExtractVideoID returns the video ID embedded in rawURL.
// The second return value is false when no ID is present.
func ExtractVideoID(rawURL string) (VideoID, bool) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return VideoID(m[1]), true
}

// ParseVideoURL is ExtractVideoID for callers that want an error.
func ParseVideoURL(rawURL string) (VideoID, error) {
	id, ok := ExtractVideoID(rawURL)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return id, nil
}

// String returns the string representation.
func (v VideoID) String() string {
	return string(v)
}

// WatchURL returns the canonical watch page URL for the video.
func (v VideoID) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + string(v)
}
