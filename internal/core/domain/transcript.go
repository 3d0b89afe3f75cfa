package domain

import (
	"strings"
	"time"
)

// Snippet is a single timed caption line.
type Snippet struct {
	// Text is the spoken text with markup removed.
	Text string

	// Start is the offset from the beginning of the video.
	Start time.Duration

	// Duration is how long the line is on screen.
	Duration time.Duration
}

// Transcript is the ordered caption track of a video in one language.
type Transcript struct {
	// VideoID identifies the video the transcript belongs to.
	VideoID VideoID

	// Language is the language code of the track (e.g. "en", "hi").
	Language string

	// LanguageName is the human-readable name of the track.
	LanguageName string

	// IsGenerated is true for automatic speech recognition tracks.
	IsGenerated bool

	// Snippets are the caption lines in the order the source returned them.
	Snippets []Snippet
}

// Text joins all snippet texts with a single space.
func (t *Transcript) Text() string {
	if t == nil || len(t.Snippets) == 0 {
		return ""
	}
	parts := make([]string, len(t.Snippets))
	for i, s := range t.Snippets {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

// Preview returns at most n runes from the start of the transcript text.
func (t *Transcript) Preview(n int) string {
	r := []rune(t.Text())
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n])
}
