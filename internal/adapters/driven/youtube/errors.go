package youtube

import "errors"

// Errors returned by the transcript source. Missing tracks and unplayable
// videos are reported with the domain sentinels instead.
var (
	// ErrTranscriptsDisabled means the video has no caption tracks at all.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

	// ErrRequestBlocked means YouTube answered with a captcha or bot check.
	ErrRequestBlocked = errors.New("request blocked by YouTube")
)
