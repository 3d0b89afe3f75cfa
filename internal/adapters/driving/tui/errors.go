package tui

import (
	"errors"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("tui: assistant service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// describeError renders a pipeline error for the status bar.
func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return "Invalid YouTube URL"
	case errors.Is(err, domain.ErrNotIndexed):
		return "Process a video first"
	case errors.Is(err, domain.ErrTranscriptUnavailable):
		return "Transcript not available for this video"
	case errors.Is(err, domain.ErrEmptyTranscript):
		return "The transcript is empty"
	case errors.Is(err, domain.ErrEmbeddingService):
		return "Embedding failed: " + err.Error()
	case errors.Is(err, domain.ErrGenerationService):
		return "Answer generation failed: " + err.Error()
	default:
		return err.Error()
	}
}
