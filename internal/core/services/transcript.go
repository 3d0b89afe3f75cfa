package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
	"github.com/custodia-labs/tubeqa/internal/logger"
)

// Ensure TranscriptService implements the interface.
var _ driving.TranscriptService = (*TranscriptService)(nil)

// TranscriptService fetches transcripts, trying language sets in order.
type TranscriptService struct {
	source   driven.TranscriptSource
	attempts [][]string
}

// NewTranscriptService creates a transcript service over the given source.
func NewTranscriptService(source driven.TranscriptSource, settings domain.TranscriptSettings) *TranscriptService {
	return &TranscriptService{
		source:   source,
		attempts: settings.Attempts(),
	}
}

// Fetch returns the first transcript found. Only a "no transcript in these
// languages" failure moves on to the next set; anything else stops the search.
// The final failure is wrapped in domain.ErrTranscriptUnavailable.
func (s *TranscriptService) Fetch(ctx context.Context, videoID domain.VideoID) (*domain.Transcript, error) {
	if len(s.attempts) == 0 {
		return nil, fmt.Errorf("%w: no transcript languages configured", domain.ErrTranscriptUnavailable)
	}

	var lastErr error
	for i, languages := range s.attempts {
		logger.Info("Fetching transcript for %s (languages %v)", videoID, languages)

		transcript, err := s.source.Fetch(ctx, videoID, languages)
		if err == nil {
			logger.Info("Transcript found: %s, %d snippets", transcript.Language, len(transcript.Snippets))
			return transcript, nil
		}

		lastErr = err
		if !errors.Is(err, domain.ErrNoTranscriptFound) {
			break
		}
		if i < len(s.attempts)-1 {
			logger.Warn("No transcript in %v, trying fallback languages", languages)
		}
	}

	return nil, fmt.Errorf("%w: %w", domain.ErrTranscriptUnavailable, lastErr)
}
