package driven

import (
	"context"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// TranscriptSource retrieves the caption track of a video.
//
// Implementations must return domain.ErrNoTranscriptFound (possibly wrapped)
// when the video exists but none of the requested languages has a track.
// Callers rely on that to decide whether to try another language set.
type TranscriptSource interface {
	// Fetch returns the first track matching languages, in preference order.
	Fetch(ctx context.Context, videoID domain.VideoID, languages []string) (*domain.Transcript, error)
}
