package driving

import (
	"context"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// Session is the state of one user's conversation about one video.
// Hosts keep one Session per user and pass it to every AssistantService call.
// A Session is not safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string

	// State returns the lifecycle position of the session.
	State() domain.SessionState

	// VideoID returns the indexed video, or "" before the first successful index.
	VideoID() domain.VideoID

	// Settings returns the parameters that apply to the next IndexVideo call.
	Settings() domain.RAGSettings

	// ActiveSettings returns the parameters the current index was built with.
	ActiveSettings() domain.RAGSettings

	// Chunks returns a copy of the indexed chunks in transcript order.
	Chunks() []domain.Chunk
}

// AssistantService answers questions about a YouTube video.
type AssistantService interface {
	// NewSession creates an uninitialised session using the configured defaults.
	NewSession() Session

	// Configure validates and stores parameters for the next IndexVideo call.
	Configure(session Session, settings domain.RAGSettings) error

	// IndexVideo fetches, chunks and embeds the transcript of the video at rawURL.
	// On success the index replaces any previous one and history is cleared.
	// On failure the session keeps its previous index and history.
	IndexVideo(ctx context.Context, session Session, rawURL string) (*domain.IndexSummary, error)

	// Ask answers a question from the indexed transcript and records the turn.
	Ask(ctx context.Context, session Session, question string) (string, error)

	// ClearHistory drops every recorded turn without touching the index.
	ClearHistory(session Session) error

	// History returns a copy of the recorded turns, oldest first.
	History(session Session) ([]domain.ChatTurn, error)
}

// TranscriptService retrieves transcripts with language fallback.
type TranscriptService interface {
	// Fetch returns the transcript of the video, trying each configured language set in turn.
	Fetch(ctx context.Context, videoID domain.VideoID) (*domain.Transcript, error)
}
