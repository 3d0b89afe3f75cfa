package domain

import "time"

// SessionState is the lifecycle position of a question answering session.
type SessionState string

// Session states.
const (
	// SessionUninitialized means no video has been indexed.
	SessionUninitialized SessionState = "uninitialized"

	// SessionIndexing means a transcript is being fetched and indexed.
	SessionIndexing SessionState = "indexing"

	// SessionReady means an index exists and questions can be answered.
	SessionReady SessionState = "ready"
)

// String returns the string representation.
func (s SessionState) String() string {
	return string(s)
}

// Description returns a human-readable description of the state.
func (s SessionState) Description() string {
	switch s {
	case SessionUninitialized:
		return "No video processed"
	case SessionIndexing:
		return "Processing video..."
	case SessionReady:
		return "Ready for questions"
	default:
		return "Unknown"
	}
}

// ChatTurn is one question and the answer generated for it.
type ChatTurn struct {
	Question string
	Answer   string
	AskedAt  time.Time
}
