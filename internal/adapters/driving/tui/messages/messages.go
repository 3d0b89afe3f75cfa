// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewVideo is the URL entry view.
	ViewVideo ViewType = iota
	// ViewChat is the question and answer view.
	ViewChat
	// ViewSettings is the pipeline parameter panel.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewVideo:
		return "video"
	case ViewChat:
		return "chat"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// VideoRequested asks the app to index the video at URL.
type VideoRequested struct {
	URL string
}

// VideoIndexed carries the outcome of indexing back to the model.
type VideoIndexed struct {
	Summary *domain.IndexSummary
	Err     error
}

// QuestionSubmitted asks the app to answer a question.
type QuestionSubmitted struct {
	Question string
}

// AnswerReceived carries a generated answer, or the failure, back to the model.
type AnswerReceived struct {
	Question string
	Answer   string
	History  []domain.ChatTurn
	Err      error
}

// HistoryCleared signals the conversation was reset.
type HistoryCleared struct {
	Err error
}

// SettingsSubmitted asks the app to apply parameters to the next video.
type SettingsSubmitted struct {
	Settings domain.RAGSettings
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
