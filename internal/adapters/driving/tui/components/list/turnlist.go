// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// TurnList displays the conversation, newest turn at the bottom.
type TurnList struct {
	turns   []domain.ChatTurn
	pending string
	styles  *styles.Styles
	width   int
	height  int

	// offset is the number of lines scrolled up from the bottom.
	offset int
}

// NewTurnList creates a new conversation list component.
func NewTurnList(s *styles.Styles) *TurnList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &TurnList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *TurnList) Init() tea.Cmd {
	return nil
}

// Update handles scrolling keys.
func (l *TurnList) Update(msg tea.Msg) (*TurnList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyPgUp:
			l.ScrollUp(l.height / 2)
		case tea.KeyPgDown:
			l.ScrollDown(l.height / 2)
		}
	}
	return l, nil
}

// View renders the visible part of the conversation.
func (l *TurnList) View() string {
	if len(l.turns) == 0 && l.pending == "" {
		return l.styles.Muted.Render("No questions yet. Ask something about the video.")
	}

	lines := l.lines()
	end := len(lines) - l.offset
	start := end - l.height
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:end], "\n")
}

// lines renders every turn wrapped to the list width.
func (l *TurnList) lines() []string {
	wrapWidth := l.width - 2
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	wrap := lipgloss.NewStyle().Width(wrapWidth)

	var lines []string
	add := func(label lipgloss.Style, prefix, text string) {
		rendered := wrap.Render(label.Render(prefix) + text)
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	for _, turn := range l.turns {
		add(l.styles.UserLabel, "You: ", turn.Question)
		add(l.styles.AssistantLabel, "Assistant: ", turn.Answer)
		lines = append(lines, "")
	}
	if l.pending != "" {
		add(l.styles.UserLabel, "You: ", l.pending)
		add(l.styles.AssistantLabel, "Assistant: ", l.styles.Muted.Render("..."))
	}
	return lines
}

// SetTurns replaces the conversation and scrolls to the newest turn.
func (l *TurnList) SetTurns(turns []domain.ChatTurn) {
	l.turns = turns
	l.offset = 0
}

// Turns returns the displayed conversation.
func (l *TurnList) Turns() []domain.ChatTurn {
	return l.turns
}

// SetPending shows a question that is still being answered.
func (l *TurnList) SetPending(question string) {
	l.pending = question
	l.offset = 0
}

// Pending returns the question awaiting an answer.
func (l *TurnList) Pending() string {
	return l.pending
}

// ScrollUp moves the view towards older turns.
func (l *TurnList) ScrollUp(n int) {
	if n < 1 {
		n = 1
	}
	l.offset += n
	if maxOffset := len(l.lines()) - l.height; l.offset > maxOffset {
		l.offset = max(maxOffset, 0)
	}
}

// ScrollDown moves the view towards newer turns.
func (l *TurnList) ScrollDown(n int) {
	if n < 1 {
		n = 1
	}
	l.offset -= n
	if l.offset < 0 {
		l.offset = 0
	}
}

// Offset returns the number of lines scrolled up from the bottom.
func (l *TurnList) Offset() int {
	return l.offset
}

// SetDimensions sets the component dimensions.
func (l *TurnList) SetDimensions(width, height int) {
	l.width = width
	if height < 1 {
		height = 1
	}
	l.height = height
}

// Count returns the number of completed turns.
func (l *TurnList) Count() int {
	return len(l.turns)
}

// IsEmpty returns whether there is nothing to show.
func (l *TurnList) IsEmpty() bool {
	return len(l.turns) == 0 && l.pending == ""
}
