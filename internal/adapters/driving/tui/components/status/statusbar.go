// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady      State = "ready"
	StateProcessing State = "processing"
	StateThinking   State = "thinking"
	StateInfo       State = "info"
	StateError      State = "error"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		hints:  km.VideoHelp(),
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// Text returns the status text without styling.
func (s *Bar) Text() string {
	switch s.state {
	case StateProcessing:
		return "Processing video..."
	case StateThinking:
		return "Thinking..."
	case StateError:
		if s.message != "" {
			return fmt.Sprintf("Error: %s", s.message)
		}
		return "Error"
	case StateInfo:
		return s.message
	case StateReady:
		if s.message != "" {
			return s.message
		}
	}
	return "Ready"
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	text := s.Text()
	switch s.state {
	case StateProcessing, StateThinking:
		return s.styles.Warning.Render(text)
	case StateError:
		return s.styles.Error.Render(text)
	case StateInfo:
		return s.styles.Success.Render(text)
	case StateReady:
	}
	return s.styles.Muted.Render(text)
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state and clears any previous message.
func (s *Bar) SetState(state State) {
	s.state = state
	s.message = ""
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetError shows an error message.
func (s *Bar) SetError(message string) {
	s.state = StateError
	s.message = message
}

// SetInfo shows a confirmation message.
func (s *Bar) SetInfo(message string) {
	s.state = StateInfo
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetHints sets the keybindings listed on the right.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
