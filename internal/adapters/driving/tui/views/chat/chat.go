// Package chat provides the conversation view for the TUI.
package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// headerHeight is the number of lines above the conversation.
const headerHeight = 3

// inputHeight is the number of lines below the conversation, including the status bar.
const inputHeight = 4

// View shows the conversation about the indexed video.
type View struct {
	styles  *styles.Styles
	input   *input.Field
	turns   *list.TurnList
	summary *domain.IndexSummary

	width  int
	height int
	ready  bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		input:  input.NewQuestionField(s),
		turns:  list.NewTurnList(s),
	}
	v.SetDimensions(80, 24)
	v.ready = false
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		question := strings.TrimSpace(v.input.Value())
		if question == "" {
			return v, nil
		}
		v.input.Reset()
		return v, func() tea.Msg {
			return messages.QuestionSubmitted{Question: question}
		}

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		v.turns, cmd = v.turns.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the chat view.
func (v *View) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderHeader(),
		"",
		v.turns.View(),
		"",
		v.input.View(),
	)
}

func (v *View) renderHeader() string {
	if v.summary == nil {
		return v.styles.Title.Render("TubeQA")
	}

	kind := "manual"
	if v.summary.IsGenerated {
		kind = "auto-generated"
	}
	return v.styles.Title.Render("TubeQA") + "  " + v.styles.Muted.Render(fmt.Sprintf(
		"%s · %s transcript (%s) · %d chunks",
		v.summary.VideoID, v.summary.Language, kind, v.summary.ChunkCount))
}

// SetSummary sets the video shown in the header.
func (v *View) SetSummary(summary *domain.IndexSummary) {
	v.summary = summary
}

// Summary returns the video shown in the header.
func (v *View) Summary() *domain.IndexSummary {
	return v.summary
}

// SetTurns replaces the conversation and clears any pending question.
func (v *View) SetTurns(turns []domain.ChatTurn) {
	v.turns.SetPending("")
	v.turns.SetTurns(turns)
}

// Turns returns the displayed conversation.
func (v *View) Turns() []domain.ChatTurn {
	return v.turns.Turns()
}

// SetPending shows a question that is waiting for its answer.
func (v *View) SetPending(question string) {
	v.turns.SetPending(question)
}

// Pending returns the question waiting for its answer.
func (v *View) Pending() string {
	return v.turns.Pending()
}

// Question returns the text in the question field.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the text in the question field.
func (v *View) SetQuestion(question string) {
	v.input.SetValue(question)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.turns.SetDimensions(width, height-headerHeight-inputHeight)
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}

// Reset clears the question field and focuses it.
func (v *View) Reset() tea.Cmd {
	v.input.Reset()
	return v.input.Focus()
}
