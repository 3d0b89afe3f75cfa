// Package video provides the URL entry view for the TUI.
package video

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// View asks for a video URL and shows what is currently indexed.
type View struct {
	styles  *styles.Styles
	input   *input.Field
	summary *domain.IndexSummary

	width  int
	height int
	ready  bool
}

// NewView creates a new video view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		input:  input.NewURLField(s),
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the video view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			url := strings.TrimSpace(v.input.Value())
			if url == "" {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.VideoRequested{URL: url}
			}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the video view.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("TubeQA"),
		v.styles.Muted.Render("Ask questions about any YouTube video"),
		"",
		v.input.View(),
		"",
	}

	if v.summary != nil {
		sections = append(sections,
			v.styles.Subtitle.Render("Current video"),
			v.styles.Normal.Render(fmt.Sprintf("%s  %s, %d chunks",
				v.summary.VideoID, v.summary.Language, v.summary.ChunkCount)),
			v.styles.Muted.Render("[esc] back to the conversation"),
		)
	} else {
		sections = append(sections,
			v.styles.Muted.Render("Paste a watch, youtu.be or embed link and press enter."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSummary records the currently indexed video.
func (v *View) SetSummary(summary *domain.IndexSummary) {
	v.summary = summary
}

// URL returns the typed URL.
func (v *View) URL() string {
	return v.input.Value()
}

// SetURL sets the typed URL.
func (v *View) SetURL(url string) {
	v.input.SetValue(url)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}

// Reset clears the URL and focuses the input.
func (v *View) Reset() tea.Cmd {
	v.input.Reset()
	return v.input.Focus()
}
