// Package settings provides the pipeline parameter panel for the TUI.
package settings

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// trackWidth is the number of cells in a slider track.
const trackWidth = 20

// slider is one adjustable parameter.
type slider struct {
	label    string
	min, max float64
	step     float64
	decimals int
	get      func(domain.RAGSettings) float64
	set      func(*domain.RAGSettings, float64)
}

// sliders mirrors the parameter ranges offered by the web UI.
var sliders = []slider{
	{
		label: "Chunk size", min: domain.MinChunkSize, max: domain.MaxChunkSize, step: domain.ChunkSizeStep,
		get: func(r domain.RAGSettings) float64 { return float64(r.ChunkSize) },
		set: func(r *domain.RAGSettings, v float64) { r.ChunkSize = int(v) },
	},
	{
		label: "Chunk overlap", min: domain.MinChunkOverlap, max: domain.MaxChunkOverlap, step: domain.ChunkOverlapStep,
		get: func(r domain.RAGSettings) float64 { return float64(r.ChunkOverlap) },
		set: func(r *domain.RAGSettings, v float64) { r.ChunkOverlap = int(v) },
	},
	{
		label: "Chunks retrieved (k)", min: domain.MinSliderK, max: domain.MaxK, step: 1,
		get: func(r domain.RAGSettings) float64 { return float64(r.K) },
		set: func(r *domain.RAGSettings, v float64) { r.K = int(v) },
	},
	{
		label: "Temperature", min: domain.MinTemperature, max: domain.MaxTemperature,
		step: domain.TemperatureStep, decimals: 1,
		get: func(r domain.RAGSettings) float64 { return r.Temperature },
		set: func(r *domain.RAGSettings, v float64) { r.Temperature = v },
	},
}

// adjust moves the value by delta steps, snapped to the step grid and clamped to the range.
func (s slider) adjust(r *domain.RAGSettings, delta int) {
	v := s.get(*r) + float64(delta)*s.step
	scale := math.Pow(10, float64(s.decimals))
	v = math.Round(v*scale) / scale
	v = math.Max(s.min, math.Min(s.max, v))
	s.set(r, v)
}

func (s slider) format(r domain.RAGSettings) string {
	return fmt.Sprintf("%.*f", s.decimals, s.get(r))
}

// View is the parameter panel.
type View struct {
	styles   *styles.Styles
	settings domain.RAGSettings
	selected int

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		settings: domain.DefaultRAGSettings(),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetSettings loads the parameters to edit.
func (v *View) SetSettings(settings domain.RAGSettings) {
	v.settings = settings
}

// Settings returns the edited parameters.
func (v *View) Settings() domain.RAGSettings {
	return v.settings
}

// Selected returns the index of the highlighted parameter.
func (v *View) Selected() int {
	return v.selected
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(sliders)-1 {
			v.selected++
		}
	case "left", "h":
		sliders[v.selected].adjust(&v.settings, -1)
	case "right", "l":
		sliders[v.selected].adjust(&v.settings, 1)
	case "enter":
		settings := v.settings
		return v, func() tea.Msg {
			return messages.SettingsSubmitted{Settings: settings}
		}
	}
	return v, nil
}

// View renders the panel.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Changes apply to the next processed video."))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, s := range sliders {
		labelWidth = max(labelWidth, len(s.label))
	}

	for i, s := range sliders {
		indicator := "  "
		label := v.styles.Normal.Render(fmt.Sprintf("%-*s", labelWidth, s.label))
		if i == v.selected {
			indicator = "> "
			label = v.styles.Selected.Render(fmt.Sprintf("%-*s", labelWidth, s.label))
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", indicator, label, v.renderTrack(s), s.format(v.settings))
	}

	if v.settings.ChunkOverlap >= v.settings.ChunkSize {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render("Chunk overlap must be smaller than chunk size"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("[↑/↓] select  [←/→] adjust  [enter] apply  [esc] back"))
	return b.String()
}

func (v *View) renderTrack(s slider) string {
	filled := int(math.Round((s.get(v.settings) - s.min) / (s.max - s.min) * trackWidth))
	filled = max(0, min(trackWidth, filled))
	return v.styles.SliderFilled.Render(strings.Repeat("━", filled)) +
		v.styles.SliderEmpty.Render(strings.Repeat("─", trackWidth-filled))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset returns the selection to the first parameter.
func (v *View) Reset() {
	v.selected = 0
}
