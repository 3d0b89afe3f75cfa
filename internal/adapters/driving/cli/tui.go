package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for tubeqa.

Paste a YouTube URL, wait for the transcript to be indexed, then ask
questions about the video.

Controls:
  Enter    - Process video / Ask question
  ctrl+l   - Clear the conversation
  ctrl+n   - Process a new video
  ctrl+s   - Settings (↑/↓ select, ←/→ adjust)
  Esc      - Back
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newProgram builds the bubbletea program. Replaced in tests.
var newProgram = func(model tea.Model, opts ...tea.ProgramOption) interface{ Run() (tea.Model, error) } {
	return tea.NewProgram(model, opts...)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	assistant, closeAssistant, err := startAssistant(cmd)
	if err != nil {
		return err
	}
	defer closeAssistant()

	ctx := commandContext(cmd)
	startPromptWatch(ctx)

	app, err := tui.NewApp(tui.NewPorts(assistant))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := newProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
