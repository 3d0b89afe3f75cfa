// Package cli provides the cobra command tree for tubeqa.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
	"github.com/custodia-labs/tubeqa/internal/logger"
)

// AssistantFactory builds an assistant whose new sessions start with defaults.
// The returned function releases the provider clients.
type AssistantFactory func(defaults domain.RAGSettings) (driving.AssistantService, func(), error)

// Services holds everything the commands need. Providers are only contacted
// by commands that answer questions, so settings work without an API key.
type Services struct {
	Settings     driving.SettingsService
	Transcripts  driving.TranscriptService
	NewAssistant AssistantFactory

	// WatchPrompts starts hot reloading of prompt templates. Optional.
	WatchPrompts func(ctx context.Context)
}

var (
	version = "dev"
	verbose bool

	settingsService   driving.SettingsService
	transcriptService driving.TranscriptService
	newAssistant      AssistantFactory
	watchPrompts      func(ctx context.Context)
)

// Per-session parameter overrides shared by every command.
var (
	chunkSizeFlag    int
	chunkOverlapFlag int
	topKFlag         int
	temperatureFlag  float64
)

var rootCmd = &cobra.Command{
	Use:   "tubeqa",
	Short: "Ask questions about YouTube videos",
	Long: `tubeqa fetches the transcript of a YouTube video, indexes it for semantic
search and answers questions about it with retrieval-augmented generation.

Configure providers with 'tubeqa settings', then start with:
  tubeqa chat https://www.youtube.com/watch?v=VIDEO_ID`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stderr")

	defaults := domain.DefaultRAGSettings()
	flags.IntVar(&chunkSizeFlag, "chunk-size", defaults.ChunkSize, "maximum characters per chunk")
	flags.IntVar(&chunkOverlapFlag, "chunk-overlap", defaults.ChunkOverlap, "characters shared by adjacent chunks")
	flags.IntVarP(&topKFlag, "top-k", "k", defaults.K, "number of chunks retrieved per question")
	flags.Float64Var(&temperatureFlag, "temperature", defaults.Temperature, "answer randomness between 0 and 1")
}

// SetServices injects the services used by all commands.
func SetServices(s Services) {
	settingsService = s.Settings
	transcriptService = s.Transcripts
	newAssistant = s.NewAssistant
	watchPrompts = s.WatchPrompts
}

// SetVersion sets the version reported by 'tubeqa version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command with output on stdout.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// ragSettings returns the stored parameters with any flags given on the command line applied.
func ragSettings(cmd *cobra.Command) (domain.RAGSettings, error) {
	rag := domain.DefaultRAGSettings()
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return rag, fmt.Errorf("failed to get settings: %w", err)
		}
		rag = settings.RAG
	}

	flags := cmd.Flags()
	if flags.Changed("chunk-size") {
		rag.ChunkSize = chunkSizeFlag
	}
	if flags.Changed("chunk-overlap") {
		rag.ChunkOverlap = chunkOverlapFlag
	}
	if flags.Changed("top-k") {
		rag.K = topKFlag
	}
	if flags.Changed("temperature") {
		rag.Temperature = temperatureFlag
	}

	if err := rag.Validate(); err != nil {
		return rag, err
	}
	return rag, nil
}

// startAssistant builds the assistant for commands that answer questions.
func startAssistant(cmd *cobra.Command) (driving.AssistantService, func(), error) {
	if newAssistant == nil {
		return nil, nil, errors.New("assistant not configured")
	}

	rag, err := ragSettings(cmd)
	if err != nil {
		return nil, nil, err
	}

	assistant, closeFn, err := newAssistant(rag)
	if err != nil {
		return nil, nil, err
	}
	if closeFn == nil {
		closeFn = func() {}
	}
	return assistant, closeFn, nil
}

// startPromptWatch hot reloads prompt templates for long-running commands.
func startPromptWatch(ctx context.Context) {
	if watchPrompts != nil {
		watchPrompts(ctx)
	}
}

// commandContext returns the command's context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// describeError turns pipeline errors into a one-line message for the terminal.
func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return "Invalid YouTube URL"
	case errors.Is(err, domain.ErrNotIndexed):
		return "No video processed yet"
	case errors.Is(err, domain.ErrTranscriptUnavailable), errors.Is(err, domain.ErrEmptyTranscript):
		return fmt.Sprintf("Error fetching transcript: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
