package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

var transcriptJSON bool

var transcriptCmd = &cobra.Command{
	Use:   "transcript [url]",
	Short: "Print the transcript of a video",
	Long: `Fetches the transcript using the configured language preferences and
prints it. No provider is contacted, so this works without an API key.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	transcriptCmd.Flags().BoolVar(&transcriptJSON, "json", false, "output timed snippets as JSON")
	rootCmd.AddCommand(transcriptCmd)
}

type snippetOutput struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type transcriptOutput struct {
	VideoID      string          `json:"video_id"`
	Language     string          `json:"language"`
	LanguageName string          `json:"language_name"`
	IsGenerated  bool            `json:"is_generated"`
	Snippets     []snippetOutput `json:"snippets"`
}

func runTranscript(cmd *cobra.Command, args []string) error {
	if transcriptService == nil {
		return errors.New("transcript service not configured")
	}

	videoID, err := domain.ParseVideoURL(args[0])
	if err != nil {
		return errors.New(describeError(err))
	}

	transcript, err := transcriptService.Fetch(commandContext(cmd), videoID)
	if err != nil {
		return errors.New(describeError(err))
	}

	if transcriptJSON {
		return outputTranscriptJSON(cmd, transcript)
	}

	cmd.Printf("Video ID: %s\n", transcript.VideoID)
	cmd.Printf("Language: %s (%s)\n", transcript.LanguageName, transcript.Language)
	cmd.Println()
	cmd.Println(transcript.Text())
	return nil
}

func outputTranscriptJSON(cmd *cobra.Command, transcript *domain.Transcript) error {
	out := transcriptOutput{
		VideoID:      transcript.VideoID.String(),
		Language:     transcript.Language,
		LanguageName: transcript.LanguageName,
		IsGenerated:  transcript.IsGenerated,
		Snippets:     make([]snippetOutput, len(transcript.Snippets)),
	}
	for i, s := range transcript.Snippets {
		out.Snippets[i] = snippetOutput{
			Text:     s.Text,
			Start:    s.Start.Seconds(),
			Duration: s.Duration.Seconds(),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
