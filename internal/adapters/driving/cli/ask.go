package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [url] [question]",
	Short: "Answer a single question about a video",
	Long: `Indexes the video and answers one question, then exits.
Use --json for machine-readable output.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

type askOutput struct {
	VideoID     string `json:"video_id"`
	Language    string `json:"language"`
	IsGenerated bool   `json:"is_generated"`
	Chunks      int    `json:"chunks"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	rawURL, question := args[0], args[1]

	assistant, closeAssistant, err := startAssistant(cmd)
	if err != nil {
		return err
	}
	defer closeAssistant()

	ctx := commandContext(cmd)
	session := assistant.NewSession()

	summary, err := assistant.IndexVideo(ctx, session, rawURL)
	if err != nil {
		return errors.New(describeError(err))
	}

	answer, err := assistant.Ask(ctx, session, question)
	if err != nil {
		return errors.New(describeError(err))
	}

	if askJSON {
		data, err := json.MarshalIndent(askOutput{
			VideoID:     summary.VideoID.String(),
			Language:    summary.Language,
			IsGenerated: summary.IsGenerated,
			Chunks:      summary.ChunkCount,
			Question:    question,
			Answer:      answer,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer)
	return nil
}
