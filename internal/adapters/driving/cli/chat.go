package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [url]",
	Short: "Ask questions about a video interactively",
	Long: `Fetches and indexes the transcript of a YouTube video, then answers
questions about it until you type quit, exit or q.

The URL is prompted for when it is not given as an argument.

Examples:
  tubeqa chat https://www.youtube.com/watch?v=dQw4w9WgXcQ
  tubeqa chat --chunk-size 1500 -k 6 https://youtu.be/dQw4w9WgXcQ`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	assistant, closeAssistant, err := startAssistant(cmd)
	if err != nil {
		return err
	}
	defer closeAssistant()

	var rawURL string
	if len(args) == 1 {
		rawURL = args[0]
	} else {
		cmd.Print("Enter YouTube URL: ")
		rawURL = readLine(reader)
	}

	ctx := commandContext(cmd)
	session := assistant.NewSession()

	summary, err := assistant.IndexVideo(ctx, session, rawURL)
	if err != nil {
		return errors.New(describeError(err))
	}
	printIndexSummary(cmd, summary)

	cmd.Println()
	cmd.Println("Ready! Ask questions about the video (type 'quit' to exit)")
	cmd.Println()

	for {
		cmd.Print("Your question: ")
		line, readErr := reader.ReadString('\n')
		question := strings.TrimSpace(line)

		if isExitWord(question) {
			cmd.Println("Goodbye!")
			return nil
		}

		if question != "" {
			answer, err := assistant.Ask(ctx, session, question)
			if err != nil {
				cmd.Printf("%s\n\n", describeError(err))
			} else {
				cmd.Printf("\nAnswer: %s\n\n", answer)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				cmd.Println()
				return nil
			}
			return fmt.Errorf("failed to read question: %w", readErr)
		}
	}
}

func isExitWord(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

func printIndexSummary(cmd *cobra.Command, summary *domain.IndexSummary) {
	cmd.Printf("Video ID: %s\n", summary.VideoID)

	kind := "manual"
	if summary.IsGenerated {
		kind = "auto-generated"
	}
	cmd.Printf("Transcript: %s (%s)\n", summary.Language, kind)
	cmd.Printf("Transcript preview: %s...\n", summary.Preview)
	cmd.Printf("Indexed %d chunks (%d dimensions)\n", summary.ChunkCount, summary.Dimensions)
}
