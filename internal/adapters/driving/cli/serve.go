package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long: `Serves the browser UI and its JSON API. Each browser gets its own
session through the tubeqa_session cookie.

API:
  POST   /api/video    {url, chunk_size, chunk_overlap, k, temperature}
  POST   /api/ask      {question}
  GET    /api/session
  DELETE /api/history
  GET    /healthcheck`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8501", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	assistant, closeAssistant, err := startAssistant(cmd)
	if err != nil {
		return err
	}
	defer closeAssistant()

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := web.NewServer(&web.Ports{Assistant: assistant})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	startPromptWatch(ctx)

	cmd.Printf("tubeqa web UI on http://%s\n", serveAddr)
	return server.Run(ctx, serveAddr)
}
