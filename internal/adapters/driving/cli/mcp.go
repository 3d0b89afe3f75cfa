package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --http to serve streamable HTTP instead. Every MCP client session then
gets its own video and conversation.

Tools: index_video, ask, clear_history, session_status
Resources: tubeqa://history, tubeqa://transcript/chunks

Examples:
  # Stdio mode (default, for Claude Desktop)
  tubeqa mcp

  # HTTP mode (for MCP Inspector, remote access)
  tubeqa mcp --http localhost:8090

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "tubeqa": {
        "command": "/path/to/tubeqa",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	assistant, closeAssistant, err := startAssistant(cmd)
	if err != nil {
		return err
	}
	defer closeAssistant()

	server, err := mcp.NewServer(&mcp.Ports{Assistant: assistant})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	startPromptWatch(ctx)

	if mcpHTTPAddr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}

	return server.Run(ctx)
}
