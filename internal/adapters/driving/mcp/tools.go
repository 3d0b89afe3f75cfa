package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// IndexVideoInput is the input schema for the index_video tool.
type IndexVideoInput struct {
	URL          string   `json:"url" jsonschema:"a YouTube watch, youtu.be or embed URL"`
	ChunkSize    int      `json:"chunk_size,omitempty" jsonschema:"maximum characters per chunk (500-2000)"`
	ChunkOverlap int      `json:"chunk_overlap,omitempty" jsonschema:"characters shared by adjacent chunks (50-500)"`
	K            int      `json:"k,omitempty" jsonschema:"number of chunks retrieved per question (1-10)"`
	Temperature  *float64 `json:"temperature,omitempty" jsonschema:"answer randomness (0.0-1.0)"`
}

// IndexVideoOutput is the output schema for the index_video tool.
type IndexVideoOutput struct {
	VideoID     string `json:"video_id"`
	Language    string `json:"language"`
	IsGenerated bool   `json:"is_generated"`
	Chunks      int    `json:"chunks"`
	Dimensions  int    `json:"dimensions"`
	Preview     string `json:"preview"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question about the indexed video"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// ClearHistoryInput is the input schema for the clear_history tool.
type ClearHistoryInput struct{}

// ClearHistoryOutput is the output schema for the clear_history tool.
type ClearHistoryOutput struct {
	Cleared int `json:"cleared"`
}

// SessionStatusInput is the input schema for the session_status tool.
type SessionStatusInput struct{}

// SettingsOutput describes pipeline parameters.
type SettingsOutput struct {
	ChunkSize    int     `json:"chunk_size"`
	ChunkOverlap int     `json:"chunk_overlap"`
	K            int     `json:"k"`
	Temperature  float64 `json:"temperature"`
}

// SessionStatusOutput is the output schema for the session_status tool.
type SessionStatusOutput struct {
	State          string          `json:"state"`
	Description    string          `json:"description"`
	VideoID        string          `json:"video_id,omitempty"`
	Chunks         int             `json:"chunks"`
	Turns          int             `json:"turns"`
	Settings       SettingsOutput  `json:"settings"`
	ActiveSettings *SettingsOutput `json:"active_settings,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_video",
		Description: "Fetch and index the transcript of a YouTube video. Replaces the current video and clears the conversation.",
	}, s.handleIndexVideo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the transcript of the indexed video",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_history",
		Description: "Forget the conversation without re-indexing the video",
	}, s.handleClearHistory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "session_status",
		Description: "Report the indexed video, conversation length and pipeline parameters",
	}, s.handleSessionStatus)
}

// handleIndexVideo handles the index_video tool invocation.
func (s *Server) handleIndexVideo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexVideoInput,
) (*mcp.CallToolResult, IndexVideoOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings, changed := applyOverrides(s.session.Settings(), input); changed {
		if err := s.ports.Assistant.Configure(s.session, settings); err != nil {
			return nil, IndexVideoOutput{}, err
		}
	}

	summary, err := s.ports.Assistant.IndexVideo(ctx, s.session, input.URL)
	if err != nil {
		return nil, IndexVideoOutput{}, err
	}

	return nil, IndexVideoOutput{
		VideoID:     summary.VideoID.String(),
		Language:    summary.Language,
		IsGenerated: summary.IsGenerated,
		Chunks:      summary.ChunkCount,
		Dimensions:  summary.Dimensions,
		Preview:     summary.Preview,
	}, nil
}

// applyOverrides sets the parameters given in the input.
func applyOverrides(settings domain.RAGSettings, input IndexVideoInput) (domain.RAGSettings, bool) {
	changed := false
	if input.ChunkSize != 0 {
		settings.ChunkSize = input.ChunkSize
		changed = true
	}
	if input.ChunkOverlap != 0 {
		settings.ChunkOverlap = input.ChunkOverlap
		changed = true
	}
	if input.K != 0 {
		settings.K = input.K
		changed = true
	}
	if input.Temperature != nil {
		settings.Temperature = *input.Temperature
		changed = true
	}
	return settings, changed
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	answer, err := s.ports.Assistant.Ask(ctx, s.session, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

// handleClearHistory handles the clear_history tool invocation.
func (s *Server) handleClearHistory(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ClearHistoryInput,
) (*mcp.CallToolResult, ClearHistoryOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.ports.Assistant.History(s.session)
	if err != nil {
		return nil, ClearHistoryOutput{}, fmt.Errorf("reading history: %w", err)
	}
	if err := s.ports.Assistant.ClearHistory(s.session); err != nil {
		return nil, ClearHistoryOutput{}, fmt.Errorf("clearing history: %w", err)
	}
	return nil, ClearHistoryOutput{Cleared: len(history)}, nil
}

// handleSessionStatus handles the session_status tool invocation.
func (s *Server) handleSessionStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SessionStatusInput,
) (*mcp.CallToolResult, SessionStatusOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.ports.Assistant.History(s.session)
	if err != nil {
		return nil, SessionStatusOutput{}, fmt.Errorf("reading history: %w", err)
	}

	state := s.session.State()
	output := SessionStatusOutput{
		State:       state.String(),
		Description: state.Description(),
		VideoID:     s.session.VideoID().String(),
		Chunks:      len(s.session.Chunks()),
		Turns:       len(history),
		Settings:    settingsOutput(s.session.Settings()),
	}
	if state == domain.SessionReady {
		active := settingsOutput(s.session.ActiveSettings())
		output.ActiveSettings = &active
	}
	return nil, output, nil
}

func settingsOutput(r domain.RAGSettings) SettingsOutput {
	return SettingsOutput{
		ChunkSize:    r.ChunkSize,
		ChunkOverlap: r.ChunkOverlap,
		K:            r.K,
		Temperature:  r.Temperature,
	}
}
