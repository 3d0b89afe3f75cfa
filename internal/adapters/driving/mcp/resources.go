package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for tubeqa resources.
	uriScheme = "tubeqa://"

	historyURI = uriScheme + "history"
	chunksURI  = uriScheme + "transcript/chunks"
)

// turnInfo is one question and answer in the history resource.
type turnInfo struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

// chunkInfo is one indexed chunk in the chunks resource.
type chunkInfo struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Content  string `json:"content"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         historyURI,
		Name:        "history",
		Description: "Questions and answers of the current conversation, oldest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         chunksURI,
		Name:        "transcript-chunks",
		Description: "Transcript chunks of the indexed video in transcript order",
		MIMEType:    "application/json",
	}, s.handleChunksResource)
}

// handleHistoryResource returns the conversation history.
func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	history, err := s.ports.Assistant.History(s.session)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	turns := make([]turnInfo, len(history))
	for i, turn := range history {
		turns[i] = turnInfo{
			Question: turn.Question,
			Answer:   turn.Answer,
			AskedAt:  turn.AskedAt,
		}
	}
	return jsonResource(req.Params.URI, turns)
}

// handleChunksResource returns the indexed transcript chunks.
func (s *Server) handleChunksResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	chunks := s.session.Chunks()
	s.mu.Unlock()

	infos := make([]chunkInfo, len(chunks))
	for i := range chunks {
		infos[i] = chunkInfo{
			ID:       chunks[i].ID,
			Position: chunks[i].Position,
			Content:  chunks[i].Content,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
