// Package mcp provides an MCP (Model Context Protocol) server adapter for tubeqa.
// It lets AI assistants index a YouTube video and ask questions about it.
package mcp

import "errors"

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("mcp: assistant service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("mcp: invalid ports configuration")
