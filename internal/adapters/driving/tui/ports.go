// Package tui provides an interactive terminal user interface for tubeqa.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant indexes videos and answers questions.
	Assistant driving.AssistantService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(assistant driving.AssistantService) *Ports {
	return &Ports{Assistant: assistant}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	return nil
}
