package web

import (
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the web host.
type Ports struct {
	// Assistant indexes videos and answers questions.
	Assistant driving.AssistantService
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
