package ai

import (
	"fmt"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks that a provider answers before its settings are saved.
// Unconfigured settings pass; there is nothing to reach yet.
type ConfigValidator struct{}

// NewConfigValidator returns the validator used by the settings wizard.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding reaches the embedding provider once.
// Failures wrap domain.ErrEmbeddingUnavailable.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	if err := ValidateEmbeddingConfig(config); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrEmbeddingUnavailable, config.Provider, err)
	}
	return nil
}

// ValidateLLM reaches the generation provider once.
// Failures wrap domain.ErrLLMUnavailable.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	if err := ValidateLLMConfig(config); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrLLMUnavailable, config.Provider, err)
	}
	return nil
}
