package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// APIKeyEnvVar returns the environment variable that may carry the provider's key.
func (p AIProvider) APIKeyEnvVar() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Bounds for RAG parameters. Slider steps are used by interactive hosts.
const (
	MinChunkSize  = 500
	MaxChunkSize  = 2000
	ChunkSizeStep = 100

	MinChunkOverlap  = 50
	MaxChunkOverlap  = 500
	ChunkOverlapStep = 50

	MinK       = 1
	MaxK       = 10
	MinSliderK = 2

	MinTemperature  = 0.0
	MaxTemperature  = 1.0
	TemperatureStep = 0.1
)

// RAGSettings holds the retrieval and generation parameters of a session.
type RAGSettings struct {
	// ChunkSize is the maximum number of characters per chunk.
	ChunkSize int

	// ChunkOverlap is the number of characters shared by adjacent chunks.
	ChunkOverlap int

	// K is the number of chunks retrieved per question.
	K int

	// Temperature controls answer randomness (0 deterministic, 1 varied).
	Temperature float64
}

// DefaultRAGSettings returns the parameters used when nothing is configured.
func DefaultRAGSettings() RAGSettings {
	return RAGSettings{
		ChunkSize:    1000,
		ChunkOverlap: 200,
		K:            4,
		Temperature:  0.2,
	}
}

// Validate checks every parameter against its bounds.
func (r RAGSettings) Validate() error {
	switch {
	case r.ChunkSize < MinChunkSize || r.ChunkSize > MaxChunkSize:
		return fmt.Errorf("%w: chunk size %d outside %d-%d",
			ErrInvalidInput, r.ChunkSize, MinChunkSize, MaxChunkSize)
	case r.ChunkOverlap < MinChunkOverlap || r.ChunkOverlap > MaxChunkOverlap:
		return fmt.Errorf("%w: chunk overlap %d outside %d-%d",
			ErrInvalidInput, r.ChunkOverlap, MinChunkOverlap, MaxChunkOverlap)
	case r.ChunkOverlap >= r.ChunkSize:
		return fmt.Errorf("%w: chunk overlap %d must be less than chunk size %d",
			ErrInvalidInput, r.ChunkOverlap, r.ChunkSize)
	case r.K < MinK || r.K > MaxK:
		return fmt.Errorf("%w: k %d outside %d-%d", ErrInvalidInput, r.K, MinK, MaxK)
	case r.Temperature < MinTemperature || r.Temperature > MaxTemperature:
		return fmt.Errorf("%w: temperature %.2f outside %.1f-%.1f",
			ErrInvalidInput, r.Temperature, MinTemperature, MaxTemperature)
	}
	return nil
}

// TranscriptSettings holds the language preference for transcript lookup.
type TranscriptSettings struct {
	// Languages is the first language set tried.
	Languages []string

	// FallbackLanguages is tried when none of Languages has a transcript.
	// "auto" is passed through to the source untouched.
	FallbackLanguages []string

	// DropSoundEffects removes snippets such as "[Music]" before chunking.
	DropSoundEffects bool
}

// DefaultTranscriptSettings returns English first, then a broader fallback.
func DefaultTranscriptSettings() TranscriptSettings {
	return TranscriptSettings{
		Languages:         []string{"en"},
		FallbackLanguages: []string{"auto", "hi", "en"},
	}
}

// Attempts returns the ordered language sets to try. Empty sets are skipped.
func (t TranscriptSettings) Attempts() [][]string {
	var attempts [][]string
	for _, set := range [][]string{t.Languages, t.FallbackLanguages} {
		var cleaned []string
		for _, lang := range set {
			if lang = strings.TrimSpace(lang); lang != "" {
				cleaned = append(cleaned, lang)
			}
		}
		if len(cleaned) > 0 {
			attempts = append(attempts, cleaned)
		}
	}
	return attempts
}

// AppSettings holds all application settings.
type AppSettings struct {
	// RAG holds chunking, retrieval and generation parameters.
	RAG RAGSettings

	// Transcript holds language preferences.
	Transcript TranscriptSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Both providers default to OpenAI; the key still has to come from
// the config file or the environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		RAG:        DefaultRAGSettings(),
		Transcript: DefaultTranscriptSettings(),
		Embedding: EmbeddingSettings{
			Provider: AIProviderOpenAI,
			Model:    DefaultEmbeddingModels()[AIProviderOpenAI],
		},
		LLM: LLMSettings{
			Provider: AIProviderOpenAI,
			Model:    DefaultLLMModels()[AIProviderOpenAI],
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderOllama,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderOllama,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config so new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor returns the transcript pipeline for the given RAG parameters.
func PipelineConfigFor(rag RAGSettings, transcript TranscriptSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"normaliser", "chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"normaliser": {
				"drop_sound_effects": transcript.DropSoundEffects,
			},
			"chunker": {
				"chunk_size": rag.ChunkSize,
				"overlap":    rag.ChunkOverlap,
			},
		},
	}
}
