package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyChunkSize         = "rag.chunk_size"
	keyChunkOverlap      = "rag.chunk_overlap"
	keyK                 = "rag.k"
	keyTemperature       = "rag.temperature"
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLanguages         = "transcript.languages"
	keyFallbackLanguages = "transcript.fallback_languages"
	keyDropSoundEffects  = "transcript.drop_sound_effects"
)

// defaultOllamaURL is used when a local provider is chosen without a base URL.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// The aiValidator parameter is optional (can be nil).
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		RAG: domain.RAGSettings{
			ChunkSize:    s.getInt(keyChunkSize, defaults.RAG.ChunkSize),
			ChunkOverlap: s.getInt(keyChunkOverlap, defaults.RAG.ChunkOverlap),
			K:            s.getInt(keyK, defaults.RAG.K),
			Temperature:  s.getFloat(keyTemperature, defaults.RAG.Temperature),
		},
		Transcript: domain.TranscriptSettings{
			Languages:         s.getStringSlice(keyLanguages, defaults.Transcript.Languages),
			FallbackLanguages: s.getStringSlice(keyFallbackLanguages, defaults.Transcript.FallbackLanguages),
			DropSoundEffects:  s.configStore.GetBool(keyDropSoundEffects),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
		},
	}

	settings.Embedding.Model = s.getString(keyEmbedModel, domain.DefaultEmbeddingModels()[settings.Embedding.Provider])
	settings.Embedding.APIKey = s.apiKey(keyEmbedAPIKey, settings.Embedding.Provider)
	settings.LLM.Model = s.getString(keyLLMModel, domain.DefaultLLMModels()[settings.LLM.Provider])
	settings.LLM.APIKey = s.apiKey(keyLLMAPIKey, settings.LLM.Provider)

	return settings, nil
}

// Save persists application settings.
// API keys are written only when set and different from the provider's
// environment variable, so keys taken from the environment stay out of the file.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	type entry struct {
		key   string
		value any
	}
	values := []entry{
		{keyChunkSize, settings.RAG.ChunkSize},
		{keyChunkOverlap, settings.RAG.ChunkOverlap},
		{keyK, settings.RAG.K},
		{keyTemperature, settings.RAG.Temperature},
		{keyLanguages, settings.Transcript.Languages},
		{keyFallbackLanguages, settings.Transcript.FallbackLanguages},
		{keyDropSoundEffects, settings.Transcript.DropSoundEffects},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
	}
	if s.shouldStoreKey(settings.Embedding.APIKey, settings.Embedding.Provider) {
		values = append(values, entry{keyEmbedAPIKey, settings.Embedding.APIKey})
	}
	if s.shouldStoreKey(settings.LLM.APIKey, settings.LLM.Provider) {
		values = append(values, entry{keyLLMAPIKey, settings.LLM.APIKey})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetRAG validates and stores default pipeline parameters.
func (s *SettingsService) SetRAG(rag domain.RAGSettings) error {
	if err := rag.Validate(); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.RAG = rag
	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate provider supports embeddings
	valid := false
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		apiKey = s.getenv(provider.APIKeyEnvVar())
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = modelOrDefault(model, domain.DefaultEmbeddingModels()[provider])
	settings.Embedding.BaseURL = baseURLFor(provider, settings.Embedding.BaseURL)
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		apiKey = s.getenv(provider.APIKeyEnvVar())
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = modelOrDefault(model, domain.DefaultLLMModels()[provider])
	settings.LLM.BaseURL = baseURLFor(provider, settings.LLM.BaseURL)
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetValue parses and stores a single setting by its config key.
func (s *SettingsService) SetValue(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keyChunkSize, keyChunkOverlap, keyK, keyTemperature:
		settings, err := s.Get()
		if err != nil {
			return err
		}
		rag := settings.RAG
		if err := setRAGField(&rag, key, value); err != nil {
			return err
		}
		return s.SetRAG(rag)

	case keyEmbedProvider, keyLLMProvider:
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, value)
		}
		if key == keyEmbedProvider && provider == domain.AIProviderAnthropic {
			return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, provider)
		}
		return s.configStore.Set(key, value)

	case keyLanguages, keyFallbackLanguages:
		langs := splitList(value)
		if key == keyLanguages && len(langs) == 0 {
			return fmt.Errorf("%w: at least one language is required", domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, langs)

	case keyDropSoundEffects:
		drop, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, drop)

	case keyEmbedModel, keyEmbedBaseURL, keyEmbedAPIKey, keyLLMModel, keyLLMBaseURL, keyLLMAPIKey:
		return s.configStore.Set(key, value)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns every key accepted by SetValue, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyChunkSize, keyChunkOverlap, keyK, keyTemperature,
		keyEmbedProvider, keyEmbedModel, keyEmbedBaseURL, keyEmbedAPIKey,
		keyLLMProvider, keyLLMModel, keyLLMBaseURL, keyLLMAPIKey,
		keyLanguages, keyFallbackLanguages, keyDropSoundEffects,
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that both providers are usable and the parameters are in range.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := settings.RAG.Validate(); err != nil {
		return err
	}
	if len(settings.Transcript.Attempts()) == 0 {
		return fmt.Errorf("%w: no transcript languages configured", domain.ErrInvalidInput)
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: %s", domain.ErrEmbeddingUnavailable, missingKeyHint(settings.Embedding.Provider))
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: %s", domain.ErrLLMUnavailable, missingKeyHint(settings.LLM.Provider))
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

// apiKey prefers the config file and falls back to the provider's environment variable.
func (s *SettingsService) apiKey(key string, provider domain.AIProvider) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	if env := provider.APIKeyEnvVar(); env != "" {
		return s.getenv(env)
	}
	return ""
}

func (s *SettingsService) shouldStoreKey(apiKey string, provider domain.AIProvider) bool {
	if apiKey == "" {
		return false
	}
	env := provider.APIKeyEnvVar()
	return env == "" || s.getenv(env) != apiKey
}

func setRAGField(rag *domain.RAGSettings, key, value string) error {
	if key == keyTemperature {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		rag.Temperature = f
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	switch key {
	case keyChunkSize:
		rag.ChunkSize = n
	case keyChunkOverlap:
		rag.ChunkOverlap = n
	case keyK:
		rag.K = n
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func modelOrDefault(model, defaultModel string) string {
	if model != "" {
		return model
	}
	return defaultModel
}

func baseURLFor(provider domain.AIProvider, current string) string {
	if !provider.IsLocal() {
		// Cloud providers don't need a custom base URL
		return ""
	}
	if current == "" {
		return defaultOllamaURL
	}
	return current
}

func missingKeyHint(provider domain.AIProvider) string {
	if !provider.RequiresAPIKey() {
		return fmt.Sprintf("provider %q is not configured", provider)
	}
	return fmt.Sprintf("%s API key missing: set %s or run 'tubeqa settings set-key %s'",
		provider, provider.APIKeyEnvVar(), provider)
}
