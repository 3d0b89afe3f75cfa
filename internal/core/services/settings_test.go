package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tubeqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// newTestSettings returns a service with an empty environment.
func newTestSettings(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	service.getenv = func(key string) string { return env[key] }
	return service, store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettings(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.RAG, settings.RAG)
	assert.Equal(t, defaults.Transcript, settings.Transcript)
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Embedding.Model, settings.Embedding.Model)
	assert.Equal(t, defaults.LLM.Model, settings.LLM.Model)
	assert.Empty(t, settings.LLM.APIKey)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newTestSettings(nil)
	_ = store.Set("rag.chunk_size", int64(1500))
	_ = store.Set("rag.temperature", 0.0)
	_ = store.Set("rag.k", int64(6))
	_ = store.Set("llm.provider", "anthropic")
	_ = store.Set("transcript.fallback_languages", []any{"de"})

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 1500, settings.RAG.ChunkSize)
	assert.Zero(t, settings.RAG.Temperature, "zero temperature must not fall back to the default")
	assert.Equal(t, 6, settings.RAG.K)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", settings.LLM.Model)
	assert.Equal(t, []string{"de"}, settings.Transcript.FallbackLanguages)
}

func TestSettingsService_Get_InvalidProviderFallsBack(t *testing.T) {
	service, store := newTestSettings(nil)
	_ = store.Set("embedding.provider", "invalid_provider")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
}

func TestSettingsService_Get_APIKeyFromEnvironment(t *testing.T) {
	service, store := newTestSettings(map[string]string{
		"OPENAI_API_KEY":    "sk-env",
		"ANTHROPIC_API_KEY": "ant-env",
	})

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", settings.Embedding.APIKey)
	assert.Equal(t, "sk-env", settings.LLM.APIKey)

	_ = store.Set("llm.api_key", "sk-file")
	_ = store.Set("embedding.provider", "ollama")
	settings, err = service.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-file", settings.LLM.APIKey, "config file wins over environment")
	assert.Empty(t, settings.Embedding.APIKey, "local providers have no key variable")
}

func TestSettingsService_Save_RoundTrip(t *testing.T) {
	service, _ := newTestSettings(nil)

	settings := domain.DefaultAppSettings()
	settings.RAG = domain.RAGSettings{ChunkSize: 800, ChunkOverlap: 150, K: 5, Temperature: 0.5}
	settings.Transcript.Languages = []string{"fr"}
	settings.LLM.APIKey = "sk-saved"

	require.NoError(t, service.Save(&settings))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.RAG, loaded.RAG)
	assert.Equal(t, []string{"fr"}, loaded.Transcript.Languages)
	assert.Equal(t, "sk-saved", loaded.LLM.APIKey)
	assert.Empty(t, loaded.Embedding.APIKey)
}

func TestSettingsService_Save_KeepsEnvironmentKeysOutOfStore(t *testing.T) {
	service, store := newTestSettings(map[string]string{"OPENAI_API_KEY": "sk-env"})

	settings, err := service.Get()
	require.NoError(t, err)
	require.NoError(t, service.Save(settings))

	_, stored := store.Get("llm.api_key")
	assert.False(t, stored)
	_, stored = store.Get("embedding.api_key")
	assert.False(t, stored)
}

func TestSettingsService_SetRAG(t *testing.T) {
	service, _ := newTestSettings(nil)

	err := service.SetRAG(domain.RAGSettings{ChunkSize: 100, ChunkOverlap: 50, K: 4})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rag := domain.RAGSettings{ChunkSize: 2000, ChunkOverlap: 500, K: 10, Temperature: 1}
	require.NoError(t, service.SetRAG(rag))

	settings, _ := service.Get()
	assert.Equal(t, rag, settings.RAG)
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	service, _ := newTestSettings(nil)

	assert.Error(t, service.SetEmbeddingProvider("bogus", "", ""))
	assert.Error(t, service.SetEmbeddingProvider(domain.AIProviderAnthropic, "", "key"))
	assert.Error(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", ""))

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))
	settings, _ := service.Get()
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "text-embedding-3-large", "sk"))
	settings, _ = service.Get()
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL)
	assert.Equal(t, "sk", settings.Embedding.APIKey)
}

func TestSettingsService_SetLLMProvider_KeyFromEnvironment(t *testing.T) {
	service, _ := newTestSettings(map[string]string{"ANTHROPIC_API_KEY": "ant"})

	require.NoError(t, service.SetLLMProvider(domain.AIProviderAnthropic, "", ""))

	settings, _ := service.Get()
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "ant", settings.LLM.APIKey)
}

func TestSettingsService_SetValue(t *testing.T) {
	service, _ := newTestSettings(nil)

	require.NoError(t, service.SetValue("rag.chunk_size", "1200"))
	require.NoError(t, service.SetValue("rag.temperature", "0.7"))
	require.NoError(t, service.SetValue("rag.k", " 8 "))
	require.NoError(t, service.SetValue("transcript.languages", "de, en"))
	require.NoError(t, service.SetValue("transcript.fallback_languages", ""))
	require.NoError(t, service.SetValue("llm.provider", "ollama"))
	require.NoError(t, service.SetValue("llm.model", "llama3.2"))
	require.NoError(t, service.SetValue("transcript.drop_sound_effects", "true"))

	settings, _ := service.Get()
	assert.Equal(t, 1200, settings.RAG.ChunkSize)
	assert.InDelta(t, 0.7, settings.RAG.Temperature, 1e-9)
	assert.Equal(t, 8, settings.RAG.K)
	assert.Equal(t, []string{"de", "en"}, settings.Transcript.Languages)
	assert.Empty(t, settings.Transcript.FallbackLanguages)
	assert.True(t, settings.Transcript.DropSoundEffects)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
}

func TestSettingsService_SetValue_Rejects(t *testing.T) {
	service, _ := newTestSettings(nil)

	tests := []struct{ key, value string }{
		{"rag.chunk_size", "big"},
		{"rag.chunk_size", "100"},
		{"rag.chunk_overlap", "1000"},
		{"rag.temperature", "hot"},
		{"rag.k", "0"},
		{"embedding.provider", "anthropic"},
		{"llm.provider", "cohere"},
		{"transcript.languages", " , "},
		{"transcript.drop_sound_effects", "sometimes"},
		{"search.mode", "hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.SetValue(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}

	settings, _ := service.Get()
	assert.Equal(t, domain.DefaultRAGSettings(), settings.RAG)
}

func TestSettingsService_Keys(t *testing.T) {
	service, _ := newTestSettings(nil)

	keys := service.Keys()

	assert.Contains(t, keys, "rag.chunk_size")
	assert.Contains(t, keys, "llm.api_key")
	assert.Contains(t, keys, "transcript.drop_sound_effects")
	assert.IsIncreasing(t, keys)
	assert.Len(t, keys, 15)
}

func TestSettingsService_Validate(t *testing.T) {
	service, _ := newTestSettings(nil)

	err := service.Validate()
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	service.getenv = func(key string) string {
		if key == "OPENAI_API_KEY" {
			return "sk"
		}
		return ""
	}
	assert.NoError(t, service.Validate())

	require.NoError(t, service.SetValue("llm.provider", "anthropic"))
	assert.ErrorIs(t, service.Validate(), domain.ErrLLMUnavailable)
}

func TestSettingsService_ValidateProviders(t *testing.T) {
	service, _ := newTestSettings(nil)
	assert.NoError(t, service.ValidateEmbeddingConfig())
	assert.NoError(t, service.ValidateLLMConfig())

	service.aiValidator = &mockAIValidator{err: errProvider}
	assert.ErrorIs(t, service.ValidateEmbeddingConfig(), errProvider)
	assert.ErrorIs(t, service.ValidateLLMConfig(), errProvider)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service, _ := newTestSettings(nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
