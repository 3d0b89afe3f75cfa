package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

func TestMaskAPIKey(t *testing.T) {
	tests := map[string]string{
		"":                           "****",
		"abc123":                     "****",
		"12345678":                   "****",
		"sk-1234567890abcdef":        "sk-1...cdef",
		"sk-ant-api03-abcdefghijklm": "sk-a...jklm",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, maskAPIKey(input), "input %q", input)
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input    string
		maxVal   int
		def      int
		expected int
	}{
		{"", 3, 1, 1},
		{"2", 3, 1, 2},
		{"3", 3, 1, 3},
		{"0", 3, 1, 1},
		{"4", 3, 2, 2},
		{"-1", 3, 1, 1},
		{"openai", 3, 2, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.def), "input %q", tt.input)
	}
}

func TestSettingsShow(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[RAG]")
	assert.Contains(t, out, "Chunk size: 1000")
	assert.Contains(t, out, "Chunk overlap: 200")
	assert.Contains(t, out, "Chunks per question (k): 4")
	assert.Contains(t, out, "Temperature: 0.2")
	assert.Contains(t, out, "Languages: en")
	assert.Contains(t, out, "Fallback languages: auto, hi, en")
	assert.Contains(t, out, "Drop sound effects: false")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "Run 'tubeqa settings wizard'")
}

func TestSettingsShow_Configured(t *testing.T) {
	setupTestServices(t)
	t.Setenv("OPENAI_API_KEY", "sk-1234567890abcdef")

	out, err := execute(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "API Key: sk-1...cdef")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsSet(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "", "settings", "set", "rag.chunk_size", "1500")

	require.NoError(t, err)
	assert.Contains(t, out, "Set rag.chunk_size")
	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 1500, settings.RAG.ChunkSize)
}

func TestSettingsSet_Languages(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "", "settings", "set", "transcript.fallback_languages", "de, fr")

	require.NoError(t, err)
	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "fr"}, settings.Transcript.FallbackLanguages)
}

func TestSettingsSet_Errors(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "settings", "set", "rag.size", "1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "valid keys: ")
	assert.Contains(t, err.Error(), "rag.chunk_size")

	_, err = execute(t, "", "settings", "set", "rag.k", "11")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotContains(t, err.Error(), "valid keys")
}

func TestSettingsSetKey(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "sk-test-0123456789\n", "settings", "set-key", "openai")

	require.NoError(t, err)
	assert.Contains(t, out, "Stored openai API key (sk-t...6789)")
	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-0123456789", settings.Embedding.APIKey)
	assert.Equal(t, "sk-test-0123456789", settings.LLM.APIKey)
}

func TestSettingsSetKey_Errors(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"unknown provider", "", []string{"cohere"}, "unknown provider"},
		{"local provider", "", []string{"ollama"}, "does not use an API key"},
		{"provider not selected", "key\n", []string{"anthropic"}, "is not selected"},
		{"empty key", "\n", []string{"openai"}, "API key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"settings", "set-key"}, tt.args...)
			_, err := execute(t, tt.stdin, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettingsWizard(t *testing.T) {
	ts := setupTestServices(t)

	// Ollama for embeddings, Anthropic for answers, then the four parameters.
	input := "2\n\n" + "3\nclaude-test\nsk-ant-0123456789\n" + "1200\n100\n5\n0.5\n"
	out, err := execute(t, input, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration Complete!")

	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "claude-test", settings.LLM.Model)
	assert.Equal(t, domain.RAGSettings{ChunkSize: 1200, ChunkOverlap: 100, K: 5, Temperature: 0.5}, settings.RAG)
}
