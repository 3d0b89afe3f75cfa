package services

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/custodia-labs/tubeqa/internal/adapters/driven/vector/flat"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/postprocessors"
)

// --- Mock implementations ---

// mockTranscriptSource implements driven.TranscriptSource for testing.
// Responses are keyed by the comma-joined language list.
type mockTranscriptSource struct {
	transcripts map[string]*domain.Transcript
	errs        map[string]error
	calls       [][]string
}

func (m *mockTranscriptSource) Fetch(_ context.Context, videoID domain.VideoID, languages []string) (*domain.Transcript, error) {
	m.calls = append(m.calls, languages)
	key := strings.Join(languages, ",")
	if err, ok := m.errs[key]; ok {
		return nil, err
	}
	if tr, ok := m.transcripts[key]; ok {
		copied := *tr
		copied.VideoID = videoID
		return &copied, nil
	}
	return nil, domain.ErrNoTranscriptFound
}

// letterEmbedder implements driven.EmbeddingService with letter frequencies.
// It is deterministic, so identical text always gets identical vectors.
type letterEmbedder struct {
	batchErr   error
	embedErr   error
	batchCalls int
	short      bool
}

func (m *letterEmbedder) vector(text string) []float32 {
	v := make([]float32, 27)
	v[26] = 0.01
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			v[r-'a']++
		} else if unicode.IsDigit(r) {
			v[26]++
		}
	}
	return v
}

func (m *letterEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *letterEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	if m.short && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *letterEmbedder) Dimensions() int   { return 27 }
func (m *letterEmbedder) ModelName() string { return "letters" }
func (m *letterEmbedder) Ping(_ context.Context) error {
	return nil
}
func (m *letterEmbedder) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	answer  string
	err     error
	prompts []string
	opts    []driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}
func (m *mockLLMService) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	template string
	err      error
}

func (m *mockPromptStore) Load(_ string) (string, error) {
	return m.template, m.err
}

func (m *mockPromptStore) Reload() {}

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	err error
}

func (m *mockAIValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error { return m.err }
func (m *mockAIValidator) ValidateLLM(_ *domain.LLMSettings) error             { return m.err }

// foreignSession implements driving.Session but was not created by the service.
type foreignSession struct{}

func (foreignSession) ID() string                         { return "foreign" }
func (foreignSession) State() domain.SessionState         { return domain.SessionReady }
func (foreignSession) VideoID() domain.VideoID            { return "" }
func (foreignSession) Settings() domain.RAGSettings       { return domain.RAGSettings{} }
func (foreignSession) ActiveSettings() domain.RAGSettings { return domain.RAGSettings{} }
func (foreignSession) Chunks() []domain.Chunk             { return nil }

var errProvider = errors.New("provider exploded")

// defaultPipelines builds real pipelines from the built-in registry.
func defaultPipelines(cfg domain.PipelineConfig) (driven.PostProcessorPipeline, error) {
	return postprocessors.NewDefaultRegistry().BuildPipeline(cfg)
}

func newTestBuilder(embedder driven.EmbeddingService) *IndexBuilder {
	return NewIndexBuilder(embedder, flat.Factory)
}

func transcriptOf(texts ...string) *domain.Transcript {
	snippets := make([]domain.Snippet, len(texts))
	for i, t := range texts {
		snippets[i] = domain.Snippet{Text: t}
	}
	return &domain.Transcript{Language: "en", Snippets: snippets}
}
