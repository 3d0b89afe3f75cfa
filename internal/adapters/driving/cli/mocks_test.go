package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/tubeqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
	"github.com/custodia-labs/tubeqa/internal/core/services"
)

// mockSession implements driving.Session for testing.
type mockSession struct {
	settings domain.RAGSettings
}

func (s *mockSession) ID() string                         { return "cli-test" }
func (s *mockSession) State() domain.SessionState         { return domain.SessionUninitialized }
func (s *mockSession) VideoID() domain.VideoID            { return "" }
func (s *mockSession) Settings() domain.RAGSettings       { return s.settings }
func (s *mockSession) ActiveSettings() domain.RAGSettings { return s.settings }
func (s *mockSession) Chunks() []domain.Chunk             { return nil }

// mockAssistant implements driving.AssistantService for testing.
type mockAssistant struct {
	defaults domain.RAGSettings

	indexErr error
	askErr   error
	answer   string

	indexedURL string
	questions  []string
}

func (m *mockAssistant) NewSession() driving.Session {
	return &mockSession{settings: m.defaults}
}

func (m *mockAssistant) Configure(session driving.Session, settings domain.RAGSettings) error {
	session.(*mockSession).settings = settings
	return nil
}

func (m *mockAssistant) IndexVideo(_ context.Context, _ driving.Session, rawURL string) (*domain.IndexSummary, error) {
	m.indexedURL = rawURL
	if m.indexErr != nil {
		return nil, m.indexErr
	}
	return &domain.IndexSummary{
		VideoID:     "dQw4w9WgXcQ",
		Language:    "en",
		IsGenerated: true,
		ChunkCount:  7,
		Dimensions:  1536,
		Preview:     "We're no strangers to love",
	}, nil
}

func (m *mockAssistant) Ask(_ context.Context, _ driving.Session, question string) (string, error) {
	m.questions = append(m.questions, question)
	if m.askErr != nil {
		return "", m.askErr
	}
	return m.answer, nil
}

func (m *mockAssistant) ClearHistory(driving.Session) error { return nil }

func (m *mockAssistant) History(driving.Session) ([]domain.ChatTurn, error) { return nil, nil }

// mockTranscriptService implements driving.TranscriptService for testing.
type mockTranscriptService struct {
	transcript *domain.Transcript
	err        error
	requested  domain.VideoID
}

func (m *mockTranscriptService) Fetch(_ context.Context, videoID domain.VideoID) (*domain.Transcript, error) {
	m.requested = videoID
	return m.transcript, m.err
}

// testServices holds the fakes wired into the command tree.
type testServices struct {
	settings    *services.SettingsService
	transcripts *mockTranscriptService
	assistant   *mockAssistant

	// factoryCalls counts assistant constructions.
	factoryCalls int
}

// setupTestServices wires fakes into the commands and restores everything
// when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	ts := &testServices{
		settings: services.NewSettingsService(memory.NewConfigStore(), nil),
		transcripts: &mockTranscriptService{transcript: &domain.Transcript{
			VideoID:      "dQw4w9WgXcQ",
			Language:     "en",
			LanguageName: "English (auto-generated)",
			IsGenerated:  true,
			Snippets: []domain.Snippet{
				{Text: "We're no strangers", Start: 18 * time.Second, Duration: 3 * time.Second},
				{Text: "to love", Start: 21 * time.Second, Duration: 2500 * time.Millisecond},
			},
		}},
		assistant: &mockAssistant{answer: "It is about love."},
	}

	SetServices(Services{
		Settings:    ts.settings,
		Transcripts: ts.transcripts,
		NewAssistant: func(defaults domain.RAGSettings) (driving.AssistantService, func(), error) {
			ts.factoryCalls++
			ts.assistant.defaults = defaults
			return ts.assistant, nil, nil
		},
	})

	t.Cleanup(func() {
		SetServices(Services{})
		resetFlags(rootCmd)
	})
	return ts
}

// resetFlags restores every flag in the tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and stdin, returning stdout and the error.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}
