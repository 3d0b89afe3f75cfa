package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
	"github.com/custodia-labs/tubeqa/internal/logger"
)

// Ensure AssistantService and Session implement the interfaces.
var (
	_ driving.AssistantService = (*AssistantService)(nil)
	_ driving.Session          = (*Session)(nil)
)

// Session is the per-user state: current video, index and chat history.
// It is not safe for concurrent use; hosts serialise access per user.
type Session struct {
	id      string
	state   domain.SessionState
	videoID domain.VideoID
	pending domain.RAGSettings
	active  domain.RAGSettings
	index   *Index
	history []domain.ChatTurn
}

// ID returns the unique session identifier.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle position of the session.
func (s *Session) State() domain.SessionState { return s.state }

// VideoID returns the indexed video.
func (s *Session) VideoID() domain.VideoID { return s.videoID }

// Settings returns the parameters for the next index.
func (s *Session) Settings() domain.RAGSettings { return s.pending }

// ActiveSettings returns the parameters of the current index.
func (s *Session) ActiveSettings() domain.RAGSettings { return s.active }

// Chunks returns a copy of the indexed chunks.
func (s *Session) Chunks() []domain.Chunk {
	if s.index == nil {
		return nil
	}
	return s.index.Chunks()
}

// AssistantService runs the retrieval-augmented question answering pipeline.
type AssistantService struct {
	transcripts driving.TranscriptService
	pipelines   driven.PipelineFactory
	builder     *IndexBuilder
	llm         driven.LLMService
	prompts     driven.PromptStore
	transcript  domain.TranscriptSettings
	defaults    domain.RAGSettings
	now         func() time.Time
}

// NewAssistantService creates the assistant.
// The prompts parameter is optional (can be nil); the built-in template is used then.
func NewAssistantService(
	transcripts driving.TranscriptService,
	pipelines driven.PipelineFactory,
	builder *IndexBuilder,
	llm driven.LLMService,
	prompts driven.PromptStore,
	transcript domain.TranscriptSettings,
	defaults domain.RAGSettings,
) *AssistantService {
	return &AssistantService{
		transcripts: transcripts,
		pipelines:   pipelines,
		builder:     builder,
		llm:         llm,
		prompts:     prompts,
		transcript:  transcript,
		defaults:    defaults,
		now:         time.Now,
	}
}

// NewSession creates an uninitialised session using the configured defaults.
func (a *AssistantService) NewSession() driving.Session {
	return &Session{
		id:      uuid.New().String(),
		state:   domain.SessionUninitialized,
		pending: a.defaults,
		active:  a.defaults,
	}
}

// Configure validates and stores parameters for the next IndexVideo call.
func (a *AssistantService) Configure(session driving.Session, settings domain.RAGSettings) error {
	s, err := asSession(session)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	s.pending = settings
	return nil
}

// IndexVideo builds a new index for the video at rawURL.
// The new index, the video ID, the settings and an empty history are
// committed together only after every step succeeded.
func (a *AssistantService) IndexVideo(ctx context.Context, session driving.Session, rawURL string) (*domain.IndexSummary, error) {
	s, err := asSession(session)
	if err != nil {
		return nil, err
	}

	videoID, err := domain.ParseVideoURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, err
	}

	logger.Section("Index Video")
	logger.Debug("Video ID: %s", videoID)

	s.state = domain.SessionIndexing

	settings := s.pending
	summary, index, err := a.buildIndex(ctx, videoID, settings)
	if err != nil {
		s.state = domain.SessionUninitialized
		if s.index != nil {
			s.state = domain.SessionReady
		}
		logger.Warn("Indexing %s failed: %v", videoID, err)
		return nil, err
	}

	if s.index != nil {
		_ = s.index.Close()
	}
	s.index = index
	s.videoID = videoID
	s.active = settings
	s.history = nil
	s.state = domain.SessionReady

	logger.Info("Ready: %d chunks indexed for %s", summary.ChunkCount, videoID)
	return summary, nil
}

// buildIndex fetches, chunks and embeds without touching the session.
func (a *AssistantService) buildIndex(
	ctx context.Context, videoID domain.VideoID, settings domain.RAGSettings,
) (*domain.IndexSummary, *Index, error) {
	transcript, err := a.transcripts.Fetch(ctx, videoID)
	if err != nil {
		return nil, nil, err
	}

	pipeline, err := a.pipelines(domain.PipelineConfigFor(settings, a.transcript))
	if err != nil {
		return nil, nil, fmt.Errorf("build pipeline: %w", err)
	}

	done := logger.Step("Chunking transcript (size %d, overlap %d)", settings.ChunkSize, settings.ChunkOverlap)
	chunks, err := pipeline.Process(ctx, transcript)
	if err != nil {
		return nil, nil, fmt.Errorf("process transcript: %w", err)
	}
	done()

	index, err := a.builder.Build(ctx, chunks)
	if err != nil {
		return nil, nil, err
	}

	summary := &domain.IndexSummary{
		VideoID:     videoID,
		Language:    transcript.Language,
		IsGenerated: transcript.IsGenerated,
		ChunkCount:  index.Len(),
		Dimensions:  index.Dimensions(),
		Preview:     transcript.Preview(domain.PreviewLength),
	}
	return summary, index, nil
}

// Ask answers a question from the indexed transcript.
// The turn is recorded only when generation succeeds.
func (a *AssistantService) Ask(ctx context.Context, session driving.Session, question string) (string, error) {
	s, err := asSession(session)
	if err != nil {
		return "", err
	}
	if s.state != domain.SessionReady || s.index == nil {
		return "", domain.ErrNotIndexed
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	logger.Section("Answer")
	logger.Debug("Question: %q", question)

	retrieved, err := a.builder.Retrieve(ctx, s.index, question, s.active.K)
	if err != nil {
		return "", err
	}

	prompt := FillPrompt(loadAnswerPrompt(a.prompts), BuildContext(retrieved), question)

	done := logger.Step("Generating answer with %s (temperature %.1f)", a.llm.ModelName(), s.active.Temperature)
	answer, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: s.active.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationService, err)
	}
	done()

	s.history = append(s.history, domain.ChatTurn{
		Question: question,
		Answer:   answer,
		AskedAt:  a.now(),
	})

	return answer, nil
}

// ClearHistory drops every recorded turn without touching the index.
func (a *AssistantService) ClearHistory(session driving.Session) error {
	s, err := asSession(session)
	if err != nil {
		return err
	}
	s.history = nil
	return nil
}

// History returns a copy of the recorded turns, oldest first.
func (a *AssistantService) History(session driving.Session) ([]domain.ChatTurn, error) {
	s, err := asSession(session)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ChatTurn, len(s.history))
	copy(out, s.history)
	return out, nil
}

// asSession recovers the concrete session created by NewSession.
func asSession(session driving.Session) (*Session, error) {
	s, ok := session.(*Session)
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: unknown session", domain.ErrInvalidInput)
	}
	return s, nil
}
