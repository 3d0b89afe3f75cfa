package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
)

// fakeSession is an in-memory driving.Session.
type fakeSession struct {
	state    domain.SessionState
	videoID  domain.VideoID
	settings domain.RAGSettings
	active   domain.RAGSettings
	chunks   []domain.Chunk
	history  []domain.ChatTurn
}

func (s *fakeSession) ID() string                         { return "fake" }
func (s *fakeSession) State() domain.SessionState         { return s.state }
func (s *fakeSession) VideoID() domain.VideoID            { return s.videoID }
func (s *fakeSession) Settings() domain.RAGSettings       { return s.settings }
func (s *fakeSession) ActiveSettings() domain.RAGSettings { return s.active }
func (s *fakeSession) Chunks() []domain.Chunk             { return s.chunks }

// mockAssistantService is a mock implementation of driving.AssistantService
// that keeps its state in fakeSession values.
type mockAssistantService struct {
	indexErr     error
	askErr       error
	configureErr error
	answer       string

	lastURL  string
	sessions int
}

func (m *mockAssistantService) NewSession() driving.Session {
	m.sessions++
	return &fakeSession{state: domain.SessionUninitialized, settings: domain.DefaultRAGSettings()}
}

func (m *mockAssistantService) Configure(session driving.Session, settings domain.RAGSettings) error {
	if m.configureErr != nil {
		return m.configureErr
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	session.(*fakeSession).settings = settings
	return nil
}

func (m *mockAssistantService) IndexVideo(
	_ context.Context, session driving.Session, rawURL string,
) (*domain.IndexSummary, error) {
	m.lastURL = rawURL
	if m.indexErr != nil {
		return nil, m.indexErr
	}
	s := session.(*fakeSession)
	s.state = domain.SessionReady
	s.videoID = "dQw4w9WgXcQ"
	s.active = s.settings
	s.history = nil
	s.chunks = []domain.Chunk{
		{ID: "c0", VideoID: s.videoID, Content: "never gonna give you up", Position: 0},
		{ID: "c1", VideoID: s.videoID, Content: "never gonna let you down", Position: 1},
	}
	return &domain.IndexSummary{
		VideoID:    s.videoID,
		Language:   "en",
		ChunkCount: len(s.chunks),
		Dimensions: 3,
		Preview:    "never gonna give you up",
	}, nil
}

func (m *mockAssistantService) Ask(_ context.Context, session driving.Session, question string) (string, error) {
	s := session.(*fakeSession)
	if s.state != domain.SessionReady {
		return "", domain.ErrNotIndexed
	}
	if m.askErr != nil {
		return "", m.askErr
	}
	s.history = append(s.history, domain.ChatTurn{
		Question: question,
		Answer:   m.answer,
		AskedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	return m.answer, nil
}

func (m *mockAssistantService) ClearHistory(session driving.Session) error {
	session.(*fakeSession).history = nil
	return nil
}

func (m *mockAssistantService) History(session driving.Session) ([]domain.ChatTurn, error) {
	return append([]domain.ChatTurn(nil), session.(*fakeSession).history...), nil
}
