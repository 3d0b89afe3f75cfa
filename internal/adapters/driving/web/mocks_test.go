package web

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
)

// fakeSession is an in-memory driving.Session.
type fakeSession struct {
	id       string
	state    domain.SessionState
	videoID  domain.VideoID
	settings domain.RAGSettings
	active   domain.RAGSettings
	chunks   []domain.Chunk
	history  []domain.ChatTurn
}

func (s *fakeSession) ID() string                         { return s.id }
func (s *fakeSession) State() domain.SessionState         { return s.state }
func (s *fakeSession) VideoID() domain.VideoID            { return s.videoID }
func (s *fakeSession) Settings() domain.RAGSettings       { return s.settings }
func (s *fakeSession) ActiveSettings() domain.RAGSettings { return s.active }
func (s *fakeSession) Chunks() []domain.Chunk             { return s.chunks }

// mockAssistantService keeps its state in fakeSession values.
type mockAssistantService struct {
	indexErr error
	askErr   error
	answer   string

	sessions int
}

func (m *mockAssistantService) NewSession() driving.Session {
	m.sessions++
	return &fakeSession{
		id:       uuid.NewString(),
		state:    domain.SessionUninitialized,
		settings: domain.DefaultRAGSettings(),
	}
}

func (m *mockAssistantService) Configure(session driving.Session, settings domain.RAGSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	session.(*fakeSession).settings = settings
	return nil
}

func (m *mockAssistantService) IndexVideo(
	_ context.Context, session driving.Session, rawURL string,
) (*domain.IndexSummary, error) {
	if m.indexErr != nil {
		return nil, m.indexErr
	}
	videoID, err := domain.ParseVideoURL(rawURL)
	if err != nil {
		return nil, err
	}
	s := session.(*fakeSession)
	s.state = domain.SessionReady
	s.videoID = videoID
	s.active = s.settings
	s.history = nil
	s.chunks = []domain.Chunk{{ID: "c0", VideoID: videoID, Content: "hello world"}}
	return &domain.IndexSummary{
		VideoID:    videoID,
		Language:   "en",
		ChunkCount: 1,
		Dimensions: 3,
		Preview:    "hello world",
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
	s.history = append(s.history, domain.ChatTurn{Question: question, Answer: m.answer, AskedAt: time.Now()})
	return m.answer, nil
}

func (m *mockAssistantService) ClearHistory(session driving.Session) error {
	session.(*fakeSession).history = nil
	return nil
}

func (m *mockAssistantService) History(session driving.Session) ([]domain.ChatTurn, error) {
	return append([]domain.ChatTurn(nil), session.(*fakeSession).history...), nil
}
