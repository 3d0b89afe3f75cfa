package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
)

// VideoRequest is the body of POST /api/video. Omitted parameters keep the
// session's current values.
type VideoRequest struct {
	URL          string   `json:"url"`
	ChunkSize    *int     `json:"chunk_size"`
	ChunkOverlap *int     `json:"chunk_overlap"`
	K            *int     `json:"k"`
	Temperature  *float64 `json:"temperature"`
}

// VideoResponse describes the indexed video.
type VideoResponse struct {
	VideoID     string `json:"video_id"`
	Language    string `json:"language"`
	IsGenerated bool   `json:"is_generated"`
	Chunks      int    `json:"chunks"`
	Dimensions  int    `json:"dimensions"`
	Preview     string `json:"preview"`
}

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// TurnResponse is one question and answer.
type TurnResponse struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

// AskResponse carries the answer and the updated conversation.
type AskResponse struct {
	Answer  string         `json:"answer"`
	History []TurnResponse `json:"history"`
}

// SettingsResponse describes pipeline parameters.
type SettingsResponse struct {
	ChunkSize    int     `json:"chunk_size"`
	ChunkOverlap int     `json:"chunk_overlap"`
	K            int     `json:"k"`
	Temperature  float64 `json:"temperature"`
}

// SessionResponse is the body of GET /api/session.
type SessionResponse struct {
	ID             string            `json:"id"`
	State          string            `json:"state"`
	Description    string            `json:"description"`
	VideoID        string            `json:"video_id,omitempty"`
	Chunks         int               `json:"chunks"`
	History        []TurnResponse    `json:"history"`
	Settings       SettingsResponse  `json:"settings"`
	ActiveSettings *SettingsResponse `json:"active_settings,omitempty"`
}

// session resolves the browser's session and locks it for the request.
// The caller must call the returned unlock function.
func (s *Server) session(c *gin.Context) (driving.Session, func()) {
	key, _ := c.Cookie(cookieName)
	newKey, entry := s.sessions.get(key)
	if newKey != key {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, newKey, int(sessionIdleTimeout.Seconds()), "/", "", false, true)
	}
	entry.mu.Lock()
	return entry.session, entry.mu.Unlock
}

func (s *Server) handleIndex(c *gin.Context) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func handleHealthCheck(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

func (s *Server) handleVideo(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidInput, err)
		return
	}
	// Reject a bad link before the session's parameters are touched.
	if _, err := domain.ParseVideoURL(strings.TrimSpace(req.URL)); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidURL, err)
		return
	}

	session, unlock := s.session(c)
	defer unlock()

	if settings, changed := req.apply(session.Settings()); changed {
		if err := s.ports.Assistant.Configure(session, settings); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	summary, err := s.ports.Assistant.IndexVideo(c.Request.Context(), session, req.URL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, VideoResponse{
		VideoID:     summary.VideoID.String(),
		Language:    summary.Language,
		IsGenerated: summary.IsGenerated,
		Chunks:      summary.ChunkCount,
		Dimensions:  summary.Dimensions,
		Preview:     summary.Preview,
	})
}

// apply returns settings with the request's parameters set.
func (r VideoRequest) apply(settings domain.RAGSettings) (domain.RAGSettings, bool) {
	changed := false
	if r.ChunkSize != nil {
		settings.ChunkSize = *r.ChunkSize
		changed = true
	}
	if r.ChunkOverlap != nil {
		settings.ChunkOverlap = *r.ChunkOverlap
		changed = true
	}
	if r.K != nil {
		settings.K = *r.K
		changed = true
	}
	if r.Temperature != nil {
		settings.Temperature = *r.Temperature
		changed = true
	}
	return settings, changed
}

func (s *Server) handleAsk(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidInput, err)
		return
	}

	session, unlock := s.session(c)
	defer unlock()

	answer, err := s.ports.Assistant.Ask(c.Request.Context(), session, req.Question)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	history, err := s.ports.Assistant.History(session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, AskResponse{Answer: answer, History: turnResponses(history)})
}

func (s *Server) handleSession(c *gin.Context) {
	session, unlock := s.session(c)
	defer unlock()

	history, err := s.ports.Assistant.History(session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	state := session.State()
	resp := SessionResponse{
		ID:          session.ID(),
		State:       state.String(),
		Description: state.Description(),
		VideoID:     session.VideoID().String(),
		Chunks:      len(session.Chunks()),
		History:     turnResponses(history),
		Settings:    settingsResponse(session.Settings()),
	}
	if state == domain.SessionReady {
		active := settingsResponse(session.ActiveSettings())
		resp.ActiveSettings = &active
	}
	respondOK(c, resp)
}

func (s *Server) handleClearHistory(c *gin.Context) {
	session, unlock := s.session(c)
	defer unlock()

	if err := s.ports.Assistant.ClearHistory(session); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func turnResponses(history []domain.ChatTurn) []TurnResponse {
	turns := make([]TurnResponse, len(history))
	for i, turn := range history {
		turns[i] = TurnResponse{Question: turn.Question, Answer: turn.Answer, AskedAt: turn.AskedAt}
	}
	return turns
}

func settingsResponse(r domain.RAGSettings) SettingsResponse {
	return SettingsResponse{
		ChunkSize:    r.ChunkSize,
		ChunkOverlap: r.ChunkOverlap,
		K:            r.K,
		Temperature:  r.Temperature,
	}
}
