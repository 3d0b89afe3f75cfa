package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

func newTestServer(t *testing.T, assistant *mockAssistantService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Assistant: assistant})
	require.NoError(t, err)
	return server
}

func TestServer_handleIndexVideo(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes the video", func(t *testing.T) {
		assistant := &mockAssistantService{}
		server := newTestServer(t, assistant)

		_, output, err := server.handleIndexVideo(ctx, nil, IndexVideoInput{URL: "https://youtu.be/dQw4w9WgXcQ"})

		require.NoError(t, err)
		assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", assistant.lastURL)
		assert.Equal(t, "dQw4w9WgXcQ", output.VideoID)
		assert.Equal(t, "en", output.Language)
		assert.Equal(t, 2, output.Chunks)
		assert.Equal(t, 3, output.Dimensions)
		assert.Equal(t, "never gonna give you up", output.Preview)
	})

	t.Run("applies parameter overrides", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{})
		temperature := 0.0

		_, _, err := server.handleIndexVideo(ctx, nil, IndexVideoInput{
			URL:         "https://youtu.be/dQw4w9WgXcQ",
			ChunkSize:   1500,
			K:           6,
			Temperature: &temperature,
		})

		require.NoError(t, err)
		active := server.Session().ActiveSettings()
		assert.Equal(t, 1500, active.ChunkSize)
		assert.Equal(t, 200, active.ChunkOverlap)
		assert.Equal(t, 6, active.K)
		assert.Equal(t, 0.0, active.Temperature)
	})

	t.Run("rejects invalid overrides", func(t *testing.T) {
		assistant := &mockAssistantService{}
		server := newTestServer(t, assistant)

		_, _, err := server.handleIndexVideo(ctx, nil, IndexVideoInput{
			URL:       "https://youtu.be/dQw4w9WgXcQ",
			ChunkSize: 50,
		})

		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, assistant.lastURL)
	})

	t.Run("returns indexing errors", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{indexErr: domain.ErrInvalidURL})

		_, _, err := server.handleIndexVideo(ctx, nil, IndexVideoInput{URL: "nope"})

		require.ErrorIs(t, err, domain.ErrInvalidURL)
	})
}

func TestApplyOverrides(t *testing.T) {
	defaults := domain.DefaultRAGSettings()

	settings, changed := applyOverrides(defaults, IndexVideoInput{URL: "x"})
	assert.False(t, changed)
	assert.Equal(t, defaults, settings)

	settings, changed = applyOverrides(defaults, IndexVideoInput{ChunkOverlap: 100})
	assert.True(t, changed)
	assert.Equal(t, 100, settings.ChunkOverlap)
	assert.Equal(t, defaults.ChunkSize, settings.ChunkSize)
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("asking before indexing fails", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{answer: "yes"})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Question: "who?"})

		require.ErrorIs(t, err, domain.ErrNotIndexed)
	})

	t.Run("answers after indexing", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{answer: "Rick Astley."})
		_, _, err := server.handleIndexVideo(ctx, nil, IndexVideoInput{URL: "https://youtu.be/dQw4w9WgXcQ"})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "Who sings?"})

		require.NoError(t, err)
		assert.Equal(t, "Rick Astley.", output.Answer)
	})

	t.Run("returns generation errors", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{askErr: errors.New("rate limited")})
		_, _, err := server.handleIndexVideo(ctx, nil, IndexVideoInput{URL: "https://youtu.be/dQw4w9WgXcQ"})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "Who sings?"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})
}

func TestServer_handleClearHistory(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &mockAssistantService{answer: "a"})
	_, _, err := server.handleIndexVideo(ctx, nil, IndexVideoInput{URL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)
	_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q1"})
	require.NoError(t, err)
	_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q2"})
	require.NoError(t, err)

	_, output, err := server.handleClearHistory(ctx, nil, ClearHistoryInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Cleared)

	_, status, err := server.handleSessionStatus(ctx, nil, SessionStatusInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, status.Turns)
	assert.Equal(t, 2, status.Chunks)
}

func TestServer_handleSessionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("uninitialised session", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{})

		_, output, err := server.handleSessionStatus(ctx, nil, SessionStatusInput{})

		require.NoError(t, err)
		assert.Equal(t, "uninitialized", output.State)
		assert.Equal(t, "No video processed", output.Description)
		assert.Empty(t, output.VideoID)
		assert.Nil(t, output.ActiveSettings)
		assert.Equal(t, 1000, output.Settings.ChunkSize)
	})

	t.Run("ready session", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{answer: "a"})
		_, _, err := server.handleIndexVideo(ctx, nil, IndexVideoInput{URL: "https://youtu.be/dQw4w9WgXcQ"})
		require.NoError(t, err)
		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})
		require.NoError(t, err)

		_, output, err := server.handleSessionStatus(ctx, nil, SessionStatusInput{})

		require.NoError(t, err)
		assert.Equal(t, "ready", output.State)
		assert.Equal(t, "dQw4w9WgXcQ", output.VideoID)
		assert.Equal(t, 2, output.Chunks)
		assert.Equal(t, 1, output.Turns)
		require.NotNil(t, output.ActiveSettings)
		assert.Equal(t, 4, output.ActiveSettings.K)
	})
}

func TestServer_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	assistant := &mockAssistantService{answer: "a"}
	first := newTestServer(t, assistant)
	second := newServer(first.ports)

	_, _, err := first.handleIndexVideo(ctx, nil, IndexVideoInput{URL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)

	_, _, err = second.handleAsk(ctx, nil, AskInput{Question: "q"})
	assert.ErrorIs(t, err, domain.ErrNotIndexed)
	assert.Equal(t, 2, assistant.sessions)
}
