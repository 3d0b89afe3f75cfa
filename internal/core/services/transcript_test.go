package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

func TestTranscriptService_FirstAttemptWins(t *testing.T) {
	source := &mockTranscriptSource{
		transcripts: map[string]*domain.Transcript{"en": transcriptOf("hello")},
	}
	svc := NewTranscriptService(source, domain.DefaultTranscriptSettings())

	tr, err := svc.Fetch(context.Background(), "dQw4w9WgXcQ")

	require.NoError(t, err)
	assert.Equal(t, "hello", tr.Text())
	assert.Equal(t, domain.VideoID("dQw4w9WgXcQ"), tr.VideoID)
	assert.Equal(t, [][]string{{"en"}}, source.calls)
}

func TestTranscriptService_FallsBackOnNoTranscript(t *testing.T) {
	source := &mockTranscriptSource{
		transcripts: map[string]*domain.Transcript{"auto,hi,en": transcriptOf("namaste")},
	}
	svc := NewTranscriptService(source, domain.DefaultTranscriptSettings())

	tr, err := svc.Fetch(context.Background(), "dQw4w9WgXcQ")

	require.NoError(t, err)
	assert.Equal(t, "namaste", tr.Text())
	assert.Equal(t, [][]string{{"en"}, {"auto", "hi", "en"}}, source.calls)
}

func TestTranscriptService_AllAttemptsFail(t *testing.T) {
	source := &mockTranscriptSource{}
	svc := NewTranscriptService(source, domain.DefaultTranscriptSettings())

	_, err := svc.Fetch(context.Background(), "dQw4w9WgXcQ")

	assert.ErrorIs(t, err, domain.ErrTranscriptUnavailable)
	assert.ErrorIs(t, err, domain.ErrNoTranscriptFound)
	assert.Len(t, source.calls, 2)
}

func TestTranscriptService_OtherErrorsStopImmediately(t *testing.T) {
	source := &mockTranscriptSource{
		errs: map[string]error{"en": domain.ErrVideoUnavailable},
	}
	svc := NewTranscriptService(source, domain.DefaultTranscriptSettings())

	_, err := svc.Fetch(context.Background(), "dQw4w9WgXcQ")

	assert.ErrorIs(t, err, domain.ErrTranscriptUnavailable)
	assert.ErrorIs(t, err, domain.ErrVideoUnavailable)
	assert.Len(t, source.calls, 1)
}

func TestTranscriptService_NoLanguages(t *testing.T) {
	svc := NewTranscriptService(&mockTranscriptSource{}, domain.TranscriptSettings{})

	_, err := svc.Fetch(context.Background(), "dQw4w9WgXcQ")

	assert.ErrorIs(t, err, domain.ErrTranscriptUnavailable)
}
