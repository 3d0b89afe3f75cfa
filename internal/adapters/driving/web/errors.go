// Package web provides the browser UI and JSON API for tubeqa.
package web

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("web: assistant service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("web: invalid ports configuration")

// Error codes used in the error envelope.
const (
	CodeInvalidURL            = "invalid_url"
	CodeInvalidInput          = "invalid_input"
	CodeTranscriptUnavailable = "transcript_unavailable"
	CodeNotIndexed            = "not_indexed"
	CodeEmbeddingFailed       = "embedding_failed"
	CodeGenerationFailed      = "generation_failed"
	CodeInternal              = "internal"
)

// classify maps a service error to an HTTP status and envelope code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusBadRequest, CodeInvalidURL
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, domain.ErrTranscriptUnavailable),
		errors.Is(err, domain.ErrEmptyTranscript),
		errors.Is(err, domain.ErrNoTranscriptFound),
		errors.Is(err, domain.ErrVideoUnavailable):
		return http.StatusUnprocessableEntity, CodeTranscriptUnavailable
	case errors.Is(err, domain.ErrNotIndexed):
		return http.StatusConflict, CodeNotIndexed
	case errors.Is(err, domain.ErrEmbeddingService):
		return http.StatusBadGateway, CodeEmbeddingFailed
	case errors.Is(err, domain.ErrGenerationService):
		return http.StatusBadGateway, CodeGenerationFailed
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
