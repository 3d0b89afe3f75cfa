package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Services wrap the
// underlying cause with the matching sentinel so callers can use errors.Is
// on both.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidURL indicates the URL contains no recognisable video ID.
	ErrInvalidURL = errors.New("invalid YouTube URL")

	// Transcript Errors.

	// ErrNoTranscriptFound indicates none of the requested languages has a transcript.
	// Sources return it so the fetcher can move on to the next language set.
	ErrNoTranscriptFound = errors.New("no transcript found for requested languages")

	// ErrVideoUnavailable indicates the video cannot be played or does not exist.
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrTranscriptUnavailable indicates every language attempt failed.
	ErrTranscriptUnavailable = errors.New("transcript not available for this video")

	// ErrEmptyTranscript indicates there was nothing to index.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// Pipeline Errors.

	// ErrEmbeddingService indicates the embedding provider failed (network, auth, quota).
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrGenerationService indicates the language model failed (network, auth, quota, policy).
	ErrGenerationService = errors.New("generation service error")

	// ErrNotIndexed indicates a question was asked before a video was indexed.
	ErrNotIndexed = errors.New("no video indexed yet")

	// Provider Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
