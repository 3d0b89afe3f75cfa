// Package domain defines the core business entities for tubeqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - VideoID: The canonical identifier parsed from a YouTube URL
//   - Transcript: The timed snippets spoken in a video
//   - Chunk: A bounded slice of transcript text used for retrieval
//   - ChatTurn: A question and its generated answer
//   - AppSettings: Provider and pipeline configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
