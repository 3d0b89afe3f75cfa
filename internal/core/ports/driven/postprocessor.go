package driven

import (
	"context"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// PostProcessor turns a transcript into chunks.
// PostProcessors are chained in a pipeline (e.g., normalising, chunking).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a transcript and returns chunks.
	// A processor that cleans text may rewrite the transcript and pass chunks through.
	// A processor that creates chunks (e.g., chunker) receives nil and returns new chunks.
	Process(ctx context.Context, transcript *domain.Transcript, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the transcript through all processors in order.
	// The caller's transcript is not modified.
	Process(ctx context.Context, transcript *domain.Transcript) ([]domain.Chunk, error)
}

// PipelineFactory builds a pipeline from configuration.
// Chunk parameters are chosen per session, so pipelines are built per index.
type PipelineFactory func(cfg domain.PipelineConfig) (PostProcessorPipeline, error)
