package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/logger"
)

// Index is the searchable form of one video's transcript.
// It is never modified after Build returns.
type Index struct {
	vectors driven.VectorIndex
	chunks  []domain.Chunk
	byID    map[string]int
	model   string
}

// Len returns the number of indexed chunks.
func (i *Index) Len() int {
	return len(i.chunks)
}

// Dimensions returns the embedding size of the index.
func (i *Index) Dimensions() int {
	return i.vectors.Dimensions()
}

// Model returns the embedding model the index was built with.
func (i *Index) Model() string {
	return i.model
}

// Chunks returns a copy of the indexed chunks in transcript order.
func (i *Index) Chunks() []domain.Chunk {
	out := make([]domain.Chunk, len(i.chunks))
	copy(out, i.chunks)
	return out
}

// Close releases the underlying vector index.
func (i *Index) Close() error {
	return i.vectors.Close()
}

// IndexBuilder embeds chunks and answers similarity queries against the result.
type IndexBuilder struct {
	embedder driven.EmbeddingService
	newIndex driven.VectorIndexFactory
}

// NewIndexBuilder creates an index builder.
func NewIndexBuilder(embedder driven.EmbeddingService, newIndex driven.VectorIndexFactory) *IndexBuilder {
	return &IndexBuilder{
		embedder: embedder,
		newIndex: newIndex,
	}
}

// Build embeds every chunk and stores the vectors in a fresh index.
// An empty chunk list fails with domain.ErrEmptyTranscript.
// Any provider failure fails with domain.ErrEmbeddingService; there are no retries.
func (b *IndexBuilder) Build(ctx context.Context, chunks []domain.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyTranscript
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	done := logger.Step("Embedding %d chunks with %s", len(chunks), b.embedder.ModelName())
	vectors, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
	}
	done()

	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingService, len(vectors), len(chunks))
	}

	index := &Index{
		vectors: b.newIndex(len(vectors[0])),
		chunks:  make([]domain.Chunk, len(chunks)),
		byID:    make(map[string]int, len(chunks)),
		model:   b.embedder.ModelName(),
	}

	for i, c := range chunks {
		c.Embedding = vectors[i]
		if err := index.vectors.Add(ctx, c.ID, c.Embedding); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("%w: chunk %d: %w", domain.ErrEmbeddingService, i, err)
		}
		index.chunks[i] = c
		index.byID[c.ID] = i
	}

	logger.Debug("Index built: %d vectors, %d dimensions", index.Len(), index.Dimensions())
	return index, nil
}

// Retrieve embeds the query and returns up to k chunks, best match first.
// When k exceeds the number of indexed chunks, every chunk is returned.
func (b *IndexBuilder) Retrieve(ctx context.Context, index *Index, query string, k int) ([]domain.RetrievedChunk, error) {
	if index == nil {
		return nil, domain.ErrNotIndexed
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", domain.ErrInvalidInput, k)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	queryVec, err := b.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
	}

	hits, err := index.vectors.Search(ctx, queryVec, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
	}

	results := make([]domain.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		pos, ok := index.byID[hit.ChunkID]
		if !ok {
			logger.Warn("Vector hit for unknown chunk %s", hit.ChunkID)
			continue
		}
		results = append(results, domain.RetrievedChunk{
			Chunk:      index.chunks[pos],
			Similarity: hit.Similarity,
		})
	}

	logger.Debug("Retrieved %d of %d chunks (k=%d)", len(results), index.Len(), k)
	return results, nil
}
