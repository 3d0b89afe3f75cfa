package driven

import "context"

// VectorIndex provides similarity search over the chunks of one video.
// An index is filled once and then only searched.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID.
	// Every vector must have the index's dimension.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// Search finds the k nearest neighbours to the query vector,
	// best match first. It returns every entry when k exceeds Len.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored vectors.
	Len() int

	// Dimensions returns the vector size the index accepts.
	Dimensions() int

	// Close releases resources.
	Close() error
}

// VectorIndexFactory creates an empty index for vectors of the given size.
// A dimension of zero lets the index adopt the size of the first vector added.
type VectorIndexFactory func(dimensions int) VectorIndex

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score (-1 to 1).
	Similarity float64
}
