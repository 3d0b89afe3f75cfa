// Package flat provides an exact in-memory vector index.
// It implements the driven.VectorIndex interface with brute-force cosine
// similarity, which is exact and fast enough for the chunks of one video.
package flat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Errors returned by the index.
var (
	ErrClosed            = errors.New("flat: index is closed")
	ErrDimensionMismatch = errors.New("flat: embedding dimension mismatch")
	ErrEmptyVector       = errors.New("flat: embedding is empty")
	ErrDuplicateChunk    = errors.New("flat: chunk already indexed")
)

type entry struct {
	chunkID string
	vector  []float32
	norm    float64
}

// Index stores normalised vectors and scans them all on search.
type Index struct {
	mu        sync.RWMutex
	entries   []entry
	ids       map[string]struct{}
	dimension int
	closed    bool
}

// New creates an empty index. A dimension of zero adopts the size of
// the first vector added.
func New(dimension int) *Index {
	if dimension < 0 {
		dimension = 0
	}
	return &Index{
		ids:       make(map[string]struct{}),
		dimension: dimension,
	}
}

// Factory adapts New to driven.VectorIndexFactory.
func Factory(dimension int) driven.VectorIndex {
	return New(dimension)
}

// Add inserts a vector for the given chunk ID.
func (idx *Index) Add(_ context.Context, chunkID string, embedding []float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return ErrClosed
	}
	if len(embedding) == 0 {
		return ErrEmptyVector
	}
	if idx.dimension == 0 {
		idx.dimension = len(embedding)
	}
	if len(embedding) != idx.dimension {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(embedding), idx.dimension)
	}
	if _, exists := idx.ids[chunkID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateChunk, chunkID)
	}

	vector := make([]float32, len(embedding))
	copy(vector, embedding)

	idx.entries = append(idx.entries, entry{
		chunkID: chunkID,
		vector:  vector,
		norm:    norm(vector),
	})
	idx.ids[chunkID] = struct{}{}

	return nil
}

// Search finds the k nearest neighbours to the query vector by cosine similarity.
// Equal scores keep insertion order, so results are deterministic.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, ErrClosed
	}
	if k <= 0 || len(idx.entries) == 0 {
		return nil, nil
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(query), idx.dimension)
	}

	queryNorm := norm(query)
	hits := make([]driven.VectorHit, len(idx.entries))
	for i, e := range idx.entries {
		hits[i] = driven.VectorHit{
			ChunkID:    e.chunkID,
			Similarity: cosine(query, queryNorm, e.vector, e.norm),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Dimensions returns the vector size the index accepts.
func (idx *Index) Dimensions() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimension
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = nil
	idx.ids = nil
	idx.closed = true
	return nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine returns 0 when either vector has zero length.
func cosine(a []float32, aNorm float64, b []float32, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (aNorm * bNorm)
}
