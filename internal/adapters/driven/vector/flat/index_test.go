package flat

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx := New(3)

	require.NoError(t, idx.Add(ctx, "x", []float32{1, 0, 0}))
	require.NoError(t, idx.Add(ctx, "y", []float32{0, 1, 0}))
	require.NoError(t, idx.Add(ctx, "xy", []float32{1, 1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0.1, 0}, 2)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "x", hits[0].ChunkID)
	assert.Equal(t, "xy", hits[1].ChunkID)
	assert.GreaterOrEqual(t, hits[0].Similarity, hits[1].Similarity)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 3, idx.Dimensions())
}

func TestIndex_Search_KExceedsLen(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "b", []float32{0, 1}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 10)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndex_Search_OrderedNonIncreasing(t *testing.T) {
	ctx := context.Background()
	idx := New(4)
	for i := 0; i < 20; i++ {
		v := []float32{float32(i), float32(20 - i), float32(i % 3), 1}
		require.NoError(t, idx.Add(ctx, fmt.Sprintf("c%d", i), v))
	}

	hits, err := idx.Search(ctx, []float32{3, 1, 0, 1}, 7)

	require.NoError(t, err)
	require.Len(t, hits, 7)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
	}
}

func TestIndex_Search_TiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	require.NoError(t, idx.Add(ctx, "first", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "second", []float32{2, 0}))
	require.NoError(t, idx.Add(ctx, "third", []float32{3, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{hits[0].ChunkID, hits[1].ChunkID, hits[2].ChunkID})
}

func TestIndex_Search_NonPositiveK(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_Search_Empty(t *testing.T) {
	hits, err := New(2).Search(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_ZeroVector(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	require.NoError(t, idx.Add(ctx, "zero", []float32{0, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Zero(t, hits[0].Similarity)
}

func TestIndex_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := New(3)

	err := idx.Add(ctx, "a", []float32{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	require.NoError(t, idx.Add(ctx, "b", []float32{1, 2, 3}))
	_, err = idx.Search(ctx, []float32{1}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestIndex_AdoptsFirstDimension(t *testing.T) {
	ctx := context.Background()
	idx := New(0)

	require.NoError(t, idx.Add(ctx, "a", []float32{1, 2, 3, 4}))
	assert.Equal(t, 4, idx.Dimensions())
	assert.ErrorIs(t, idx.Add(ctx, "b", []float32{1}), ErrDimensionMismatch)
}

func TestIndex_RejectsEmptyAndDuplicate(t *testing.T) {
	ctx := context.Background()
	idx := New(0)

	assert.ErrorIs(t, idx.Add(ctx, "a", nil), ErrEmptyVector)
	require.NoError(t, idx.Add(ctx, "a", []float32{1}))
	assert.ErrorIs(t, idx.Add(ctx, "a", []float32{2}), ErrDuplicateChunk)
}

func TestIndex_CopiesInput(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	v := []float32{1, 0}
	require.NoError(t, idx.Add(ctx, "a", v))
	require.NoError(t, idx.Add(ctx, "b", []float32{0, 1}))

	v[0], v[1] = 0, 1

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", hits[0].ChunkID)
}

func TestIndex_Close(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	require.NoError(t, idx.Close())

	assert.ErrorIs(t, idx.Add(ctx, "a", []float32{1, 0}), ErrClosed)
	_, err := idx.Search(ctx, []float32{1, 0}, 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 0, idx.Len())
}

func TestFactory(t *testing.T) {
	idx := Factory(8)
	require.NotNil(t, idx)
	assert.Equal(t, 8, idx.Dimensions())
}

func TestIndex_ConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "b", []float32{0, 1}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits, err := idx.Search(ctx, []float32{0, 1}, 1)
			assert.NoError(t, err)
			assert.Equal(t, "b", hits[0].ChunkID)
		}()
	}
	wg.Wait()
}
