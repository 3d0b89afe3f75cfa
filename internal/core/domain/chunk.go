package domain

// Chunk is a bounded piece of transcript text.
// Chunks are the unit that gets embedded and retrieved.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// VideoID links the chunk to the video it was cut from.
	VideoID VideoID

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the transcript.
	Position int

	// Embedding is the vector representation for semantic search.
	Embedding []float32
}

// RetrievedChunk is a chunk returned by similarity search.
type RetrievedChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the cosine similarity between the query and the chunk.
	Similarity float64
}

// IndexSummary describes a freshly indexed video.
type IndexSummary struct {
	VideoID     VideoID
	Language    string
	IsGenerated bool
	ChunkCount  int
	Dimensions  int

	// Preview is the first PreviewLength runes of the transcript.
	Preview string
}

// PreviewLength is the number of transcript runes shown after indexing.
const PreviewLength = 500
