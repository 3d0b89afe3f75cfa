// Package chunker provides a boundary-aware overlapping text chunking processor.
package chunker

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// separator is a preferred break point. cut is the offset from the match
// where the chunk ends, so sentence punctuation stays with its sentence.
type separator struct {
	text []rune
	cut  int
}

// separators are tried from the largest semantic unit to the smallest.
var separators = []separator{
	{text: []rune("\n\n"), cut: 0},
	{text: []rune("\n"), cut: 0},
	{text: []rune(". "), cut: 1},
	{text: []rune("! "), cut: 1},
	{text: []rune("? "), cut: 1},
	{text: []rune(" "), cut: 0},
}

// Processor splits transcript text into overlapping chunks.
// It implements the PostProcessor interface.
// Sizes are measured in characters (runes), not bytes.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the effective chunk size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the effective overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the transcript text into chunks.
// Input chunks are ignored; this processor creates new chunks from the transcript.
func (p *Processor) Process(ctx context.Context, transcript *domain.Transcript, _ []domain.Chunk) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pieces := p.Split(transcript.Text())
	if len(pieces) == 0 {
		// Empty content produces no chunks
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, content := range pieces {
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			VideoID:  transcript.VideoID,
			Content:  content,
			Position: i,
		})
	}

	return chunks, nil
}

// Split cuts text into pieces of at most chunkSize characters.
// Consecutive pieces share exactly overlap characters and together
// cover the text without gaps. Each piece ends on the largest
// boundary found in its window; text without any boundary is cut hard.
func (p *Processor) Split(text string) []string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	var pieces []string
	start := 0
	for {
		limit := start + p.chunkSize
		if limit >= n {
			pieces = append(pieces, string(runes[start:]))
			return pieces
		}

		end := p.boundary(runes, start, limit)
		pieces = append(pieces, string(runes[start:end]))
		start = end - p.overlap
	}
}

// boundary returns the end of the chunk starting at start.
// The result lies in (start+overlap, limit] so the next chunk always advances.
func (p *Processor) boundary(runes []rune, start, limit int) int {
	floor := start + p.overlap
	for _, sep := range separators {
		for i := limit - sep.cut; i+sep.cut > floor; i-- {
			if hasPrefixAt(runes, i, sep.text) {
				return i + sep.cut
			}
		}
	}
	return limit
}

// hasPrefixAt reports whether runes[i:] starts with prefix.
func hasPrefixAt(runes []rune, i int, prefix []rune) bool {
	if i < 0 || i+len(prefix) > len(runes) {
		return false
	}
	for j, r := range prefix {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}
