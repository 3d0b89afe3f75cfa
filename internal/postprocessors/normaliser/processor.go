// Package normaliser provides a processor that cleans caption text before chunking.
package normaliser

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

// Pre-compiled regular expressions for caption cleanup.
var (
	allTags     = regexp.MustCompile(`<[^>]+>`)
	captionTags = regexp.MustCompile(`(?i)</?[ibu]>|<font\s[^>]*>|</?font>`)
	whitespace  = regexp.MustCompile(`\s+`)
	soundEffect = regexp.MustCompile(`^\[[^\]]*\]$`)
)

// Processor strips markup and entities from transcript snippets.
// It rewrites the transcript it is given and passes chunks through.
type Processor struct {
	dropSoundEffects bool
}

// Option configures the normaliser processor.
type Option func(*Processor)

// WithDropSoundEffects removes snippets that only contain a bracketed
// annotation such as "[Music]" or "[Applause]".
func WithDropSoundEffects(drop bool) Option {
	return func(p *Processor) {
		p.dropSoundEffects = drop
	}
}

// New creates a new normaliser processor.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "normaliser"
}

// Process cleans every snippet and drops the ones left empty.
func (p *Processor) Process(_ context.Context, transcript *domain.Transcript, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if transcript == nil {
		return nil, domain.ErrInvalidInput
	}

	kept := transcript.Snippets[:0]
	for _, s := range transcript.Snippets {
		s.Text = Clean(s.Text)
		if s.Text == "" {
			continue
		}
		if p.dropSoundEffects && soundEffect.MatchString(s.Text) {
			continue
		}
		kept = append(kept, s)
	}
	transcript.Snippets = kept

	return chunks, nil
}

// Clean removes tags, decodes HTML entities and collapses whitespace.
// Caption text is often escaped twice, so entities are decoded until stable.
// Only caption styling tags are removed after decoding; a literal "<" in
// speech must survive.
func Clean(text string) string {
	text = allTags.ReplaceAllString(text, "")
	for i := 0; i < 3; i++ {
		decoded := html.UnescapeString(text)
		if decoded == text {
			break
		}
		text = decoded
	}
	text = captionTags.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
