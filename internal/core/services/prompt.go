package services

import (
	"strings"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/logger"
)

// DefaultAnswerPrompt is used when no prompt store is configured or the
// stored template cannot be loaded.
const DefaultAnswerPrompt = `You are an expert AI assistant. Use the following context to answer the question at the end.
If you don't know the answer, just say that you don't know, don't try to make up an answer.

Context: {context}

Question: {question}
`

// contextSeparator joins retrieved chunks into the prompt context.
const contextSeparator = "\n\n"

// BuildContext joins chunk texts in retrieval order, separated by a blank line.
func BuildContext(chunks []domain.RetrievedChunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Chunk.Content
	}
	return strings.Join(parts, contextSeparator)
}

// FillPrompt substitutes the {context} and {question} slots of template.
// Slots are replaced in a single pass, so slot text inside the context is left alone.
func FillPrompt(template, context, question string) string {
	return strings.NewReplacer("{context}", context, "{question}", question).Replace(template)
}

// loadAnswerPrompt returns the user's template or the built-in one.
func loadAnswerPrompt(store driven.PromptStore) string {
	if store == nil {
		return DefaultAnswerPrompt
	}
	template, err := store.Load(driven.PromptAnswer)
	if err != nil || strings.TrimSpace(template) == "" {
		if err != nil {
			logger.Warn("Using built-in answer prompt: %v", err)
		}
		return DefaultAnswerPrompt
	}
	return template
}
