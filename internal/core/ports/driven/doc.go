// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TranscriptSource: Fetches timed captions for a video (YouTube)
//   - EmbeddingService: Generates vector embeddings (OpenAI, Ollama)
//   - VectorIndex: In-memory similarity search over one video's chunks
//   - LLMService: Generates answers (OpenAI, Ollama, Anthropic)
//   - ConfigStore: Application configuration
//   - PromptStore: User-editable prompt templates
//   - PostProcessor: Transcript cleaning and chunking stages
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or postprocessor package
package driven
