package postprocessors

import (
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/postprocessors/chunker"
	"github.com/custodia-labs/tubeqa/internal/postprocessors/normaliser"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("normaliser", buildNormaliser)
	r.Register("chunker", buildChunker)
}

// buildNormaliser creates a caption normaliser from generic config.
// Supported config keys:
//   - drop_sound_effects (bool): Remove "[Music]" style snippets (default: false)
func buildNormaliser(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []normaliser.Option

	if drop, ok := cfg["drop_sound_effects"].(bool); ok {
		opts = append(opts, normaliser.WithDropSoundEffects(drop))
	}

	return normaliser.New(opts...), nil
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 1000)
//   - overlap (int): Overlapping characters between chunks (default: 200)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if _, ok := cfg["overlap"]; ok {
		opts = append(opts, chunker.WithOverlap(getIntFromConfig(cfg, "overlap")))
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
