// Command tubeqa answers questions about YouTube videos from their transcripts.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/tubeqa/internal/adapters/driven/ai"
	"github.com/custodia-labs/tubeqa/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tubeqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tubeqa/internal/adapters/driven/vector/flat"
	"github.com/custodia-labs/tubeqa/internal/adapters/driven/youtube"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/cli"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
	"github.com/custodia-labs/tubeqa/internal/core/services"
	"github.com/custodia-labs/tubeqa/internal/logger"
	"github.com/custodia-labs/tubeqa/internal/postprocessors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := file.DefaultConfigDir()
	if err != nil {
		return err
	}

	configStore := openConfigStore(configDir)
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	promptDir := filepath.Join(configDir, "prompts")
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return err
	}

	transcripts := services.NewTranscriptService(youtube.New(youtube.Config{}), settings.Transcript)
	registry := postprocessors.NewDefaultRegistry()

	cli.SetServices(cli.Services{
		Settings:    settingsService,
		Transcripts: transcripts,
		NewAssistant: func(defaults domain.RAGSettings) (driving.AssistantService, func(), error) {
			// Re-read so keys stored by 'settings set-key' in this process are seen.
			current, err := settingsService.Get()
			if err != nil {
				return nil, nil, fmt.Errorf("load settings: %w", err)
			}

			providers, err := ai.Init(current)
			if err != nil {
				return nil, nil, err
			}

			assistant := services.NewAssistantService(
				transcripts,
				func(cfg domain.PipelineConfig) (driven.PostProcessorPipeline, error) {
					return registry.BuildPipeline(cfg)
				},
				services.NewIndexBuilder(providers.EmbeddingService, flat.Factory),
				providers.LLMService,
				prompts,
				current.Transcript,
				defaults,
			)
			return assistant, providers.Close, nil
		},
		WatchPrompts: func(ctx context.Context) {
			if _, err := file.NewPromptWatcher(prompts, promptDir).Watch(ctx); err != nil {
				logger.Warn("prompt hot reload disabled: %v", err)
			}
		},
	})

	return cli.Execute()
}

// openConfigStore falls back to an in-memory store when the config file cannot be used.
func openConfigStore(dir string) driven.ConfigStore {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: settings will not be saved: %v\n", err)
		return memory.NewConfigStore()
	}
	return store
}
