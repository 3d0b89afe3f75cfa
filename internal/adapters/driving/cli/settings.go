package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure pipeline parameters, AI providers and transcript languages.

Use subcommands to change a single value or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by its config key.

Lists are comma separated, for example:
  tubeqa settings set transcript.fallback_languages auto,hi,en
  tubeqa settings set transcript.drop_sound_effects true
  tubeqa settings set rag.chunk_size 1500`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key [provider]",
	Short: "Store the API key for a provider",
	Long: `Prompts for the API key of a cloud provider and stores it for every
role (embedding, LLM) that uses that provider. Input is hidden on a terminal.

Keys found in OPENAI_API_KEY or ANTHROPIC_API_KEY do not need to be stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSetKey,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure providers and pipeline parameters step by step.`,
	RunE:  runSettingsWizard,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the embedding provider used to index transcripts.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used to generate answers.`,
	RunE:  runSettingsLLM,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[RAG]")
	cmd.Printf("  Chunk size: %d\n", settings.RAG.ChunkSize)
	cmd.Printf("  Chunk overlap: %d\n", settings.RAG.ChunkOverlap)
	cmd.Printf("  Chunks per question (k): %d\n", settings.RAG.K)
	cmd.Printf("  Temperature: %.1f\n", settings.RAG.Temperature)
	cmd.Println()

	cmd.Println("[Transcript]")
	cmd.Printf("  Languages: %s\n", strings.Join(settings.Transcript.Languages, ", "))
	fallback := strings.Join(settings.Transcript.FallbackLanguages, ", ")
	if fallback == "" {
		fallback = "(none)"
	}
	cmd.Printf("  Fallback languages: %s\n", fallback)
	cmd.Printf("  Drop sound effects: %t\n", settings.Transcript.DropSoundEffects)
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())

	cmd.Println("[LLM]")
	printProvider(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'tubeqa settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.SetValue(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) && strings.Contains(err.Error(), "unknown setting") {
			return fmt.Errorf("%w\nvalid keys: %s", err, strings.Join(settingsService.Keys(), ", "))
		}
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.AIProvider(strings.ToLower(args[0]))
	if !provider.IsValid() {
		return fmt.Errorf("unknown provider %q", args[0])
	}
	if !provider.RequiresAPIKey() {
		return fmt.Errorf("provider %s does not use an API key", provider)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var keys []string
	if settings.Embedding.Provider == provider {
		keys = append(keys, "embedding.api_key")
	}
	if settings.LLM.Provider == provider {
		keys = append(keys, "llm.api_key")
	}
	if len(keys) == 0 {
		return fmt.Errorf("provider %s is not selected for embedding or LLM; run 'tubeqa settings wizard' first", provider)
	}

	cmd.Printf("Enter %s API key: ", provider)
	apiKey := readPassword(cmd.InOrStdin())
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key is required for this provider")
	}

	for _, key := range keys {
		if err := settingsService.SetValue(key, apiKey); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
	}

	cmd.Printf("Stored %s API key (%s)\n", provider, maskAPIKey(apiKey))
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("TubeQA Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Configure Embedding Provider")
	cmd.Println("------------------------------------")
	if err := configureEmbeddingProvider(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Step 2: Configure LLM Provider")
	cmd.Println("------------------------------")
	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Step 3: Pipeline Parameters")
	cmd.Println("---------------------------")
	if err := configureRAG(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureEmbeddingProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureLLMProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

//nolint:dupl // Similar to configureLLMProvider but for embeddings - intentional for CLI flow clarity
func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultEmbeddingModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Printf("Enter API key (blank to use %s): ", selectedProvider.APIKeyEnvVar())
		apiKey = readSecret(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	if err := settingsService.SetEmbeddingProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

//nolint:dupl // Similar to configureEmbeddingProvider but for LLM - intentional for CLI flow clarity
func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Printf("Enter API key (blank to use %s): ", selectedProvider.APIKeyEnvVar())
		apiKey = readSecret(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func configureRAG(cmd *cobra.Command, reader *bufio.Reader) error {
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	rag := settings.RAG

	rag.ChunkSize = promptInt(cmd, reader, "Chunk size", rag.ChunkSize, domain.MinChunkSize, domain.MaxChunkSize)
	rag.ChunkOverlap = promptInt(cmd, reader, "Chunk overlap", rag.ChunkOverlap,
		domain.MinChunkOverlap, domain.MaxChunkOverlap)
	rag.K = promptInt(cmd, reader, "Chunks per question (k)", rag.K, domain.MinK, domain.MaxK)

	cmd.Printf("Temperature (%.1f-%.1f) [%.1f]: ", domain.MinTemperature, domain.MaxTemperature, rag.Temperature)
	if input := readLine(reader); input != "" {
		if t, err := strconv.ParseFloat(input, 64); err == nil {
			rag.Temperature = t
		}
	}

	if err := settingsService.SetRAG(rag); err != nil {
		return fmt.Errorf("failed to save parameters: %w", err)
	}
	cmd.Println()
	return nil
}

func promptInt(cmd *cobra.Command, reader *bufio.Reader, label string, current, minVal, maxVal int) int {
	cmd.Printf("%s (%d-%d) [%d]: ", label, minVal, maxVal, current)
	input := readLine(reader)
	if input == "" {
		return current
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return current
	}
	return n
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when in is a terminal.
func readPassword(in io.Reader) string {
	return readSecret(in, bufio.NewReader(in))
}

// readSecret uses term.ReadPassword on a terminal and falls back to the buffered reader.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
