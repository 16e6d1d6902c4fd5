package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
)

// resolveCredentials pulls API keys from the environment into cfg.
// Missing credentials for the selected providers fail here, before any
// document processing begins.
func resolveCredentials(cfg *model.Config) error {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return &model.ConfigurationError{Reason: "OPENAI_API_KEY environment variable not set"}
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return &model.ConfigurationError{Reason: "ANTHROPIC_API_KEY environment variable not set"}
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return &model.ConfigurationError{Reason: fmt.Sprintf("unknown LLM provider: %s", cfg.LLM.Provider)}
	}

	var envVar string
	switch strings.ToLower(cfg.Search.Provider) {
	case "tavily":
		envVar = "TAVILY_API_KEY"
	case "brave":
		envVar = "BRAVE_API_KEY"
	case "serper":
		envVar = "SERPER_API_KEY"
	default:
		return &model.ConfigurationError{Reason: fmt.Sprintf("unknown search provider: %s", cfg.Search.Provider)}
	}

	cfg.Search.APIKey = os.Getenv(envVar)
	if cfg.Search.APIKey == "" {
		return &model.ConfigurationError{Reason: envVar + " environment variable not set"}
	}

	return nil
}
