// Package providers wires the LLM backends into a lesson generator. The
// server and the CLI both build their generator here.
package providers

import (
	"log/slog"

	"github.com/phrazzld/lingo-api/internal/config"
	"github.com/phrazzld/lingo-api/internal/generation"
	"github.com/phrazzld/lingo-api/internal/platform/anthropic"
	"github.com/phrazzld/lingo-api/internal/platform/gemini"
	"github.com/phrazzld/lingo-api/internal/platform/httpx"
	"github.com/phrazzld/lingo-api/internal/platform/openai"
)

// NewGenerator registers one backend per provider behind a dispatcher. All
// backends share one instrumented HTTP client with the configured timeout.
func NewGenerator(cfg config.LLMConfig, logger *slog.Logger) (*generation.Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := httpx.NewClient(cfg.RequestTimeout())
	backendLogger := logger.With("component", "llm_backend")

	return generation.NewDispatcher(
		logger.With("component", "lesson_generator"),
		openai.NewOpenAIBackend(httpClient, backendLogger),
		anthropic.NewBackend(httpClient, backendLogger),
		gemini.NewBackend(httpClient, backendLogger),
		openai.NewCustomBackend(httpClient, backendLogger),
	)
}

// Credentials converts the configured provider settings into an AIConfig.
func Credentials(cfg config.LLMConfig) generation.AIConfig {
	return generation.AIConfig{
		Provider: generation.Provider(cfg.Provider),
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
	}
}
