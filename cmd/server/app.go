package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lingo-api/internal/config"
	"github.com/phrazzld/lingo-api/internal/generation"
	"github.com/phrazzld/lingo-api/internal/platform/providers"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator   generation.Generator
	credentials generation.AIConfig
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	generator, err := providers.NewGenerator(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lesson generator: %w", err)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		generator:   generator,
		credentials: providers.Credentials(cfg.LLM),
	}

	// A bad key or endpoint is reported per request; it does not stop startup.
	if v := generation.ValidateConfig(app.credentials); !v.Valid {
		logger.Warn("AI provider configuration is incomplete", "reason", v.Error)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
