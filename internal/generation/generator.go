package generation

import (
	"context"

	"github.com/phrazzld/lingo-api/internal/domain"
)

// Generator defines the interface for generating lessons.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate produces a normalized lesson for req using the backend named
	// by cfg.Provider. It makes at most one outbound request and either
	// returns a fully populated lesson or one of the errors in errors.go.
	Generate(ctx context.Context, cfg AIConfig, req domain.LessonRequest) (*domain.GeneratedLesson, error)
}

// Backend is one provider integration. Implementations issue exactly one
// request per Complete call and return the model's raw text. They report
// failures as UpstreamAPIError, NetworkError or ResponseParseError.
type Backend interface {
	// Provider is the provider this backend serves.
	Provider() Provider

	// Complete sends prompt to the provider described by cfg.
	Complete(ctx context.Context, cfg AIConfig, prompt Prompt) (string, error)
}

// Prompt is an encoded lesson request. Backends with a system role send
// System and User separately; the others concatenate them.
type Prompt struct {
	System string
	User   string
}
