package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lingo-api/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/phrazzld/lingo-api/internal/generation"

// Dispatcher implements Generator by routing each request to the backend
// registered for its provider. It holds no mutable state and is safe for
// concurrent use.
type Dispatcher struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	backends map[Provider]Backend
}

var _ Generator = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher. It requires exactly one backend for
// every provider in Providers.
func NewDispatcher(logger *slog.Logger, backends ...Backend) (*Dispatcher, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	registry := make(map[Provider]Backend, len(backends))
	for _, b := range backends {
		if b == nil {
			return nil, fmt.Errorf("%w: nil backend", ErrConfiguration)
		}
		p := b.Provider()
		if !p.Known() {
			return nil, fmt.Errorf("%w: backend for unknown provider %q", ErrConfiguration, p)
		}
		if _, dup := registry[p]; dup {
			return nil, fmt.Errorf("%w: duplicate backend for provider %q", ErrConfiguration, p)
		}
		registry[p] = b
	}

	for _, p := range Providers() {
		if _, ok := registry[p]; !ok {
			return nil, fmt.Errorf("%w: no backend registered for provider %q", ErrConfiguration, p)
		}
	}

	return &Dispatcher{
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		backends: registry,
	}, nil
}

// Generate implements Generator.
func (d *Dispatcher) Generate(
	ctx context.Context,
	cfg AIConfig,
	req domain.LessonRequest,
) (*domain.GeneratedLesson, error) {
	ctx, span := d.tracer.Start(ctx, "generation.Generate", trace.WithAttributes(
		attribute.String("llm.provider", string(cfg.Provider)),
		attribute.String("lesson.language", req.Language),
		attribute.String("lesson.level", string(req.Level)),
	))
	defer span.End()

	lesson, err := d.generate(ctx, cfg, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.ErrorContext(ctx, "lesson generation failed",
			"provider", cfg.Provider,
			"language", req.Language,
			"level", req.Level,
			"error", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("lesson.vocabulary_count", len(lesson.Vocabulary)),
		attribute.Int("lesson.exercise_count", len(lesson.Exercises)),
	)
	d.logger.InfoContext(ctx, "lesson generated",
		"provider", cfg.Provider,
		"language", req.Language,
		"level", req.Level,
		"vocabulary_count", len(lesson.Vocabulary),
		"exercise_count", len(lesson.Exercises))

	return lesson, nil
}

func (d *Dispatcher) generate(
	ctx context.Context,
	cfg AIConfig,
	req domain.LessonRequest,
) (*domain.GeneratedLesson, error) {
	backend, err := d.backendFor(cfg.Provider)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := EncodePrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prompt: %w", err)
	}

	d.logger.DebugContext(ctx, "calling LLM backend",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"prompt_length", len(prompt.System)+len(prompt.User))

	text, err := backend.Complete(ctx, cfg, prompt)
	if err != nil {
		return nil, err
	}

	lesson, err := DecodeLesson(text)
	if err != nil {
		var parseErr *ResponseParseError
		if errors.As(err, &parseErr) && parseErr.Provider == "" {
			parseErr.Provider = cfg.Provider
		}
		d.logger.DebugContext(ctx, "model output was not JSON",
			"provider", cfg.Provider,
			"output_length", len(text))
		return nil, err
	}

	return lesson, nil
}

// backendFor selects the backend for p. Unknown providers are rejected here,
// before any config check or network access.
func (d *Dispatcher) backendFor(p Provider) (Backend, error) {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderCustom:
		return d.backends[p], nil
	default:
		return nil, &UnsupportedProviderError{Provider: p}
	}
}
