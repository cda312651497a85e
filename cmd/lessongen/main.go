// Package main implements lessongen, a command-line tool that generates a
// single lesson through the configured AI provider and prints it as JSON.
//
// Credentials come from the same LINGO_* environment and config.yaml used by
// the server; flags override the provider, model and endpoint.
//
// Usage:
//
//	lessongen --language Spanish --level Beginner --topics food,travel --pace slow
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/lingo-api/internal/config"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/generation"
	"github.com/phrazzld/lingo-api/internal/platform/logger"
	"github.com/phrazzld/lingo-api/internal/platform/providers"
	"github.com/spf13/cobra"
)

// options holds everything parsed from the command line.
type options struct {
	language string
	level    string
	topics   []string
	goals    string
	missed   []string
	pace     string
	provider string
	model    string
	baseURL  string
	verbose  bool
}

func main() {
	cmd := newRootCommand(func(ctx context.Context, opts options, req domain.LessonRequest) error {
		return generate(ctx, opts, req, os.Stdout, os.Stderr)
	})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the lessongen command. run receives the parsed
// options and a validated lesson request.
func newRootCommand(run func(ctx context.Context, opts options, req domain.LessonRequest) error) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "lessongen",
		Short:        "Generate a language lesson with the configured AI provider",
		Long:         "Generates one lesson and prints it as JSON. Credentials are read from LINGO_* environment variables or config.yaml.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := opts.lessonRequest()
			if err := req.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), opts, req)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.language, "language", "l", "", "target language, e.g. Spanish (required)")
	flags.StringVar(&opts.level, "level", "", "Beginner, Intermediate or Advanced (required)")
	flags.StringSliceVar(&opts.topics, "topics", nil, "topics to focus on")
	flags.StringVar(&opts.goals, "goals", "", "free-text learning goals")
	flags.StringSliceVar(&opts.missed, "missed", nil, "topics the learner recently missed")
	flags.StringVar(&opts.pace, "pace", "", "slow, medium or fast")
	flags.StringVarP(&opts.provider, "provider", "p", "", "override the configured provider (openai, anthropic, google, custom)")
	flags.StringVarP(&opts.model, "model", "m", "", "override the configured model")
	flags.StringVar(&opts.baseURL, "base-url", "", "override the configured API base URL")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log request details to stderr")

	return cmd
}

func generate(ctx context.Context, opts options, req domain.LessonRequest, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}

	generator, err := providers.NewGenerator(cfg.LLM, logger.New(stderr, level))
	if err != nil {
		return err
	}

	lesson, err := generator.Generate(ctx, opts.credentials(cfg.LLM), req)
	if err != nil {
		return fmt.Errorf("lesson generation failed: %w", err)
	}

	return writeLesson(stdout, lesson)
}

func (o options) lessonRequest() domain.LessonRequest {
	return domain.LessonRequest{
		Language:           strings.TrimSpace(o.language),
		Level:              domain.Level(o.level),
		Topics:             compact(o.topics),
		UserGoals:          strings.TrimSpace(o.goals),
		RecentMissedTopics: compact(o.missed),
		PreferredPace:      domain.Pace(o.pace),
	}
}

// credentials merges flag overrides onto the configured provider settings.
func (o options) credentials(cfg config.LLMConfig) generation.AIConfig {
	creds := providers.Credentials(cfg)
	if o.provider != "" {
		creds.Provider = generation.Provider(o.provider)
	}
	if o.model != "" {
		creds.Model = o.model
	}
	if o.baseURL != "" {
		creds.BaseURL = o.baseURL
	}
	return creds
}

// compact trims list entries and drops blank ones.
func compact(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func writeLesson(w io.Writer, lesson *domain.GeneratedLesson) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(lesson); err != nil {
		return fmt.Errorf("failed to write lesson: %w", err)
	}
	return nil
}
