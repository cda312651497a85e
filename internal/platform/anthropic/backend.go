// Package anthropic implements generation.Backend for Anthropic's Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/phrazzld/lingo-api/internal/generation"
)

// API defaults. The SDK appends /v1/messages to the base URL and sends the
// anthropic-version header itself.
const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-3-opus-20240229"
	MaxTokens      = 4000
)

// Backend sends lesson prompts to the Messages API.
type Backend struct {
	httpClient *http.Client
	logger     *slog.Logger
}

var _ generation.Backend = (*Backend)(nil)

// NewBackend creates an Anthropic backend using httpClient for transport.
func NewBackend(httpClient *http.Client, logger *slog.Logger) *Backend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		httpClient: httpClient,
		logger:     logger.With("component", "anthropic_backend"),
	}
}

// Provider implements generation.Backend.
func (b *Backend) Provider() generation.Provider { return generation.ProviderAnthropic }

// Complete implements generation.Backend. The lesson prompt travels as the
// single user message; the tutor instruction goes in the system field.
func (b *Backend) Complete(ctx context.Context, cfg generation.AIConfig, prompt generation.Prompt) (string, error) {
	baseURL := cfg.BaseURLOr(DefaultBaseURL)
	model := cfg.ModelOr(DefaultModel)

	// NewMessageService, unlike NewClient, reads no ANTHROPIC_* variables.
	doer := &statusRecorder{client: b.httpClient}
	messages := anthropic.NewMessageService(
		option.WithBaseURL(baseURL+"/"),
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(doer),
		option.WithMaxRetries(0),
	)

	b.logger.DebugContext(ctx, "sending messages request", "base_url", baseURL, "model", model)

	resp, err := messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: MaxTokens,
		System:    []anthropic.TextBlockParam{{Text: prompt.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	})
	if err != nil {
		return "", mapError(err, doer.status)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", &generation.ResponseParseError{
			Provider: generation.ProviderAnthropic,
			Reason:   "response has no text content",
		}
	}

	b.logger.DebugContext(ctx, "messages response received",
		"stop_reason", string(resp.StopReason),
		"content_length", text.Len())

	return text.String(), nil
}

// mapError converts SDK errors into the generation error taxonomy.
// status is the HTTP status of the response, or 0 when none arrived.
func mapError(err error, status int) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &generation.UpstreamAPIError{
			Provider:   generation.ProviderAnthropic,
			StatusCode: apiErr.StatusCode,
			Message:    errorReason(apiErr.RawJSON()),
		}
	}

	if netErr := generation.ClassifyTransportError(generation.ProviderAnthropic, err); netErr != nil {
		return netErr
	}

	// The SDK returns a bare decode error when an error body is not JSON.
	if status >= http.StatusBadRequest {
		return &generation.UpstreamAPIError{
			Provider:   generation.ProviderAnthropic,
			StatusCode: status,
			Message:    generation.UnknownErrorMessage,
		}
	}

	return &generation.ResponseParseError{
		Provider: generation.ProviderAnthropic,
		Reason:   fmt.Sprintf("malformed response envelope (status %d)", status),
		Err:      err,
	}
}

// errorReason reads {"error":{"message":...}} from an error body.
func errorReason(raw string) string {
	var payload struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Error == nil ||
		strings.TrimSpace(payload.Error.Message) == "" {
		return generation.UnknownErrorMessage
	}
	return payload.Error.Message
}

// statusRecorder remembers the status of the response it passes through.
// One is created per Complete call.
type statusRecorder struct {
	client *http.Client
	status int
}

func (r *statusRecorder) Do(req *http.Request) (*http.Response, error) {
	resp, err := r.client.Do(req)
	if resp != nil {
		r.status = resp.StatusCode
	}
	return resp, err
}
