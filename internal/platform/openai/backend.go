package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/phrazzld/lingo-api/internal/generation"
)

// Endpoint and model defaults.
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4"
	DefaultCustomModel   = "gpt-3.5-turbo"

	temperature = 0.7
)

// Backend sends lesson prompts to a chat completions endpoint.
type Backend struct {
	provider       generation.Provider
	defaultBaseURL string
	defaultModel   string
	httpClient     *http.Client
	logger         *slog.Logger
}

var _ generation.Backend = (*Backend)(nil)

// NewOpenAIBackend creates the backend for the openai provider.
func NewOpenAIBackend(httpClient *http.Client, logger *slog.Logger) *Backend {
	return newBackend(generation.ProviderOpenAI, DefaultOpenAIBaseURL, DefaultOpenAIModel, httpClient, logger)
}

// NewCustomBackend creates the backend for the custom provider. Requests
// go to cfg.BaseURL, which has no default.
func NewCustomBackend(httpClient *http.Client, logger *slog.Logger) *Backend {
	return newBackend(generation.ProviderCustom, "", DefaultCustomModel, httpClient, logger)
}

func newBackend(
	provider generation.Provider,
	baseURL, model string,
	httpClient *http.Client,
	logger *slog.Logger,
) *Backend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		provider:       provider,
		defaultBaseURL: baseURL,
		defaultModel:   model,
		httpClient:     httpClient,
		logger:         logger.With("component", "openai_backend", "provider", string(provider)),
	}
}

// Provider implements generation.Backend.
func (b *Backend) Provider() generation.Provider { return b.provider }

// Complete implements generation.Backend. It issues exactly one chat
// completion request and returns the first choice's message content.
func (b *Backend) Complete(ctx context.Context, cfg generation.AIConfig, prompt generation.Prompt) (string, error) {
	baseURL := cfg.BaseURLOr(b.defaultBaseURL)
	if baseURL == "" {
		return "", &generation.ConfigurationError{Message: "baseURL is required for custom provider"}
	}
	model := cfg.ModelOr(b.defaultModel)

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL
	doer := &statusRecorder{client: b.httpClient}
	clientConfig.HTTPClient = doer
	client := goopenai.NewClientWithConfig(clientConfig)

	req := goopenai.ChatCompletionRequest{
		Model: model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt.User},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
	}
	if goopenai.NewReasoningValidator().Validate(req) != nil {
		// Reasoning models only accept their fixed default temperature.
		req.Temperature = 0
	}

	b.logger.DebugContext(ctx, "sending chat completion request",
		"base_url", baseURL,
		"model", model)

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", b.mapError(err, model, doer.status)
	}

	if len(resp.Choices) == 0 {
		return "", &generation.ResponseParseError{
			Provider: b.provider,
			Reason:   "response has no choices",
		}
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &generation.ResponseParseError{
			Provider: b.provider,
			Reason:   "first choice has no message content",
		}
	}

	b.logger.DebugContext(ctx, "chat completion received",
		"model", resp.Model,
		"finish_reason", string(resp.Choices[0].FinishReason),
		"content_length", len(content))

	return content, nil
}

// requestRejections are the errors go-openai returns before sending a
// request it considers invalid for the model.
var requestRejections = []error{
	goopenai.ErrChatCompletionInvalidModel,
	goopenai.ErrReasoningModelMaxTokensDeprecated,
	goopenai.ErrReasoningModelLimitationsLogprobs,
	goopenai.ErrReasoningModelLimitationsOther,
}

// mapError converts go-openai errors into the generation error taxonomy.
// status is the HTTP status of the response, or 0 when none arrived.
func (b *Backend) mapError(err error, model string, status int) error {
	for _, rejection := range requestRejections {
		if errors.Is(err, rejection) {
			return &generation.ConfigurationError{
				Message: fmt.Sprintf("model %q cannot be used for chat completions: %v", model, err),
			}
		}
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &generation.UpstreamAPIError{
			Provider:   b.provider,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
		}
	}

	// The error body was not the {"error":{...}} shape.
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &generation.UpstreamAPIError{
			Provider:   b.provider,
			StatusCode: reqErr.HTTPStatusCode,
			Message:    generation.UnknownErrorMessage,
		}
	}

	if netErr := generation.ClassifyTransportError(b.provider, err); netErr != nil {
		return netErr
	}

	// Non-JSON error bodies come back as plain errors.
	if status >= http.StatusBadRequest {
		return &generation.UpstreamAPIError{
			Provider:   b.provider,
			StatusCode: status,
			Message:    generation.UnknownErrorMessage,
		}
	}

	return &generation.ResponseParseError{
		Provider: b.provider,
		Reason:   "malformed response envelope",
		Err:      err,
	}
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
