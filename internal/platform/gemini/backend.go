package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/lingo-api/internal/generation"
)

// API defaults.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash-latest"
)

// JSONReminder is appended to every prompt sent to Gemini.
const JSONReminder = "IMPORTANT: Return ONLY valid JSON, no markdown, no code blocks, just the raw JSON object."

// Backend sends lesson prompts to the Gemini API.
type Backend struct {
	httpClient *http.Client
	logger     *slog.Logger
}

var _ generation.Backend = (*Backend)(nil)

// NewBackend creates a Gemini backend using httpClient for transport.
func NewBackend(httpClient *http.Client, logger *slog.Logger) *Backend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		httpClient: httpClient,
		logger:     logger.With("component", "gemini_backend"),
	}
}

// Provider implements generation.Backend.
func (b *Backend) Provider() generation.Provider { return generation.ProviderGoogle }

// BuildPrompt joins the prompt parts into the single text Gemini receives.
func BuildPrompt(prompt generation.Prompt) string {
	return prompt.System + "\n\n" + prompt.User + "\n\n" + JSONReminder
}

// Complete implements generation.Backend.
func (b *Backend) Complete(ctx context.Context, cfg generation.AIConfig, prompt generation.Prompt) (string, error) {
	model := cfg.ModelOr(DefaultModel)

	// A per-call copy of the client records the response status and error
	// reason. genai reports an undecodable error body verbatim as the message.
	recorder := &statusTransport{base: b.httpClient.Transport}
	httpClient := *b.httpClient
	httpClient.Transport = recorder

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURLOr(DefaultBaseURL) + "/",
		},
	})
	if err != nil {
		return "", &generation.ConfigurationError{Message: fmt.Sprintf("failed to create Gemini client: %v", err)}
	}

	b.logger.DebugContext(ctx, "sending generate content request", "model", model)

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(BuildPrompt(prompt)), nil)
	if err != nil {
		return "", mapError(err, recorder.status, recorder.reason)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	b.logger.DebugContext(ctx, "generate content response received",
		"model", model,
		"content_length", len(text))

	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		reason := "response has no candidates"
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", &generation.ResponseParseError{Provider: generation.ProviderGoogle, Reason: reason}
	}

	candidate := resp.Candidates[0]
	var text strings.Builder
	if candidate != nil && candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil {
				text.WriteString(part.Text)
			}
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		reason := "candidate has no text"
		if candidate != nil && candidate.FinishReason != "" {
			reason = fmt.Sprintf("candidate has no text (finish reason %s)", candidate.FinishReason)
		}
		return "", &generation.ResponseParseError{Provider: generation.ProviderGoogle, Reason: reason}
	}

	return text.String(), nil
}

// mapError converts genai errors into the generation error taxonomy.
// status is the HTTP status of the response, or 0 when none arrived. reason
// is the message decoded from a structured error body, or "" when the body
// did not decode.
func mapError(err error, status int, reason string) error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		return upstreamError(apiErr.Code, status, reason)
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		return upstreamError(apiErrPtr.Code, status, reason)
	}

	if netErr := generation.ClassifyTransportError(generation.ProviderGoogle, err); netErr != nil {
		return netErr
	}

	if status >= http.StatusBadRequest {
		return upstreamError(0, status, reason)
	}

	return &generation.ResponseParseError{
		Provider: generation.ProviderGoogle,
		Reason:   "malformed response envelope",
		Err:      err,
	}
}

func upstreamError(code, status int, reason string) error {
	if status != 0 {
		code = status
	}
	msg := reason
	if msg == "" {
		msg = generation.UnknownErrorMessage
	}
	return &generation.UpstreamAPIError{
		Provider:   generation.ProviderGoogle,
		StatusCode: code,
		Message:    msg,
	}
}

// statusTransport remembers the status of the response it passes through,
// and the reason from an error body shaped {"error":{"message":...}}.
type statusTransport struct {
	base   http.RoundTripper
	status int
	reason string
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if resp == nil {
		return resp, err
	}

	t.status = resp.StatusCode
	if resp.StatusCode >= http.StatusBadRequest && resp.Body != nil {
		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
		if readErr == nil {
			t.reason = errorReason(body)
		}
	}
	return resp, err
}

// errorReason returns the message of a structured Gemini error body, or ""
// when body is not one.
func errorReason(body []byte) string {
	var payload struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == nil {
		return ""
	}
	return strings.TrimSpace(payload.Error.Message)
}
