package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	validationErr := domain.LessonRequest{Level: domain.LevelBeginner}.Validate()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validationErr, http.StatusBadRequest},
		{"wrapped upstream", fmt.Errorf("generate: %w", &generation.UpstreamAPIError{}), http.StatusBadGateway},
		{"parse", &generation.ResponseParseError{}, http.StatusBadGateway},
		{"network", &generation.NetworkError{Err: errors.New("reset")}, http.StatusBadGateway},
		{"timeout", &generation.NetworkError{Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"unsupported", &generation.UnsupportedProviderError{Provider: "x"}, http.StatusInternalServerError},
		{"configuration", &generation.ConfigurationError{Message: "API key is required"}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Failed to generate lesson", GetSafeErrorMessage(errors.New("sk-secret leaked")))
	assert.Equal(t, "Language and level are required",
		GetSafeErrorMessage(domain.LessonRequest{Level: domain.LevelBeginner}.Validate()))
	assert.Equal(t, "Preferred pace must be slow, medium or fast",
		GetSafeErrorMessage(domain.LessonRequest{Language: "x", Level: domain.LevelBeginner, PreferredPace: "warp"}.Validate()))
	assert.Equal(t, "The AI provider returned an error",
		GetSafeErrorMessage(&generation.UpstreamAPIError{Message: "Incorrect API key provided: sk-abc"}))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New()

	err := v.Struct(domain.LessonRequest{Language: "Greek", Level: "Expert"})
	assert.Equal(t, "Invalid Level: invalid value", SanitizeValidationError(err))

	err = v.Struct(domain.LessonRequest{Level: domain.LevelBeginner})
	assert.Equal(t, "Invalid Language: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
