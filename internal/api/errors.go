package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/generation"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var netErr *generation.NetworkError

	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Provider failures
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.Is(err, generation.ErrUpstreamAPI),
		errors.Is(err, generation.ErrResponseParse):
		return http.StatusBadGateway

	// Server-side misconfiguration
	case errors.Is(err, generation.ErrUnsupportedProvider),
		errors.Is(err, generation.ErrConfiguration):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var netErr *generation.NetworkError

	switch {
	case errors.Is(err, domain.ErrEmptyLanguage),
		errors.Is(err, domain.ErrInvalidLevel):
		return "Language and level are required"

	case errors.Is(err, domain.ErrInvalidPace):
		return "Preferred pace must be slow, medium or fast"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid lesson request"

	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return "The AI provider did not respond in time"
		}
		return "Could not reach the AI provider"

	case errors.Is(err, generation.ErrUpstreamAPI):
		return "The AI provider returned an error"

	case errors.Is(err, generation.ErrResponseParse):
		return "The AI provider returned an invalid lesson"

	case errors.Is(err, generation.ErrUnsupportedProvider):
		return "The configured AI provider is not supported"

	case errors.Is(err, generation.ErrConfiguration):
		return "The AI provider is not configured correctly"

	default:
		return "Failed to generate lesson"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LessonRequest.Level' Error:Field validation for 'Level' failed on the 'oneof' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
