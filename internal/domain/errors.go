// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyLanguage is returned when a lesson request has no target language.
	ErrEmptyLanguage = errors.New("language cannot be empty")

	// ErrInvalidLevel is returned when a lesson level is missing or unknown.
	ErrInvalidLevel = errors.New("invalid lesson level")

	// ErrInvalidPace is returned when a preferred pace is set but unknown.
	ErrInvalidPace = errors.New("invalid preferred pace")
)
