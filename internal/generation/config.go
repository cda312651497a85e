package generation

import (
	"errors"
	"strings"
)

// Provider identifies one of the supported LLM backends.
type Provider string

// The closed set of providers. Matching is case sensitive.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderCustom    Provider = "custom"
)

// Providers returns every supported provider in dispatch order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderCustom}
}

// Known reports whether p is one of the supported providers.
func (p Provider) Known() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderCustom:
		return true
	}
	return false
}

// Label is the human-readable provider name used in error messages.
func (p Provider) Label() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderGoogle:
		return "Gemini"
	case ProviderCustom:
		return "Custom"
	}
	return string(p)
}

// AIConfig describes how to reach a backend for a single request.
// It is built by the caller and never mutated by this package.
type AIConfig struct {
	Provider Provider
	APIKey   string
	// BaseURL is required for ProviderCustom and overrides the default
	// endpoint for the other providers.
	BaseURL string
	// Model is optional; each backend substitutes its own default.
	Model string
}

// ModelOr returns the configured model, or def when none is set.
func (c AIConfig) ModelOr(def string) string {
	if m := strings.TrimSpace(c.Model); m != "" {
		return m
	}
	return def
}

// BaseURLOr returns the configured base URL without a trailing slash, or def
// when none is set.
func (c AIConfig) BaseURLOr(def string) string {
	if u := strings.TrimSpace(c.BaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return def
}

// Validate checks the credential and endpoint requirements of the config.
// It returns an UnsupportedProviderError or a ConfigurationError.
func (c AIConfig) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &ConfigurationError{Message: "API key is required"}
	}

	if !c.Provider.Known() {
		return &UnsupportedProviderError{Provider: c.Provider}
	}

	if c.Provider == ProviderCustom && strings.TrimSpace(c.BaseURL) == "" {
		return &ConfigurationError{Message: "baseURL is required for custom provider"}
	}

	return nil
}

// Validation is the advisory result of ValidateConfig.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateConfig reports whether cfg is usable, with a short reason when it
// is not. Generate applies the same checks, so calling this first is optional.
func ValidateConfig(cfg AIConfig) Validation {
	if err := cfg.Validate(); err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			return Validation{Valid: false, Error: cfgErr.Message}
		}
		return Validation{Valid: false, Error: err.Error()}
	}
	return Validation{Valid: true}
}
