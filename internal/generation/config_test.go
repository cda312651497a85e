package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  AIConfig
		want Validation
	}{
		{
			name: "custom provider without base URL",
			cfg:  AIConfig{Provider: ProviderCustom, APIKey: "k"},
			want: Validation{Valid: false, Error: "baseURL is required for custom provider"},
		},
		{
			name: "empty API key",
			cfg:  AIConfig{Provider: ProviderOpenAI, APIKey: ""},
			want: Validation{Valid: false, Error: "API key is required"},
		},
		{
			name: "whitespace API key",
			cfg:  AIConfig{Provider: ProviderAnthropic, APIKey: "   "},
			want: Validation{Valid: false, Error: "API key is required"},
		},
		{
			name: "unknown provider",
			cfg:  AIConfig{Provider: "mistral", APIKey: "k"},
			want: Validation{Valid: false, Error: "unsupported provider: mistral"},
		},
		{
			name: "provider is case sensitive",
			cfg:  AIConfig{Provider: "OpenAI", APIKey: "k"},
			want: Validation{Valid: false, Error: "unsupported provider: OpenAI"},
		},
		{
			name: "custom provider with base URL",
			cfg:  AIConfig{Provider: ProviderCustom, APIKey: "k", BaseURL: "https://llm.example.com/v1"},
			want: Validation{Valid: true},
		},
		{
			name: "google without model",
			cfg:  AIConfig{Provider: ProviderGoogle, APIKey: "k"},
			want: Validation{Valid: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ValidateConfig(tc.cfg))
		})
	}
}

func TestAIConfigValidateErrorTypes(t *testing.T) {
	t.Parallel()

	err := AIConfig{Provider: ProviderCustom, APIKey: "k"}.Validate()
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.True(t, errors.Is(err, ErrConfiguration))

	err = AIConfig{Provider: "bard", APIKey: "k"}.Validate()
	var provErr *UnsupportedProviderError
	assert.True(t, errors.As(err, &provErr))
	assert.Equal(t, Provider("bard"), provErr.Provider)
	assert.True(t, errors.Is(err, ErrUnsupportedProvider))
}

func TestAIConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := AIConfig{}
	assert.Equal(t, "gpt-4", cfg.ModelOr("gpt-4"))
	assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURLOr("https://api.openai.com/v1"))

	cfg = AIConfig{Model: " claude-3-haiku ", BaseURL: "https://proxy.local/v1/"}
	assert.Equal(t, "claude-3-haiku", cfg.ModelOr("gpt-4"))
	assert.Equal(t, "https://proxy.local/v1", cfg.BaseURLOr("https://api.openai.com/v1"))
}

func TestProviderKnownAndLabel(t *testing.T) {
	t.Parallel()

	for _, p := range Providers() {
		assert.True(t, p.Known(), "%s should be known", p)
		assert.NotEmpty(t, p.Label(), "label should not be empty")
	}
	assert.Len(t, Providers(), 4)
	assert.False(t, Provider("").Known())
	assert.Equal(t, "OpenAI", ProviderOpenAI.Label())
	assert.Equal(t, "Anthropic", ProviderAnthropic.Label())
	assert.Equal(t, "Gemini", ProviderGoogle.Label())
	assert.Equal(t, "Custom", ProviderCustom.Label())
	assert.Equal(t, "other", Provider("other").Label())
}
