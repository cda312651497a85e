package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"LINGO_SERVER_PORT",
	"LINGO_SERVER_LOG_LEVEL",
	"LINGO_SERVER_SHUTDOWN_TIMEOUT_SECONDS",
	"LINGO_LLM_PROVIDER",
	"LINGO_LLM_API_KEY",
	"LINGO_LLM_BASE_URL",
	"LINGO_LLM_MODEL",
	"LINGO_LLM_REQUEST_TIMEOUT_SECONDS",
}

// setupEnv clears every config variable, then applies envVars. t.Setenv
// restores the previous environment when the test ends.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	for _, name := range configEnvVars {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// chdirTemp runs the test from an empty directory so no stray config.yaml is read.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// TestLoadDefaults verifies the defaults when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	setupEnv(t, nil)

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "custom", cfg.LLM.Provider)
	assert.Equal(t, "", cfg.LLM.APIKey, "a missing key is not a load error")
	assert.Equal(t, "https://platform.qubrid.com/api/v1/qubridai", cfg.LLM.BaseURL)
	assert.Equal(t, "openai/gpt-oss-120b", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.RequestTimeout())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout())
}

// TestLoadFromEnv verifies that environment variables override defaults.
func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	setupEnv(t, map[string]string{
		"LINGO_SERVER_PORT":                 "9090",
		"LINGO_SERVER_LOG_LEVEL":            "debug",
		"LINGO_LLM_PROVIDER":                "anthropic",
		"LINGO_LLM_API_KEY":                 "sk-ant-test",
		"LINGO_LLM_BASE_URL":                "https://proxy.example.com/v1",
		"LINGO_LLM_MODEL":                   "claude-3-haiku-20240307",
		"LINGO_LLM_REQUEST_TIMEOUT_SECONDS": "15",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-test", cfg.LLM.APIKey)
	assert.Equal(t, "https://proxy.example.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.LLM.Model)
	assert.Equal(t, 15, cfg.LLM.RequestTimeoutSeconds)
}

// TestLoadFromFile verifies that config.yaml is read and the environment wins over it.
func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)
	setupEnv(t, map[string]string{"LINGO_LLM_MODEL": "from-env"})

	yaml := []byte("server:\n  port: 7070\nllm:\n  provider: google\n  model: from-file\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "google", cfg.LLM.Provider)
	assert.Equal(t, "from-env", cfg.LLM.Model)
}

// TestLoadValidationErrors verifies that invalid values are rejected.
func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"LINGO_SERVER_PORT": "70000"}},
		{name: "unknown log level", env: map[string]string{"LINGO_SERVER_LOG_LEVEL": "verbose"}},
		{name: "unknown provider", env: map[string]string{"LINGO_LLM_PROVIDER": "mistral"}},
		{name: "malformed base URL", env: map[string]string{"LINGO_LLM_BASE_URL": "not a url"}},
		{name: "zero request timeout", env: map[string]string{"LINGO_LLM_REQUEST_TIMEOUT_SECONDS": "0"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chdirTemp(t)
			setupEnv(t, tc.env)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}
