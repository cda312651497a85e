package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/lingo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.True(t, ValidTraceID(id), "generated trace ID %q should be a UUID", id)
	assert.NotEqual(t, id, GetTraceID(SetTraceID(context.Background())))

	assert.Equal(t, "abc", GetTraceID(WithTraceID(context.Background(), "abc")))
	assert.False(t, ValidTraceID("abc"))
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var dst struct {
		Name string `json:"name" validate:"required"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "x", dst.Name)
	assert.NoError(t, ValidateRequest(&dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.Error(t, DecodeJSON(r, &dst))

	dst.Name = ""
	assert.Error(t, ValidateRequest(&dst))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(WithTraceID(context.Background(), "trace-1"), log)
	r := httptest.NewRequest(http.MethodPost, "/api/lessons/generate", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, r, http.StatusBadGateway, "The AI provider returned an error",
		errors.New("upstream rejected key sk-abcdefghijklmnop"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "The AI provider returned an error", body["error"])
	assert.Equal(t, "trace-1", body["trace_id"])
	assert.NotContains(t, w.Body.String(), "sk-")

	logger.AssertLogContains(t, buf, `"level":"ERROR"`)
	logger.AssertLogContains(t, buf, "[REDACTED_KEY]")
	logger.AssertLogNotContains(t, buf, "sk-abcdefghijklmnop")
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]bool{"success": true})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}
