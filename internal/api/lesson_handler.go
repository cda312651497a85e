package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/lingo-api/internal/api/shared"
	"github.com/phrazzld/lingo-api/internal/generation"
)

// Error messages returned before the generator is reached.
const (
	msgInvalidRequestFormat   = "Invalid request format"
	msgLanguageLevelRequired  = "Language and level are required"
	msgCredentialsUnavailable = "AI provider credentials are not configured"
)

// LessonHandler serves lesson generation requests.
type LessonHandler struct {
	generator   generation.Generator
	credentials generation.AIConfig
	logger      *slog.Logger
}

// NewLessonHandler creates a LessonHandler. Every request is generated with
// credentials, which the server reads from configuration.
func NewLessonHandler(
	generator generation.Generator,
	credentials generation.AIConfig,
	logger *slog.Logger,
) *LessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonHandler{
		generator:   generator,
		credentials: credentials,
		logger:      logger.With("component", "lesson_handler"),
	}
}

// GenerateLesson handles POST /api/lessons/generate.
func (h *LessonHandler) GenerateLesson(w http.ResponseWriter, r *http.Request) {
	var req GenerateLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequestFormat, err)
		return
	}

	if strings.TrimSpace(h.credentials.APIKey) == "" {
		shared.RespondWithError(w, r, http.StatusInternalServerError, msgCredentialsUnavailable)
		return
	}

	if req.LessonRequest == nil ||
		strings.TrimSpace(req.LessonRequest.Language) == "" ||
		req.LessonRequest.Level == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgLanguageLevelRequired)
		return
	}

	if err := shared.ValidateRequest(req.LessonRequest); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	lesson, err := h.generator.Generate(r.Context(), h.credentials, *req.LessonRequest)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.InfoContext(r.Context(), "lesson generation succeeded",
		"trace_id", shared.GetTraceID(r.Context()),
		"language", req.LessonRequest.Language,
		"level", req.LessonRequest.Level,
		"exercise_count", len(lesson.Exercises))

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateLessonResponse{
		Success: true,
		Lesson:  lesson,
	})
}
