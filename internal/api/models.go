package api

import "github.com/phrazzld/lingo-api/internal/domain"

// GenerateLessonRequest defines the payload for the lesson generation endpoint.
type GenerateLessonRequest struct {
	LessonRequest *domain.LessonRequest `json:"lessonRequest"`
}

// GenerateLessonResponse defines the successful response for the lesson generation endpoint.
type GenerateLessonResponse struct {
	Success bool                    `json:"success"`
	Lesson  *domain.GeneratedLesson `json:"lesson"`
}
