package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, cfg generation.AIConfig, req domain.LessonRequest) (*domain.GeneratedLesson, error)

	// Default response values
	Lesson *domain.GeneratedLesson
	Err    error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Configs contains all configs passed to Generate calls
		Configs []generation.AIConfig

		// Requests contains all lesson requests passed to Generate calls
		Requests []domain.LessonRequest
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(
	ctx context.Context,
	cfg generation.AIConfig,
	req domain.LessonRequest,
) (*domain.GeneratedLesson, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Configs = append(m.GenerateCalls.Configs, cfg)
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, cfg, req)
	}

	return m.Lesson, m.Err
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// NewMockGeneratorWithLesson creates a MockGenerator that returns the specified lesson
func NewMockGeneratorWithLesson(lesson *domain.GeneratedLesson) *MockGenerator {
	return &MockGenerator{
		Lesson: lesson,
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// NewMockGeneratorWithDefaultLesson creates a MockGenerator with a small Spanish lesson
func NewMockGeneratorWithDefaultLesson() *MockGenerator {
	return &MockGenerator{
		Lesson: DefaultLesson(),
	}
}

// DefaultLesson returns a small, fully populated lesson.
func DefaultLesson() *domain.GeneratedLesson {
	return &domain.GeneratedLesson{
		Title:       "Saludos básicos",
		Description: "Greet people and introduce yourself in Spanish.",
		Topics:      []string{"greetings", "introductions"},
		Vocabulary: []domain.VocabularyItem{
			{English: "hello", Translation: "hola", Category: "Greetings"},
			{English: "good morning", Translation: "buenos días", Category: "Greetings"},
			{English: "my name is", Translation: "me llamo", Category: "Introductions"},
		},
		Exercises: []domain.Exercise{
			{
				Question:           "hello",
				QuestionType:       domain.QuestionTypeEnglish,
				Options:            []string{"adiós", "hola", "gracias", "por favor"},
				CorrectAnswer:      1,
				CorrectTranslation: "hola",
			},
			{
				Question:           "me llamo",
				QuestionType:       domain.QuestionTypeTranslation,
				Options:            []string{"I am tired", "see you later", "my name is", "thank you"},
				CorrectAnswer:      2,
				CorrectTranslation: "my name is",
			},
		},
	}
}

// MockGeneratorWithUpstreamFailure creates a MockGenerator that simulates a provider error
func MockGeneratorWithUpstreamFailure() *MockGenerator {
	return &MockGenerator{
		Err: &generation.UpstreamAPIError{
			Provider:   generation.ProviderCustom,
			StatusCode: 503,
			Message:    "model overloaded",
		},
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Configs = nil
	m.GenerateCalls.Requests = nil
}
