package domain

import (
	"fmt"
	"strings"
)

// Level is the proficiency level a lesson targets.
type Level string

// Supported lesson levels.
const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Pace is the learner's preferred lesson pace.
type Pace string

// Supported paces. The zero value means no preference.
const (
	PaceSlow   Pace = "slow"
	PaceMedium Pace = "medium"
	PaceFast   Pace = "fast"
)

// Valid reports whether p is one of the supported paces.
func (p Pace) Valid() bool {
	switch p {
	case PaceSlow, PaceMedium, PaceFast:
		return true
	}
	return false
}

// QuestionType is the direction of a quiz exercise.
type QuestionType string

// Exercise directions: "english" asks for the target-language translation
// of an English prompt, "translation" asks for the English meaning of a
// target-language prompt.
const (
	QuestionTypeEnglish     QuestionType = "english"
	QuestionTypeTranslation QuestionType = "translation"
)

// LessonRequest describes what lesson to produce.
type LessonRequest struct {
	Language           string   `json:"language"                     validate:"required"`
	Level              Level    `json:"level"                        validate:"required,oneof=Beginner Intermediate Advanced"`
	Topics             []string `json:"topics,omitempty"`
	UserGoals          string   `json:"userGoals,omitempty"`
	RecentMissedTopics []string `json:"recentMissedTopics,omitempty"`
	PreferredPace      Pace     `json:"preferredPace,omitempty"      validate:"omitempty,oneof=slow medium fast"`
}

// Validate checks that the request names a language and a supported level,
// and that an optional pace, when present, is supported.
func (r LessonRequest) Validate() error {
	if strings.TrimSpace(r.Language) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyLanguage)
	}

	if !r.Level.Valid() {
		return fmt.Errorf("%w: %w %q", ErrValidation, ErrInvalidLevel, r.Level)
	}

	if r.PreferredPace != "" && !r.PreferredPace.Valid() {
		return fmt.Errorf("%w: %w %q", ErrValidation, ErrInvalidPace, r.PreferredPace)
	}

	return nil
}

// VocabularyItem is a single term in a generated lesson.
type VocabularyItem struct {
	English     string `json:"english"`
	Translation string `json:"translation"`
	Category    string `json:"category"`
}

// Exercise is a multiple-choice quiz question. CorrectAnswer indexes Options.
type Exercise struct {
	Question           string       `json:"question"`
	QuestionType       QuestionType `json:"questionType"`
	Options            []string     `json:"options"`
	CorrectAnswer      int          `json:"correctAnswer"`
	CorrectTranslation string       `json:"correctTranslation"`
}

// GeneratedLesson is the normalized lesson produced by the generator.
// Every field is always populated; slices are empty rather than nil so the
// JSON encoding never omits a key.
type GeneratedLesson struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Topics      []string         `json:"topics"`
	Vocabulary  []VocabularyItem `json:"vocabulary"`
	Exercises   []Exercise       `json:"exercises"`
}
