package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     LessonRequest
		wantErr error
	}{
		{
			name: "minimal valid request",
			req:  LessonRequest{Language: "Spanish", Level: LevelBeginner},
		},
		{
			name: "fully populated request",
			req: LessonRequest{
				Language:           "Japanese",
				Level:              LevelAdvanced,
				Topics:             []string{"food", "travel"},
				UserGoals:          "order dinner in Osaka",
				RecentMissedTopics: []string{"counters"},
				PreferredPace:      PaceFast,
			},
		},
		{
			name:    "blank language",
			req:     LessonRequest{Language: "   ", Level: LevelBeginner},
			wantErr: ErrEmptyLanguage,
		},
		{
			name:    "missing level",
			req:     LessonRequest{Language: "French"},
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "level is case sensitive",
			req:     LessonRequest{Language: "French", Level: "beginner"},
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "unknown pace",
			req:     LessonRequest{Language: "French", Level: LevelIntermediate, PreferredPace: "warp"},
			wantErr: ErrInvalidPace,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.req.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "error should wrap ErrValidation")
			assert.True(t, errors.Is(err, tc.wantErr), "error should wrap %v, got %v", tc.wantErr, err)
		})
	}
}

func TestGeneratedLessonJSONKeys(t *testing.T) {
	t.Parallel()

	lesson := GeneratedLesson{
		Title:       "Greetings",
		Description: "Say hello",
		Topics:      []string{},
		Vocabulary:  []VocabularyItem{{English: "Hello", Translation: "Hola", Category: "Greetings"}},
		Exercises: []Exercise{{
			Question:           "Hello",
			QuestionType:       QuestionTypeEnglish,
			Options:            []string{"Hola", "Adiós"},
			CorrectAnswer:      0,
			CorrectTranslation: "Hola",
		}},
	}

	raw, err := json.Marshal(lesson)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, key := range []string{"title", "description", "topics", "vocabulary", "exercises"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, []any{}, decoded["topics"], "empty topics should encode as an empty array")

	exercise := decoded["exercises"].([]any)[0].(map[string]any)
	for _, key := range []string{"question", "questionType", "options", "correctAnswer", "correctTranslation"} {
		assert.Contains(t, exercise, key)
	}
}

func TestLevelAndPaceValid(t *testing.T) {
	t.Parallel()

	assert.True(t, LevelBeginner.Valid())
	assert.True(t, LevelIntermediate.Valid())
	assert.True(t, LevelAdvanced.Valid())
	assert.False(t, Level("Expert").Valid())

	assert.True(t, PaceSlow.Valid())
	assert.True(t, PaceMedium.Valid())
	assert.True(t, PaceFast.Valid())
	assert.False(t, Pace("").Valid())
}
