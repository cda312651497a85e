package generation

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/phrazzld/lingo-api/internal/domain"
)

// Defaults substituted by NormalizeLesson.
const (
	DefaultLessonTitle       = "AI Generated Lesson"
	DefaultLessonDescription = "A personalized lesson generated for you."
)

var errNotObject = errors.New("JSON value is not an object")

// DecodeLesson turns raw model output into a lesson.
//
// The text is first parsed as a whole. When that fails (prose around the
// JSON, markdown fences), the span from the first '{' to the last '}' is
// parsed instead. If neither yields a JSON object the result is a
// ResponseParseError; otherwise the object is normalized and decoding
// cannot fail.
func DecodeLesson(text string) (*domain.GeneratedLesson, error) {
	obj, strictErr := parseStrict(text)
	if strictErr != nil {
		var spanErr error
		obj, spanErr = parseBraceSpan(text)
		if spanErr != nil {
			return nil, &ResponseParseError{
				Reason: "no JSON object found in model output",
				Err:    errors.Join(strictErr, spanErr),
			}
		}
	}

	lesson := NormalizeLesson(obj)
	return &lesson, nil
}

// parseStrict parses the whole text as a single JSON object.
func parseStrict(text string) (map[string]any, error) {
	return parseObject(strings.TrimSpace(text))
}

// parseBraceSpan parses the greedy span between the first '{' and the last '}'.
func parseBraceSpan(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, errors.New("no brace-delimited span")
	}
	return parseObject(text[start : end+1])
}

func parseObject(text string) (map[string]any, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

// NormalizeLesson maps any decoded JSON object onto a well-formed lesson.
// It is total: missing, null and wrongly typed fields fall back to defaults,
// malformed array elements are dropped, and slices are never nil.
func NormalizeLesson(raw map[string]any) domain.GeneratedLesson {
	return domain.GeneratedLesson{
		Title:       nonBlankString(raw["title"], DefaultLessonTitle),
		Description: nonBlankString(raw["description"], DefaultLessonDescription),
		Topics:      stringSlice(raw["topics"]),
		Vocabulary:  vocabulary(raw["vocabulary"]),
		Exercises:   exercises(raw["exercises"]),
	}
}

func nonBlankString(v any, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

func stringSlice(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// optionSlice is stringSlice for exercise options. Non-string entries become
// "" so that correctAnswer indices keep pointing at the same option.
func optionSlice(v any) []string {
	items, _ := v.([]any)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = stringOrEmpty(item)
	}
	return out
}

func vocabulary(v any) []domain.VocabularyItem {
	items, _ := v.([]any)
	out := make([]domain.VocabularyItem, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, domain.VocabularyItem{
			English:     stringOrEmpty(obj["english"]),
			Translation: stringOrEmpty(obj["translation"]),
			Category:    stringOrEmpty(obj["category"]),
		})
	}
	return out
}

func exercises(v any) []domain.Exercise {
	items, _ := v.([]any)
	out := make([]domain.Exercise, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, exercise(obj))
	}
	return out
}

func exercise(obj map[string]any) domain.Exercise {
	options := optionSlice(obj["options"])
	answer := answerIndex(obj["correctAnswer"], options)

	translation := stringOrEmpty(obj["correctTranslation"])
	if translation == "" && answer < len(options) {
		translation = options[answer]
	}

	return domain.Exercise{
		Question:           stringOrEmpty(obj["question"]),
		QuestionType:       questionType(obj["questionType"]),
		Options:            options,
		CorrectAnswer:      answer,
		CorrectTranslation: translation,
	}
}

func questionType(v any) domain.QuestionType {
	if s, ok := v.(string); ok && domain.QuestionType(s) == domain.QuestionTypeTranslation {
		return domain.QuestionTypeTranslation
	}
	return domain.QuestionTypeEnglish
}

// answerIndex resolves correctAnswer to an index into options. Models return
// it as a number, a numeric string, or the text of the right option. Anything
// unusable or out of range becomes 0.
func answerIndex(v any, options []string) int {
	idx := -1
	switch a := v.(type) {
	case float64:
		if a == math.Trunc(a) {
			idx = int(a)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(a)); err == nil {
			idx = n
			break
		}
		for i, opt := range options {
			if opt == a {
				idx = i
				break
			}
		}
	}

	if idx < 0 || idx >= len(options) {
		return 0
	}
	return idx
}
