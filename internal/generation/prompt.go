package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/lingo-api/internal/domain"
)

// SystemInstruction is the tutor persona sent ahead of every lesson prompt.
const SystemInstruction = "You are an expert language learning tutor. Generate personalized lessons in JSON format."

const lessonPromptTemplate = `Generate a personalized {{.Level}} level lesson for learning {{.Language}}.

Requirements:
- Create a lesson with title, description, and 3-5 topics
- Generate 10-15 vocabulary items with English and {{.Language}} translations, grouped by categories
- Create 5-8 quiz exercises (mix of English->{{.Language}} and {{.Language}}->English)
- Make it engaging and practical
{{- if .Focus}}
{{range .Focus}}
{{.}}{{end}}
{{- end}}

Return ONLY valid JSON in this exact format:
{{.Example}}

Do not add any explanation and do not wrap the JSON in markdown code fences.`

var lessonPrompt = template.Must(template.New("lesson").Parse(lessonPromptTemplate))

// promptData represents the data passed to the prompt template
type promptData struct {
	Language string
	Level    domain.Level
	Focus    []string
	Example  string
}

// EncodePrompt renders req into the instruction sent to every backend.
// The output is deterministic for a given request.
func EncodePrompt(req domain.LessonRequest) (Prompt, error) {
	language := strings.TrimSpace(req.Language)

	example, err := exampleLessonJSON(language)
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to render example lesson: %w", err)
	}

	data := promptData{
		Language: language,
		Level:    req.Level,
		Focus:    focusLines(req),
		Example:  example,
	}

	var buf bytes.Buffer
	if err := lessonPrompt.Execute(&buf, data); err != nil {
		return Prompt{}, fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return Prompt{System: SystemInstruction, User: buf.String()}, nil
}

// focusLines returns one labeled line per optional field the caller set.
func focusLines(req domain.LessonRequest) []string {
	var lines []string

	if topics := joinNonBlank(req.Topics); topics != "" {
		lines = append(lines, "Focus on these topics: "+topics)
	}
	if goals := strings.TrimSpace(req.UserGoals); goals != "" {
		lines = append(lines, "User goals: "+goals)
	}
	if missed := joinNonBlank(req.RecentMissedTopics); missed != "" {
		lines = append(lines, "Recent missed topics to review: "+missed)
	}
	if req.PreferredPace != "" {
		lines = append(lines, "Preferred pace: "+string(req.PreferredPace))
	}

	return lines
}

func joinNonBlank(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ", ")
}

// exampleLessonJSON renders the schema example from the domain type itself so
// the key names in the prompt always match what DecodeLesson reads.
func exampleLessonJSON(language string) (string, error) {
	example := domain.GeneratedLesson{
		Title:       "Lesson title in " + language,
		Description: "Brief description of what will be learned",
		Topics:      []string{"topic1", "topic2", "topic3"},
		Vocabulary: []domain.VocabularyItem{
			{English: "Hello", Translation: "Translation in " + language, Category: "Greetings"},
		},
		Exercises: []domain.Exercise{
			{
				Question:           "Hello",
				QuestionType:       domain.QuestionTypeEnglish,
				Options:            []string{"Option1", "Option2", "Option3", "Option4"},
				CorrectAnswer:      0,
				CorrectTranslation: "Correct translation",
			},
			{
				Question:           "Word in " + language,
				QuestionType:       domain.QuestionTypeTranslation,
				Options:            []string{"Option1", "Option2", "Option3", "Option4"},
				CorrectAnswer:      2,
				CorrectTranslation: "Correct English meaning",
			},
		},
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(example); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
