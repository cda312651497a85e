// Package generation turns a learner's lesson request into a validated,
// quiz-ready lesson by delegating to an external AI/LLM provider.
//
// It owns three things:
//
//  1. The Generator interface and its Dispatcher implementation, which
//     selects one of a closed set of provider backends (OpenAI, Anthropic,
//     Google Gemini, or a custom OpenAI-compatible endpoint) and issues
//     exactly one request per call.
//
//  2. The prompt codec: EncodePrompt renders a LessonRequest into an
//     instruction carrying a strict JSON example, and DecodeLesson turns
//     whatever text a provider returns into a domain.GeneratedLesson using
//     a two-stage parse (whole text, then first-brace to last-brace span)
//     followed by the total NormalizeLesson mapping.
//
//  3. The error taxonomy shared by all backends (see errors.go).
//
// Backends live under internal/platform and implement the Backend
// interface. The package never reads the environment: every call receives
// a fully populated AIConfig from its caller.
package generation
