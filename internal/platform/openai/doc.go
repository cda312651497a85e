// Package openai implements generation.Backend for OpenAI's chat completions
// API and for any OpenAI-compatible endpoint (the "custom" provider).
//
// Both providers share one request shape: a system message carrying the
// tutor instruction, a user message carrying the lesson prompt, JSON object
// response format and temperature 0.7. They differ only in defaults: the
// openai provider falls back to the public endpoint and gpt-4, while the
// custom provider requires a base URL and falls back to gpt-3.5-turbo.
package openai
