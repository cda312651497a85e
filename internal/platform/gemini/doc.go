// Package gemini provides an implementation of the generation.Backend interface
// that uses Google's Gemini API for generating language lessons.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's lesson generation logic to Google's external
// Gemini AI service without exposing the details of the external service to
// the core application.
//
// Gemini has no separate system role in the request this adapter sends, so
// the tutor instruction, the lesson prompt and a raw-JSON reminder are joined
// into a single text part. Each call creates a short-lived genai client bound
// to the caller's API key and issues exactly one GenerateContent request.
//
// The package depends on the google.golang.org/genai client library for
// authentication, request formatting and error decoding.
package gemini
