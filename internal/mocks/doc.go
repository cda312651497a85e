// Package mocks provides test doubles shared across packages.
//
// MockGenerator stands in for generation.Generator. It returns a canned
// lesson or error (or delegates to GenerateFn) and records every config and
// request it receives:
//
//	gen := mocks.NewMockGeneratorWithDefaultLesson()
//	handler := api.NewLessonHandler(gen, creds, logger)
package mocks
