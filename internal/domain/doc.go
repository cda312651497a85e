// Package domain contains the core business entities, value objects, and
// domain logic of the application: the lesson request a learner submits and
// the generated lesson the rest of the system consumes. It is independent of
// any specific LLM provider, transport, or delivery mechanism.
package domain
