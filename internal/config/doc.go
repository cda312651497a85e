// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml and LINGO_-prefixed environment
// variables. It provides type-safe access to server and language model
// settings while keeping configuration details separate from business logic.
package config
