//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq (mock generation, see go:generate directives)
// - github.com/pressly/goose/v3/cmd/goose (manual migrations against migrations/)
