// Package collaborator talks to the generative-text backend that formats
// promises and proposes reframe solutions.
//
// The backend is an opaque function from prompt to text. Failures never
// escape as Go errors past Formatter: they come back as in-band
// "Error: ..." replies so callers can keep rendering the rest of a page.
package collaborator

import (
	"context"
	"errors"
)

// Generator turns a prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	ErrNoAPIKey      = errors.New("gemini api key is not set")
	ErrNoModel       = errors.New("no model supports generateContent")
	ErrEmptyResponse = errors.New("empty response")
)

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
