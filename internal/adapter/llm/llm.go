// Package llm provides the text generation collaborator. Generation is an
// optional capability: when no API key is configured the no-op implementation
// is wired in and consumers fall back to templated output.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by the no-op generator. Consumers treat it the
// same as any other generation failure: log and fall back.
var ErrUnavailable = errors.New("llm: generation unavailable")

// Generator produces a short completion for a prompt.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Available() bool
}

// Noop is the null generator used when no provider is configured.
type Noop struct{}

// NewNoop creates a generator that always reports unavailable.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) Complete(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (*Noop) Available() bool { return false }
