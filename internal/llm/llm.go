// Package llm calls the external model endpoint that writes the actual
// documentation. The core hands over one assembled prompt and expects one
// Markdown string back; everything else is transport.
package llm

import (
	"context"
	"fmt"
)

// Client generates one Markdown document from a system fragment and a user
// prompt. Implementations make a single blocking call; no retries.
type Client interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// UpstreamError is any failure of the model call: transport, non-2xx status,
// undecodable body, or an empty completion.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream failure: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
