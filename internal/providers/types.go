// Package providers holds clients for locally hosted inference daemons.
package providers

import "context"

// Provider generates text for a prompt in a single request/response
// exchange. No streaming, no conversation history.
type Provider interface {
	Name() string

	// Generate sends the prompt and returns the full response text.
	Generate(ctx context.Context, prompt string) (string, error)

	// CheckConnection reports whether the inference endpoint is reachable.
	CheckConnection(ctx context.Context) bool
}
