package llm

import "context"

// Provider generates model output for a fully assembled prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
