package ports

import "context"

// Generator defines the interface for the external text-generation service.
// Implementations may be slow or fail; callers own timeout and retry policy.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
