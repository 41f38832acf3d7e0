package ports

import (
	"context"

	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
)

// ComparisonCalculator defines the interface for comparing generated text
// against an expected reference.
type ComparisonCalculator interface {
	Compute(ctx context.Context, actual, expected string) domain.Result
}
