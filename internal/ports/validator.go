package ports

import (
	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
)

// DocumentValidator defines the interface for structural document validation.
type DocumentValidator interface {
	Validate(content string) domain.ValidationResult
}
