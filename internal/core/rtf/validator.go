package rtf

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
	"github.com/baditaflorin/go_rtf_validation/internal/ports"
)

// Diagnostic reasons returned by Validate. Each gate maps to exactly one.
const (
	ReasonValid             = "Valid RTF"
	ReasonEmpty             = "Empty content"
	ReasonMissingHeader     = "Missing RTF header"
	ReasonMissingClose      = "Missing closing brace"
	ReasonUnbalancedClosing = "Unbalanced braces (more closing than opening)"
	ReasonMissingCharset    = "Missing character set declaration"
	ReasonMissingParagraphs = "Missing paragraph markers"
)

// header is the literal marker every RTF document opens with.
const header = `{\rtf`

// charsetMarkers are the three standard RTF character-set declarations.
var charsetMarkers = []string{`\ansi`, `\mac`, `\pc`}

// ValidatorConfig holds configuration for the structural validator.
type ValidatorConfig struct {
	// RequireParagraphMarkers additionally rejects documents that contain
	// neither \par nor \line. Off by default: minimal single-paragraph RTF
	// is well formed without either.
	RequireParagraphMarkers bool
}

// DefaultValidatorConfig returns a default configuration.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{}
}

// Validator decides whether a string is plausibly well-formed RTF.
// It is a structural sniff test, not a parser: cheap enough to run per
// generated document, strict enough to catch generator drift.
type Validator struct {
	config ValidatorConfig
	logger ports.Logger
}

// NewValidator creates a new structural validator.
func NewValidator(config ValidatorConfig, logger ports.Logger) *Validator {
	return &Validator{
		config: config,
		logger: logger,
	}
}

// Validate runs the structural gates in order, stopping at the first
// failure: emptiness, header, footer, brace balance, character set.
// The result is returned as data; Validate never fails.
func (v *Validator) Validate(content string) domain.ValidationResult {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return v.invalid(ReasonEmpty)
	}

	if !strings.HasPrefix(trimmed, header) {
		return v.invalid(ReasonMissingHeader)
	}

	if !strings.HasSuffix(trimmed, "}") {
		return v.invalid(ReasonMissingClose)
	}

	depth := 0
	for _, r := range content {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth < 0 {
			return v.invalid(ReasonUnbalancedClosing)
		}
	}
	if depth != 0 {
		return v.invalid(fmt.Sprintf("Unbalanced braces (difference: %+d)", depth))
	}

	if !containsAny(content, charsetMarkers) {
		return v.invalid(ReasonMissingCharset)
	}

	if v.config.RequireParagraphMarkers &&
		!containsAny(content, []string{`\par`, `\line`}) {
		return v.invalid(ReasonMissingParagraphs)
	}

	v.logger.Debug("Document passed structural validation", "length", len(content))
	return domain.ValidationResult{Valid: true, Reason: ReasonValid}
}

func (v *Validator) invalid(reason string) domain.ValidationResult {
	v.logger.Debug("Document failed structural validation", "reason", reason)
	return domain.ValidationResult{Valid: false, Reason: reason}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
