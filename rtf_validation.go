// rtf_validation.go
// Package rtfvalidation decides whether a string is plausibly well-formed
// Rich Text Format and whether its visible text matches an expected
// reference within a tolerance. The validator is a structural sniff test,
// not an RTF parser: it checks the header marker, the closing brace, brace
// balance and the character-set declaration, which is enough to catch
// generator drift and corruption without a tokenizer.
//
// All checks are pure functions of their input; values are never mutated
// and no state is shared, so validators and comparators may be used from
// any number of goroutines without locking.
package rtfvalidation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/baditaflorin/l"
)

// Default configuration values.
const (
	DefaultTolerance = 0.85
)

// Diagnostic reasons returned by Validate.
const (
	ReasonValid             = "Valid RTF"
	ReasonEmpty             = "Empty content"
	ReasonMissingHeader     = "Missing RTF header"
	ReasonMissingClose      = "Missing closing brace"
	ReasonUnbalancedClosing = "Unbalanced braces (more closing than opening)"
	ReasonMissingCharset    = "Missing character set declaration"
	ReasonMissingParagraphs = "Missing paragraph markers"
)

// ValidationResult holds the outcome of a structural validation.
type ValidationResult struct {
	// Valid reports whether the content passed every structural gate.
	Valid bool
	// Reason is a human-readable diagnostic; ReasonValid when Valid is true.
	Reason string
}

// Config holds configuration options shared by the validator and comparator.
type Config struct {
	Tolerance               float64
	RequireParagraphMarkers bool
	// Logger for tracing validation and comparison steps.
	Logger l.Logger
}

// Option defines a functional option for configuration.
type Option func(*Config)

// WithTolerance sets a custom similarity tolerance.
func WithTolerance(t float64) Option {
	return func(cfg *Config) {
		cfg.Tolerance = t
	}
}

// WithRequireParagraphMarkers additionally requires \par or \line to be
// present for a document to validate.
func WithRequireParagraphMarkers() Option {
	return func(cfg *Config) {
		cfg.RequireParagraphMarkers = true
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// RTFValidator provides structural validation of candidate RTF documents.
type RTFValidator struct {
	config Config
}

// NewRTFValidator creates a new RTFValidator with the provided functional
// options. If no logger is provided, a default logger is created.
func NewRTFValidator(opts ...Option) *RTFValidator {
	cfg := Config{
		Tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		logger, err := createDefaultLogger()
		if err != nil {
			panic(err)
		}
		cfg.Logger = logger
	}
	return &RTFValidator{config: cfg}
}

// Validate runs the structural gates in order, each short-circuiting on
// its own failure: emptiness, header marker, closing brace, brace balance,
// character-set declaration. The outcome is returned as data; Validate
// never fails.
func (v *RTFValidator) Validate(content string) ValidationResult {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ValidationResult{Valid: false, Reason: ReasonEmpty}
	}

	if !strings.HasPrefix(trimmed, `{\rtf`) {
		return ValidationResult{Valid: false, Reason: ReasonMissingHeader}
	}

	if !strings.HasSuffix(trimmed, "}") {
		return ValidationResult{Valid: false, Reason: ReasonMissingClose}
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
			return ValidationResult{Valid: false, Reason: ReasonUnbalancedClosing}
		}
	}
	if depth != 0 {
		return ValidationResult{
			Valid:  false,
			Reason: fmt.Sprintf("Unbalanced braces (difference: %+d)", depth),
		}
	}

	if !strings.Contains(content, `\ansi`) &&
		!strings.Contains(content, `\mac`) &&
		!strings.Contains(content, `\pc`) {
		return ValidationResult{Valid: false, Reason: ReasonMissingCharset}
	}

	if v.config.RequireParagraphMarkers &&
		!strings.Contains(content, `\par`) &&
		!strings.Contains(content, `\line`) {
		return ValidationResult{Valid: false, Reason: ReasonMissingParagraphs}
	}

	v.config.Logger.Debug("Document passed structural validation",
		"length", len(content),
	)
	return ValidationResult{Valid: true, Reason: ReasonValid}
}

var (
	controlWordRe = regexp.MustCompile(`\\[a-z]+[0-9]*\s?`)
	braceRe       = regexp.MustCompile(`[{}]`)
)

// ExtractVisibleText strips control words and group braces from RTF
// content and returns the remaining text with whitespace collapsed.
// The extraction is lossy and best-effort: escaped braces, escaped
// backslashes and \'hh or \u escape sequences are not interpreted.
func ExtractVisibleText(content string) string {
	text := controlWordRe.ReplaceAllString(content, " ")
	text = braceRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}
