// rtf_validation_test.go
package rtfvalidation

import (
	"strings"
	"testing"
)

func TestValidateWithDefaults(t *testing.T) {
	validator := NewRTFValidator()

	tests := []struct {
		name    string
		content string
		valid   bool
		reason  string
	}{
		{
			name:    "Minimal valid document",
			content: `{\rtf1\ansi test}`,
			valid:   true,
			reason:  ReasonValid,
		},
		{
			name:    "Valid document with surrounding whitespace",
			content: "  {\\rtf1\\ansi\\b Title\\b0\\par Body.}\n",
			valid:   true,
			reason:  ReasonValid,
		},
		{
			name:    "Macintosh character set",
			content: `{\rtf1\mac test}`,
			valid:   true,
			reason:  ReasonValid,
		},
		{
			name:    "PC code page character set",
			content: `{\rtf1\pc test}`,
			valid:   true,
			reason:  ReasonValid,
		},
		{
			name:    "Empty content",
			content: "",
			valid:   false,
			reason:  ReasonEmpty,
		},
		{
			name:    "Whitespace only",
			content: "   ",
			valid:   false,
			reason:  ReasonEmpty,
		},
		{
			name:    "Missing header",
			content: `plain text}`,
			valid:   false,
			reason:  ReasonMissingHeader,
		},
		{
			name:    "Missing closing brace",
			content: `{\rtf1\ansi test`,
			valid:   false,
			reason:  ReasonMissingClose,
		},
		{
			name:    "Extra closing brace",
			content: `{\rtf1\ansi {}} }`,
			valid:   false,
			reason:  ReasonUnbalancedClosing,
		},
		{
			name:    "Unclosed group",
			content: `{\rtf1\ansi {{} }`,
			valid:   false,
			reason:  "Unbalanced braces (difference: +1)",
		},
		{
			name:    "Missing character set declaration",
			content: `{\rtf1 test}`,
			valid:   false,
			reason:  ReasonMissingCharset,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := validator.Validate(tc.content)
			if result.Valid != tc.valid {
				t.Errorf("expected valid=%v, got %v (reason: %q)", tc.valid, result.Valid, result.Reason)
			}
			if result.Reason != tc.reason {
				t.Errorf("expected reason %q, got %q", tc.reason, result.Reason)
			}
		})
	}
}

func TestValidateGateOrder(t *testing.T) {
	validator := NewRTFValidator()

	// Header failure reported before the footer failure.
	result := validator.Validate("no rtf here")
	if result.Reason != ReasonMissingHeader {
		t.Errorf("expected %q, got %q", ReasonMissingHeader, result.Reason)
	}

	// Header and footer present: the brace scan must still run.
	result = validator.Validate(`{\rtf1\ansi {broken}`)
	if result.Valid {
		t.Error("expected imbalance to be flagged despite valid header and footer")
	}
	if !strings.Contains(result.Reason, "Unbalanced braces") {
		t.Errorf("expected a brace reason, got %q", result.Reason)
	}
}

func TestValidateRequireParagraphMarkers(t *testing.T) {
	plain := `{\rtf1\ansi test}`
	withPar := `{\rtf1\ansi test\par more}`

	strict := NewRTFValidator(WithRequireParagraphMarkers())
	if result := strict.Validate(plain); result.Valid {
		t.Error("expected rejection without paragraph markers")
	} else if result.Reason != ReasonMissingParagraphs {
		t.Errorf("expected reason %q, got %q", ReasonMissingParagraphs, result.Reason)
	}
	if result := strict.Validate(withPar); !result.Valid {
		t.Errorf("expected acceptance with \\par, got %q", result.Reason)
	}

	// Off by default.
	if result := NewRTFValidator().Validate(plain); !result.Valid {
		t.Errorf("expected acceptance by default, got %q", result.Reason)
	}
}

func TestExtractVisibleText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Formatted document",
			content:  `{\rtf1\ansi\b Title\b0\par Body text.}`,
			expected: "Title Body text.",
		},
		{
			name:     "Nested groups",
			content:  `{\rtf1\ansi {\b Bold} normal}`,
			expected: "Bold normal",
		},
		{
			name:     "Control words with parameters",
			content:  `{\rtf1\ansi\fs24 sized\par text}`,
			expected: "sized text",
		},
		{
			name:     "Plain text untouched",
			content:  "just words",
			expected: "just words",
		},
		{
			name:     "Empty content",
			content:  "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractVisibleText(tc.content)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestExtractVisibleTextRoundTrip(t *testing.T) {
	// A document assembled from known plain-text tokens and control words
	// must yield exactly those tokens, in order.
	tokens := []string{"Quarterly", "Report", "November", "2025"}
	doc := `{\rtf1\ansi\b ` + tokens[0] + ` ` + tokens[1] + `\b0\par ` +
		tokens[2] + ` ` + tokens[3] + `}`

	got := ExtractVisibleText(doc)
	want := strings.Join(tokens, " ")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
