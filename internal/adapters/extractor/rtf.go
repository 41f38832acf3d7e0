package extractor

import (
	"regexp"
	"strings"

	"github.com/baditaflorin/go_rtf_validation/internal/ports"
)

var (
	// controlWord matches a backslash followed by lowercase letters, an
	// optional numeric parameter, and at most one delimiting space.
	controlWord = regexp.MustCompile(`\\[a-z]+[0-9]*\s?`)
	braces      = regexp.MustCompile(`[{}]`)
)

// RTFExtractor extracts visible plain text from RTF content by stripping
// control words and group braces. It is a lossy, best-effort extraction:
// escaped braces, escaped backslashes and \'hh or \u Unicode escapes are
// not interpreted.
type RTFExtractor struct{}

// NewRTFExtractor creates a new RTF text extractor.
func NewRTFExtractor() ports.Extractor {
	return &RTFExtractor{}
}

// Extract returns the approximate visible text of content with whitespace
// collapsed and trimmed.
func (e *RTFExtractor) Extract(content string) string {
	text := controlWord.ReplaceAllString(content, " ")
	text = braces.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}
