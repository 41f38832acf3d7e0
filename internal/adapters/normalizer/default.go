package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_rtf_validation/internal/ports"
)

// typographic maps dash and quote variants produced by word processors and
// text generators to their ASCII equivalents.
var typographic = strings.NewReplacer(
	"—", "-", // em dash
	"–", "-", // en dash
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
)

// DefaultNormalizer implements the default text normalization strategy:
// lowercase, whitespace collapsed, typographic dashes and quotes
// canonicalized. Normalize is pure and idempotent.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize returns the canonical comparable form of text.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	text = typographic.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
