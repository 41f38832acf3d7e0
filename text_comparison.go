// text_comparison.go
// Package rtfvalidation: text comparison with tolerance.
// Exact equality is unusable against a nondeterministic generator, so the
// comparator scores how much of the expected vocabulary appears in the
// actual text (recall over the expected word set), with a
// substring-containment fast path for output that merely wraps the
// reference in extra prose.
package rtfvalidation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyExpected is returned when the expected reference contains no
// words; similarity cannot be established against nothing.
var ErrEmptyExpected = errors.New("expected text has zero words")

// ToleranceError reports a comparison whose similarity fell below the
// configured tolerance.
type ToleranceError struct {
	Similarity    float64
	Tolerance     float64
	ExpectedWords int
	MatchedWords  int
}

func (e *ToleranceError) Error() string {
	return fmt.Sprintf(
		"text similarity too low: %.2f%% (expected >= %.0f%%), expected words: %d, matched words: %d",
		e.Similarity*100, e.Tolerance*100, e.ExpectedWords, e.MatchedWords,
	)
}

// typographicReplacer maps dash and quote variants to ASCII equivalents.
var typographicReplacer = strings.NewReplacer(
	"—", "-", // em dash
	"–", "-", // en dash
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
)

// Normalize lowercases text, collapses whitespace and canonicalizes
// typographic dashes and quotes. It is pure, total and idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = typographicReplacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// TextComparator decides whether generated text is acceptably close to an
// expected reference.
type TextComparator struct {
	config Config
}

// NewTextComparator creates a new TextComparator with the provided
// functional options. If no logger is provided, a default logger is created.
func NewTextComparator(opts ...Option) *TextComparator {
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
	return &TextComparator{config: cfg}
}

// Compare normalizes both texts and checks that actual covers enough of
// the expected vocabulary. It returns nil on success, ErrEmptyExpected
// when the reference has no words, and a *ToleranceError when similarity
// falls below the tolerance.
func (c *TextComparator) Compare(actual, expected string) error {
	normActual := Normalize(actual)
	normExpected := Normalize(expected)

	if normExpected != "" && strings.Contains(normActual, normExpected) {
		c.config.Logger.Debug("Expected text contained in actual, accepting")
		return nil
	}

	actualWords := make(map[string]struct{})
	for _, w := range strings.Fields(normActual) {
		actualWords[w] = struct{}{}
	}
	expectedWords := make(map[string]struct{})
	for _, w := range strings.Fields(normExpected) {
		expectedWords[w] = struct{}{}
	}

	if len(expectedWords) == 0 {
		return ErrEmptyExpected
	}

	matched := 0
	for w := range expectedWords {
		if _, ok := actualWords[w]; ok {
			matched++
		}
	}
	similarity := float64(matched) / float64(len(expectedWords))

	c.config.Logger.Debug("Computed text similarity",
		"similarity", similarity,
		"tolerance", c.config.Tolerance,
		"expected_words", len(expectedWords),
		"matched_words", matched,
	)

	if similarity < c.config.Tolerance {
		return &ToleranceError{
			Similarity:    similarity,
			Tolerance:     c.config.Tolerance,
			ExpectedWords: len(expectedWords),
			MatchedWords:  matched,
		}
	}
	return nil
}
