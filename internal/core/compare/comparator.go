package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
	"github.com/baditaflorin/go_rtf_validation/internal/ports"
)

// ErrEmptyExpected is returned by Assert when the expected reference
// contains no words: similarity cannot be established against nothing.
var ErrEmptyExpected = errors.New("expected text has zero words")

// ToleranceError reports a comparison whose similarity fell below the
// configured threshold.
type ToleranceError struct {
	Similarity    float64
	Threshold     float64
	ExpectedWords int
	MatchedWords  int
}

func (e *ToleranceError) Error() string {
	return fmt.Sprintf(
		"text similarity too low: %.2f%% (expected >= %.0f%%), expected words: %d, matched words: %d",
		e.Similarity*100, e.Threshold*100, e.ExpectedWords, e.MatchedWords,
	)
}

// ComparatorConfig holds configuration for the text comparator.
type ComparatorConfig struct {
	Threshold float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() ComparatorConfig {
	return ComparatorConfig{
		Threshold: 0.85,
	}
}

// Validate checks if the configuration is valid.
func (c ComparatorConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("threshold must be between 0 and 1")
	}
	return nil
}

// Comparator decides whether generated text is acceptably close to an
// expected reference. The score is recall over the expected vocabulary:
// words unique to the actual text never lower it.
type Comparator struct {
	config     ComparatorConfig
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewComparator creates a new text comparator.
func NewComparator(config ComparatorConfig, logger ports.Logger, normalizer ports.Normalizer) (*Comparator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Comparator{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Compute compares actual against expected and returns the outcome as data.
func (c *Comparator) Compute(ctx context.Context, actual, expected string) domain.Result {
	details := make(map[string]interface{})

	normActual := c.normalizer.Normalize(actual)
	normExpected := c.normalizer.Normalize(expected)

	c.logger.Debug("Normalized texts for comparison",
		"normalizedActual", normActual,
		"normalizedExpected", normExpected,
	)

	select {
	case <-ctx.Done():
		c.logger.Error("Comparison cancelled", "error", ctx.Err())
		details["error"] = "comparison cancelled"
		return domain.Result{
			Name:    "text_comparison",
			Score:   0,
			Passed:  false,
			Details: details,
		}
	default:
	}

	// Expected content wholly present in actual: the generator wrapped the
	// reference in extra structure or prose. Accept without word counting.
	if normExpected != "" && strings.Contains(normActual, normExpected) {
		c.logger.Debug("Expected text contained in actual, accepting")
		details["matched_by"] = "substring"
		expectedWords := wordSet(normExpected)
		return domain.Result{
			Name:          "text_comparison",
			Score:         1.0,
			Passed:        true,
			ExpectedWords: len(expectedWords),
			MatchedWords:  len(expectedWords),
			Threshold:     c.config.Threshold,
			Details:       details,
		}
	}

	actualWords := wordSet(normActual)
	expectedWords := wordSet(normExpected)

	if len(expectedWords) == 0 {
		c.logger.Error("Expected text has zero words", "expected", expected)
		details["error"] = ErrEmptyExpected.Error()
		return domain.Result{
			Name:      "text_comparison",
			Score:     0,
			Passed:    false,
			Threshold: c.config.Threshold,
			Details:   details,
		}
	}

	matched := 0
	for w := range expectedWords {
		if _, ok := actualWords[w]; ok {
			matched++
		}
	}
	similarity := float64(matched) / float64(len(expectedWords))
	passed := similarity >= c.config.Threshold

	details["matched_by"] = "word_coverage"
	details["actual_words"] = len(actualWords)

	c.logger.Debug("Computed text similarity",
		"score", similarity,
		"passed", passed,
		"expected_words", len(expectedWords),
		"matched_words", matched,
	)

	return domain.Result{
		Name:          "text_comparison",
		Score:         similarity,
		Passed:        passed,
		ExpectedWords: len(expectedWords),
		MatchedWords:  matched,
		Threshold:     c.config.Threshold,
		Details:       details,
	}
}

// Assert runs Compute and converts a failing result into an error:
// ErrEmptyExpected when the reference has no vocabulary, a *ToleranceError
// otherwise.
func (c *Comparator) Assert(ctx context.Context, actual, expected string) error {
	result := c.Compute(ctx, actual, expected)
	if result.Passed {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if result.ExpectedWords == 0 {
		return ErrEmptyExpected
	}
	return &ToleranceError{
		Similarity:    result.Score,
		Threshold:     result.Threshold,
		ExpectedWords: result.ExpectedWords,
		MatchedWords:  result.MatchedWords,
	}
}

// wordSet splits normalized text into its set of distinct words.
// Duplicates collapse: repeated words carry no extra weight.
func wordSet(text string) map[string]struct{} {
	words := strings.Fields(text)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
