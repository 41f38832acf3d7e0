package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/baditaflorin/go_rtf_validation/internal/adapters/normalizer"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }

func newTestComparator(t *testing.T, cfg ComparatorConfig) *Comparator {
	t.Helper()
	c, err := NewComparator(cfg, nopLogger{}, normalizer.NewDefaultNormalizer())
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	return c
}

func TestNewComparatorConfigValidation(t *testing.T) {
	for _, th := range []float64{-0.1, 1.1} {
		if _, err := NewComparator(ComparatorConfig{Threshold: th}, nopLogger{}, normalizer.NewDefaultNormalizer()); err == nil {
			t.Errorf("expected error for threshold %v", th)
		}
	}
}

func TestCompute(t *testing.T) {
	c := newTestComparator(t, DefaultConfig())

	tests := []struct {
		name     string
		actual   string
		expected string
		passed   bool
		score    float64
	}{
		{
			name:     "full coverage",
			actual:   "The quarterly report is excellent",
			expected: "quarterly report excellent",
			passed:   true,
			score:    1.0,
		},
		{
			name:     "substring fast path",
			actual:   "prefix quarterly report excellent suffix",
			expected: "Quarterly Report Excellent",
			passed:   true,
			score:    1.0,
		},
		{
			name:     "no overlap",
			actual:   "completely unrelated text",
			expected: "quarterly report excellent",
			passed:   false,
			score:    0,
		},
		{
			name:     "half coverage",
			actual:   "quarterly report",
			expected: "quarterly report excellent summary",
			passed:   false,
			score:    0.5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Compute(context.Background(), tc.actual, tc.expected)
			if result.Passed != tc.passed {
				t.Errorf("expected passed=%v, got %v, details: %v", tc.passed, result.Passed, result.Details)
			}
			if result.Score != tc.score {
				t.Errorf("expected score %v, got %v", tc.score, result.Score)
			}
		})
	}
}

func TestComputeEmptyExpected(t *testing.T) {
	c := newTestComparator(t, DefaultConfig())

	result := c.Compute(context.Background(), "some output", "")
	if result.Passed {
		t.Fatal("expected failure for empty expected text")
	}
	if result.Details["error"] != ErrEmptyExpected.Error() {
		t.Errorf("expected zero-words diagnostic, got %v", result.Details["error"])
	}
}

func TestComputeCancelledContext(t *testing.T) {
	c := newTestComparator(t, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := c.Compute(ctx, "a", "a b c")
	if result.Passed {
		t.Fatal("expected failure for cancelled context")
	}
	if result.Details["error"] != "comparison cancelled" {
		t.Errorf("expected cancellation diagnostic, got %v", result.Details["error"])
	}

	if err := c.Assert(ctx, "a", "a b c"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled from Assert, got %v", err)
	}
}

func TestAssert(t *testing.T) {
	c := newTestComparator(t, DefaultConfig())
	ctx := context.Background()

	if err := c.Assert(ctx, "the quarterly report is excellent", "quarterly report excellent"); err != nil {
		t.Errorf("expected pass, got %v", err)
	}

	err := c.Assert(ctx, "completely unrelated text", "quarterly report excellent")
	var tolErr *ToleranceError
	if !errors.As(err, &tolErr) {
		t.Fatalf("expected *ToleranceError, got %T: %v", err, err)
	}
	if tolErr.Similarity != 0 || tolErr.ExpectedWords != 3 || tolErr.MatchedWords != 0 {
		t.Errorf("unexpected diagnostics: %+v", tolErr)
	}

	if err := c.Assert(ctx, "anything", "   "); !errors.Is(err, ErrEmptyExpected) {
		t.Errorf("expected ErrEmptyExpected, got %v", err)
	}
}

func TestComputeThreshold(t *testing.T) {
	// 2 of 4 expected words covered.
	actual := "quarterly report"
	expected := "quarterly report excellent summary"

	lenient := newTestComparator(t, ComparatorConfig{Threshold: 0.5})
	if result := lenient.Compute(context.Background(), actual, expected); !result.Passed {
		t.Errorf("expected pass at threshold 0.5, score %v", result.Score)
	}

	strict := newTestComparator(t, ComparatorConfig{Threshold: 0.75})
	if result := strict.Compute(context.Background(), actual, expected); result.Passed {
		t.Errorf("expected failure at threshold 0.75, score %v", result.Score)
	}
}
