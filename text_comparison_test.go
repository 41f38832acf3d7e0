// text_comparison_test.go
package rtfvalidation

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "Lowercase and whitespace collapse",
			text:     "  The   Quick\tBrown\nFox  ",
			expected: "the quick brown fox",
		},
		{
			name:     "Dashes and smart quotes",
			text:     "Café—naïve’s “quote”",
			expected: "café-naïve's \"quote\"",
		},
		{
			name:     "En dash",
			text:     "pages 3–5",
			expected: "pages 3-5",
		},
		{
			name:     "Empty",
			text:     "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.text)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Café—naïve’s “quote”",
		"  MIXED   Case–text  ",
		"already normalized",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCompareWithDefaults(t *testing.T) {
	comparator := NewTextComparator()

	tests := []struct {
		name     string
		actual   string
		expected string
		pass     bool
	}{
		{
			name:     "Full vocabulary coverage",
			actual:   "The quarterly report is excellent",
			expected: "quarterly report excellent",
			pass:     true,
		},
		{
			name:     "Expected wrapped in extra prose",
			actual:   "Here is the document: quarterly report excellent. Let me know.",
			expected: "Quarterly report excellent.",
			pass:     true,
		},
		{
			name:     "Reordered words still covered",
			actual:   "excellent report quarterly",
			expected: "quarterly report excellent",
			pass:     true,
		},
		{
			name:     "Unrelated text",
			actual:   "completely unrelated text",
			expected: "quarterly report excellent",
			pass:     false,
		},
		{
			name:     "Partial coverage below tolerance",
			actual:   "the quarterly numbers",
			expected: "quarterly report excellent summary",
			pass:     false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := comparator.Compare(tc.actual, tc.expected)
			if tc.pass && err != nil {
				t.Errorf("expected pass, got %v", err)
			}
			if !tc.pass && err == nil {
				t.Error("expected failure, got pass")
			}
		})
	}
}

func TestCompareToleranceError(t *testing.T) {
	comparator := NewTextComparator()

	err := comparator.Compare("completely unrelated text", "quarterly report excellent")
	var tolErr *ToleranceError
	if !errors.As(err, &tolErr) {
		t.Fatalf("expected *ToleranceError, got %T: %v", err, err)
	}
	if tolErr.Similarity != 0 {
		t.Errorf("expected similarity 0, got %v", tolErr.Similarity)
	}
	if tolErr.Tolerance != DefaultTolerance {
		t.Errorf("expected tolerance %v, got %v", DefaultTolerance, tolErr.Tolerance)
	}
	if tolErr.ExpectedWords != 3 {
		t.Errorf("expected 3 expected words, got %d", tolErr.ExpectedWords)
	}
	if tolErr.MatchedWords != 0 {
		t.Errorf("expected 0 matched words, got %d", tolErr.MatchedWords)
	}
}

func TestCompareEmptyExpected(t *testing.T) {
	comparator := NewTextComparator()

	if err := comparator.Compare("some output", ""); !errors.Is(err, ErrEmptyExpected) {
		t.Errorf("expected ErrEmptyExpected, got %v", err)
	}
	if err := comparator.Compare("some output", "   "); !errors.Is(err, ErrEmptyExpected) {
		t.Errorf("expected ErrEmptyExpected for whitespace reference, got %v", err)
	}
}

func TestCompareCustomTolerance(t *testing.T) {
	// Two out of four expected words are covered.
	actual := "quarterly report only"
	expected := "quarterly report excellent summary"

	lenient := NewTextComparator(WithTolerance(0.5))
	if err := lenient.Compare(actual, expected); err != nil {
		t.Errorf("expected pass at tolerance 0.5, got %v", err)
	}

	strict := NewTextComparator(WithTolerance(0.9))
	if err := strict.Compare(actual, expected); err == nil {
		t.Error("expected failure at tolerance 0.9")
	}
}

func TestCompareDuplicatesCollapse(t *testing.T) {
	comparator := NewTextComparator()

	// Repeated words carry no extra weight on either side.
	if err := comparator.Compare(
		"alpha beta gamma",
		"alpha alpha beta beta gamma gamma",
	); err != nil {
		t.Errorf("expected duplicate-collapsed pass, got %v", err)
	}
}
