package rtf

import "testing"

func TestValidatorFacade(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if result := v.Validate(`{\rtf1\ansi test}`); !result.Valid {
		t.Errorf("expected valid, got %q", result.Reason)
	}
	if result := v.Validate(""); result.Valid || result.Reason != "Empty content" {
		t.Errorf("expected empty-content rejection, got %+v", result)
	}

	got := v.ExtractVisibleText(`{\rtf1\ansi\b Title\b0\par Body text.}`)
	if got != "Title Body text." {
		t.Errorf("unexpected extraction: %q", got)
	}
}

func TestValidatorFacadeParagraphOption(t *testing.T) {
	v, err := New(WithRequireParagraphMarkers())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if result := v.Validate(`{\rtf1\ansi test}`); result.Valid {
		t.Error("expected rejection without paragraph markers")
	}
}
