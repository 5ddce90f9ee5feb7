package normalization

import (
	"testing"
)

func TestCleanName_CollapsesWhitespaceAndCase(t *testing.T) {
	got, ok := CleanName("  Asha   RAO ")
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if got != "asha rao" {
		t.Fatalf("unexpected cleaned name: %q", got)
	}
}

func TestCleanName_AbsentInputs(t *testing.T) {
	for _, raw := range []string{"", "   ", "nan", "NaN", "Name", "none", "N/A"} {
		if got, ok := CleanName(raw); ok {
			t.Fatalf("expected absent for %q, got %q", raw, got)
		}
	}
}

func TestCleanName_SameKeyForVariants(t *testing.T) {
	a, _ := CleanName("Asha Rao")
	b, _ := CleanName("asha  rao  ")
	if a != b {
		t.Fatalf("variants should normalize identically: %q vs %q", a, b)
	}
}

func TestCleanCell_NullMarkers(t *testing.T) {
	if got := CleanCell(" nan "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := CleanCell(" 42 "); got != "42" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}
