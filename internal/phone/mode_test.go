package phone

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"correct":           ModeCorrect,
		" Correct ":         ModeCorrect,
		"strip":             ModeStripExtraDigit,
		"strip-extra-digit": ModeStripExtraDigit,
		"standardize":       ModeStandardize,
	}
	for in, want := range tests {
		got, err := ParseMode(in)
		if err != nil {
			t.Errorf("ParseMode(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseMode_Unknown(t *testing.T) {
	_, err := ParseMode("bogus")
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestModeNames(t *testing.T) {
	want := []string{"correct", "strip-extra-digit", "standardize"}
	if diff := cmp.Diff(want, ModeNames()); diff != "" {
		t.Errorf("mode names mismatch (-want +got):\n%s", diff)
	}
	for _, m := range Modes() {
		if m.Description() == "" {
			t.Errorf("mode %s has no description", m)
		}
	}
	if got := Mode(42).String(); got != "mode(42)" {
		t.Errorf("String() = %q", got)
	}
}
