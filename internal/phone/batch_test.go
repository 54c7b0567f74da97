package phone

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	values := make([]string, 5000)
	want := make([]string, len(values))
	for i := range values {
		values[i] = fmt.Sprintf("237%08d", i)
		want[i] = fmt.Sprintf(`="2376%08d"`, i)
	}

	got, err := NormalizeAll(context.Background(), values, ModeCorrect, BatchOptions{Workers: 4, Escape: true})
	if err != nil {
		t.Fatalf("NormalizeAll error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeAll_NoEscape(t *testing.T) {
	got, err := NormalizeAll(context.Background(), []string{"237698765432", ""}, ModeStripExtraDigit, BatchOptions{})
	if err != nil {
		t.Fatalf("NormalizeAll error: %v", err)
	}
	if diff := cmp.Diff([]string{"23798765432", ""}, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeAll_Empty(t *testing.T) {
	got, err := NormalizeAll(context.Background(), nil, ModeCorrect, BatchOptions{})
	if err != nil {
		t.Fatalf("NormalizeAll error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty output, got %v", got)
	}
}

func TestNormalizeAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NormalizeAll(ctx, []string{"237"}, ModeCorrect, BatchOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
