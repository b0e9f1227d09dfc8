package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	e := New(Codec, "DeserializeG1", errors.New("field element >= p"))
	want := "DeserializeG1: codec error: field element >= p"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestErrorMessageNilInner(t *testing.T) {
	e := New(Aggregation, "MSM", nil)
	want := "MSM: aggregation error"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("boom")
	e := New(Setup, "LoadSetup", inner)
	if !errors.Is(e, inner) {
		t.Fatal("errors.Is should see through Unwrap to the inner error")
	}
}

func TestIs(t *testing.T) {
	e := New(Subgroup, "DeserializeG2", nil)
	if !Is(e, Subgroup) {
		t.Fatal("Is should report true for a matching Kind")
	}
	if Is(e, Codec) {
		t.Fatal("Is should report false for a non-matching Kind")
	}

	wrapped := fmt.Errorf("while loading: %w", e)
	if !Is(wrapped, Subgroup) {
		t.Fatal("Is should unwrap through fmt.Errorf's %w")
	}
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{Codec, Subgroup, Verification, Setup, Aggregation} {
		if k.String() == "" {
			t.Fatalf("Kind %d stringified to empty", k)
		}
	}
}
