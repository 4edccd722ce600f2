//go:build unix
// +build unix

package bigmat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeBacking(t *testing.T, data []float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.bin")
	if err := os.WriteFile(path, bytesOf(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMapRoundTrip(t *testing.T) {
	// 3×2 column-major backing file.
	path := writeBacking(t, []float64{1, 2, 3, 10, 20, 30})

	v, err := Map(path, Float64, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Unmap()

	if got := v.At(2, 1); got != 30 {
		t.Errorf("At(2,1) = %g, want 30", got)
	}
	dense, err := v.Dense(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 10, 2, 20, 3, 30}
	for i := range want {
		if dense[i] != want[i] {
			t.Fatalf("Dense() = %v, want %v", dense, want)
		}
	}

	if err := v.Unmap(); err != nil {
		t.Fatal(err)
	}
	if err := v.Unmap(); err != nil {
		t.Errorf("second Unmap failed: %v", err)
	}
}

func TestMapErrors(t *testing.T) {
	t.Run("SizeMismatch", func(t *testing.T) {
		path := writeBacking(t, []float64{1, 2, 3})
		if _, err := Map(path, Float64, 2, 2); !errors.Is(err, ErrShape) {
			t.Errorf("errors.Is(err, ErrShape) = false for %v", err)
		}
	})
	t.Run("UnknownKind", func(t *testing.T) {
		path := writeBacking(t, []float64{1})
		if _, err := Map(path, ElemKind(7), 1, 1); !errors.Is(err, ErrUnknownKind) {
			t.Errorf("errors.Is(err, ErrUnknownKind) = false for %v", err)
		}
	})
	t.Run("MissingFile", func(t *testing.T) {
		if _, err := Map(filepath.Join(t.TempDir(), "nope.bin"), Float64, 1, 1); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
