//go:build unix
// +build unix

package bigmat_test

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/statkit/mvngrad"
	"github.com/statkit/mvngrad/bigmat"
)

// A file-backed external matrix feeding the gradient kernel end to end:
// map the column-major backing file, convert to the kernel's row-major
// layout, and check against the same computation on an in-memory copy.
func TestMappedPointsFeedKernel(t *testing.T) {
	const n, d = 4, 2
	// Column-major: first column x₀, second column x₁.
	backing := []float64{
		0, 1, -1, 2, // x₀ of the 4 points
		0, 0, 1, -2, // x₁ of the 4 points
	}
	path := filepath.Join(t.TempDir(), "points.bin")
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&backing[0])), len(backing)*8)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := bigmat.Map(path, bigmat.Float64, n, d)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Unmap()

	points, err := v.Dense(nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := mvngrad.DensityGradient(nil, points, n, d)
	if err != nil {
		t.Fatal(err)
	}

	direct := []float64{
		0, 0,
		1, 0,
		-1, 1,
		2, -2,
	}
	want, err := mvngrad.DensityGradient(nil, direct, n, d)
	if err != nil {
		t.Fatal(err)
	}
	if result := mvngrad.VerifyFloat64s(want, got, mvngrad.StrictTolerance()); !result.IsAcceptable() {
		t.Errorf("%v", result)
	}
}
