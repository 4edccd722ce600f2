// Package bigmat provides typed, read-only views over externally-owned
// contiguous matrix buffers.
//
// The buffer layout is column-major with a fixed element width, the shape
// used by shared-memory matrix formats whose backing store is a plain file
// or an anonymous mapping owned by another process. The element width is
// selected by an explicit ElemKind tag rather than inferred, and an
// unknown tag is a deterministic error, never a silent misread.
//
// A View does not own its memory: NewView wraps a caller-provided byte
// slice, and Map wraps a memory-mapped file (see mmap support files).
// Dense converts any view into the row-major float64 layout the mvngrad
// kernels consume; Float64s exposes a float64-kind view without copying.
package bigmat

import (
	"errors"
	"fmt"
	"unsafe"
)

// ElemKind selects the element width of an external buffer. The values
// are the type codes used by the external format: the byte width itself.
type ElemKind uint8

const (
	Int8    ElemKind = 1
	Int16   ElemKind = 2
	Int32   ElemKind = 4
	Float64 ElemKind = 8
)

// Size returns the element width in bytes, or 0 for an unknown kind.
func (k ElemKind) Size() int {
	switch k {
	case Int8, Int16, Int32, Float64:
		return int(k)
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (k ElemKind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("ElemKind(%d)", uint8(k))
	}
}

var (
	// ErrUnknownKind indicates an element type code outside the supported set.
	ErrUnknownKind = errors.New("bigmat: unknown element kind")

	// ErrShape indicates a buffer whose length or alignment does not match
	// the declared shape.
	ErrShape = errors.New("bigmat: buffer does not match declared shape")

	// ErrKindMismatch indicates an accessor that requires a different
	// element kind than the view holds.
	ErrKindMismatch = errors.New("bigmat: element kind mismatch")
)

// View is a read-only matrix view over memory owned elsewhere.
type View struct {
	kind ElemKind
	rows int
	cols int
	data []byte
}

// NewView wraps data as a rows×cols column-major matrix of the given kind.
// The slice must hold exactly rows*cols elements and be aligned to the
// element width; both violations are reported as ErrShape. The view reads
// the slice for its whole lifetime and never writes it.
func NewView(data []byte, kind ElemKind, rows, cols int) (*View, error) {
	esz := kind.Size()
	if esz == 0 {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownKind, uint8(kind))
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimension %d×%d", ErrShape, rows, cols)
	}
	if len(data) != rows*cols*esz {
		return nil, fmt.Errorf("%w: have %d bytes, want %d×%d×%d = %d",
			ErrShape, len(data), rows, cols, esz, rows*cols*esz)
	}
	if len(data) > 0 && uintptr(unsafe.Pointer(&data[0]))%uintptr(esz) != 0 {
		return nil, fmt.Errorf("%w: buffer is not %d-byte aligned", ErrShape, esz)
	}
	return &View{kind: kind, rows: rows, cols: cols, data: data}, nil
}

// Kind returns the element kind of the view.
func (v *View) Kind() ElemKind { return v.kind }

// Dims returns the matrix dimensions.
func (v *View) Dims() (rows, cols int) { return v.rows, v.cols }

// At returns element (i, j) widened to float64. It panics when the indices
// are out of range, matching slice indexing semantics.
func (v *View) At(i, j int) float64 {
	if i < 0 || i >= v.rows || j < 0 || j >= v.cols {
		panic(fmt.Sprintf("bigmat: index (%d,%d) out of range %d×%d", i, j, v.rows, v.cols))
	}
	// Column-major: element (i, j) lives at j*rows + i.
	idx := j*v.rows + i
	base := unsafe.Pointer(&v.data[0])
	switch v.kind {
	case Int8:
		return float64(unsafe.Slice((*int8)(base), v.rows*v.cols)[idx])
	case Int16:
		return float64(unsafe.Slice((*int16)(base), v.rows*v.cols)[idx])
	case Int32:
		return float64(unsafe.Slice((*int32)(base), v.rows*v.cols)[idx])
	default:
		return unsafe.Slice((*float64)(base), v.rows*v.cols)[idx]
	}
}

// Float64s returns the underlying buffer as a column-major float64 slice
// without copying. The view must hold Float64 elements.
func (v *View) Float64s() ([]float64, error) {
	if v.kind != Float64 {
		return nil, fmt.Errorf("%w: view holds %s", ErrKindMismatch, v.kind)
	}
	if v.rows*v.cols == 0 {
		return nil, nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&v.data[0])), v.rows*v.cols), nil
}

// Dense converts the view to a freshly-ordered row-major float64 slice of
// length rows*cols, widening integer kinds. dst may be nil or a reusable
// buffer of sufficient length.
func (v *View) Dense(dst []float64) ([]float64, error) {
	want := v.rows * v.cols
	if dst == nil {
		dst = make([]float64, want)
	} else if len(dst) < want {
		return nil, fmt.Errorf("%w: dst has length %d, want %d", ErrShape, len(dst), want)
	}
	dst = dst[:want]
	if want == 0 {
		return dst, nil
	}

	base := unsafe.Pointer(&v.data[0])
	switch v.kind {
	case Int8:
		src := unsafe.Slice((*int8)(base), want)
		for j := 0; j < v.cols; j++ {
			col := src[j*v.rows : (j+1)*v.rows]
			for i, e := range col {
				dst[i*v.cols+j] = float64(e)
			}
		}
	case Int16:
		src := unsafe.Slice((*int16)(base), want)
		for j := 0; j < v.cols; j++ {
			col := src[j*v.rows : (j+1)*v.rows]
			for i, e := range col {
				dst[i*v.cols+j] = float64(e)
			}
		}
	case Int32:
		src := unsafe.Slice((*int32)(base), want)
		for j := 0; j < v.cols; j++ {
			col := src[j*v.rows : (j+1)*v.rows]
			for i, e := range col {
				dst[i*v.cols+j] = float64(e)
			}
		}
	default:
		src := unsafe.Slice((*float64)(base), want)
		for j := 0; j < v.cols; j++ {
			col := src[j*v.rows : (j+1)*v.rows]
			for i, e := range col {
				dst[i*v.cols+j] = e
			}
		}
	}
	return dst, nil
}
