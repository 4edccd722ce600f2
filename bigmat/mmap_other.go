//go:build !unix
// +build !unix

// Package bigmat file-backed view stubs for platforms without mmap support
package bigmat

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates file-backed views are unavailable on this platform.
var ErrUnsupported = errors.New("bigmat: file-backed views are not supported on this platform")

// MappedView stub for platforms without mmap support.
type MappedView struct {
	View
}

// Map always fails on platforms without mmap support.
func Map(path string, kind ElemKind, rows, cols int) (*MappedView, error) {
	return nil, fmt.Errorf("%w: cannot map %s", ErrUnsupported, path)
}

// Unmap is a no-op on platforms without mmap support.
func (m *MappedView) Unmap() error {
	return nil
}
