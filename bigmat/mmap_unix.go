//go:build unix
// +build unix

// Package bigmat file-backed views via mmap on unix platforms
package bigmat

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MappedView is a View whose backing memory is a read-only file mapping.
// The mapping, and with it every slice handed out by the view, is valid
// until Unmap is called.
type MappedView struct {
	View
	mapping []byte
}

// Map opens path and maps its contents as a rows×cols column-major matrix
// of the given kind. The file length must match the declared shape
// exactly. The mapping is shared and read-only.
func Map(path string, kind ElemKind, rows, cols int) (*MappedView, error) {
	esz := kind.Size()
	if esz == 0 {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownKind, uint8(kind))
	}

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("bigmat: open %s: %w", path, err)
	}
	// The mapping outlives the descriptor.
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("bigmat: stat %s: %w", path, err)
	}
	want := int64(rows) * int64(cols) * int64(esz)
	if st.Size != want {
		return nil, fmt.Errorf("%w: %s holds %d bytes, want %d", ErrShape, path, st.Size, want)
	}

	if want == 0 {
		v, err := NewView(nil, kind, rows, cols)
		if err != nil {
			return nil, err
		}
		return &MappedView{View: *v}, nil
	}

	mapping, err := unix.Mmap(fd, 0, int(want), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("bigmat: mmap %s: %w", path, err)
	}
	v, err := NewView(mapping, kind, rows, cols)
	if err != nil {
		unix.Munmap(mapping)
		return nil, err
	}
	return &MappedView{View: *v, mapping: mapping}, nil
}

// Unmap releases the mapping. The view and any slices obtained from it
// must not be used afterwards. Unmap is idempotent.
func (m *MappedView) Unmap() error {
	if m.mapping == nil {
		return nil
	}
	err := unix.Munmap(m.mapping)
	m.mapping = nil
	m.data = nil
	return err
}
