package mmap

import (
	"fmt"
	"math"
	"os"
	"sync/atomic"
)

// Mapping is a read-only memory-mapped file.
type Mapping struct {
	data   []byte
	path   string
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path. Empty files yield an empty Mapping.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size < 0 || uint64(size) > math.MaxInt {
		return nil, fmt.Errorf("%w: %s has %d bytes", ErrInvalidSize, path, size)
	}
	if size == 0 {
		return &Mapping{path: path}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}
	return &Mapping{data: data, path: path, unmap: unmap}, nil
}

// Path returns the mapped file's path.
func (m *Mapping) Path() string { return m.path }

// Size returns the mapping length in bytes.
func (m *Mapping) Size() int64 { return int64(len(m.data)) }

// Closed reports whether Close has been called.
func (m *Mapping) Closed() bool { return m.closed.Load() }

// Slice returns the n bytes starting at off. The slice aliases the mapping
// and is only valid until Close.
func (m *Mapping) Slice(off int64, n int) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || n < 0 || off > int64(len(m.data))-int64(n) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrOutOfBounds, off, off+int64(n), len(m.data))
	}
	return m.data[off : off+int64(n) : off+int64(n)], nil
}

// Advise hints the kernel about the expected access pattern of the whole
// mapping.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return osAdvise(m.data, pattern)
}

// Close unmaps the file. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	data := m.data
	m.data = nil
	if m.unmap == nil || data == nil {
		return nil
	}
	return m.unmap(data)
}
