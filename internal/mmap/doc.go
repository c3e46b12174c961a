// Package mmap maps files read-only into memory.
//
//	m, err := mmap.Open("glove.6B.50d.vec.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	block, err := m.Slice(off, blockSize)
//
// Unix uses mmap(2) and madvise(2). Windows uses CreateFileMapping and
// MapViewOfFile; Advise is a no-op there.
//
// A Mapping is safe for concurrent readers. Close must not race with readers:
// the owner closes it once no lookups are in flight. Accessors called after
// Close fail with ErrClosed instead of touching unmapped memory.
package mmap
