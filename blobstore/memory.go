package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStore is an in-memory BlobStore for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Put stores a copy of data under name.
func (m *MemoryStore) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = bytes.Clone(data)
}

// Open returns a reader over the stored bytes.
func (m *MemoryStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	data, ok := m.blobs[name]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &memoryBlob{Reader: bytes.NewReader(data), size: int64(len(data))}, nil
}

type memoryBlob struct {
	*bytes.Reader
	size int64
}

func (b *memoryBlob) Close() error { return nil }
func (b *memoryBlob) Size() int64  { return b.size }

var _ io.ReadCloser = (*memoryBlob)(nil)
