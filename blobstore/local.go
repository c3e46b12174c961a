package blobstore

import (
	"context"
	"path/filepath"

	"github.com/hupe1980/glovebin/internal/fs"
)

// LocalStore implements BlobStore on the local filesystem.
type LocalStore struct {
	root string
	fs   fs.FileSystem
}

// NewLocalStore creates a LocalStore rooted at root. Absolute names are
// resolved as-is when root is empty.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root, fs: fs.Default}
}

// NewLocalStoreFS is NewLocalStore on a custom filesystem.
func NewLocalStoreFS(root string, fsys fs.FileSystem) *LocalStore {
	return &LocalStore{root: root, fs: fsys}
}

// Open opens a file for reading.
func (s *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(filepath.Join(s.root, name))
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &localBlob{File: f, size: info.Size()}, nil
}

type localBlob struct {
	fs.File
	size int64
}

func (b *localBlob) Size() int64 { return b.size }
