package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri  string
		want Location
	}{
		{"glove.txt", Location{Scheme: SchemeFile, Key: "glove.txt"}},
		{"/data/glove.txt", Location{Scheme: SchemeFile, Key: "/data/glove.txt"}},
		{"file:///data/glove.txt", Location{Scheme: SchemeFile, Key: "/data/glove.txt"}},
		{"s3://emb/glove/840B.txt.gz", Location{Scheme: SchemeS3, Bucket: "emb", Key: "glove/840B.txt.gz"}},
		{"minio://emb/6B.txt", Location{Scheme: SchemeMinIO, Bucket: "emb", Key: "6B.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseURI(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseURI("gs://b/k")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
	_, err = ParseURI("s3://bucket-only")
	assert.Error(t, err)
	_, err = ParseURI("")
	assert.Error(t, err)
}

func TestLocation_String(t *testing.T) {
	l := Location{Scheme: SchemeS3, Bucket: "b", Key: "dir/glove.txt.zst"}
	assert.Equal(t, "s3://b/dir/glove.txt.zst", l.String())
	assert.Equal(t, "glove.txt.zst", l.Base())
	assert.Equal(t, "x.txt", Location{Scheme: SchemeFile, Key: "x.txt"}.String())
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("cat 1 2\n"), 0o644))
	s := NewLocalStore(dir)

	b, err := s.Open(t.Context(), "a.txt")
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, int64(8), b.Size())
	data, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "cat 1 2\n", string(data))

	_, err = s.Open(t.Context(), "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = s.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	src := []byte("dog 0 1\n")
	s.Put("d.txt", src)
	src[0] = 'x'

	b, err := s.Open(t.Context(), "d.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(b)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Equal(t, "dog 0 1\n", string(data))
	assert.Equal(t, int64(8), b.Size())

	_, err = s.Open(t.Context(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
