package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub")
	lfs := LocalFS{}
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "a.bin")
	f, err := lfs.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	info, err := lfs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	renamed := filepath.Join(dir, "b.bin")
	require.NoError(t, lfs.Rename(path, renamed))

	r, err := lfs.Open(renamed)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "hello", string(data))

	require.NoError(t, lfs.Remove(renamed))
	_, err = lfs.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "emb.vec.bin")

	err := WriteAtomic(nil, path, func(w io.Writer) error {
		_, err := w.Write([]byte("payload"))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomic_Faults(t *testing.T) {
	tests := []struct {
		name  string
		fault Fault
	}{
		{"write", Fault{FailAfterBytes: 3}},
		{"sync", Fault{FailAfterBytes: -1, FailOnSync: true}},
		{"close", Fault{FailAfterBytes: -1, FailOnClose: true}},
		{"rename", Fault{FailAfterBytes: -1, FailOnRename: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "emb.vec.bin")
			ffs := NewFaultyFS(nil)
			ffs.AddRule(".vec.bin", tt.fault)

			err := WriteAtomic(ffs, path, func(w io.Writer) error {
				_, err := w.Write([]byte("payload"))
				return err
			})
			assert.ErrorIs(t, err, ErrInjected)

			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err))
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "temporary file must be removed")
		})
	}
}

func TestStaged(t *testing.T) {
	dir := t.TempDir()
	a, err := Stage(nil, filepath.Join(dir, "a.bin"))
	require.NoError(t, err)
	b, err := Stage(nil, filepath.Join(dir, "b.bin"))
	require.NoError(t, err)
	defer a.Discard()
	defer b.Discard()

	_, err = a.Write([]byte("alpha"))
	require.NoError(t, err)
	_, err = b.Write([]byte("beta"))
	require.NoError(t, err)

	require.NoError(t, a.Seal())
	require.NoError(t, b.Seal())
	_, err = os.Stat(a.Path())
	assert.True(t, os.IsNotExist(err), "nothing is visible before commit")

	require.NoError(t, a.Commit())
	b.Discard()

	data, err := os.ReadFile(filepath.Join(dir, "a.bin"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.bin", entries[0].Name())
}

func TestStaged_SealFailure(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("x.bin", Fault{FailAfterBytes: -1, FailOnSync: true})

	s, err := Stage(ffs, filepath.Join(dir, "x.bin"))
	require.NoError(t, err)
	_, err = s.Write([]byte("data"))
	require.NoError(t, err)
	assert.ErrorIs(t, s.Commit(), ErrInjected)
	s.Discard()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFaultyFS_Written(t *testing.T) {
	ffs := NewFaultyFS(LocalFS{})
	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "x"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("abcd"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, int64(4), ffs.Written())
}
