package fs

import (
	"io"
	"os"
	"path/filepath"
)

// File is an open file.
type File interface {
	io.ReadWriteCloser
	Sync() error
	Stat() (os.FileInfo, error)
	Name() string
}

// FileSystem abstracts the filesystem for testability.
type FileSystem interface {
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	CreateTemp(dir, pattern string) (File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
}

// LocalFS implements FileSystem with the os package.
type LocalFS struct{}

func (LocalFS) Open(name string) (File, error) { return os.Open(name) }

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

func (LocalFS) CreateTemp(dir, pattern string) (File, error) { return os.CreateTemp(dir, pattern) }

func (LocalFS) Remove(name string) error              { return os.Remove(name) }
func (LocalFS) Rename(oldpath, newpath string) error  { return os.Rename(oldpath, newpath) }
func (LocalFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Default is the local filesystem.
var Default FileSystem = LocalFS{}

// Staged is a temporary file that replaces path once committed.
type Staged struct {
	fsys   FileSystem
	f      File
	path   string
	tmp    string
	sealed bool
	done   bool
}

// Stage creates a temporary file next to path.
func Stage(fsys FileSystem, path string) (*Staged, error) {
	if fsys == nil {
		fsys = Default
	}
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := fsys.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &Staged{fsys: fsys, f: f, path: path, tmp: f.Name()}, nil
}

// Path returns the final path.
func (s *Staged) Path() string { return s.path }

func (s *Staged) Write(p []byte) (int, error) { return s.f.Write(p) }

// Seal syncs and closes the temporary file.
func (s *Staged) Seal() error {
	if s.sealed {
		return nil
	}
	if err := s.f.Sync(); err != nil {
		return err
	}
	s.sealed = true
	return s.f.Close()
}

// Commit seals the file if needed and renames it to its final path.
func (s *Staged) Commit() error {
	if err := s.Seal(); err != nil {
		return err
	}
	if err := s.fsys.Rename(s.tmp, s.path); err != nil {
		return err
	}
	s.done = true
	return nil
}

// Discard removes the temporary file. It is a no-op after Commit.
func (s *Staged) Discard() {
	if s.done {
		return
	}
	s.done = true
	if !s.sealed {
		_ = s.f.Close()
	}
	_ = s.fsys.Remove(s.tmp)
}

// WriteAtomic creates path by writing to a temporary file in the same
// directory and renaming it into place once fill and Sync succeed. On any
// failure the temporary file is removed and path is left untouched.
func WriteAtomic(fsys FileSystem, path string, fill func(io.Writer) error) error {
	s, err := Stage(fsys, path)
	if err != nil {
		return err
	}
	defer s.Discard()

	if err := fill(s); err != nil {
		return err
	}
	return s.Commit()
}
