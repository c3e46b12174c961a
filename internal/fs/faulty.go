package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("fs: injected fault")

// Fault describes how operations on matching files fail.
type Fault struct {
	FailAfterBytes int64 // fail writes once this many bytes were written to the file; <0 disables
	FailOnSync     bool
	FailOnClose    bool
	FailOnRename   bool
	Err            error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyFS wraps a FileSystem and injects failures for files whose names
// contain a registered pattern.
type FaultyFS struct {
	FS FileSystem

	mu      sync.Mutex
	rules   map[string]Fault
	written int64
}

// NewFaultyFS wraps fsys, or Default if nil.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{FS: fsys, rules: make(map[string]Fault)}
}

// AddRule injects fault into every file whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// Written returns the number of bytes written through the wrapper.
func (f *FaultyFS) Written() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}

func (f *FaultyFS) match(name string) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			return rule, true
		}
	}
	return Fault{FailAfterBytes: -1}, false
}

func (f *FaultyFS) wrap(file File, err error) (File, error) {
	if err != nil {
		return nil, err
	}
	fault, _ := f.match(file.Name())
	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) Open(name string) (File, error) { return f.wrap(f.FS.Open(name)) }

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return f.wrap(f.FS.OpenFile(name, flag, perm))
}

func (f *FaultyFS) CreateTemp(dir, pattern string) (File, error) {
	return f.wrap(f.FS.CreateTemp(dir, pattern))
}

func (f *FaultyFS) Remove(name string) error { return f.FS.Remove(name) }

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if fault, ok := f.match(newpath); ok && fault.FailOnRename {
		return fault.err()
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) { return f.FS.Stat(name) }

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}

type faultyFile struct {
	File
	fs      *FaultyFS
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if limit := ff.fault.FailAfterBytes; limit >= 0 && ff.written+int64(len(p)) > limit {
		return 0, ff.fault.err()
	}
	n, err := ff.File.Write(p)
	ff.written += int64(n)
	ff.fs.mu.Lock()
	ff.fs.written += int64(n)
	ff.fs.mu.Unlock()
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.err()
	}
	return ff.File.Close()
}
