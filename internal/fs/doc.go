// Package fs abstracts the filesystem operations used when writing and
// opening embedding stores, so tests can inject I/O failures.
//
// Production code uses [Default], which is backed by the os package.
// Tests wrap it in a [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".vec.bin", fs.Fault{FailAfterBytes: 64})
//
// Operations take no context.Context. Local filesystem calls are not
// interruptible at the syscall level; remote sources go through blobstore.
package fs
