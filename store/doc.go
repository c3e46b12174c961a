// Package store opens a converted embedding store for random access.
//
// A store is a pair of files sharing a prefix:
//
//	<prefix>.dict.bin   token/offset dictionary (see package codec)
//	<prefix>.vec.bin    fixed-size blocks of little-endian float64 values
//
// The block size is not recorded anywhere. Offsets satisfy
// offset[i] = i*blockSize, so the block size is the offset of the second
// dictionary record. Dictionaries with fewer than two records therefore fail
// to open with ErrUndeterminedBlockSize unless the caller supplies the
// dimension with WithDimension.
//
// Mapped loads the dictionary into memory and maps the vector file
// read-only. Accessor layers a return strategy on top of it:
//
//	boxed, err := store.OpenBoxed("glove.6B.50d")   // Lookup returns vector.Vector, nil when absent
//	dense, err := store.OpenDense("glove.6B.50d")   // Lookup returns vector.Dense, vector.Empty when absent
//
// A missing token is never an error.
//
// Lookups are safe for concurrent use. Close is not: the owner calls it once
// after all lookups have returned. Lookups issued after Close fail with
// ErrClosed.
package store
