// Package glovebin stores GloVe word embeddings in a compact binary form and
// serves random-access lookups over a memory-mapped vector file.
//
// # Files
//
// A store is a pair of files sharing a prefix:
//
//	<prefix>.dict.bin  varint-prefixed tokens, each followed by a varint offset
//	<prefix>.vec.bin   fixed-size blocks of little-endian float64s
//
// The block size is not stored. It is the offset of the second dictionary
// record, so a store needs at least two records unless the dimension is
// given with WithDimension.
//
// # Quick Start
//
//	ctx := context.Background()
//	if _, err := glovebin.CreateBinary(ctx, "glove.6B.50d.txt"); err != nil {
//	    return err
//	}
//
//	db, err := glovebin.Open("glove.6B.50d")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	d, err := glovebin.Distance(ctx, db, "cat", "dog")
//
// # Caching
//
// Any store-shaped reader can be wrapped in a read-through cache. Only
// present vectors are cached:
//
//	cached, err := glovebin.Cached(db, glovebin.WithCache(cache.Config{MaxMemoryMB: 256}))
//
// # Vectors
//
// Lookups return vector.Vector (nil when absent) from Open, or vector.Dense
// (vector.Empty when absent) from OpenDense. vector.View operates in place on
// caller-owned storage and pairs with store.Mapped.ReadInto.
//
// # Distance
//
// CosineDistance returns 1 - a·b/(|a||b|). Absent, empty or zero vectors
// are maximally distant (1.0) rather than an error.
package glovebin
