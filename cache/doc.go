// Package cache provides a read-through cache in front of any store.Reader.
//
// Eviction is delegated to a bounded associative cache behind the Cache
// interface. Two implementations are provided:
//
//   - Ristretto (default): cost-bounded by a byte budget with TinyLFU
//     admission;
//   - LRU: bounded by entry count.
//
// The decorator only caches present vectors. A miss for an absent token is
// forwarded to the wrapped store every time.
//
//	base, _ := store.OpenDense("glove.6B.50d")
//	cached, _ := cache.New[vector.Dense](base, cache.Config{Name: "glove", MaxMemoryMB: 64})
//	defer cached.Close()
package cache
