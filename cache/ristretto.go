package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// avgEntryBytes sizes the admission counters: 50 dimensions plus overhead.
const avgEntryBytes = 512

// Ristretto adapts a ristretto cache to Cache.
type Ristretto[V any] struct {
	c *ristretto.Cache
}

// NewRistretto returns a cache bounded by maxBytes of total cost.
func NewRistretto[V any](maxBytes int64) (*Ristretto[V], error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("cache: invalid budget %d", maxBytes)
	}
	counters := min(max(maxBytes/avgEntryBytes*10, 1e4), 1e7)

	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: counters,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: ristretto: %w", err)
	}
	return &Ristretto[V]{c: c}, nil
}

// Get returns the value for key. A hit counts as an access for admission
// and eviction.
func (r *Ristretto[V]) Get(key string) (V, bool) {
	raw, ok := r.c.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	return v, ok
}

// Set waits for the write buffer to drain so that an admitted value is
// visible to the next Get. Ristretto accepts writes into its buffer before
// the admission policy runs, so admission is confirmed against the store.
func (r *Ristretto[V]) Set(key string, v V, cost int64) bool {
	if !r.c.Set(key, v, cost) {
		return false
	}
	r.c.Wait()
	return r.Contains(key)
}

// Contains reports whether key is stored. It reads the store directly and
// is not counted as an access by the admission policy or the statistics.
func (r *Ristretto[V]) Contains(key string) bool {
	_, ok := r.c.GetTTL(key)
	return ok
}

// Close stops the cache's background goroutines.
func (r *Ristretto[V]) Close() { r.c.Close() }
