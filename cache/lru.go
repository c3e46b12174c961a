package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU adapts a golang-lru cache to Cache. Cost is ignored.
type LRU[V any] struct {
	c *lru.Cache[string, V]
}

// NewLRU returns a cache holding at most entries values.
func NewLRU[V any](entries int) (*LRU[V], error) {
	c, err := lru.New[string, V](entries)
	if err != nil {
		return nil, fmt.Errorf("cache: lru: %w", err)
	}
	return &LRU[V]{c: c}, nil
}

// Get returns the value for key and marks it recently used.
func (l *LRU[V]) Get(key string) (V, bool) { return l.c.Get(key) }

// Set adds or replaces key, evicting the least recently used entry when
// full. It always admits.
func (l *LRU[V]) Set(key string, v V, _ int64) bool {
	l.c.Add(key, v)
	return true
}

// Contains reports whether key is cached without updating its recency.
func (l *LRU[V]) Contains(key string) bool { return l.c.Contains(key) }

// Close drops all entries.
func (l *LRU[V]) Close() { l.c.Purge() }
