package cache

// Cache is a bounded associative cache keyed by token.
type Cache[V any] interface {
	// Get returns the cached value for key.
	Get(key string) (V, bool)
	// Set stores v with the given cost and reports whether it was admitted.
	Set(key string, v V, cost int64) bool
	// Contains reports whether key is cached.
	Contains(key string) bool
	// Close releases the cache.
	Close()
}

// Policy names a Cache implementation.
type Policy string

const (
	// PolicyRistretto selects the cost-bounded TinyLFU cache.
	PolicyRistretto Policy = "ristretto"
	// PolicyLRU selects the entry-bounded LRU cache.
	PolicyLRU Policy = "lru"
)

// Config describes the cache created by New.
type Config struct {
	// Name identifies the cache in logs and metrics.
	Name string
	// MaxMemoryMB is the byte budget in megabytes. 0 selects DefaultBudget.
	// Only used by PolicyRistretto.
	MaxMemoryMB int64
	// Policy selects the implementation. Empty means PolicyRistretto.
	Policy Policy
	// MaxEntries bounds PolicyLRU. 0 means DefaultMaxEntries.
	MaxEntries int
}

// DefaultName is used when Config.Name is empty.
const DefaultName = "glovebin"

// DefaultMaxEntries bounds an LRU cache when Config.MaxEntries is 0.
const DefaultMaxEntries = 100_000

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Policy == "" {
		c.Policy = PolicyRistretto
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = DefaultMaxEntries
	}
	return c
}
