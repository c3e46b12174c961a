package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/glovebin/store"
	"github.com/hupe1980/glovebin/vector"
)

// entryOverhead approximates the per-entry bookkeeping charged on top of the
// vector payload.
const entryOverhead = 64

type options struct {
	logger     *slog.Logger
	metrics    MetricsObserver
	closeInner bool
}

// Option configures an Accessor.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics observer.
func WithMetrics(m MetricsObserver) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// CloseInner makes Close also close the wrapped reader if it is an io.Closer.
func CloseInner() Option {
	return func(o *options) {
		o.closeInner = true
	}
}

// Accessor is a read-through cache over a store.Reader.
type Accessor[V any] struct {
	name  string
	inner store.Reader[V]
	cache Cache[V]
	group singleflight.Group

	logger     *slog.Logger
	metrics    MetricsObserver
	closeInner bool
}

var _ store.Reader[int] = (*Accessor[int])(nil)

// New wraps inner with a cache built from cfg.
func New[V any](inner store.Reader[V], cfg Config, opts ...Option) (*Accessor[V], error) {
	cfg = cfg.withDefaults()

	var (
		c   Cache[V]
		err error
	)
	switch cfg.Policy {
	case PolicyRistretto:
		c, err = NewRistretto[V](BudgetBytes(cfg.MaxMemoryMB))
	case PolicyLRU:
		c, err = NewLRU[V](cfg.MaxEntries)
	default:
		return nil, fmt.Errorf("cache: unknown policy %q", cfg.Policy)
	}
	if err != nil {
		return nil, err
	}

	a := NewWithCache(inner, c, cfg.Name, opts...)
	a.logger.Debug("cache created", "name", cfg.Name, "policy", cfg.Policy,
		"max_memory_mb", cfg.MaxMemoryMB, "max_entries", cfg.MaxEntries)
	return a, nil
}

// NewWithCache wraps inner with a caller-supplied cache. The accessor takes
// ownership of c.
func NewWithCache[V any](inner store.Reader[V], c Cache[V], name string, opts ...Option) *Accessor[V] {
	o := options{
		logger:  slog.New(slog.DiscardHandler),
		metrics: NoopMetricsObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if name == "" {
		name = DefaultName
	}
	return &Accessor[V]{
		name:       name,
		inner:      inner,
		cache:      c,
		logger:     o.logger,
		metrics:    o.metrics,
		closeInner: o.closeInner,
	}
}

// Name returns the cache name.
func (a *Accessor[V]) Name() string { return a.name }

// Contains reports whether token is cached or present in the wrapped store.
func (a *Accessor[V]) Contains(token string) bool {
	return a.cache.Contains(token) || a.inner.Contains(token)
}

// Lookup returns the cached vector for token, or reads it through the
// wrapped store and caches it if present. Concurrent misses for the same
// token share one underlying lookup.
//
// Like the store, every call returns vector storage owned by the caller:
// mutating a result never changes the cached entry.
func (a *Accessor[V]) Lookup(token string) (V, error) {
	if v, ok := a.cache.Get(token); ok {
		a.metrics.OnCacheHit(a.name)
		return detach(v), nil
	}
	a.metrics.OnCacheMiss(a.name)

	res, err, _ := a.group.Do(token, func() (any, error) {
		v, err := a.inner.Lookup(token)
		if err == nil {
			a.admit(token, v)
		}
		return v, err
	})
	v, _ := res.(V)
	return v, err
}

// LookupAsync serves hits immediately and forwards misses to the wrapped
// store's LookupAsync, caching present results.
func (a *Accessor[V]) LookupAsync(ctx context.Context, token string) <-chan store.Result[V] {
	out := make(chan store.Result[V], 1)
	if v, ok := a.cache.Get(token); ok {
		a.metrics.OnCacheHit(a.name)
		out <- store.Result[V]{Value: detach(v)}
		close(out)
		return out
	}
	a.metrics.OnCacheMiss(a.name)

	go func() {
		defer close(out)
		var r store.Result[V]
		select {
		case r = <-a.inner.LookupAsync(ctx, token):
		case <-ctx.Done():
			r.Err = ctx.Err()
		}
		if r.Err == nil {
			a.admit(token, r.Value)
		}
		out <- r
	}()
	return out
}

// LookupMany looks up tokens concurrently through the cache.
func (a *Accessor[V]) LookupMany(ctx context.Context, tokens []string, limit int) ([]V, error) {
	return store.LookupMany[V](ctx, a, tokens, limit)
}

func (a *Accessor[V]) admit(token string, v V) {
	if absent(v) {
		return
	}
	ok := a.cache.Set(token, detach(v), cost(v))
	a.metrics.OnCacheSet(a.name, ok)
	if !ok {
		a.logger.Debug("cache rejected entry", "name", a.name, "token", token)
	}
}

// Close releases the cache, and the wrapped reader when CloseInner was set.
func (a *Accessor[V]) Close() error {
	a.cache.Close()
	if a.closeInner {
		if c, ok := a.inner.(io.Closer); ok {
			return c.Close()
		}
	}
	return nil
}

// absent reports whether v is the absent value of a store strategy: a nil
// interface or an empty vector.
func absent(v any) bool {
	if v == nil {
		return true
	}
	if e, ok := v.(interface{ IsEmpty() bool }); ok {
		return e.IsEmpty()
	}
	return false
}

// detach returns a copy of v that shares no storage with it, for values
// that can be cloned.
func detach[V any](v V) V {
	if c, ok := any(v).(interface{ Clone() vector.Vector }); ok {
		if out, ok := c.Clone().(V); ok {
			return out
		}
	}
	return v
}

func cost(v any) int64 {
	if l, ok := v.(interface{ Len() int }); ok {
		return int64(l.Len())*8 + entryOverhead
	}
	return entryOverhead
}
