package glovebin

import (
	"context"

	"github.com/hupe1980/glovebin/cache"
	"github.com/hupe1980/glovebin/convert"
	"github.com/hupe1980/glovebin/store"
	"github.com/hupe1980/glovebin/vector"
)

// Reader is the capability set shared by stores and caches.
type Reader[V any] = store.Reader[V]

// Open opens the store at prefix. Lookups return nil for absent tokens.
func Open(prefix string, opts ...Option) (*store.Accessor[vector.Vector], error) {
	o := applyOptions(opts)
	a, err := store.OpenBoxed(prefix, o.storeOptions()...)
	logOpen(&o, prefix, a, err)
	return a, err
}

// OpenDense opens the store at prefix. Lookups return vector.Empty for
// absent tokens.
func OpenDense(prefix string, opts ...Option) (*store.Accessor[vector.Dense], error) {
	o := applyOptions(opts)
	a, err := store.OpenDense(prefix, o.storeOptions()...)
	logOpen(&o, prefix, a, err)
	return a, err
}

func logOpen[V any](o *options, prefix string, a *store.Accessor[V], err error) {
	if err != nil {
		o.logger.LogOpen(context.Background(), prefix, 0, 0, err)
		return
	}
	m := a.Mapped()
	o.logger.LogOpen(context.Background(), prefix, m.Len(), m.Dim(), nil)
}

// Cached wraps r in a read-through cache configured by WithCache. Closing
// the cache closes r.
func Cached[V any](r Reader[V], opts ...Option) (*cache.Accessor[V], error) {
	o := applyOptions(opts)
	return cache.New(r, o.cache, o.cacheOptions()...)
}

// CreateBinary converts the text file at path into a store next to it,
// named by convert.OutputPrefix.
func CreateBinary(ctx context.Context, path string, opts ...Option) (convert.Stats, error) {
	o := applyOptions(opts)
	st, err := convert.ConvertFile(ctx, path, "", o.convertOptions()...)
	o.logger.LogConvert(ctx, path, st, err)
	return st, err
}
