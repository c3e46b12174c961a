package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/glovebin/vector"
)

// Result is the outcome of an offloaded lookup.
type Result[V any] struct {
	Value V
	Err   error
}

// Reader is the capability set shared by stores and their decorators.
type Reader[V any] interface {
	// Contains reports whether token is present.
	Contains(token string) bool

	// Lookup returns token's vector or the absent value of V.
	Lookup(token string) (V, error)

	// LookupAsync runs Lookup on a worker and delivers exactly one Result.
	// The mapped read itself still blocks the worker.
	LookupAsync(ctx context.Context, token string) <-chan Result[V]
}

// Strategy decides how vectors are returned to callers.
type Strategy[V any] interface {
	// Absent is returned for tokens that are not in the store.
	Absent() V
	// Present wraps a decoded vector.
	Present(d vector.Dense) V
}

// Boxed returns vectors through the vector.Vector interface; absent is nil.
type Boxed struct{}

func (Boxed) Absent() vector.Vector                 { return nil }
func (Boxed) Present(d vector.Dense) vector.Vector { return d }

// Concrete returns vector.Dense values; absent is vector.Empty.
type Concrete struct{}

func (Concrete) Absent() vector.Dense                 { return vector.Empty }
func (Concrete) Present(d vector.Dense) vector.Dense { return d }

// Accessor resolves tokens against a Mapped store using strategy S.
type Accessor[V any] struct {
	m     *Mapped
	s     Strategy[V]
	owned bool
}

var (
	_ Reader[vector.Vector] = (*Accessor[vector.Vector])(nil)
	_ Reader[vector.Dense]  = (*Accessor[vector.Dense])(nil)
)

// NewAccessor wraps m. Closing the accessor does not close m.
func NewAccessor[V any](m *Mapped, s Strategy[V]) *Accessor[V] {
	return &Accessor[V]{m: m, s: s}
}

// OpenBoxed opens the store at prefix with the Boxed strategy.
func OpenBoxed(prefix string, opts ...Option) (*Accessor[vector.Vector], error) {
	return openOwned[vector.Vector](prefix, Boxed{}, opts)
}

// OpenDense opens the store at prefix with the Concrete strategy.
func OpenDense(prefix string, opts ...Option) (*Accessor[vector.Dense], error) {
	return openOwned[vector.Dense](prefix, Concrete{}, opts)
}

func openOwned[V any](prefix string, s Strategy[V], opts []Option) (*Accessor[V], error) {
	m, err := OpenPrefix(prefix, opts...)
	if err != nil {
		return nil, err
	}
	return &Accessor[V]{m: m, s: s, owned: true}, nil
}

// Mapped returns the underlying store.
func (a *Accessor[V]) Mapped() *Mapped { return a.m }

// Contains reports whether token is present.
func (a *Accessor[V]) Contains(token string) bool {
	return a.m.Contains(token)
}

// Lookup returns token's vector, or the strategy's absent value.
func (a *Accessor[V]) Lookup(token string) (V, error) {
	d, err := a.m.LookupDense(token)
	if err != nil || d.IsEmpty() {
		return a.s.Absent(), err
	}
	return a.s.Present(d), nil
}

// LookupAsync performs Lookup on a worker goroutine bounded by the store's
// controller. The channel is buffered and receives exactly one Result.
func (a *Accessor[V]) LookupAsync(ctx context.Context, token string) <-chan Result[V] {
	out := make(chan Result[V], 1)
	go func() {
		defer close(out)
		if err := a.m.rc.AcquireWorker(ctx); err != nil {
			out <- Result[V]{Value: a.s.Absent(), Err: err}
			return
		}
		defer a.m.rc.ReleaseWorker()

		v, err := a.Lookup(token)
		out <- Result[V]{Value: v, Err: err}
	}()
	return out
}

// LookupMany looks up tokens concurrently, bounded by the store's worker
// count. Results are positionally aligned with tokens.
func (a *Accessor[V]) LookupMany(ctx context.Context, tokens []string) ([]V, error) {
	return lookupMany(ctx, a, tokens, int(a.m.rc.Workers()))
}

// Close closes the underlying store if the accessor opened it.
func (a *Accessor[V]) Close() error {
	if !a.owned {
		return nil
	}
	return a.m.Close()
}

func lookupMany[V any](ctx context.Context, r Reader[V], tokens []string, limit int) ([]V, error) {
	out := make([]V, len(tokens))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, tok := range tokens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := r.Lookup(tok)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// LookupMany is the generic form of Accessor.LookupMany for any Reader,
// with at most limit concurrent lookups (0 means unbounded).
func LookupMany[V any](ctx context.Context, r Reader[V], tokens []string, limit int) ([]V, error) {
	return lookupMany(ctx, r, tokens, limit)
}
