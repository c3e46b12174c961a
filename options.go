package glovebin

import (
	"github.com/hupe1980/glovebin/cache"
	"github.com/hupe1980/glovebin/convert"
	"github.com/hupe1980/glovebin/internal/resource"
	"github.com/hupe1980/glovebin/store"
)

type options struct {
	logger     *Logger
	metrics    MetricsObserver
	dim        int
	workers    int64
	cache      cache.Config
	skipHeader bool
	convert    []convert.Option
}

// Option configures the package-level entry points.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{logger: NoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. If nil, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsObserver reports store, cache and conversion events to m.
func WithMetricsObserver(m MetricsObserver) Option {
	return func(o *options) { o.metrics = m }
}

// WithDimension declares the vector dimension. It is required to open
// stores with fewer than two records.
func WithDimension(dim int) Option {
	return func(o *options) { o.dim = dim }
}

// WithWorkers bounds concurrent offloaded lookups. 0 means GOMAXPROCS.
func WithWorkers(n int64) Option {
	return func(o *options) { o.workers = n }
}

// WithCache configures the cache created by Cached.
func WithCache(cfg cache.Config) Option {
	return func(o *options) { o.cache = cfg }
}

// WithSkipHeader makes CreateBinary ignore the first source line.
func WithSkipHeader(skip bool) Option {
	return func(o *options) { o.skipHeader = skip }
}

// WithConvertOptions passes additional options to the conversion pipeline.
func WithConvertOptions(opts ...convert.Option) Option {
	return func(o *options) { o.convert = append(o.convert, opts...) }
}

func (o *options) storeOptions() []store.Option {
	opts := []store.Option{
		store.WithLogger(o.logger.Logger),
		store.WithController(resource.NewController(resource.Config{Workers: o.workers})),
	}
	if o.dim > 0 {
		opts = append(opts, store.WithDimension(o.dim))
	}
	if o.metrics != nil {
		opts = append(opts, store.WithMetrics(o.metrics))
	}
	return opts
}

func (o *options) cacheOptions() []cache.Option {
	opts := []cache.Option{cache.WithLogger(o.logger.Logger), cache.CloseInner()}
	if o.metrics != nil {
		opts = append(opts, cache.WithMetrics(o.metrics))
	}
	return opts
}

func (o *options) convertOptions() []convert.Option {
	opts := []convert.Option{
		convert.WithLogger(o.logger.Logger),
		convert.WithSkipHeader(o.skipHeader),
	}
	if o.metrics != nil {
		opts = append(opts, convert.WithMetrics(o.metrics))
	}
	return append(opts, o.convert...)
}
