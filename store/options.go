package store

import (
	"log/slog"

	"github.com/hupe1980/glovebin/internal/resource"
)

type options struct {
	logger     *slog.Logger
	metrics    MetricsObserver
	dim        int
	controller *resource.Controller
}

// Option configures Open, OpenPrefix and Scan.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:  slog.New(slog.DiscardHandler),
		metrics: NoopMetricsObserver{},
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. A nil logger keeps the default, which discards.
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

// WithDimension declares the number of components per vector.
//
// It is required to open stores with fewer than two records. For larger
// stores it must agree with the inferred block size.
func WithDimension(dim int) Option {
	return func(o *options) {
		o.dim = dim
	}
}

// WithController bounds the number of concurrent offloaded lookups.
// The default allows GOMAXPROCS.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}
