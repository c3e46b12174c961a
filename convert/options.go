package convert

import (
	"log/slog"
	"time"

	"github.com/hupe1980/glovebin/internal/fs"
	"github.com/hupe1980/glovebin/internal/resource"
)

// DefaultProgressInterval is the minimum time between progress log lines.
const DefaultProgressInterval = 5 * time.Second

type options struct {
	logger           *slog.Logger
	metrics          MetricsObserver
	skipHeader       bool
	compression      Compression
	controller       *resource.Controller
	fs               fs.FileSystem
	progressInterval time.Duration
}

// Option configures a conversion.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		logger:           slog.New(slog.DiscardHandler),
		metrics:          NoopMetricsObserver{},
		compression:      CompressionAuto,
		fs:               fs.Default,
		progressInterval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

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

// WithSkipHeader ignores the first line of text sources.
func WithSkipHeader(skip bool) Option {
	return func(o *options) { o.skipHeader = skip }
}

// WithCompression overrides compression detection by file extension.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithController throttles source reads by the controller's IO budget.
func WithController(rc *resource.Controller) Option {
	return func(o *options) { o.controller = rc }
}

// WithFileSystem sets the filesystem used for output files.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithProgressInterval sets the minimum time between progress log lines.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) { o.progressInterval = d }
}
