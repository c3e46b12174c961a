package s3

import "github.com/aws/aws-sdk-go-v2/feature/s3/manager"

type options struct {
	prefix    string
	region    string
	endpoint  string
	pathStyle bool

	parallel    bool
	partSize    int64
	concurrency int
	threshold   int64
	tempDir     string
}

// Option configures a Store.
type Option func(*options)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion sets the AWS region used by New.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint overrides the S3 endpoint used by New and switches to
// path-style addressing.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
		o.pathStyle = true
	}
}

// WithParallelDownload fetches objects with concurrent ranged GETs into a
// temporary file. Zero values select the manager defaults.
func WithParallelDownload(partSize int64, concurrency int) Option {
	return func(o *options) {
		o.parallel = true
		o.partSize = partSize
		o.concurrency = concurrency
	}
}

// WithDownloadThreshold sets the object size from which parallel downloads
// are used. Smaller objects are streamed directly.
func WithDownloadThreshold(n int64) Option {
	return func(o *options) { o.threshold = n }
}

// WithTempDir sets the directory for parallel download files.
func WithTempDir(dir string) Option {
	return func(o *options) { o.tempDir = dir }
}

func applyOptions(opts []Option) options {
	o := options{
		partSize:    manager.DefaultDownloadPartSize,
		concurrency: manager.DefaultDownloadConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.partSize <= 0 {
		o.partSize = manager.DefaultDownloadPartSize
	}
	if o.concurrency <= 0 {
		o.concurrency = manager.DefaultDownloadConcurrency
	}
	return o
}
