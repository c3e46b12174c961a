package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/glovebin/blobstore"
)

// Client is the subset of the S3 API used by Store.
type Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ manager.DownloadAPIClient = Client(nil)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client Client
	bucket string
	opts   options
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore creates a Store on an existing client.
func NewStore(client Client, bucket string, opts ...Option) *Store {
	return &Store{client: client, bucket: bucket, opts: applyOptions(opts)}
}

// New creates a Store with a client built from the default AWS config chain.
func New(ctx context.Context, bucket string, opts ...Option) (*Store, error) {
	o := applyOptions(opts)

	var loadOpts []func(*config.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = aws.String(o.endpoint)
		}
		so.UsePathStyle = o.pathStyle
	})
	return &Store{client: client, bucket: bucket, opts: o}, nil
}

func (s *Store) key(name string) string {
	return path.Join(s.opts.prefix, name)
}

// Open opens an object for sequential reading.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapError(err)
	}
	size := aws.ToInt64(head.ContentLength)

	if s.opts.parallel && size >= s.opts.threshold {
		return s.download(ctx, key, size)
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &streamBlob{ReadCloser: resp.Body, size: size}, nil
}

// download fetches the object into a temporary file with parallel ranged
// GETs. The file is removed when the blob is closed.
func (s *Store) download(ctx context.Context, key string, size int64) (blobstore.Blob, error) {
	f, err := os.CreateTemp(s.opts.tempDir, "glovebin-s3-*")
	if err != nil {
		return nil, err
	}
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(f.Name())
	}

	d := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		d.PartSize = s.opts.partSize
		d.Concurrency = s.opts.concurrency
	})
	n, err := d.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		cleanup()
		return nil, mapError(err)
	}
	if n != size {
		cleanup()
		return nil, fmt.Errorf("s3: downloaded %d of %d bytes for %q", n, size, key)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, err
	}
	return &fileBlob{File: f, size: size}, nil
}

func mapError(err error) error {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return blobstore.ErrNotFound
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return blobstore.ErrNotFound
	}
	return err
}

type streamBlob struct {
	io.ReadCloser
	size int64
}

func (b *streamBlob) Size() int64 { return b.size }

type fileBlob struct {
	*os.File
	size int64
}

func (b *fileBlob) Size() int64 { return b.size }

func (b *fileBlob) Close() error {
	err := b.File.Close()
	if rmErr := os.Remove(b.File.Name()); err == nil {
		err = rmErr
	}
	return err
}
