package minio

import (
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/glovebin/blobstore"
)

type options struct {
	prefix    string
	region    string
	secure    bool
	accessKey string
	secretKey string
}

// Option configures a Store created by New.
type Option func(*options)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion sets the bucket region and skips the location lookup.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithSecure enables HTTPS.
func WithSecure(secure bool) Option {
	return func(o *options) { o.secure = secure }
}

// WithCredentials sets static access credentials.
func WithCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// Store implements blobstore.BlobStore for MinIO.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore creates a Store on an existing client.
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: rootPrefix}
}

// New creates a client for endpoint (host:port) and wraps it in a Store.
func New(endpoint, bucket string, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	mo := &minio.Options{
		Secure:       o.secure,
		Region:       o.region,
		BucketLookup: minio.BucketLookupPath,
	}
	if o.accessKey != "" {
		mo.Creds = credentials.NewStaticV4(o.accessKey, o.secretKey, "")
	} else {
		mo.Creds = credentials.NewEnvMinio()
	}

	client, err := minio.New(endpoint, mo)
	if err != nil {
		return nil, fmt.Errorf("minio: create client: %w", err)
	}
	return NewStore(client, bucket, o.prefix), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens an object for sequential reading.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, mapError(err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	return &minioBlob{Object: obj, size: info.Size}, nil
}

func mapError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return blobstore.ErrNotFound
	}
	return err
}

type minioBlob struct {
	*minio.Object
	size int64
}

func (b *minioBlob) Size() int64 { return b.size }
