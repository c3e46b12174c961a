// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "embeddings",
//	    s3.WithPrefix("glove/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	blob, err := store.Open(ctx, "glove.840B.300d.txt.gz")
//
// Large objects can be fetched with parallel ranged GETs into a local
// temporary file before they are streamed:
//
//	store, err := s3.New(ctx, "embeddings", s3.WithParallelDownload(64<<20, 8))
package s3
