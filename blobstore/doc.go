// Package blobstore abstracts where GloVe text sources are read from.
//
// A BlobStore opens a named blob for sequential reading. The conversion
// pipeline streams the blob once, so implementations only need to provide
// a reader and the blob size.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3, optionally with parallel ranged downloads
//   - minio.Store: MinIO and other S3-compatible services
//
// Sources are addressed by URI:
//
//	glove.6B.50d.txt
//	file:///data/glove.6B.50d.txt
//	s3://embeddings/glove/glove.840B.300d.txt.gz
//	minio://embeddings/glove.6B.50d.txt.zst
//
// ParseURI splits such a URI into a Location.
package blobstore
