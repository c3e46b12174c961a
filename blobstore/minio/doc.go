// Package minio provides a blobstore.BlobStore backed by the MinIO client.
//
// It works with MinIO and other S3-compatible services (Ceph, Garage,
// SeaweedFS) without pulling in the AWS SDK.
//
//	store, err := minio.New("localhost:9000", "embeddings",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	)
//	blob, err := store.Open(ctx, "glove.6B.50d.txt")
package minio
