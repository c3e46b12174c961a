package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// ErrUnsupportedScheme is returned by ParseURI for unknown URI schemes.
var ErrUnsupportedScheme = errors.New("blobstore: unsupported scheme")

// BlobStore opens source blobs for reading.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a sequential read handle to a blob.
type Blob interface {
	io.ReadCloser
	// Size returns the blob size in bytes.
	Size() int64
}

// Scheme identifies a storage backend.
type Scheme string

const (
	SchemeFile  Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeMinIO Scheme = "minio"
)

// Location is a parsed source URI.
type Location struct {
	Scheme Scheme
	// Bucket is empty for local files.
	Bucket string
	// Key is the object key, or the file path for local files.
	Key string
}

// ParseURI parses a source URI. Strings without a scheme are local paths.
func ParseURI(uri string) (Location, error) {
	if uri == "" {
		return Location{}, errors.New("blobstore: empty uri")
	}
	if !strings.Contains(uri, "://") {
		return Location{Scheme: SchemeFile, Key: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("blobstore: parse %q: %w", uri, err)
	}

	switch s := Scheme(u.Scheme); s {
	case SchemeFile:
		return Location{Scheme: s, Key: u.Host + u.Path}, nil
	case SchemeS3, SchemeMinIO:
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("blobstore: %q needs a bucket and a key", uri)
		}
		return Location{Scheme: s, Bucket: u.Host, Key: key}, nil
	default:
		return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// String formats the location as a URI.
func (l Location) String() string {
	if l.Scheme == SchemeFile || l.Scheme == "" {
		return l.Key
	}
	return string(l.Scheme) + "://" + l.Bucket + "/" + l.Key
}

// Base returns the last element of the key.
func (l Location) Base() string {
	return filepath.Base(filepath.FromSlash(l.Key))
}
