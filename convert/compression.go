package convert

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the encoding of a text source.
type Compression string

const (
	CompressionAuto Compression = ""
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

var extensions = map[string]Compression{
	".gz":   CompressionGzip,
	".gzip": CompressionGzip,
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".lz4":  CompressionLZ4,
}

// DetectCompression infers the compression from name's extension.
func DetectCompression(name string) Compression {
	if c, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return c
	}
	return CompressionNone
}

// Decompress wraps r in a decoder for c. CompressionAuto detects from name.
func Decompress(r io.Reader, name string, c Compression) (io.ReadCloser, error) {
	if c == CompressionAuto {
		c = DetectCompression(name)
	}
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("convert: gzip: %w", err)
		}
		return zr, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("convert: zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("convert: unknown compression %q", c)
	}
}

// OutputPrefix derives the store prefix for a source name by removing a
// compression extension and a ".txt" extension.
//
//	glove.6B.50d.txt.gz -> glove.6B.50d
func OutputPrefix(name string) string {
	ext := filepath.Ext(name)
	if _, ok := extensions[strings.ToLower(ext)]; ok {
		name = strings.TrimSuffix(name, ext)
		ext = filepath.Ext(name)
	}
	if strings.EqualFold(ext, ".txt") {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
