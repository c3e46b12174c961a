package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/glovebin/blobstore"
	"github.com/hupe1980/glovebin/internal/fs"
	"github.com/hupe1980/glovebin/internal/resource"
	"github.com/hupe1980/glovebin/store"
)

// ConvertFile converts the local text file src into a store at outPrefix.
// An empty outPrefix is derived from src with OutputPrefix.
func ConvertFile(ctx context.Context, src, outPrefix string, opts ...Option) (Stats, error) {
	o := applyOptions(opts)
	if outPrefix == "" {
		outPrefix = OutputPrefix(src)
	}
	return convertBlob(ctx, blobstore.NewLocalStoreFS("", o.fs), src, outPrefix, &o)
}

// ConvertBlob converts the text blob name from bs into a store at outPrefix.
//
// Both output files are written under temporary names and renamed into
// place only after the whole source converted successfully. On failure no
// output file is left behind.
func ConvertBlob(ctx context.Context, bs blobstore.BlobStore, name, outPrefix string, opts ...Option) (Stats, error) {
	o := applyOptions(opts)
	if outPrefix == "" {
		outPrefix = OutputPrefix(name)
	}
	return convertBlob(ctx, bs, name, outPrefix, &o)
}

func convertBlob(ctx context.Context, bs blobstore.BlobStore, name, outPrefix string, o *options) (st Stats, err error) {
	start := time.Now()
	defer func() {
		o.metrics.OnConvert(time.Since(start), st.Records, err)
	}()

	blob, err := bs.Open(ctx, name)
	if err != nil {
		return st, fmt.Errorf("convert: open source %q: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	var r io.Reader = blob
	if o.controller != nil {
		r = resource.NewReader(ctx, r, o.controller)
	}
	text, err := Decompress(r, name, o.compression)
	if err != nil {
		return st, err
	}
	defer func() { _ = text.Close() }()

	dictPath, vecPath := store.Paths(outPrefix)
	o.logger.Info("conversion started", "source", name, "size", blob.Size(),
		"dict", dictPath, "vec", vecPath)

	st, err = writeOutputs(ctx, text, name, dictPath, vecPath, o)
	if err != nil {
		o.logger.Error("conversion failed", "source", name, "records", st.Records, "error", err)
		return st, err
	}

	o.logger.Info("conversion finished", "source", name, "records", st.Records, "dim", st.Dim,
		"dict_bytes", st.DictBytes, "vec_bytes", st.VecBytes, "duration", time.Since(start))
	return st, nil
}

// writeOutputs stages both files, seals them and only then renames them into
// place, vectors first. If the dictionary rename fails the new vector file is
// removed again.
func writeOutputs(ctx context.Context, text io.Reader, name, dictPath, vecPath string, o *options) (Stats, error) {
	dict, err := fs.Stage(o.fs, dictPath)
	if err != nil {
		return Stats{}, fmt.Errorf("convert: stage %s: %w", dictPath, err)
	}
	defer dict.Discard()
	vec, err := fs.Stage(o.fs, vecPath)
	if err != nil {
		return Stats{}, fmt.Errorf("convert: stage %s: %w", vecPath, err)
	}
	defer vec.Discard()

	var dw, vw io.Writer = dict, vec
	if o.controller != nil {
		dw = resource.NewWriter(ctx, dw, o.controller)
		vw = resource.NewWriter(ctx, vw, o.controller)
	}

	st, err := writeStream(ctx, TextSource(text, o.skipHeader), dw, vw, o)
	if err != nil {
		return st, err
	}
	if st.Records == 0 {
		return st, fmt.Errorf("convert: source %q: %w", name, ErrEmptySource)
	}

	if err := dict.Seal(); err != nil {
		return st, fmt.Errorf("convert: write %s: %w", dictPath, err)
	}
	if err := vec.Seal(); err != nil {
		return st, fmt.Errorf("convert: write %s: %w", vecPath, err)
	}
	if err := vec.Commit(); err != nil {
		return st, fmt.Errorf("convert: commit %s: %w", vecPath, err)
	}
	if err := dict.Commit(); err != nil {
		if rmErr := o.fs.Remove(vecPath); rmErr != nil && !errors.Is(rmErr, blobstore.ErrNotFound) {
			o.logger.Warn("failed to remove vector file", "path", vecPath, "error", rmErr)
		}
		return st, fmt.Errorf("convert: commit %s: %w", dictPath, err)
	}
	return st, nil
}
