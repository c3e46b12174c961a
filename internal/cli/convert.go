package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hupe1980/glovebin/blobstore"
	"github.com/hupe1980/glovebin/blobstore/minio"
	"github.com/hupe1980/glovebin/blobstore/s3"
	"github.com/hupe1980/glovebin/convert"
	"github.com/hupe1980/glovebin/internal/resource"
)

type convertFlags struct {
	out         string
	skipHeader  bool
	compression string
}

func newConvertCommand(a *app) *cobra.Command {
	f := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <source>",
		Short: "Convert a GloVe text file into a binary store",
		Long: `Convert reads "token v1 v2 ... vn" lines from a text source and writes
<prefix>.dict.bin and <prefix>.vec.bin. Outputs are renamed into place only
when the whole source converts.

The source is a local path or an s3://bucket/key or minio://bucket/key URI.
Compression is detected from the extension (.gz, .zst, .lz4) unless
--compression is given.

Examples:
  glovebin convert glove.6B.50d.txt
  glovebin convert --skip-header --out data/glove50 glove.6B.50d.txt.gz
  glovebin convert s3://embeddings/glove/glove.840B.300d.txt.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, f, args[0])
		},
	}

	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output prefix (default: source name without extensions)")
	cmd.Flags().BoolVar(&f.skipHeader, "skip-header", false, "ignore the first line (word2vec-style header)")
	cmd.Flags().StringVar(&f.compression, "compression", "", "source compression: none, gzip, zstd, lz4 (default: detect)")

	return cmd
}

func runConvert(cmd *cobra.Command, a *app, f *convertFlags, source string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := blobstore.ParseURI(source)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("skip-header") {
		a.cfg.Convert.SkipHeader = f.skipHeader
	}
	if f.compression != "" {
		a.cfg.Convert.Compression = f.compression
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	cc := a.cfg.Convert

	bs, err := a.openSource(ctx, loc)
	if err != nil {
		return err
	}

	out := f.out
	if out == "" {
		if loc.Scheme == blobstore.SchemeFile {
			out = convert.OutputPrefix(loc.Key)
		} else {
			out = convert.OutputPrefix(loc.Base())
		}
	}

	opts := []convert.Option{
		convert.WithLogger(a.logger.Logger),
		convert.WithMetrics(a.observer),
		convert.WithSkipHeader(cc.SkipHeader),
		convert.WithCompression(convert.Compression(cc.Compression)),
		convert.WithProgressInterval(cc.ProgressInterval),
	}
	if cc.IOLimitBytesPerSec > 0 {
		opts = append(opts, convert.WithController(resource.NewController(resource.Config{
			IOLimitBytesPerSec: cc.IOLimitBytesPerSec,
		})))
	}

	st, err := convert.ConvertBlob(ctx, bs, loc.Key, out, opts...)
	a.logger.LogConvert(ctx, loc.String(), st, err)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "converted %d records (dim %d) to %s\n", st.Records, st.Dim, out)
	return nil
}

// openSource returns the blob store serving loc.
func (a *app) openSource(ctx context.Context, loc blobstore.Location) (blobstore.BlobStore, error) {
	switch loc.Scheme {
	case blobstore.SchemeS3:
		c := a.cfg.S3
		opts := []s3.Option{s3.WithRegion(c.Region), s3.WithTempDir(c.TempDir)}
		if c.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(c.Endpoint))
		}
		if c.ParallelDownload {
			opts = append(opts, s3.WithParallelDownload(c.PartSizeMB<<20, c.Concurrency))
		}
		return s3.New(ctx, loc.Bucket, opts...)
	case blobstore.SchemeMinIO:
		c := a.cfg.MinIO
		opts := []minio.Option{minio.WithRegion(c.Region), minio.WithSecure(c.Secure)}
		if c.AccessKey != "" {
			opts = append(opts, minio.WithCredentials(c.AccessKey, c.SecretKey))
		}
		return minio.New(c.Endpoint, loc.Bucket, opts...)
	default:
		return blobstore.NewLocalStore(""), nil
	}
}
