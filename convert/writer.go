package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/glovebin/codec"
	"github.com/hupe1980/glovebin/vector"
)

// Stats summarizes a conversion.
type Stats struct {
	Records   int
	Dim       int
	BlockSize int
	DictBytes int64
	VecBytes  int64
}

// WriteStream writes records to dict and vec in the store format.
//
// For record i the dictionary receives the token and the cumulative offset
// i*blockSize, and the vector stream receives the components as
// little-endian float64s. Every record must have the same length as the
// first; otherwise a *DimensionError is returned. Output written before an
// error is not rolled back.
func WriteStream(ctx context.Context, src iter.Seq2[Record, error], dict, vec io.Writer, opts ...Option) (Stats, error) {
	o := applyOptions(opts)
	return writeStream(ctx, src, dict, vec, &o)
}

func writeStream(ctx context.Context, src iter.Seq2[Record, error], dict, vec io.Writer, o *options) (Stats, error) {
	var (
		st      Stats
		offset  int64
		scratch []byte
		dw      = codec.NewWriter(dict)
		vw      = bufio.NewWriterSize(vec, 256<<10)
		start   = time.Now()
	)
	progress := rate.Sometimes{Interval: o.progressInterval}

	for rec, err := range src {
		if err != nil {
			return st, err
		}
		if err := ctx.Err(); err != nil {
			return st, err
		}

		size := len(rec.Values) * vector.ElementSize
		switch {
		case size == 0:
			return st, fmt.Errorf("convert: record %d (%q): %w", st.Records+1, rec.Token, ErrEmptyVector)
		case st.Records == 0:
			st.BlockSize = size
			st.Dim = len(rec.Values)
		case size != st.BlockSize:
			return st, &DimensionError{Record: st.Records + 1, Token: rec.Token, Want: st.BlockSize, Got: size}
		}

		if err := dw.WriteEntry(rec.Token, offset); err != nil {
			return st, fmt.Errorf("convert: record %d (%q): %w", st.Records+1, rec.Token, err)
		}
		scratch = vector.AppendValues(scratch[:0], rec.Values)
		if _, err := vw.Write(scratch); err != nil {
			return st, fmt.Errorf("convert: write vector: %w", err)
		}
		offset += int64(size)
		st.Records++
		o.metrics.OnRecord(size)

		progress.Do(func() {
			o.logger.Info("conversion progress", "records", st.Records, "bytes", offset,
				"elapsed", time.Since(start).Round(time.Millisecond))
		})
	}

	if err := dw.Flush(); err != nil {
		return st, fmt.Errorf("convert: flush dictionary: %w", err)
	}
	if err := vw.Flush(); err != nil {
		return st, fmt.Errorf("convert: flush vectors: %w", err)
	}
	st.DictBytes = dw.Written()
	st.VecBytes = offset
	return st, nil
}
