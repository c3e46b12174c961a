package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/hupe1980/glovebin/codec"
	"github.com/hupe1980/glovebin/vector"
)

// Entry is one record of a sequentially scanned store.
type Entry struct {
	Token  string
	Vector vector.Dense
}

// Scan streams the records of a store in file order without mapping it.
//
// The block size is learned from the second record, so the first record is
// held back until the second has been read. Duplicate tokens are yielded as
// they appear. Iteration stops at the first error.
func Scan(dict, vec io.Reader, opts ...Option) iter.Seq2[Entry, error] {
	o := applyOptions(opts)
	return func(yield func(Entry, error) bool) {
		lay, err := newLayout(o.dim)
		if err != nil {
			yield(Entry{}, err)
			return
		}

		cr := codec.NewReader(dict)
		vr := bufio.NewReader(vec)
		var buf []byte

		readBlock := func(i int) (vector.Dense, error) {
			if cap(buf) < lay.blockSize {
				buf = make([]byte, lay.blockSize)
			}
			buf = buf[:lay.blockSize]
			if _, err := io.ReadFull(vr, buf); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					return vector.Empty, fmt.Errorf("%w: vector file ends inside record %d", codec.ErrCorruptData, i+1)
				}
				return vector.Empty, err
			}
			return vector.DecodeDense(buf)
		}

		var pending string
		records := 0
		for i := 0; ; i++ {
			token, off, err := cr.ReadEntry()
			if errors.Is(err, codec.ErrEndOfInput) {
				break
			}
			if err != nil {
				yield(Entry{}, fmt.Errorf("store: dictionary record %d: %w", i+1, err))
				return
			}
			if err := lay.check(i, off); err != nil {
				yield(Entry{}, err)
				return
			}
			records++

			if lay.blockSize == 0 {
				pending = token
				continue
			}
			if i == 1 && !lay.explicit {
				v, err := readBlock(0)
				if err != nil {
					yield(Entry{}, err)
					return
				}
				if !yield(Entry{Token: pending, Vector: v}, nil) {
					return
				}
			}
			v, err := readBlock(i)
			if err != nil {
				yield(Entry{}, err)
				return
			}
			if !yield(Entry{Token: token, Vector: v}, nil) {
				return
			}
		}

		if err := lay.finish(records); err != nil {
			yield(Entry{}, err)
		}
	}
}
