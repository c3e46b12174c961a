package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/glovebin/codec"
	"github.com/hupe1980/glovebin/internal/conv"
	"github.com/hupe1980/glovebin/vector"
)

// dictionary is the resident token index of a store.
type dictionary struct {
	tokens     []string // unique tokens in file order
	offsets    map[string]int64
	records    int // including duplicates
	duplicates int
	blockSize  int
}

// layout validates a record's offset against the block size and the record
// position. It also learns the block size from the second record.
type layout struct {
	blockSize int
	explicit  bool
}

func newLayout(dim int) (layout, error) {
	if dim < 0 {
		return layout{}, fmt.Errorf("store: invalid dimension %d", dim)
	}
	if dim == 0 {
		return layout{}, nil
	}
	return layout{blockSize: dim * vector.ElementSize, explicit: true}, nil
}

func (l *layout) check(i int, off int64) error {
	switch {
	case i == 0:
		if off != 0 {
			return fmt.Errorf("%w: first record has offset %d", codec.ErrCorruptData, off)
		}
		return nil
	case i == 1:
		if off <= 0 || off%vector.ElementSize != 0 {
			return fmt.Errorf("%w: second record has offset %d, not a positive multiple of %d",
				codec.ErrCorruptData, off, vector.ElementSize)
		}
		if l.explicit && off != int64(l.blockSize) {
			return fmt.Errorf("%w: inferred block size %d disagrees with declared %d",
				codec.ErrCorruptData, off, l.blockSize)
		}
		size, err := conv.Int64ToInt(off)
		if err != nil {
			return fmt.Errorf("%w: block size: %v", codec.ErrCorruptData, err)
		}
		l.blockSize = size
		return nil
	}
	if want := int64(i) * int64(l.blockSize); off != want {
		return fmt.Errorf("%w: record %d has offset %d, want %d", codec.ErrCorruptData, i+1, off, want)
	}
	return nil
}

func (l *layout) finish(records int) error {
	if l.blockSize == 0 && records < 2 {
		return ErrUndeterminedBlockSize
	}
	return nil
}

func loadDictionary(r io.Reader, dim int, logger *slog.Logger) (*dictionary, error) {
	lay, err := newLayout(dim)
	if err != nil {
		return nil, err
	}

	d := &dictionary{offsets: make(map[string]int64)}
	cr := codec.NewReader(r)

	for i := 0; ; i++ {
		token, off, err := cr.ReadEntry()
		if errors.Is(err, codec.ErrEndOfInput) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store: dictionary record %d: %w", i+1, err)
		}
		if err := lay.check(i, off); err != nil {
			return nil, err
		}

		d.records++
		if _, dup := d.offsets[token]; dup {
			d.duplicates++
			logger.Warn("duplicate token ignored", "token", token, "record", i+1)
			continue
		}
		d.offsets[token] = off
		d.tokens = append(d.tokens, token)
	}

	if err := lay.finish(d.records); err != nil {
		return nil, err
	}
	d.blockSize = lay.blockSize
	return d, nil
}
