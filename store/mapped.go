package store

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hupe1980/glovebin/codec"
	"github.com/hupe1980/glovebin/internal/mmap"
	"github.com/hupe1980/glovebin/internal/resource"
	"github.com/hupe1980/glovebin/vector"
)

// Mapped is an opened store: a resident dictionary plus a read-only mapping
// of the vector file.
type Mapped struct {
	dict   *dictionary
	vec    *mmap.Mapping
	dim    int
	closed atomic.Bool

	logger  *slog.Logger
	metrics MetricsObserver
	rc      *resource.Controller
}

// OpenPrefix opens <prefix>.dict.bin and <prefix>.vec.bin.
func OpenPrefix(prefix string, opts ...Option) (*Mapped, error) {
	dict, vec := Paths(prefix)
	return Open(dict, vec, opts...)
}

// Open loads the dictionary at dictPath and maps the vector file at vecPath.
func Open(dictPath, vecPath string, opts ...Option) (m *Mapped, err error) {
	o := applyOptions(opts)
	start := time.Now()
	records := 0
	defer func() {
		o.metrics.OnOpen(time.Since(start), records, err)
	}()

	f, err := os.Open(dictPath)
	if err != nil {
		return nil, fmt.Errorf("store: open dictionary: %w", err)
	}
	dict, err := loadDictionary(f, o.dim, o.logger)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dictPath, err)
	}
	records = dict.records

	vec, err := mmap.Open(vecPath)
	if err != nil {
		return nil, fmt.Errorf("store: open vectors: %w", err)
	}

	need := int64(dict.records) * int64(dict.blockSize)
	switch size := vec.Size(); {
	case size < need:
		vec.Close()
		return nil, fmt.Errorf("%s: %w: %d bytes, dictionary needs %d", vecPath, codec.ErrCorruptData, size, need)
	case size > need:
		o.logger.Warn("vector file has trailing bytes", "path", vecPath, "size", size, "used", need)
	}

	if err := vec.Advise(mmap.AccessRandom); err != nil {
		o.logger.Debug("madvise failed", "path", vecPath, "error", err)
	}

	rc := o.controller
	if rc == nil {
		rc = resource.NewController(resource.Config{})
	}

	m = &Mapped{
		dict:    dict,
		vec:     vec,
		dim:     dict.blockSize / vector.ElementSize,
		logger:  o.logger,
		metrics: o.metrics,
		rc:      rc,
	}
	o.logger.Debug("dictionary loaded",
		"dictionary", dictPath,
		"tokens", len(dict.tokens),
		"duplicates", dict.duplicates,
		"dimension", m.dim,
	)
	return m, nil
}

// Contains reports whether token is in the dictionary.
func (m *Mapped) Contains(token string) bool {
	if m.closed.Load() {
		return false
	}
	_, ok := m.dict.offsets[token]
	return ok
}

// Len returns the number of distinct tokens.
func (m *Mapped) Len() int { return len(m.dict.tokens) }

// Dim returns the number of components per vector.
func (m *Mapped) Dim() int { return m.dim }

// BlockSize returns the byte length of one vector block.
func (m *Mapped) BlockSize() int { return m.dict.blockSize }

// Duplicates returns the number of dictionary records ignored because their
// token appeared earlier.
func (m *Mapped) Duplicates() int { return m.dict.duplicates }

// Tokens yields the distinct tokens in dictionary order.
func (m *Mapped) Tokens() iter.Seq[string] {
	return slices.Values(m.dict.tokens)
}

// Block returns the raw bytes of token's vector. The slice aliases the
// mapping: it must not be modified and is invalid after Close.
func (m *Mapped) Block(token string) ([]byte, bool, error) {
	if m.closed.Load() {
		return nil, false, ErrClosed
	}
	off, ok := m.dict.offsets[token]
	if !ok {
		return nil, false, nil
	}
	b, err := m.vec.Slice(off, m.dict.blockSize)
	if err != nil {
		if errors.Is(err, mmap.ErrClosed) {
			return nil, false, ErrClosed
		}
		return nil, false, fmt.Errorf("store: block of %q: %w", token, err)
	}
	return b, true, nil
}

// LookupDense returns token's vector, or vector.Empty if it is absent.
func (m *Mapped) LookupDense(token string) (v vector.Dense, err error) {
	start := time.Now()
	found := false
	defer func() {
		m.metrics.OnLookup(time.Since(start), found, err)
	}()

	b, found, err := m.Block(token)
	if err != nil || !found {
		return vector.Empty, err
	}
	return vector.DecodeDense(b)
}

// ReadInto copies token's vector into dst without allocating and reports
// whether the token was found. dst must hold at least Dim values.
func (m *Mapped) ReadInto(token string, dst []float64) (found bool, err error) {
	start := time.Now()
	defer func() {
		m.metrics.OnLookup(time.Since(start), found, err)
	}()

	b, found, err := m.Block(token)
	if err != nil || !found {
		return false, err
	}
	if _, err := vector.DecodeInto(dst, b); err != nil {
		return false, err
	}
	return true, nil
}

// Close unmaps the vector file. It is idempotent.
func (m *Mapped) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	return m.vec.Close()
}
