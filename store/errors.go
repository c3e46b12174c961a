package store

import "errors"

var (
	// ErrUndeterminedBlockSize is returned when a dictionary has fewer than
	// two records and no dimension was supplied.
	ErrUndeterminedBlockSize = errors.New("store: block size cannot be inferred from fewer than two records")

	// ErrClosed is returned by lookups on a closed store.
	ErrClosed = errors.New("store: closed")
)
