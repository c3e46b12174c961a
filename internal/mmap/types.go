package mmap

import "errors"

// AccessPattern is an access hint passed to the kernel.
type AccessPattern int

const (
	// AccessDefault removes any previous hint.
	AccessDefault AccessPattern = iota
	// AccessSequential hints a front-to-back scan.
	AccessSequential
	// AccessRandom hints point lookups; it disables aggressive read-ahead.
	AccessRandom
	// AccessWillNeed asks the kernel to prefetch.
	AccessWillNeed
)

var (
	// ErrClosed is returned by accessors of a closed Mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files whose size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrOutOfBounds is returned for ranges outside the mapping.
	ErrOutOfBounds = errors.New("mmap: range out of bounds")
)
