package glovebin

import (
	"github.com/hupe1980/glovebin/blobstore"
	"github.com/hupe1980/glovebin/codec"
	"github.com/hupe1980/glovebin/convert"
	"github.com/hupe1980/glovebin/store"
	"github.com/hupe1980/glovebin/vector"
)

var (
	// ErrEndOfInput marks the clean end of an encoded stream.
	ErrEndOfInput = codec.ErrEndOfInput

	// ErrCorruptData is returned for malformed store files.
	ErrCorruptData = codec.ErrCorruptData

	// ErrInconsistentDimension is returned when a conversion source mixes
	// vector lengths.
	ErrInconsistentDimension = convert.ErrInconsistentDimension

	// ErrEmptyVector is returned for source records without components.
	ErrEmptyVector = convert.ErrEmptyVector

	// ErrMalformedLine is returned for unparsable source lines.
	ErrMalformedLine = convert.ErrMalformedLine

	// ErrShapeMismatch is returned when vectors of different shape are combined.
	ErrShapeMismatch = vector.ErrShapeMismatch

	// ErrUndeterminedBlockSize is returned when opening a store with fewer
	// than two records and no explicit dimension.
	ErrUndeterminedBlockSize = store.ErrUndeterminedBlockSize

	// ErrClosed is returned by lookups on a closed store.
	ErrClosed = store.ErrClosed

	// ErrSourceNotFound is returned when a conversion source does not exist.
	ErrSourceNotFound = blobstore.ErrNotFound
)

type (
	// DimensionError carries the position of the record that broke the
	// established dimension during conversion.
	DimensionError = convert.DimensionError

	// LineError carries the line number of an unparsable source line.
	LineError = convert.LineError

	// ShapeError describes a failed vector combination.
	ShapeError = vector.ShapeError
)
