package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrInconsistentDimension is returned when a record's vector length
	// differs from the first record's.
	ErrInconsistentDimension = errors.New("convert: inconsistent dimension")

	// ErrEmptyVector is returned for a record without components.
	ErrEmptyVector = errors.New("convert: empty vector")

	// ErrMalformedLine is returned for text lines that cannot be parsed.
	ErrMalformedLine = errors.New("convert: malformed line")

	// ErrEmptySource is returned when a source contains no records.
	ErrEmptySource = errors.New("convert: source has no records")
)

// DimensionError reports the first record whose serialized length differs
// from the established block size.
type DimensionError struct {
	Record int // 1-based position
	Token  string
	Want   int // bytes
	Got    int // bytes
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("convert: record %d (%q) has %d bytes, want %d: inconsistent dimension",
		e.Record, e.Token, e.Got, e.Want)
}

func (e *DimensionError) Unwrap() error { return ErrInconsistentDimension }

// LineError reports a text line that could not be parsed.
type LineError struct {
	Line int // 1-based
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("convert: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() []error { return []error{ErrMalformedLine, e.Err} }
