package vector

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when two operands cannot be combined.
// Neither operand is modified when it is returned.
var ErrShapeMismatch = errors.New("vector: shape mismatch")

// ShapeError describes a failed combination of two vectors.
//
// It matches ErrShapeMismatch via errors.Is.
type ShapeError struct {
	Op    string
	Left  int
	Right int
	// Kind is set when the right operand is not a dense vector.
	Kind string
}

func (e *ShapeError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("vector: shape mismatch in %s: expected dense operand, got %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("vector: shape mismatch in %s: length %d vs %d", e.Op, e.Left, e.Right)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

func lengthMismatch(op string, left, right int) error {
	return &ShapeError{Op: op, Left: left, Right: right}
}

func kindMismatch(op string, left int, v any) error {
	return &ShapeError{Op: op, Left: left, Kind: fmt.Sprintf("%T", v)}
}
