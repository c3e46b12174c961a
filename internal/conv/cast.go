package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// Uint64ToInt64 converts v to int64.
func Uint64ToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d does not fit int64", ErrOverflow, v)
	}
	return int64(v), nil
}

// Uint64ToInt converts v to int. The bound depends on the platform.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d does not fit int", ErrOverflow, v)
	}
	return int(v), nil
}

// Int64ToInt converts v to int. It only fails on 32-bit platforms.
func Int64ToInt(v int64) (int, error) {
	if v > math.MaxInt || v < math.MinInt {
		return 0, fmt.Errorf("%w: %d does not fit int", ErrOverflow, v)
	}
	return int(v), nil
}
