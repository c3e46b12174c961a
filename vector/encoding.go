package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ElementSize is the on-disk size of one component.
const ElementSize = 8

// AppendBytes appends the little-endian encoding of d's components to dst.
func (d Dense) AppendBytes(dst []byte) []byte {
	for _, x := range d.data[:d.n] {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(x))
	}
	return dst
}

// AppendValues appends the little-endian encoding of values to dst.
func AppendValues(dst []byte, values []float64) []byte {
	for _, x := range values {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(x))
	}
	return dst
}

// DecodeDense decodes a block of little-endian float64 values.
func DecodeDense(b []byte) (Dense, error) {
	if len(b)%ElementSize != 0 {
		return Empty, fmt.Errorf("vector: block length %d is not a multiple of %d", len(b), ElementSize)
	}
	d := NewDense(len(b) / ElementSize)
	decode(d.data[:d.n], b)
	return d, nil
}

// DecodeInto decodes b into dst and returns the number of values written.
// dst must hold at least len(b)/8 values.
func DecodeInto(dst []float64, b []byte) (int, error) {
	if len(b)%ElementSize != 0 {
		return 0, fmt.Errorf("vector: block length %d is not a multiple of %d", len(b), ElementSize)
	}
	n := len(b) / ElementSize
	if len(dst) < n {
		return 0, lengthMismatch("decode", len(dst), n)
	}
	decode(dst[:n], b)
	return n, nil
}

func decode(dst []float64, b []byte) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*ElementSize:]))
	}
}
