// Package codec implements the binary primitives of the dictionary file.
//
// Two shapes are encoded:
//
//   - an offset: a non-negative 64-bit integer written as a little-endian
//     base-128 varint (7 payload bits per byte, high bit set while more bytes
//     follow, least-significant group first);
//   - a string: its UTF-8 byte length as a varint followed by the bytes.
//
// A dictionary entry is a string immediately followed by an offset. There is
// no header, footer or record count.
//
// Changing this encoding is a breaking change: files written by older
// encoders would no longer decode.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/hupe1980/glovebin/internal/conv"
)

var (
	// ErrEndOfInput is returned when a read starts at the end of the stream.
	// It is benign and terminates read loops.
	ErrEndOfInput = errors.New("codec: end of input")

	// ErrCorruptData is returned for malformed input: a varint that is
	// truncated or overflows, a decoded offset outside the int64 range, a
	// truncated or oversized string, or a string that is not valid UTF-8.
	ErrCorruptData = errors.New("codec: corrupt data")
)

// MaxStringLen bounds the decoded length of a single string.
const MaxStringLen = 1 << 20

// MaxVarintLen is the maximum encoded size of an offset.
const MaxVarintLen = binary.MaxVarintLen64

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}

// AppendOffset appends the varint encoding of off to dst.
// It panics if off is negative.
func AppendOffset(dst []byte, off int64) []byte {
	if off < 0 {
		panic(fmt.Sprintf("codec: negative offset %d", off))
	}
	return binary.AppendUvarint(dst, uint64(off))
}

// AppendString appends the length-prefixed encoding of s to dst.
func AppendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// AppendEntry appends a dictionary entry to dst.
func AppendEntry(dst []byte, token string, off int64) []byte {
	return AppendOffset(AppendString(dst, token), off)
}

// DecodeOffset decodes an offset from the start of b and returns it with the
// number of bytes consumed.
func DecodeOffset(b []byte) (int64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrEndOfInput
	}
	v, n := binary.Uvarint(b)
	switch {
	case n == 0:
		return 0, 0, corrupt("truncated varint")
	case n < 0:
		return 0, 0, corrupt("varint overflows 64 bits")
	}
	off, err := conv.Uint64ToInt64(v)
	if err != nil {
		return 0, 0, corrupt("offset: %v", err)
	}
	return off, n, nil
}

// DecodeString decodes a length-prefixed string from the start of b.
func DecodeString(b []byte) (string, int, error) {
	if len(b) == 0 {
		return "", 0, ErrEndOfInput
	}
	size, n := binary.Uvarint(b)
	switch {
	case n == 0:
		return "", 0, corrupt("truncated string length")
	case n < 0:
		return "", 0, corrupt("string length overflows 64 bits")
	case size > MaxStringLen:
		return "", 0, corrupt("string length %d exceeds %d", size, MaxStringLen)
	}
	end := n + int(size)
	if end > len(b) {
		return "", 0, corrupt("string truncated: want %d bytes, have %d", size, len(b)-n)
	}
	raw := b[n:end]
	if !utf8.Valid(raw) {
		return "", 0, corrupt("string is not valid UTF-8")
	}
	return string(raw), end, nil
}

// DecodeEntry decodes a dictionary entry from the start of b.
// An entry whose string decodes but whose offset is missing is corrupt.
func DecodeEntry(b []byte) (string, int64, int, error) {
	token, n, err := DecodeString(b)
	if err != nil {
		return "", 0, 0, err
	}
	off, m, err := DecodeOffset(b[n:])
	if err != nil {
		if errors.Is(err, ErrEndOfInput) {
			return "", 0, 0, corrupt("entry %q has no offset", token)
		}
		return "", 0, 0, err
	}
	return token, off, n + m, nil
}
