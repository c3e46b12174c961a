package codec

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/hupe1980/glovebin/internal/conv"
)

// Writer encodes dictionary primitives onto a stream.
// It buffers internally; call Flush when done.
type Writer struct {
	w       *bufio.Writer
	scratch []byte
	written int64
}

// NewWriter returns a Writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), scratch: make([]byte, 0, 64)}
}

func (w *Writer) emit(b []byte) error {
	n, err := w.w.Write(b)
	w.written += int64(n)
	return err
}

// WriteOffset writes off as a varint.
func (w *Writer) WriteOffset(off int64) error {
	if off < 0 {
		return corrupt("negative offset %d", off)
	}
	w.scratch = AppendOffset(w.scratch[:0], off)
	return w.emit(w.scratch)
}

// WriteString writes s as a length-prefixed string.
func (w *Writer) WriteString(s string) error {
	if len(s) > MaxStringLen {
		return corrupt("string length %d exceeds %d", len(s), MaxStringLen)
	}
	if !utf8.ValidString(s) {
		return corrupt("string is not valid UTF-8")
	}
	w.scratch = AppendString(w.scratch[:0], s)
	return w.emit(w.scratch)
}

// WriteEntry writes a dictionary entry.
func (w *Writer) WriteEntry(token string, off int64) error {
	if err := w.WriteString(token); err != nil {
		return err
	}
	return w.WriteOffset(off)
}

// Written returns the number of bytes handed to the underlying writer's
// buffer so far.
func (w *Writer) Written() int64 { return w.written }

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.w.Flush() }

// Reader decodes dictionary primitives from a stream.
type Reader struct {
	r   *bufio.Reader
	buf []byte
}

// NewReader returns a Reader on top of r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// readUvarint mirrors binary.ReadUvarint but separates a clean end of stream
// from a truncated varint.
func (r *Reader) readUvarint() (uint64, error) {
	var x uint64
	var s uint
	for i := 0; i < MaxVarintLen; i++ {
		b, err := r.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if i == 0 {
					return 0, ErrEndOfInput
				}
				return 0, corrupt("truncated varint")
			}
			return 0, err
		}
		if b < 0x80 {
			if i == MaxVarintLen-1 && b > 1 {
				return 0, corrupt("varint overflows 64 bits")
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, corrupt("varint overflows 64 bits")
}

// ReadOffset reads a varint offset.
func (r *Reader) ReadOffset() (int64, error) {
	v, err := r.readUvarint()
	if err != nil {
		return 0, err
	}
	off, err := conv.Uint64ToInt64(v)
	if err != nil {
		return 0, corrupt("offset: %v", err)
	}
	return off, nil
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	size, err := r.readUvarint()
	if err != nil {
		return "", err
	}
	if size > MaxStringLen {
		return "", corrupt("string length %d exceeds %d", size, MaxStringLen)
	}
	if cap(r.buf) < int(size) {
		r.buf = make([]byte, size)
	}
	r.buf = r.buf[:size]
	if _, err := io.ReadFull(r.r, r.buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", corrupt("string truncated")
		}
		return "", err
	}
	if !utf8.Valid(r.buf) {
		return "", corrupt("string is not valid UTF-8")
	}
	return string(r.buf), nil
}

// ReadEntry reads a dictionary entry. ErrEndOfInput is only returned when
// the stream ends cleanly between entries.
func (r *Reader) ReadEntry() (string, int64, error) {
	token, err := r.ReadString()
	if err != nil {
		return "", 0, err
	}
	off, err := r.ReadOffset()
	if err != nil {
		if errors.Is(err, ErrEndOfInput) {
			return "", 0, corrupt("entry %q has no offset", token)
		}
		return "", 0, err
	}
	return token, off, nil
}
