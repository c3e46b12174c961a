package resource

import (
	"context"
	"io"
)

// Reader throttles reads through a Controller's IO budget.
type Reader struct {
	ctx context.Context
	r   io.Reader
	rc  *Controller
}

// NewReader wraps r.
func NewReader(ctx context.Context, r io.Reader, rc *Controller) *Reader {
	return &Reader{ctx: ctx, r: r, rc: rc}
}

// Read charges the bytes actually read, so short reads are not overbilled.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		if werr := r.rc.WaitIO(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

// Writer throttles writes through a Controller's IO budget.
type Writer struct {
	ctx context.Context
	w   io.Writer
	rc  *Controller
}

// NewWriter wraps w.
func NewWriter(ctx context.Context, w io.Writer, rc *Controller) *Writer {
	return &Writer{ctx: ctx, w: w, rc: rc}
}

func (w *Writer) Write(p []byte) (int, error) {
	if err := w.rc.WaitIO(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.w.Write(p)
}
