package glovebin

import (
	"context"
	"fmt"

	"github.com/hupe1980/glovebin/vector"
)

// CosineDistance returns 1 - a·b/(|a||b|).
//
// It returns 1.0 when either vector is absent (nil), empty, all zeros, or
// of a different shape than the other.
func CosineDistance(a, b vector.Vector) float64 {
	d, err := CosineDistanceChecked(a, b)
	if err != nil {
		return 1
	}
	return d
}

// CosineDistanceChecked is CosineDistance but reports ErrShapeMismatch
// for two present vectors that cannot be combined.
func CosineDistanceChecked(a, b vector.Vector) (float64, error) {
	if absent(a) || absent(b) {
		return 1, nil
	}
	dot, err := a.Dot(b)
	if err != nil {
		return 1, err
	}
	return cosine(dot, a.Modulus(), b.Modulus()), nil
}

// CosineDistanceDense is CosineDistance for concrete vectors.
func CosineDistanceDense(a, b vector.Dense) float64 {
	if a.IsEmpty() || b.IsEmpty() {
		return 1
	}
	dot, err := a.DotDense(b)
	if err != nil {
		return 1
	}
	return cosine(dot, a.Modulus(), b.Modulus())
}

// CosineDistanceView is CosineDistance for views. It does not allocate.
func CosineDistanceView(a, b vector.View) float64 {
	if a.IsEmpty() || b.IsEmpty() {
		return 1
	}
	dot, err := a.Dot(b)
	if err != nil {
		return 1
	}
	return cosine(dot, a.Modulus(), b.Modulus())
}

func cosine(dot, ma, mb float64) float64 {
	if ma == 0 || mb == 0 {
		return 1
	}
	return 1 - dot/(ma*mb)
}

func absent(v vector.Vector) bool {
	if v == nil {
		return true
	}
	if d, ok := v.(*vector.Dense); ok && d == nil {
		return true
	}
	return v.IsEmpty()
}

// Distance looks up both tokens through r and returns their cosine
// distance. Missing tokens yield 1.0. Lookup errors and ErrShapeMismatch
// are returned.
func Distance[V any](ctx context.Context, r Reader[V], a, b string) (float64, error) {
	ca := r.LookupAsync(ctx, a)
	cb := r.LookupAsync(ctx, b)
	ra, rb := <-ca, <-cb
	if ra.Err != nil {
		return 1, ra.Err
	}
	if rb.Err != nil {
		return 1, rb.Err
	}

	va, err := asVector(ra.Value)
	if err != nil {
		return 1, err
	}
	vb, err := asVector(rb.Value)
	if err != nil {
		return 1, err
	}
	return CosineDistanceChecked(va, vb)
}

func asVector(v any) (vector.Vector, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case vector.Vector:
		return t, nil
	case vector.View:
		return t.Dense(), nil
	default:
		return nil, fmt.Errorf("glovebin: %T is not a vector", v)
	}
}
