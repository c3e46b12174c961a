package vector

import (
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/viterin/vek"
)

// View is a borrowing vector over a caller-owned buffer.
//
// Operations on a View mutate the buffer in place and return the receiver so
// they can be chained. A View must not outlive the buffer it was created
// from; use Dense to obtain an owned copy.
type View struct {
	data []float64
}

// ViewOf returns a View over buf. buf is used in place, not copied.
func ViewOf(buf []float64) View {
	return View{data: buf[:len(buf):len(buf)]}
}

// Len returns the number of components.
func (v View) Len() int { return len(v.data) }

// IsEmpty reports whether the view has no components.
func (v View) IsEmpty() bool { return len(v.data) == 0 }

// At returns the i-th component.
func (v View) At(i int) float64 { return v.data[i] }

// Raw returns the underlying buffer.
func (v View) Raw() []float64 { return v.data }

// Dense returns an owned, lane-padded copy of the view.
func (v View) Dense() Dense { return FromValues(v.data) }

func (v View) check(op string, o View) error {
	if len(v.data) != len(o.data) {
		return lengthMismatch(op, len(v.data), len(o.data))
	}
	return nil
}

// Add adds o into v.
func (v View) Add(o View) (View, error) {
	if err := v.check("add", o); err != nil {
		return v, err
	}
	if len(v.data) > 0 {
		vek.Add_Inplace(v.data, o.data)
	}
	return v, nil
}

// AddScalar adds s to every component.
func (v View) AddScalar(s float64) View {
	if len(v.data) > 0 {
		vek.AddNumber_Inplace(v.data, s)
	}
	return v
}

// Sub subtracts o from v.
func (v View) Sub(o View) (View, error) {
	if err := v.check("subtract", o); err != nil {
		return v, err
	}
	if len(v.data) > 0 {
		vek.Sub_Inplace(v.data, o.data)
	}
	return v, nil
}

// SubScalar subtracts s from every component.
func (v View) SubScalar(s float64) View {
	if len(v.data) > 0 {
		vek.SubNumber_Inplace(v.data, s)
	}
	return v
}

// SubFrom replaces every component x with s - x.
func (v View) SubFrom(s float64) View {
	if len(v.data) > 0 {
		vek.Neg_Inplace(v.data)
		vek.AddNumber_Inplace(v.data, s)
	}
	return v
}

// Abs replaces every component with its absolute value.
func (v View) Abs() View {
	if len(v.data) > 0 {
		vek.Abs_Inplace(v.data)
	}
	return v
}

// Neg negates every component.
func (v View) Neg() View {
	if len(v.data) > 0 {
		vek.Neg_Inplace(v.data)
	}
	return v
}

// Sum returns the total of all components.
func (v View) Sum() float64 {
	if len(v.data) == 0 {
		return 0
	}
	return vek.Sum(v.data)
}

// Dot returns the pairwise product sum with o.
func (v View) Dot(o View) (float64, error) {
	if err := v.check("dot", o); err != nil {
		return 0, err
	}
	if len(v.data) == 0 {
		return 0, nil
	}
	return vek.Dot(v.data, o.data), nil
}

// Modulus returns the Euclidean norm.
func (v View) Modulus() float64 {
	if len(v.data) == 0 {
		return 0
	}
	return math.Sqrt(vek.Dot(v.data, v.data))
}

// Indexed yields (index, value) for every component.
func (v View) Indexed() iter.Seq2[int, float64] {
	return indexed(v.data, false)
}

// IndexedNonZero yields (index, value) for every component that is not 0.
func (v View) IndexedNonZero() iter.Seq2[int, float64] {
	return indexed(v.data, true)
}

// Support returns the positions of the non-zero components.
func (v View) Support() *roaring.Bitmap {
	return support(v.data)
}
