package vector

import (
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/viterin/vek"
	"gonum.org/v1/gonum/floats"
)

// Dense is a fixed-length vector that owns its lane-padded storage.
//
// The zero value is the empty vector (see Empty). Dense is a small value type;
// copies share storage, which is never mutated except through AddWith and
// through a View obtained from View.
type Dense struct {
	data []float64 // len(data) == paddedLen(n); data[n:] is always zero
	n    int
}

// Empty is the sentinel for an absent vector in APIs that return Dense.
var Empty = Dense{}

var _ Vector = Dense{}

// NewDense returns a zero vector of length n.
func NewDense(n int) Dense {
	if n <= 0 {
		return Empty
	}
	return Dense{data: make([]float64, paddedLen(n)), n: n}
}

// FromValues returns a Dense holding a copy of values.
func FromValues(values []float64) Dense {
	d := NewDense(len(values))
	copy(d.data, values)
	return d
}

// Len returns the number of components.
func (d Dense) Len() int { return d.n }

// IsEmpty reports whether d has no components.
func (d Dense) IsEmpty() bool { return d.n == 0 }

// Sparse always returns false.
func (d Dense) Sparse() bool { return false }

// At returns the i-th component.
func (d Dense) At(i int) float64 {
	return d.data[:d.n][i]
}

// Values returns a copy of the components.
func (d Dense) Values() []float64 {
	out := make([]float64, d.n)
	copy(out, d.data)
	return out
}

// Lanes returns the number of SIMD lanes backing d.
func (d Dense) Lanes() int { return laneCount(d.n) }

// Lane returns the i-th lane. The returned slice aliases d and must be
// treated as read-only.
func (d Dense) Lane(i int) []float64 {
	lo := i * laneWidth
	return d.data[lo : lo+laneWidth : lo+laneWidth]
}

// Clone returns a deep copy of d.
func (d Dense) Clone() Vector { return d.Copy() }

// Copy returns a deep copy of d.
func (d Dense) Copy() Dense {
	if d.n == 0 {
		return Empty
	}
	out := make([]float64, len(d.data))
	copy(out, d.data)
	return Dense{data: out, n: d.n}
}

// View returns an in-place view sharing d's storage.
func (d Dense) View() View {
	return View{data: d.data[:d.n:d.n]}
}

func (d Dense) alloc() []float64 {
	return make([]float64, len(d.data))
}

// wrap re-establishes the zero padding invariant on a result buffer.
func (d Dense) wrap(out []float64) Dense {
	clear(out[d.n:])
	return Dense{data: out, n: d.n}
}

func (d Dense) mapEach(f func(float64) float64) Dense {
	if d.n == 0 {
		return Empty
	}
	out := d.alloc()
	for i, x := range d.data[:d.n] {
		out[i] = f(x)
	}
	return d.wrap(out)
}

func (d Dense) check(op string, o Dense) error {
	if d.n != o.n {
		return lengthMismatch(op, d.n, o.n)
	}
	return nil
}

// Add returns d + o.
func (d Dense) Add(o Dense) (Dense, error) {
	if err := d.check("add", o); err != nil {
		return Empty, err
	}
	if d.n == 0 {
		return Empty, nil
	}
	return d.wrap(vek.Add_Into(d.alloc(), d.data, o.data)), nil
}

// AddScalar returns d + s.
func (d Dense) AddScalar(s float64) Dense {
	if d.n == 0 {
		return Empty
	}
	return d.wrap(vek.AddNumber_Into(d.alloc(), d.data, s))
}

// Sub returns d - o.
func (d Dense) Sub(o Dense) (Dense, error) {
	if err := d.check("subtract", o); err != nil {
		return Empty, err
	}
	if d.n == 0 {
		return Empty, nil
	}
	return d.wrap(vek.Sub_Into(d.alloc(), d.data, o.data)), nil
}

// SubScalar returns d - s.
func (d Dense) SubScalar(s float64) Dense {
	if d.n == 0 {
		return Empty
	}
	return d.wrap(vek.SubNumber_Into(d.alloc(), d.data, s))
}

// SubFrom returns s - d.
func (d Dense) SubFrom(s float64) Dense {
	if d.n == 0 {
		return Empty
	}
	out := vek.Neg_Into(d.alloc(), d.data)
	vek.AddNumber_Inplace(out, s)
	return d.wrap(out)
}

// Mul returns the elementwise product d ∘ o.
func (d Dense) Mul(o Dense) (Dense, error) {
	if err := d.check("multiply", o); err != nil {
		return Empty, err
	}
	if d.n == 0 {
		return Empty, nil
	}
	return d.wrap(vek.Mul_Into(d.alloc(), d.data, o.data)), nil
}

// MulScalar returns d * s.
func (d Dense) MulScalar(s float64) Dense {
	if d.n == 0 {
		return Empty
	}
	return d.wrap(vek.MulNumber_Into(d.alloc(), d.data, s))
}

// Div returns the elementwise quotient d / o.
func (d Dense) Div(o Dense) (Dense, error) {
	if err := d.check("divide", o); err != nil {
		return Empty, err
	}
	if d.n == 0 {
		return Empty, nil
	}
	return d.wrap(vek.Div_Into(d.alloc(), d.data, o.data)), nil
}

// DivScalar returns d / s.
func (d Dense) DivScalar(s float64) Dense {
	if d.n == 0 {
		return Empty
	}
	return d.wrap(vek.DivNumber_Into(d.alloc(), d.data, s))
}

// DivFrom returns s / d.
func (d Dense) DivFrom(s float64) Dense {
	return d.mapEach(func(x float64) float64 { return s / x })
}

// Pow raises every component to the power x.
func (d Dense) Pow(x float64) Dense {
	return d.mapEach(func(v float64) float64 { return math.Pow(v, x) })
}

// Abs returns the absolute value of every component.
func (d Dense) Abs() Dense {
	if d.n == 0 {
		return Empty
	}
	return d.wrap(vek.Abs_Into(d.alloc(), d.data))
}

// Sqrt returns the square root of every component.
func (d Dense) Sqrt() Dense {
	if d.n == 0 {
		return Empty
	}
	return d.wrap(vek.Sqrt_Into(d.alloc(), d.data))
}

// Log returns the natural logarithm of every component.
func (d Dense) Log() Dense {
	return d.mapEach(math.Log)
}

// Exp returns e raised to every component.
func (d Dense) Exp() Dense {
	return d.mapEach(math.Exp)
}

// Neg returns -d.
func (d Dense) Neg() Dense {
	if d.n == 0 {
		return Empty
	}
	return d.wrap(vek.Neg_Into(d.alloc(), d.data))
}

// AddWith adds o to d in place. It is the only arithmetic that mutates a
// Dense, intended for running sums over many vectors.
func (d Dense) AddWith(o Dense) error {
	if err := d.check("add-with", o); err != nil {
		return err
	}
	if d.n == 0 {
		return nil
	}
	vek.Add_Inplace(d.data, o.data)
	return nil
}

// Sum returns the total of all components.
func (d Dense) Sum() float64 {
	if d.n == 0 {
		return 0
	}
	return vek.Sum(d.data)
}

// Dot returns the pairwise product sum with o. o must be a Dense.
func (d Dense) Dot(o Vector) (float64, error) {
	od, ok := asDense(o)
	if !ok {
		return 0, kindMismatch("dot", d.n, o)
	}
	return d.DotDense(od)
}

// DotDense is Dot without the interface conversion.
func (d Dense) DotDense(o Dense) (float64, error) {
	if err := d.check("dot", o); err != nil {
		return 0, err
	}
	if d.n == 0 {
		return 0, nil
	}
	return vek.Dot(d.data, o.data), nil
}

// Modulus returns sqrt(d·d).
func (d Dense) Modulus() float64 {
	if d.n == 0 {
		return 0
	}
	return math.Sqrt(vek.Dot(d.data, d.data))
}

// Max returns the largest component and the index of its first occurrence.
// An empty vector yields (-Inf, -1).
func (d Dense) Max() (float64, int) {
	if d.n == 0 {
		return math.Inf(-1), -1
	}
	i := floats.MaxIdx(d.data[:d.n])
	return d.data[i], i
}

// Min returns the smallest component and the index of its first occurrence.
// An empty vector yields (+Inf, -1).
func (d Dense) Min() (float64, int) {
	if d.n == 0 {
		return math.Inf(1), -1
	}
	i := floats.MinIdx(d.data[:d.n])
	return d.data[i], i
}

// Indexed yields (index, value) for every component.
func (d Dense) Indexed() iter.Seq2[int, float64] {
	return indexed(d.data[:d.n], false)
}

// IndexedNonZero yields (index, value) for every component that is not 0.
func (d Dense) IndexedNonZero() iter.Seq2[int, float64] {
	return indexed(d.data[:d.n], true)
}

// Support returns the positions of the non-zero components.
func (d Dense) Support() *roaring.Bitmap {
	return support(d.data[:d.n])
}

func indexed(values []float64, skipZero bool) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i, v := range values {
			if skipZero && v == 0 {
				continue
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

func support(values []float64) *roaring.Bitmap {
	bm := roaring.New()
	for i, v := range values {
		if v != 0 {
			bm.Add(uint32(i))
		}
	}
	return bm
}

func asDense(v Vector) (Dense, bool) {
	switch t := v.(type) {
	case Dense:
		return t, true
	case *Dense:
		if t != nil {
			return *t, true
		}
	}
	return Empty, false
}
