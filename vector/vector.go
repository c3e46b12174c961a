package vector

import "iter"

// Vector is the polymorphic view of a float64 vector.
//
// A nil Vector stands for an absent vector (for example a token that is not
// in a store). Arithmetic over Vector values is provided by the package-level
// operators.
type Vector interface {
	// Len returns the number of components.
	Len() int
	// IsEmpty reports whether the vector has no components.
	IsEmpty() bool
	// At returns the i-th component. It panics if i is out of range.
	At(i int) float64
	// Values returns a copy of the components.
	Values() []float64
	// Sparse reports whether the implementation skips zero components.
	Sparse() bool
	// Clone returns a deep copy.
	Clone() Vector

	// Sum returns the total of all components.
	Sum() float64
	// Dot returns the pairwise product sum with o.
	Dot(o Vector) (float64, error)
	// Modulus returns the Euclidean norm.
	Modulus() float64
	// Max returns the largest component and its first index.
	Max() (float64, int)
	// Min returns the smallest component and its first index.
	Min() (float64, int)

	// Indexed yields (index, value) for every component.
	Indexed() iter.Seq2[int, float64]
	// IndexedNonZero yields (index, value) for every non-zero component.
	IndexedNonZero() iter.Seq2[int, float64]
}
