// Package vector provides dense float64 vectors laid out as SIMD lanes.
//
// Three shapes share one layout:
//
//   - Dense owns its storage. Arithmetic never mutates the receiver and
//     returns a fresh Dense, except AddWith which accumulates in place.
//   - View borrows caller storage and mutates it in place. It never
//     allocates and must not outlive the buffer it was created from.
//   - Vector is the polymorphic interface. The package-level operators
//     (Add, Sub, Mul, ...) accept any Vector at the cost of an interface
//     dispatch and a heap-allocated result.
//
// Storage is padded to a whole number of lanes (see internal/simd). Padding
// is kept at zero so reductions can walk whole registers.
//
// The on-disk block encoding is dim consecutive little-endian IEEE-754
// doubles; see DecodeDense and Dense.AppendBytes.
package vector
