// Package conv provides bounds-checked integer conversions for values read
// from untrusted files: dictionary offsets and block sizes.
//
// For conversions that are provably safe by construction (loop indices,
// lengths of in-memory slices) use direct casts instead.
package conv
