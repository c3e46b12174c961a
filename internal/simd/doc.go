// Package simd detects the float64 register width of the host CPU.
//
// The vector package lays dense vectors out as a sequence of lanes whose
// width matches the active ISA, so elementwise kernels can walk whole
// registers without a scalar tail:
//
//   - x86-64: AVX-512 (8 doubles), AVX2 (4), SSE2 baseline (2)
//   - ARM64: NEON (2)
//   - anything else: 1
//
// Set GLOVEBIN_SIMD to one of generic, sse2, neon, avx2, avx512 to pin a
// narrower ISA. Unsupported overrides are ignored.
package simd
