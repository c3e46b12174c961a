package simd

import (
	"os"
	"runtime"
	"strings"
)

// ISA represents a SIMD instruction set architecture.
type ISA uint8

const (
	// Generic represents pure Go execution (one double per lane).
	Generic ISA = iota
	// SSE2 represents the x86-64 baseline (128-bit registers).
	SSE2
	// NEON represents ARM64 Advanced SIMD (128-bit registers).
	NEON
	// AVX2 represents x86-64 AVX2 (256-bit registers).
	AVX2
	// AVX512 represents x86-64 AVX-512 Foundation (512-bit registers).
	AVX512
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case SSE2:
		return "sse2"
	case NEON:
		return "neon"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// Width returns the number of float64 values held by one register of the ISA.
func (i ISA) Width() int {
	switch i {
	case SSE2, NEON:
		return 2
	case AVX2:
		return 4
	case AVX512:
		return 8
	default:
		return 1
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "sse2":
		return SSE2, true
	case "neon":
		return NEON, true
	case "avx2":
		return AVX2, true
	case "avx512":
		return AVX512, true
	default:
		return Generic, false
	}
}

// EnvOverride names the environment variable that pins the lane ISA.
const EnvOverride = "GLOVEBIN_SIMD"

// Package-level state, initialized once by the platform init functions.
var (
	activeISA   ISA
	hasOverride bool

	hasSSE2    bool
	hasASIMD   bool
	hasAVX2    bool
	hasAVX512F bool
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv(EnvOverride); override != "" {
		if isa, ok := ParseISA(override); ok && isISAAvailable(isa) {
			hasOverride = true
			activeISA = isa
			return
		}
	}

	activeISA = selectBestISA()
}

func isISAAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case SSE2:
		return hasSSE2
	case NEON:
		return hasASIMD
	case AVX2:
		return hasAVX2
	case AVX512:
		return hasAVX512F
	default:
		return false
	}
}

func selectBestISA() ISA {
	switch runtime.GOARCH {
	case "arm64":
		if hasASIMD {
			return NEON
		}
	case "amd64":
		if hasAVX512F {
			return AVX512
		}
		if hasAVX2 {
			return AVX2
		}
		if hasSSE2 {
			return SSE2
		}
	}
	return Generic
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if GLOVEBIN_SIMD selected the ISA.
func IsOverridden() bool {
	return hasOverride
}

// LaneWidth returns the number of float64 values processed together by one
// register of the active ISA. It is always a power of two.
func LaneWidth() int {
	return activeISA.Width()
}
