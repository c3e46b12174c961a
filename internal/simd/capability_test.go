package simd

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMain prints which lane width the test run is using.
func TestMain(m *testing.M) {
	fmt.Printf("GOOS=%s GOARCH=%s %s=%q active=%s lanes=%d override=%v\n",
		runtime.GOOS, runtime.GOARCH, EnvOverride, os.Getenv(EnvOverride),
		ActiveISA(), LaneWidth(), IsOverridden())
	os.Exit(m.Run())
}

func TestParseISA(t *testing.T) {
	tests := []struct {
		in   string
		want ISA
		ok   bool
	}{
		{"generic", Generic, true},
		{" AVX2 ", AVX2, true},
		{"avx512", AVX512, true},
		{"neon", NEON, true},
		{"sse2", SSE2, true},
		{"sve9", Generic, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseISA(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLaneWidthIsPowerOfTwo(t *testing.T) {
	w := LaneWidth()
	assert.GreaterOrEqual(t, w, 1)
	assert.Zero(t, w&(w-1))
}

func TestISAWidth(t *testing.T) {
	assert.Equal(t, 1, Generic.Width())
	assert.Equal(t, 2, SSE2.Width())
	assert.Equal(t, 2, NEON.Width())
	assert.Equal(t, 4, AVX2.Width())
	assert.Equal(t, 8, AVX512.Width())
	assert.Equal(t, "avx2", AVX2.String())
}

func TestGenericAlwaysAvailable(t *testing.T) {
	assert.True(t, isISAAvailable(Generic))
}
