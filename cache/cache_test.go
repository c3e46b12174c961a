package cache

import (
	"fmt"
	"testing"

	"github.com/dgraph-io/ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRistretto(t *testing.T) {
	c, err := NewRistretto[string](1 << 20)
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Set("a", "alpha", 10))
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)
	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))

	// A single entry larger than the budget is rejected.
	assert.False(t, c.Set("huge", "x", 2<<20))
	assert.False(t, c.Contains("huge"))

	_, err = NewRistretto[string](0)
	assert.Error(t, err)
}

func TestRistretto_ContainsIsNotAnAccess(t *testing.T) {
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
		Metrics:     true,
	})
	require.NoError(t, err)
	c := &Ristretto[string]{c: rc}
	defer c.Close()

	require.True(t, c.Set("a", "alpha", 1))
	hits, misses := rc.Metrics.Hits(), rc.Metrics.Misses()

	for range 5 {
		assert.True(t, c.Contains("a"))
		assert.False(t, c.Contains("b"))
	}
	assert.Equal(t, hits, rc.Metrics.Hits())
	assert.Equal(t, misses, rc.Metrics.Misses())

	_, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, hits+1, rc.Metrics.Hits())
}

func TestLRU_Evicts(t *testing.T) {
	c, err := NewLRU[int](2)
	require.NoError(t, err)
	defer c.Close()

	for i := range 3 {
		assert.True(t, c.Set(fmt.Sprint(i), i, 0))
	}
	assert.False(t, c.Contains("0"))
	v, ok := c.Get("2")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, err = NewLRU[int](0)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, DefaultName, c.Name)
	assert.Equal(t, PolicyRistretto, c.Policy)
	assert.Equal(t, DefaultMaxEntries, c.MaxEntries)
}
