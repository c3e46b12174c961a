package store

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/glovebin/internal/resource"
	"github.com/hupe1980/glovebin/vector"
)

func TestAccessor_Boxed(t *testing.T) {
	a, err := OpenBoxed(writeStore(t, animals))
	require.NoError(t, err)
	defer a.Close()

	v, err := a.Lookup("dog")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, []float64{0, 1, 0, 0}, v.Values())

	// The boxed value supports the polymorphic operators.
	sum, err := vector.Add(v, v)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sum.Sum())

	v, err = a.Lookup("bird")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestAccessor_Dense(t *testing.T) {
	a, err := OpenDense(writeStore(t, animals))
	require.NoError(t, err)
	defer a.Close()

	v, err := a.Lookup("cat")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Sum())

	v, err = a.Lookup("bird")
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
}

func TestAccessor_SharedMapped(t *testing.T) {
	m, err := OpenPrefix(writeStore(t, animals))
	require.NoError(t, err)

	boxed := NewAccessor[vector.Vector](m, Boxed{})
	dense := NewAccessor[vector.Dense](m, Concrete{})

	bv, err := boxed.Lookup("car")
	require.NoError(t, err)
	dv, err := dense.Lookup("car")
	require.NoError(t, err)
	assert.Equal(t, bv.Values(), dv.Values())

	// Non-owning accessors leave the store open.
	require.NoError(t, boxed.Close())
	assert.True(t, dense.Contains("car"))
	assert.Same(t, m, dense.Mapped())

	require.NoError(t, m.Close())
	_, err = dense.Lookup("car")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestAccessor_LookupAsync(t *testing.T) {
	rc := resource.NewController(resource.Config{Workers: 1})
	a, err := OpenDense(writeStore(t, animals), WithController(rc))
	require.NoError(t, err)
	defer a.Close()

	res := <-a.LookupAsync(t.Context(), "car")
	require.NoError(t, res.Err)
	assert.Equal(t, []float64{0.9, 0.1, 0, 0}, res.Value.Values())

	res = <-a.LookupAsync(t.Context(), "nope")
	require.NoError(t, res.Err)
	assert.True(t, res.Value.IsEmpty())

	// With the only worker slot taken, a canceled caller gets its error.
	require.NoError(t, rc.AcquireWorker(t.Context()))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	res = <-a.LookupAsync(ctx, "car")
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.True(t, res.Value.IsEmpty())
	rc.ReleaseWorker()
}

func TestAccessor_LookupMany(t *testing.T) {
	a, err := OpenBoxed(writeStore(t, animals))
	require.NoError(t, err)
	defer a.Close()

	got, err := a.LookupMany(t.Context(), []string{"car", "bird", "cat"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 0.9, got[0].At(0))
	assert.Nil(t, got[1])
	assert.Equal(t, 1.0, got[2].At(0))

	require.NoError(t, a.Mapped().Close())
	_, err = LookupMany[vector.Vector](t.Context(), a, []string{"cat"}, 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestScan(t *testing.T) {
	dict, vec := encode(animals)

	var got []record
	for e, err := range Scan(bytes.NewReader(dict), bytes.NewReader(vec)) {
		require.NoError(t, err)
		got = append(got, record{e.Token, e.Vector.Values()})
	}
	assert.Equal(t, animals, got)
}

func TestScan_SingleRecord(t *testing.T) {
	dict, vec := encode(animals[:1])

	var errs []error
	for _, err := range Scan(bytes.NewReader(dict), bytes.NewReader(vec)) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrUndeterminedBlockSize)

	var tokens []string
	for e, err := range Scan(bytes.NewReader(dict), bytes.NewReader(vec), WithDimension(4)) {
		require.NoError(t, err)
		tokens = append(tokens, e.Token)
	}
	assert.Equal(t, []string{"cat"}, tokens)
}

func TestScan_TruncatedVectors(t *testing.T) {
	dict, vec := encode(animals)

	var tokens []string
	var last error
	for e, err := range Scan(bytes.NewReader(dict), bytes.NewReader(vec[:70])) {
		if err != nil {
			last = err
			break
		}
		tokens = append(tokens, e.Token)
	}
	assert.Equal(t, []string{"cat", "dog"}, tokens)
	assert.Error(t, last)
}

func TestScan_EarlyBreak(t *testing.T) {
	dict, vec := encode(animals)
	var tokens []string
	for e := range Scan(bytes.NewReader(dict), bytes.NewReader(vec)) {
		tokens = append(tokens, e.Token)
		if len(tokens) == 2 {
			break
		}
	}
	assert.True(t, slices.Equal([]string{"cat", "dog"}, tokens))
}
