package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/glovebin/codec"
	"github.com/hupe1980/glovebin/vector"
)

type record struct {
	token  string
	values []float64
}

var animals = []record{
	{"cat", []float64{1, 0, 0, 0}},
	{"dog", []float64{0, 1, 0, 0}},
	{"car", []float64{0.9, 0.1, 0, 0}},
}

// encode serializes records the way the conversion pipeline does.
func encode(records []record) (dict, vec []byte) {
	var off int64
	for _, r := range records {
		dict = codec.AppendEntry(dict, r.token, off)
		vec = vector.AppendValues(vec, r.values)
		off += int64(len(r.values) * vector.ElementSize)
	}
	return dict, vec
}

func writeStore(t *testing.T, records []record) string {
	t.Helper()
	dict, vec := encode(records)
	return writeRaw(t, dict, vec)
}

func writeRaw(t *testing.T, dict, vec []byte) string {
	t.Helper()
	prefix := filepath.Join(t.TempDir(), "emb")
	d, v := Paths(prefix)
	require.NoError(t, os.WriteFile(d, dict, 0o644))
	require.NoError(t, os.WriteFile(v, vec, 0o644))
	return prefix
}

type countingObserver struct {
	opens, lookups, found int
	lastErr               error
}

func (c *countingObserver) OnOpen(_ time.Duration, _ int, err error) {
	c.opens++
	c.lastErr = err
}

func (c *countingObserver) OnLookup(_ time.Duration, found bool, err error) {
	c.lookups++
	if found {
		c.found++
	}
	c.lastErr = err
}
