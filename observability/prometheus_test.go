package observability

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewPrometheusObserver(reg)
	require.NoError(t, err)

	o.OnOpen(time.Millisecond, 3, nil)
	o.OnLookup(time.Microsecond, true, nil)
	o.OnLookup(time.Microsecond, false, nil)
	o.OnLookup(time.Microsecond, false, errors.New("closed"))
	o.OnCacheHit("glove")
	o.OnCacheMiss("glove")
	o.OnCacheSet("glove", true)
	o.OnCacheSet("glove", false)
	o.OnRecord(32)
	o.OnRecord(32)
	o.OnConvert(time.Second, 2, nil)

	assert.Equal(t, 3.0, testutil.ToFloat64(o.storeRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.lookups.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.lookups.WithLabelValues("absent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.lookups.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.cacheEvents.WithLabelValues("glove", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.cacheEvents.WithLabelValues("glove", "rejected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.records))
	assert.Equal(t, 64.0, testutil.ToFloat64(o.bytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.conversions.WithLabelValues("success")))

	expected := `
# HELP glovebin_conversions_total Conversion runs by status.
# TYPE glovebin_conversions_total counter
glovebin_conversions_total{status="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "glovebin_conversions_total"))
}

func TestNewPrometheusObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusObserver(reg)
	require.NoError(t, err)
	_, err = NewPrometheusObserver(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewPrometheusObserver(reg)
	require.NoError(t, err)
	o.OnRecord(8)

	path := filepath.Join(t.TempDir(), "glovebin.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "glovebin_convert_records_total 1")
}
