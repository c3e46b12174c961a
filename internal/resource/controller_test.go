package resource

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Workers(t *testing.T) {
	c := NewController(Config{Workers: 2})
	assert.Equal(t, int64(2), c.Workers())

	require.NoError(t, c.AcquireWorker(t.Context()))
	require.NoError(t, c.AcquireWorker(t.Context()))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireWorker(ctx), context.DeadlineExceeded)

	c.ReleaseWorker()
	ctx, cancel = context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	require.NoError(t, c.AcquireWorker(ctx))
}

func TestController_DefaultWorkers(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(runtime.GOMAXPROCS(0)), c.Workers())
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	require.NoError(t, c.AcquireWorker(t.Context()))
	c.ReleaseWorker()
	require.NoError(t, c.WaitIO(t.Context(), 1<<30))
	assert.Zero(t, c.Workers())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, c.AcquireWorker(ctx), context.Canceled)
}

func TestController_WaitIOSplitsLargeRequests(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	// Larger than the burst; must not fail with "exceeds burst".
	require.NoError(t, c.WaitIO(t.Context(), 1<<20+10))
}

func TestController_WaitIOCanceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Error(t, c.WaitIO(ctx, 1))
}

func TestReaderWriter(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	var out bytes.Buffer
	w := NewWriter(t.Context(), &out, c)
	r := NewReader(t.Context(), strings.NewReader("hello world"), c)

	n, err := io.Copy(w, r)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, "hello world", out.String())
}
