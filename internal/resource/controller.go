package resource

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// Workers is the number of concurrent offloaded lookups.
	// If 0, defaults to GOMAXPROCS.
	Workers int64

	// IOLimitBytesPerSec caps conversion throughput. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config.
type Controller struct {
	cfg       Config
	workers   *semaphore.Weighted
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.Workers <= 0 {
		cfg.Workers = int64(runtime.GOMAXPROCS(0))
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.Workers),
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// Workers returns the number of worker slots.
func (c *Controller) Workers() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.Workers
}

// AcquireWorker blocks until a worker slot is free or ctx is done.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	return c.workers.Acquire(ctx, 1)
}

// ReleaseWorker returns a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workers.Release(1)
}

// WaitIO blocks until the IO budget allows n bytes.
// Requests larger than the burst are split.
func (c *Controller) WaitIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := c.ioLimiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
