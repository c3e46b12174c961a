// Package resource bounds the work a store or a conversion may put on the
// host.
//
// A Controller carries two limits:
//
//   - worker slots: a weighted semaphore sized to GOMAXPROCS by default,
//     taken by every offloaded lookup so that LookupAsync cannot spawn
//     unbounded blocking reads against the mapped file;
//   - an IO budget: a token bucket (bytes per second) applied to conversion
//     streams through Reader and Writer wrappers.
//
//	rc := resource.NewController(resource.Config{
//	    Workers:            8,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// All methods are safe for concurrent use, and a nil *Controller imposes no
// limits.
package resource
