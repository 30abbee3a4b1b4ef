// Package resource implements the Controller that governs memory, scan
// workers and loader IO.
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Controller                           │
//	├─────────────────┬─────────────────┬─────────────────────────┤
//	│  Memory Limit   │  Scan Workers   │  IO Rate Limiter        │
//	│  (fail-fast)    │  (semaphore)    │  (token bucket)         │
//	├─────────────────┼─────────────────┼─────────────────────────┤
//	│  AcquireMemory  │  AcquireWorker  │  AcquireIO              │
//	│  ReleaseMemory  │  TryAcquire-    │  NewRateLimitedReader   │
//	│  MemoryUsage    │  Worker         │                         │
//	└─────────────────┴─────────────────┴─────────────────────────┘
//
// # Memory
//
// Genotype storage and every case/control snapshot reserve their size up
// front. AcquireMemory never blocks; it returns ErrMemoryLimitExceeded and
// the caller decides whether to fail or to drop older data first:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 8 << 30,
//	})
//	if err := rc.AcquireMemory(planeBytes); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(planeBytes)
//
// # Workers
//
// Pair scans and mask builds take one worker slot per goroutine, bounding the
// total parallelism of concurrent scans sharing a Controller.
//
// # Nil Safety
//
// All methods handle a nil Controller: limits are disabled and calls are no-ops.
package resource
