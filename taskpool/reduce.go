package taskpool

import (
	"runtime"
	"sync/atomic"
)

// ParkUntil busy-waits, yielding the processor via runtime.Gosched, until
// flag is set. This is the one other suspension point spec.md section
// 4.N allows besides SyncScope itself — a reducer that combines partial
// results as they arrive (rather than waiting for every worker via a
// single SyncScope) can park on a per-slot flag instead of a channel,
// avoiding an allocation per handoff. Cancellation and timeouts are
// deliberately not supported here: batches are short-lived, and a park
// that never resolves indicates a bug in the caller's task graph, not a
// condition to recover from at runtime.
func ParkUntil(flag *atomic.Bool) {
	for !flag.Load() {
		runtime.Gosched()
	}
}
