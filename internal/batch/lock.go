package batch

import "sync/atomic"

// storeLock provides non-blocking lock semantics using atomic operations.
// Only one storing batch may run at a time; conversion-only batches never take it.
type storeLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking
func (l *storeLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the goroutine that successfully acquired the lock.
func (l *storeLock) Release() {
	l.state.Store(0)
}
