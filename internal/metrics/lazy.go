package metrics

import (
	"sync"
	"sync/atomic"
)

// Lazy gates recomputation behind a dirty flag: MarkDirty is cheap and
// non-blocking, and the compute function runs only when a consumer actually
// asks for the value while the flag is set. A single Get sees a consistent
// snapshot; beyond that this is meant for single-reader or externally
// synchronized use; the heavier Cache covers concurrent readers.
type Lazy[T any] struct {
	dirty   atomic.Bool
	compute func() T

	mu    sync.Mutex
	value T
}

// NewLazy creates a collector that starts dirty, so the first Get computes.
func NewLazy[T any](compute func() T) *Lazy[T] {
	l := &Lazy[T]{compute: compute}
	l.dirty.Store(true)
	return l
}

// MarkDirty flags the value for recomputation on the next Get.
func (l *Lazy[T]) MarkDirty() {
	l.dirty.Store(true)
}

// Get returns the value, recomputing it first if dirty.
func (l *Lazy[T]) Get() T {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.dirty.Swap(false) {
		l.value = l.compute()
	}
	return l.value
}
