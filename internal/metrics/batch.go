package metrics

import "sync"

// Batch accumulates discrete items and hands a full buffer to the processor
// asynchronously once the size threshold is reached. Add blocks only on the
// brief buffer mutation, never on processing; processing failures are the
// processor's concern and cannot stall subsequent adds.
type Batch[T any] struct {
	mu      sync.Mutex
	buf     []T
	size    int
	process func([]T)

	wg sync.WaitGroup
}

// NewBatch creates a collector flushing every size items into process.
func NewBatch[T any](size int, process func([]T)) *Batch[T] {
	return &Batch[T]{
		buf:     make([]T, 0, size),
		size:    size,
		process: process,
	}
}

// Add appends an item. Reaching the threshold atomically swaps the buffer
// out and processes it on its own goroutine.
func (b *Batch[T]) Add(item T) {
	b.mu.Lock()
	b.buf = append(b.buf, item)
	if len(b.buf) < b.size {
		b.mu.Unlock()
		return
	}

	full := b.buf
	b.buf = make([]T, 0, b.size)
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.process(full)
	}()
}

// Flush synchronously processes whatever is buffered, then waits for any
// in-flight asynchronous batches. Intended for shutdown.
func (b *Batch[T]) Flush() {
	b.mu.Lock()
	rest := b.buf
	b.buf = make([]T, 0, b.size)
	b.mu.Unlock()

	if len(rest) > 0 {
		b.process(rest)
	}
	b.wg.Wait()
}

// Len returns the current buffered count.
func (b *Batch[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}
