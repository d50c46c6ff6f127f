package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// batchSink collects processed batches under a lock.
type batchSink struct {
	mu      sync.Mutex
	batches [][]int
}

func (s *batchSink) process(batch []int) {
	s.mu.Lock()
	s.batches = append(s.batches, batch)
	s.mu.Unlock()
}

func (s *batchSink) snapshot() [][]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches
}

func TestBatch_FlushesAtThreshold(t *testing.T) {
	t.Parallel()

	sink := &batchSink{}
	b := NewBatch(3, sink.process)

	b.Add(1)
	b.Add(2)
	assert.Empty(t, sink.snapshot())
	assert.Equal(t, 2, b.Len())

	b.Add(3)
	b.Flush() // waits for the async batch

	batches := sink.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []int{1, 2, 3}, batches[0])
	assert.Equal(t, 0, b.Len())
}

func TestBatch_FlushDrainsPartialBuffer(t *testing.T) {
	t.Parallel()

	sink := &batchSink{}
	b := NewBatch(10, sink.process)

	b.Add(1)
	b.Add(2)
	b.Flush()

	batches := sink.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []int{1, 2}, batches[0])
}

func TestBatch_AddDoesNotBlockOnProcessing(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	b := NewBatch(2, func([]int) { <-release })

	b.Add(1)
	b.Add(2) // triggers async processing that blocks on release

	done := make(chan struct{})
	go func() {
		b.Add(3) // must not wait for the stuck processor
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Add blocked on batch processing")
	}

	close(release)
	b.Flush()
}

func TestBatch_ConcurrentAddsLoseNothing(t *testing.T) {
	t.Parallel()

	sink := &batchSink{}
	b := NewBatch(7, sink.process)

	const producers = 8
	const perProducer = 25

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.Add(i)
			}
		}()
	}
	wg.Wait()
	b.Flush()

	total := 0
	for _, batch := range sink.snapshot() {
		total += len(batch)
	}
	assert.Equal(t, producers*perProducer, total)
}
