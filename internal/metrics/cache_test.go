package metrics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_StartsExpired(t *testing.T) {
	t.Parallel()

	c := NewCache[int](time.Minute)

	computed := 0
	got, err := c.GetOrCompute(context.Background(), func(context.Context) (int, error) {
		computed++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, computed)
}

func TestCache_ServesFreshValueWithoutRecompute(t *testing.T) {
	t.Parallel()

	c := NewCache[int](time.Minute)

	computed := 0
	compute := func(context.Context) (int, error) {
		computed++
		return computed, nil
	}

	first, err := c.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, computed)
}

func TestCache_RecomputesAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewCache[int](30 * time.Second)
	c.now = func() time.Time { return now }

	computed := 0
	compute := func(context.Context) (int, error) {
		computed++
		return computed, nil
	}

	_, err := c.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)

	// Just inside the TTL: cached.
	now = now.Add(29 * time.Second)
	got, err := c.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	// At the TTL boundary: stale.
	now = now.Add(time.Second)
	got, err = c.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, 2, computed)
}

func TestCache_ComputeErrorLeavesCacheUnchanged(t *testing.T) {
	t.Parallel()

	c := NewCache[int](time.Minute)

	_, err := c.GetOrCompute(context.Background(), func(context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	require.Error(t, err)

	got, err := c.GetOrCompute(context.Background(), func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	c := NewCache[int](time.Hour)

	computed := 0
	compute := func(context.Context) (int, error) {
		computed++
		return computed, nil
	}

	_, err := c.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)

	c.Invalidate()

	got, err := c.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestCache_StampedeComputesExactlyOnce(t *testing.T) {
	t.Parallel()

	c := NewCache[int64](time.Minute)

	var computes atomic.Int64
	compute := func(context.Context) (int64, error) {
		// Widen the race window so all goroutines pile up on the expired
		// entry before the first compute finishes.
		time.Sleep(10 * time.Millisecond)
		return computes.Add(1), nil
	}

	const readers = 32

	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results [readers]int64
	)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			v, err := c.GetOrCompute(context.Background(), compute)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), computes.Load())
	for _, v := range results {
		assert.Equal(t, int64(1), v)
	}
}
