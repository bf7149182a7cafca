package ai_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/ai"
	"github.com/stretchr/testify/assert"
)

func TestRunPoolBoundsConcurrency(t *testing.T) {
	t.Parallel()

	var running, peak int32
	var mu sync.Mutex

	tasks := make([]ai.Task, 20)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error {
			now := atomic.AddInt32(&running, 1)
			mu.Lock()
			if now > peak {
				peak = now
			}
			mu.Unlock()
			defer atomic.AddInt32(&running, -1)
			return nil
		}
	}

	for range ai.RunPool(context.Background(), 5, tasks) {
	}

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int32(5))
}

func TestRunPoolFailuresAreIndependent(t *testing.T) {
	t.Parallel()

	tasks := []ai.Task{
		func(ctx context.Context) error { return assert.AnError },
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return assert.AnError },
		func(ctx context.Context) error { return nil },
	}

	failures := 0
	successes := 0
	for outcome := range ai.RunPool(context.Background(), 2, tasks) {
		if outcome.Err != nil {
			failures++
		} else {
			successes++
		}
	}

	// Every task ran to completion despite sibling failures.
	assert.Equal(t, 2, failures)
	assert.Equal(t, 2, successes)
}

func TestRunPoolReportsIndices(t *testing.T) {
	t.Parallel()

	tasks := make([]ai.Task, 8)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error { return nil }
	}

	seen := map[int]bool{}
	for outcome := range ai.RunPool(context.Background(), 3, tasks) {
		seen[outcome.Index] = true
	}

	assert.Len(t, seen, 8)
}
