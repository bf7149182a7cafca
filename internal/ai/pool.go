package ai

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// defaultWorkers is the hard cap on concurrent generation tasks.
const defaultWorkers = 5

// Task is one unit of pool work.
type Task func(ctx context.Context) error

// Outcome is the result of one task, streamed in completion order.
type Outcome struct {
	Index int
	Err   error
}

// RunPool executes tasks with at most limit running concurrently and
// streams each task's outcome as it finishes. Completion order is not
// submission order. A task's failure never cancels its siblings; the
// channel closes after all tasks ran.
func RunPool(ctx context.Context, limit int, tasks []Task) <-chan Outcome {
	if limit <= 0 {
		limit = defaultWorkers
	}

	outcomes := make(chan Outcome)

	go func() {
		defer close(outcomes)

		group := errgroup.Group{}
		group.SetLimit(limit)

		for i, task := range tasks {
			i, task := i, task
			group.Go(func() error {
				err := task(ctx)
				select {
				case outcomes <- Outcome{Index: i, Err: err}:
				case <-ctx.Done():
				}
				return nil
			})
		}

		_ = group.Wait()
	}()

	return outcomes
}
