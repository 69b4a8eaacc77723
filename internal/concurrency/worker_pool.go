package concurrency

import (
	"context"
	"sync"
)

// Small reusable worker pool pattern for fanning out independent tasks.

type WorkerFn func(ctx context.Context, index int)

// SimpleWorkerPool runs fn once for every task index, spread over at
// most concurrency goroutines. It returns once all started tasks have
// finished; a cancelled context stops new tasks from being handed out.
func SimpleWorkerPool(ctx context.Context, concurrency, tasks int, fn WorkerFn) {
	if tasks <= 0 {
		return
	}
	if concurrency > tasks {
		concurrency = tasks
	}
	if concurrency < 1 {
		concurrency = 1
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				fn(ctx, idx)
			}
		}()
	}

feed:
	for i := 0; i < tasks; i++ {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()
}
