// Package batch runs independent document analyses concurrently.
package batch

import (
	"context"
	"sync"
)

// Result is the outcome of one item. Index is its position in the input.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// Run calls fn for every item with at most workers calls in flight and
// returns the results in input order. Items not started before ctx is
// done get ctx.Err().
func Run[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) []Result[R] {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result[R], len(items))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, item := range items {
		wg.Add(1)
		go func(index int, it T) {
			defer wg.Done()
			results[index].Index = index

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[index].Err = ctx.Err()
				return
			}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				results[index].Err = err
				return
			}
			results[index].Value, results[index].Err = fn(ctx, it)
		}(i, item)
	}

	wg.Wait()
	return results
}
