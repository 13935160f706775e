package task

import (
	"context"

	"github.com/alitto/pond/v2"
)

// Future holds the eventual result of one task started by Async.
type Future[T any] struct {
	task  pond.Task
	value T
}

// Async starts fn immediately on the shared pool.
func Async[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	future := &Future[T]{}

	future.task = pool.SubmitErr(func() error {
		return Try(ctx, func(ctx context.Context) error {
			value, err := fn(ctx)
			if err != nil {
				return err
			}

			future.value = value
			return nil
		})
	})

	return future
}

// Await blocks until the task finishes or ctx is done. Awaiting twice
// returns the same outcome.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	var zero T

	select {
	case <-f.task.Done():
		if err := f.task.Wait(); err != nil {
			return zero, err
		}
		return f.value, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
