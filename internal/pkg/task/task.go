// Package task runs functions on a shared unbounded pond pool behind two
// handle types. A Job reports failure to a Handler and keeps only a flag. A
// Future hands its result or error to whoever awaits it. Neither cancels
// siblings when it fails, and a panic stays inside the task that raised it.
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alitto/pond/v2"
	"github.com/sourcegraph/conc/panics"
)

// ErrPanicked is wrapped by the error of a task that panicked.
var ErrPanicked = errors.New("task panicked")

var pool = pond.NewPool(0)

// Try runs fn on the calling goroutine and turns a panic into an error
// wrapping ErrPanicked.
func Try(ctx context.Context, fn func(ctx context.Context) error) error {
	var (
		catcher panics.Catcher
		err     error
	)

	catcher.Try(func() {
		err = fn(ctx)
	})

	if recovered := catcher.Recovered(); recovered != nil {
		slog.ErrorContext(ctx, "task panicked",
			slog.Any("panic", recovered.Value),
			slog.String("panic_stack", string(recovered.Stack)))

		return fmt.Errorf("%w: %v", ErrPanicked, recovered.Value)
	}

	return err
}
