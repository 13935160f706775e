package runner

import (
	"context"
	"time"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/airport"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/console"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/logger"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/observability"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/task"
)

// WaitEach starts every fetch at once and then awaits them one by one in
// submission order. A failure is handled where its result is retrieved and
// the loop moves on to the next task.
func (r *Runner) WaitEach(ctx context.Context, codes []string) WaitEachResult {
	start := time.Now()

	futures := make([]*task.Future[airport.Status], len(codes))
	for i, code := range codes {
		futures[i] = task.Async(logger.WithAirportCode(ctx, code), func(ctx context.Context) (airport.Status, error) {
			return r.Fetcher.Fetch(ctx, code)
		})
	}

	outcomes := make([]TaskOutcome, len(futures))
	failures := 0
	for i, future := range futures {
		outcomes[i] = TaskOutcome{Code: codes[i]}

		status, err := future.Await(ctx)
		if err != nil {
			failures++
			outcomes[i].Err = airport.AsFetchError(codes[i], err)
			r.Console.Printf("Error: %s\n", console.Truncate(outcomes[i].Err.Message(), MessageLimit))
			continue
		}

		outcomes[i].Airport = &status
		r.Console.Printf("%s %t\n", status.Code, status.Delay)
	}

	elapsed := time.Since(start)
	observability.RecordRun(StrategyWaitEach, elapsed, failures)

	return WaitEachResult{Tasks: outcomes, Elapsed: elapsed}
}
