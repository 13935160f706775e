package runner

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/airport"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/observability"
)

// WaitAll fetches every code at once, waits for all of them and prints the
// successes in submission order. Failures leave no trace in the output.
func (r *Runner) WaitAll(ctx context.Context, codes []string) TableResult {
	r.Console.Header()

	start := time.Now()

	// one slot per code so completion order does not matter
	slots := make([]*airport.Status, len(codes))

	// tasks never return an error, a failed fetch must not cancel the others
	var group errgroup.Group
	for i, code := range codes {
		group.Go(func() error {
			status, err := r.fetch(ctx, code)
			if err != nil {
				slog.DebugContext(ctx, "dropping airport",
					slog.String("strategy", StrategyWaitAll),
					slog.String("code", code),
					slog.String("error", err.Error()))
				return nil
			}

			slots[i] = &status
			return nil
		})
	}

	//nolint:errcheck
	group.Wait()

	airports := make([]airport.Status, 0, len(codes))
	for _, slot := range slots {
		if slot != nil {
			airports = append(airports, *slot)
		}
	}

	r.printRows(airports)

	elapsed := time.Since(start)
	r.Console.Elapsed(elapsed)
	observability.RecordRun(StrategyWaitAll, elapsed, len(codes)-len(airports))

	return TableResult{Airports: airports, Elapsed: elapsed}
}
