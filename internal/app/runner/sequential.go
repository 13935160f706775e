package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/airport"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/observability"
)

// Sequential fetches codes one after another, printing each row as soon as
// its fetch returns. A failed code is skipped without a row.
func (r *Runner) Sequential(ctx context.Context, codes []string) TableResult {
	r.Console.Header()

	start := time.Now()
	airports := make([]airport.Status, 0, len(codes))
	failures := 0

	for _, code := range codes {
		status, err := r.fetch(ctx, code)
		if err != nil {
			failures++
			slog.DebugContext(ctx, "skipping airport",
				slog.String("strategy", StrategySequential),
				slog.String("code", code),
				slog.String("error", err.Error()))
			continue
		}

		airports = append(airports, status)
		r.Console.Row(status.Code, status.Weather.FirstReading(), status.Delay)
	}

	elapsed := time.Since(start)
	r.Console.Elapsed(elapsed)
	observability.RecordRun(StrategySequential, elapsed, failures)

	return TableResult{Airports: airports, Elapsed: elapsed}
}
