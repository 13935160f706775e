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

// FireAndReport launches one job per code. Jobs print their own success
// line; failures never come back to this call and only reach handler. After
// every job has finished, each job's failure flag is printed in submission
// order.
func (r *Runner) FireAndReport(ctx context.Context, codes []string, handler task.Handler) FireAndReportResult {
	start := time.Now()

	jobs := make([]*task.Job, len(codes))
	for i, code := range codes {
		jobs[i] = task.Launch(logger.WithAirportCode(ctx, code), code, func(ctx context.Context) error {
			status, err := r.Fetcher.Fetch(ctx, code)
			if err != nil {
				return err
			}

			r.Console.Printf("%s delay: %t\n", status.Code, status.Delay)
			return nil
		}, handler)
	}

	task.JoinAll(jobs)

	outcomes := make([]JobOutcome, len(jobs))
	failures := 0
	for i, job := range jobs {
		outcomes[i] = JobOutcome{Code: job.Name(), Failed: job.Failed()}
		if outcomes[i].Failed {
			failures++
		}
		r.Console.Printf("Cancelled: %t\n", outcomes[i].Failed)
	}

	elapsed := time.Since(start)
	observability.RecordRun(StrategyFireAndReport, elapsed, failures)

	return FireAndReportResult{Jobs: outcomes, Elapsed: elapsed}
}

// ConsoleHandler prints one "Caught" line per failed job with the message
// cut to MessageLimit.
func ConsoleHandler(printer *console.Printer) task.Handler {
	return func(code string, err error) {
		fetchErr := airport.AsFetchError(code, err)
		printer.Printf("Caught: %s %s\n", code, console.Truncate(fetchErr.Message(), MessageLimit))
	}
}
