package runner

import (
	"context"
	"time"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/airport"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/console"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/task"
)

// MessageLimit caps how much of a failure message is printed.
const MessageLimit = 29

const (
	StrategySequential    = "sequential"
	StrategyWaitAll       = "wait_all"
	StrategyFireAndReport = "fire_and_report"
	StrategyWaitEach      = "wait_each"
)

// Runner fetches a list of airport codes with one of four strategies and
// prints what it gets to the console.
type Runner struct {
	Fetcher airport.Fetcher
	Console *console.Printer
}

func NewRunner(fetcher airport.Fetcher, printer *console.Printer) *Runner {
	return &Runner{
		Fetcher: fetcher,
		Console: printer,
	}
}

// TableResult is what the sequential and wait-all runners print, in print
// order. Failed codes are absent.
type TableResult struct {
	Airports []airport.Status
	Elapsed  time.Duration
}

// JobOutcome is the terminal flag of one fire-and-report task.
type JobOutcome struct {
	Code   string
	Failed bool
}

type FireAndReportResult struct {
	Jobs    []JobOutcome
	Elapsed time.Duration
}

// TaskOutcome is one wait-each task as seen at its retrieval site. Exactly
// one of Airport and Err is set.
type TaskOutcome struct {
	Code    string
	Airport *airport.Status
	Err     *airport.FetchError
}

type WaitEachResult struct {
	Tasks   []TaskOutcome
	Elapsed time.Duration
}

func (r *Runner) printRows(airports []airport.Status) {
	for _, status := range airports {
		r.Console.Row(status.Code, status.Weather.FirstReading(), status.Delay)
	}
}

// fetch calls the fetcher with a panic turned into an error.
func (r *Runner) fetch(ctx context.Context, code string) (airport.Status, error) {
	var status airport.Status

	err := task.Try(ctx, func(ctx context.Context) error {
		var err error
		status, err = r.Fetcher.Fetch(ctx, code)
		return err
	})
	if err != nil {
		return airport.Status{}, err
	}

	return status, nil
}
