package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ijalalfrz/airport-status-service/internal/app/dto"
	"github.com/ijalalfrz/airport-status-service/internal/app/runner"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/airport"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/console"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/task"
)

type AirportRunner interface {
	Sequential(ctx context.Context, codes []string) runner.TableResult
	WaitAll(ctx context.Context, codes []string) runner.TableResult
	FireAndReport(ctx context.Context, codes []string, handler task.Handler) runner.FireAndReportResult
	WaitEach(ctx context.Context, codes []string) runner.WaitEachResult
}

type RunnerService struct {
	Runner  AirportRunner
	Console *console.Printer
	// ValidCodes feeds the sequential and wait-all strategies, MixedCodes the
	// two failure handling ones.
	ValidCodes []string
	MixedCodes []string
}

func NewRunnerService(airportRunner AirportRunner, printer *console.Printer,
	validCodes []string, mixedCodes []string) *RunnerService {
	return &RunnerService{
		Runner:     airportRunner,
		Console:    printer,
		ValidCodes: validCodes,
		MixedCodes: mixedCodes,
	}
}

// RunDemo runs the four strategies once each, in order, under a banner.
func (s *RunnerService) RunDemo(ctx context.Context) {
	slog.InfoContext(ctx, "running airport status demo",
		slog.Any("valid_codes", s.ValidCodes),
		slog.Any("mixed_codes", s.MixedCodes))

	s.Console.Banner("Sequential Way")
	s.Runner.Sequential(ctx, s.ValidCodes)

	s.Console.Banner("Concurrent Wait-All Way")
	s.Runner.WaitAll(ctx, s.ValidCodes)

	s.Console.Printf("--------- Fire-and-Report and Failure Handling -----------\n")
	s.Runner.FireAndReport(ctx, s.MixedCodes, runner.ConsoleHandler(s.Console))

	s.Console.Printf("--------- Wait-Each and Failure Recovery -----------\n")
	s.Runner.WaitEach(ctx, s.MixedCodes)
}

// Run godoc
// @Summary      Run a fetch strategy
// @Tags         Runs
// @Description  Fetch airport statuses with the requested strategy
// @Param        request  body      dto.RunRequest  true  "Run Request"
// @Success      200      {object}  dto.RunReport
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      429      {object}  dto.ErrorResponse
// @Router       /api/v1/runs [post]
func (s *RunnerService) Run(ctx context.Context, req dto.RunRequest) (dto.RunReport, error) {
	codes := req.Codes
	if len(codes) == 0 {
		codes = s.defaultCodes(req.Strategy)
	}

	report := dto.RunReport{
		RunID:    uuid.New().String(),
		Strategy: req.Strategy,
		Codes:    codes,
		Airports: []dto.Airport{},
	}

	slog.InfoContext(ctx, "run started",
		slog.String("run_id", report.RunID),
		slog.String("strategy", req.Strategy),
		slog.Any("codes", codes))

	var elapsed time.Duration

	switch req.Strategy {
	case runner.StrategySequential:
		result := s.Runner.Sequential(ctx, codes)
		report.Airports = toAirports(result.Airports)
		elapsed = result.Elapsed
	case runner.StrategyWaitAll:
		result := s.Runner.WaitAll(ctx, codes)
		report.Airports = toAirports(result.Airports)
		elapsed = result.Elapsed
	case runner.StrategyFireAndReport:
		sink := newFailureSink(codes, runner.ConsoleHandler(s.Console))
		result := s.Runner.FireAndReport(ctx, codes, sink.Handle)
		report.Tasks = make([]dto.TaskReport, len(result.Jobs))
		for i, job := range result.Jobs {
			report.Tasks[i] = dto.TaskReport{Code: job.Code, Failed: job.Failed}
		}
		report.Failures = sink.Failures()
		elapsed = result.Elapsed
	case runner.StrategyWaitEach:
		result := s.Runner.WaitEach(ctx, codes)
		report.Tasks = make([]dto.TaskReport, len(result.Tasks))
		for i, outcome := range result.Tasks {
			report.Tasks[i] = dto.TaskReport{Code: outcome.Code}
			if outcome.Err != nil {
				report.Tasks[i].Failed = true
				report.Tasks[i].Error = console.Truncate(outcome.Err.Message(), runner.MessageLimit)
				continue
			}
			report.Airports = append(report.Airports, toAirport(*outcome.Airport))
		}
		elapsed = result.Elapsed
	default:
		return dto.RunReport{}, fmt.Errorf("strategy %q: %w", req.Strategy, ErrUnknownStrategy)
	}

	report.ElapsedMs = elapsed.Milliseconds()

	slog.InfoContext(ctx, "run finished",
		slog.String("run_id", report.RunID),
		slog.Int("airports", len(report.Airports)),
		slog.Int64("elapsed_ms", report.ElapsedMs))

	return report, nil
}

func (s *RunnerService) defaultCodes(strategy string) []string {
	switch strategy {
	case runner.StrategyFireAndReport, runner.StrategyWaitEach:
		return s.MixedCodes
	default:
		return s.ValidCodes
	}
}

// failureSink forwards handler calls to next and keeps a copy for the
// report. Handle is called from job goroutines.
type failureSink struct {
	mu       sync.Mutex
	codes    []string
	next     task.Handler
	failures []dto.Failure
}

func newFailureSink(codes []string, next task.Handler) *failureSink {
	return &failureSink{codes: codes, next: next}
}

func (f *failureSink) Handle(code string, err error) {
	f.next(code, err)

	message := console.Truncate(airport.AsFetchError(code, err).Message(), runner.MessageLimit)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, dto.Failure{Code: code, Message: message})
}

// Failures returns the collected failures in submission order.
func (f *failureSink) Failures() []dto.Failure {
	f.mu.Lock()
	defer f.mu.Unlock()

	failures := slices.Clone(f.failures)
	slices.SortStableFunc(failures, func(a, b dto.Failure) int {
		return slices.Index(f.codes, a.Code) - slices.Index(f.codes, b.Code)
	})

	return failures
}

func toAirports(statuses []airport.Status) []dto.Airport {
	results := make([]dto.Airport, len(statuses))
	for i, status := range statuses {
		results[i] = toAirport(status)
	}
	return results
}

func toAirport(status airport.Status) dto.Airport {
	return dto.Airport{
		Code:        status.Code,
		Name:        status.Name,
		Delay:       status.Delay,
		Temperature: status.Weather.FirstReading().String(),
	}
}
