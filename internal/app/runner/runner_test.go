package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/airport"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/console"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/task"
)

const (
	longMessage = "Unexpected character at position 0: '<' (code 60)"
	headerLine  = "Code      Temperature         Delay     "
	elapsedLine = `^Total taken time : \d+ milliseconds$`
)

func statusOf(code string, delay bool, temp string) airport.Status {
	return airport.Status{
		Code:    code,
		Name:    code + " International",
		Delay:   delay,
		Weather: airport.Weather{Temperature: []airport.Reading{airport.Reading(temp)}},
	}
}

func unknown(code string) error {
	return &airport.FetchError{Code: code, Cause: airport.ErrUnknownAirport}
}

func exploding(context.Context, string) (airport.Status, error) {
	panic("decoder exploded")
}

func newTestRunner(t *testing.T) (*Runner, *airport.MockFetcher, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	fetcher := airport.NewMockFetcher(t)

	return NewRunner(fetcher, console.NewPrinter(buf)), fetcher, buf
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRunner_Sequential_Closure(t *testing.T) {
	sequentialRequest := func(
		codes []string,
		setup func(f *airport.MockFetcher, buf *bytes.Buffer),
		wantCodes []string,
		wantRows []string,
	) func(t *testing.T) {
		return func(t *testing.T) {
			r, fetcher, buf := newTestRunner(t)
			setup(fetcher, buf)

			result := r.Sequential(context.Background(), codes)

			gotCodes := make([]string, 0, len(result.Airports))
			for _, status := range result.Airports {
				gotCodes = append(gotCodes, status.Code)
			}
			assert.Equal(t, wantCodes, gotCodes)

			got := lines(buf)
			require.Len(t, got, len(wantRows)+2)
			assert.Equal(t, headerLine, got[0])
			assert.Equal(t, wantRows, got[1:len(got)-1])
			assert.Regexp(t, elapsedLine, got[len(got)-1])
		}
	}

	t.Run("skips_failed_codes", sequentialRequest(
		[]string{"LAX", "SF-", "SEA"},
		func(f *airport.MockFetcher, _ *bytes.Buffer) {
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", false, "64.0"), nil).Once()
			f.On("Fetch", mock.Anything, "SF-").Return(airport.Status{}, unknown("SF-")).Once()
			f.On("Fetch", mock.Anything, "SEA").Return(statusOf("SEA", true, "51.5"), nil).Once()
		},
		[]string{"LAX", "SEA"},
		[]string{
			"LAX       64.0                false     ",
			"SEA       51.5                true      ",
		},
	))

	t.Run("prints_each_row_as_it_arrives", sequentialRequest(
		[]string{"LAX", "SFO"},
		func(f *airport.MockFetcher, buf *bytes.Buffer) {
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", false, "64.0"), nil).Once()
			f.On("Fetch", mock.Anything, "SFO").Return(statusOf("SFO", false, "60.1"), nil).Run(func(mock.Arguments) {
				assert.Contains(t, buf.String(), "LAX       64.0")
			}).Once()
		},
		[]string{"LAX", "SFO"},
		[]string{
			"LAX       64.0                false     ",
			"SFO       60.1                false     ",
		},
	))

	t.Run("panicking_fetch_is_skipped", sequentialRequest(
		[]string{"BAD", "LAX"},
		func(f *airport.MockFetcher, _ *bytes.Buffer) {
			f.On("Fetch", mock.Anything, "BAD").Return(exploding).Once()
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", false, "64.0"), nil).Once()
		},
		[]string{"LAX"},
		[]string{"LAX       64.0                false     "},
	))

	t.Run("empty_list", sequentialRequest(
		nil,
		func(*airport.MockFetcher, *bytes.Buffer) {},
		[]string{},
		[]string{},
	))
}

func TestRunner_Sequential_TakesTheSumOfLatencies(t *testing.T) {
	r, fetcher, _ := newTestRunner(t)

	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(statusOf("LAX", false, "64.0"), nil).After(30 * time.Millisecond).Times(3)

	result := r.Sequential(context.Background(), []string{"LAX", "LAX", "LAX"})

	assert.GreaterOrEqual(t, result.Elapsed, 90*time.Millisecond)
}

func TestRunner_WaitAll_Closure(t *testing.T) {
	waitAllRequest := func(
		codes []string,
		setup func(f *airport.MockFetcher),
		wantRows []string,
	) func(t *testing.T) {
		return func(t *testing.T) {
			r, fetcher, buf := newTestRunner(t)
			setup(fetcher)

			result := r.WaitAll(context.Background(), codes)

			assert.Len(t, result.Airports, len(wantRows))

			got := lines(buf)
			require.Len(t, got, len(wantRows)+2)
			assert.Equal(t, headerLine, got[0])
			assert.Equal(t, wantRows, got[1:len(got)-1])
			assert.Regexp(t, elapsedLine, got[len(got)-1])
			assert.NotContains(t, buf.String(), "not found")
		}
	}

	t.Run("prints_in_submission_order", waitAllRequest(
		[]string{"LAX", "SF-", "SEA"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", false, "64.0"), nil).After(60 * time.Millisecond).Once()
			f.On("Fetch", mock.Anything, "SF-").Return(airport.Status{}, unknown("SF-")).Once()
			f.On("Fetch", mock.Anything, "SEA").Return(statusOf("SEA", true, "51.5"), nil).Once()
		},
		[]string{
			"LAX       64.0                false     ",
			"SEA       51.5                true      ",
		},
	))

	t.Run("panicking_fetch_is_contained", waitAllRequest(
		[]string{"LAX", "BAD"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", false, "64.0"), nil).Once()
			f.On("Fetch", mock.Anything, "BAD").Return(exploding).Once()
		},
		[]string{"LAX       64.0                false     "},
	))

	t.Run("all_failed", waitAllRequest(
		[]string{"XX-", "YY-"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, mock.Anything).Return(airport.Status{}, unknown("XX-")).Twice()
		},
		[]string{},
	))
}

func TestRunner_WaitAll_FetchesConcurrently(t *testing.T) {
	r, fetcher, _ := newTestRunner(t)

	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(statusOf("LAX", false, "64.0"), nil).After(50 * time.Millisecond).Times(4)

	result := r.WaitAll(context.Background(), []string{"LAX", "SFO", "PDX", "SEA"})

	assert.Len(t, result.Airports, 4)
	assert.Less(t, result.Elapsed, 150*time.Millisecond)
}

func TestRunner_FireAndReport_Closure(t *testing.T) {
	fireAndReportRequest := func(
		codes []string,
		setup func(f *airport.MockFetcher),
		wantCaught []string,
		wantTaskLines []string,
		wantJobs []JobOutcome,
	) func(t *testing.T) {
		return func(t *testing.T) {
			r, fetcher, buf := newTestRunner(t)
			setup(fetcher)

			var (
				mu     sync.Mutex
				caught []string
			)
			printCaught := ConsoleHandler(r.Console)
			handler := func(code string, err error) {
				mu.Lock()
				caught = append(caught, code)
				mu.Unlock()
				printCaught(code, err)
			}

			result := r.FireAndReport(context.Background(), codes, handler)

			assert.ElementsMatch(t, wantCaught, caught)
			assert.Equal(t, wantJobs, result.Jobs)

			cancelled := make([]string, len(wantJobs))
			for i, job := range wantJobs {
				cancelled[i] = fmt.Sprintf("Cancelled: %t", job.Failed)
			}

			got := lines(buf)
			require.Len(t, got, len(wantTaskLines)+len(cancelled))
			assert.ElementsMatch(t, wantTaskLines, got[:len(wantTaskLines)])
			assert.Equal(t, cancelled, got[len(wantTaskLines):])
		}
	}

	t.Run("failures_only_reach_the_handler", fireAndReportRequest(
		[]string{"LAX", "SF-", "SEA"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", true, "64.0"), nil).After(20 * time.Millisecond).Once()
			f.On("Fetch", mock.Anything, "SF-").Return(airport.Status{}, unknown("SF-")).Once()
			f.On("Fetch", mock.Anything, "SEA").Return(statusOf("SEA", false, "51.5"), nil).Once()
		},
		[]string{"SF-"},
		[]string{"LAX delay: true", "Caught: SF- airport not found", "SEA delay: false"},
		[]JobOutcome{{Code: "LAX"}, {Code: "SF-", Failed: true}, {Code: "SEA"}},
	))

	t.Run("handler_message_is_truncated", fireAndReportRequest(
		[]string{"PD-", "SF-"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, "PD-").Return(airport.Status{}, errors.New(longMessage)).Once()
			f.On("Fetch", mock.Anything, "SF-").Return(airport.Status{}, unknown("SF-")).Once()
		},
		[]string{"PD-", "SF-"},
		[]string{"Caught: PD- " + longMessage[:MessageLimit], "Caught: SF- airport not found"},
		[]JobOutcome{{Code: "PD-", Failed: true}, {Code: "SF-", Failed: true}},
	))

	t.Run("panicking_fetch_is_contained", fireAndReportRequest(
		[]string{"LAX", "BAD"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", false, "64.0"), nil).Once()
			f.On("Fetch", mock.Anything, "BAD").Return(exploding).Once()
		},
		[]string{"BAD"},
		[]string{"LAX delay: false", "Caught: BAD task panicked: decoder explod"},
		[]JobOutcome{{Code: "LAX"}, {Code: "BAD", Failed: true}},
	))
}

func TestRunner_WaitEach_Closure(t *testing.T) {
	waitEachRequest := func(
		codes []string,
		setup func(f *airport.MockFetcher),
		wantLines []string,
		check func(t *testing.T, result WaitEachResult),
	) func(t *testing.T) {
		return func(t *testing.T) {
			r, fetcher, buf := newTestRunner(t)
			setup(fetcher)

			result := r.WaitEach(context.Background(), codes)

			assert.Equal(t, wantLines, lines(buf))
			require.Len(t, result.Tasks, len(codes))
			for i, outcome := range result.Tasks {
				assert.Equal(t, codes[i], outcome.Code)
				assert.True(t, (outcome.Airport == nil) != (outcome.Err == nil))
			}
			check(t, result)
		}
	}

	t.Run("retrieves_in_submission_order", waitEachRequest(
		[]string{"LAX", "SF-", "PD-", "SEA"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", true, "64.0"), nil).After(60 * time.Millisecond).Once()
			f.On("Fetch", mock.Anything, "SF-").Return(airport.Status{}, unknown("SF-")).Once()
			f.On("Fetch", mock.Anything, "PD-").Return(airport.Status{}, errors.New(longMessage)).Once()
			f.On("Fetch", mock.Anything, "SEA").Return(statusOf("SEA", false, "51.5"), nil).Once()
		},
		[]string{
			"LAX true",
			"Error: airport not found",
			"Error: " + longMessage[:MessageLimit],
			"SEA false",
		},
		func(t *testing.T, result WaitEachResult) {
			assert.ErrorIs(t, result.Tasks[1].Err, airport.ErrUnknownAirport)
			assert.Equal(t, "PD-", result.Tasks[2].Err.Code)
			assert.Equal(t, "SEA", result.Tasks[3].Airport.Code)
		},
	))

	t.Run("panicking_fetch_is_contained", waitEachRequest(
		[]string{"BAD", "LAX"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, "BAD").Return(exploding).Once()
			f.On("Fetch", mock.Anything, "LAX").Return(statusOf("LAX", false, "64.0"), nil).Once()
		},
		[]string{"Error: task panicked: decoder explod", "LAX false"},
		func(t *testing.T, result WaitEachResult) {
			assert.ErrorIs(t, result.Tasks[0].Err, task.ErrPanicked)
		},
	))

	t.Run("all_failed", waitEachRequest(
		[]string{"XX-", "YY-"},
		func(f *airport.MockFetcher) {
			f.On("Fetch", mock.Anything, mock.Anything).Return(airport.Status{}, unknown("XX-")).Twice()
		},
		[]string{"Error: airport not found", "Error: airport not found"},
		func(*testing.T, WaitEachResult) {},
	))
}

func TestRunner_WaitEach_FetchesConcurrently(t *testing.T) {
	r, fetcher, _ := newTestRunner(t)

	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(statusOf("LAX", false, "64.0"), nil).After(50 * time.Millisecond).Times(4)

	result := r.WaitEach(context.Background(), []string{"LAX", "SFO", "PDX", "SEA"})

	assert.Len(t, result.Tasks, 4)
	assert.Less(t, result.Elapsed, 150*time.Millisecond)
}
