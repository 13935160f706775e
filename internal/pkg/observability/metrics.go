package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var (
	registry *prometheus.Registry

	// Status API calls by outcome. Watch for: failure ratio climbing on valid codes.
	AirportFetchTotal *prometheus.CounterVec

	// Status API latency per call.
	AirportFetchDuration *prometheus.HistogramVec

	// Wall-clock time of one runner pass over its code list.
	RunnerDuration *prometheus.HistogramVec

	// Failed tasks per runner pass, whether printed or swallowed.
	RunnerTaskFailuresTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	AirportFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airport_status_fetch_total",
			Help: "Total number of airport status fetches",
		},
		[]string{"outcome"},
	)
	AirportFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airport_status_fetch_duration_seconds",
			Help:    "Airport status fetch latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)
	RunnerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airport_runner_duration_seconds",
			Help:    "Time taken by one runner pass in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"strategy"},
	)
	RunnerTaskFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airport_runner_task_failures_total",
			Help: "Total number of failed fetch tasks per runner strategy",
		},
		[]string{"strategy"},
	)

	registry.MustRegister(
		AirportFetchTotal, AirportFetchDuration,
		RunnerDuration, RunnerTaskFailuresTotal,
	)
}

// MetricsHandler exposes the service registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordFetch records one status API call.
func RecordFetch(err error, elapsed time.Duration) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}

	AirportFetchTotal.WithLabelValues(outcome).Inc()
	AirportFetchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// RecordRun records one runner pass.
func RecordRun(strategy string, elapsed time.Duration, failures int) {
	RunnerDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	if failures > 0 {
		RunnerTaskFailuresTotal.WithLabelValues(strategy).Add(float64(failures))
	}
}
