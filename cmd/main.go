package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/airport-status-service/internal/app/config"
	"github.com/ijalalfrz/airport-status-service/internal/app/dto"
	"github.com/ijalalfrz/airport-status-service/internal/app/endpoints"
	"github.com/ijalalfrz/airport-status-service/internal/app/runner"
	"github.com/ijalalfrz/airport-status-service/internal/app/service"
	"github.com/ijalalfrz/airport-status-service/internal/app/transport"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/airport"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/console"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/logger"
	httptransport "github.com/ijalalfrz/airport-status-service/internal/pkg/transport/http"
	"github.com/redis/go-redis/v9"
)

// @title           Airport Status Service API
// @version         0.0.1
// @description     airport-status-service
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {

	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	runnerService := makeRunnerService(&cfg)

	switch cfg.Mode {
	case config.ModeServe:
		runApp(ctx, cfg, runnerService)
	default:
		runnerService.RunDemo(ctx)
	}
}

func runApp(ctx context.Context, cfg config.Config, runnerService *service.RunnerService) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg, runnerService)
	}()

	<-ctx.Done()
	slog.InfoContext(ctx, "received shutdown signal. Exiting...")

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config, runnerService *service.RunnerService) {
	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	endpts := endpoints.Endpoints{
		RunnerEndpoint: endpoints.MakeRunnerEndpoint(runnerService),
	}
	router := transport.MakeHTTPRouter(&cfg, endpts, initLimiter(&cfg))
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeRunnerService(cfg *config.Config) *service.RunnerService {
	printer := console.NewPrinter(os.Stdout)
	airportRunner := runner.NewRunner(initFetcher(cfg), printer)

	return service.NewRunnerService(airportRunner, printer,
		cfg.Demo.ValidCodes, cfg.Demo.MixedCodes)
}

// fixtures replace the remote API when a fixture dir is configured
func initFetcher(cfg *config.Config) airport.Fetcher {
	if cfg.AirportStatus.FixtureDir != "" {
		slog.Info("using airport status fixtures", slog.String("dir", cfg.AirportStatus.FixtureDir))

		return airport.Instrument(airport.NewFileFetcher(
			cfg.AirportStatus.FixtureDir,
			cfg.AirportStatus.FixtureMinDelay,
			cfg.AirportStatus.FixtureMaxDelay,
		))
	}

	return airport.Instrument(airport.NewClient(airport.ClientConfig{
		BaseURL: cfg.AirportStatus.BaseURL,
		Timeout: cfg.AirportStatus.Timeout,
	}))
}

// rate limiting needs redis, without it the API is unlimited
func initLimiter(cfg *config.Config) httptransport.Limiter {
	if cfg.Redis.Addr == "" || cfg.RateLimitRPS <= 0 {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return redis_rate.NewLimiter(redisClient)
}
