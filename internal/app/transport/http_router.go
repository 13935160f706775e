package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/airport-status-service/internal/app/config"
	"github.com/ijalalfrz/airport-status-service/internal/app/dto"
	"github.com/ijalalfrz/airport-status-service/internal/app/endpoints"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/observability"
	httptransport "github.com/ijalalfrz/airport-status-service/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
// limiter may be nil, which disables rate limiting.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
	limiter httptransport.Limiter,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Handle("/metrics", observability.MetricsHandler())

	router.Route("/api/v1/runs", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			httptransport.RateLimit(limiter, cfg.RateLimitRPS),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Post("/", httptransport.MakeHandlerFunc(
			endpts.RunnerEndpoint.Run,
			httptransport.DecodeRequest[dto.RunRequest],
			httptransport.ResponseWithBody,
		))
	})

	return router
}
