package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pandey-solutions/saves/internal/api/docs"
	"github.com/pandey-solutions/saves/internal/api/handlers"
	"github.com/pandey-solutions/saves/internal/api/middleware"
	"github.com/pandey-solutions/saves/internal/config"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/metrics"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Session   *handlers.SessionHandler
	View      *handlers.ViewHandler
	Connect   *handlers.ConnectHandler
	Dashboard *handlers.DashboardHandler
	Setup     *handlers.SetupHandler
}

func New(cfg *config.Config, log *logger.Logger, limiter *middleware.RateLimiter, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.SecurityHeaders(cfg.Server.SecureCookies))

	// Health checks and metrics are not rate limited
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	// Swagger documentation
	r.With(middleware.DocsSecurityHeaders).Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.Session.Get)
			r.Post("/", h.Session.Acquire)
		})

		r.Route("/view", func(r chi.Router) {
			r.Get("/", h.View.Get)
			r.Post("/{action}", h.View.Dispatch)
		})

		r.Post("/connect", h.Connect.Connect)
		r.Post("/validate", h.Connect.Validate)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", h.Dashboard.Get)
			r.Get("/scan", h.Dashboard.Scan)
		})
		r.Get("/demo", h.Dashboard.Demo)

		r.Route("/setup", func(r chi.Router) {
			r.Get("/template", h.Setup.Template)
			r.Get("/script", h.Setup.Script)
			r.Get("/instructions", h.Setup.Instructions)
		})
	})

	return r
}
