package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	_ "obligation-engine/docs"
	"obligation-engine/internal/api/handler"
	mw "obligation-engine/internal/api/middleware"
	"obligation-engine/internal/config"
	"obligation-engine/internal/domain/member"
	"obligation-engine/internal/domain/obligation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const requestTimeout = 60 * time.Second

type Services struct {
	Obligations obligation.ObligationService
	Members     member.MemberService
}

// SetupRouter wires every route. ctx bounds background work started by the
// middleware stack.
func SetupRouter(ctx context.Context, svc Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupAuthRoutes(router, cfg, logger)
	setupObligationRoutes(router, svc.Obligations, cfg, logger)
	setupQuoteRoutes(router, svc.Obligations, cfg, logger)
	setupMemberRoutes(router, svc, cfg, logger)
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupObligationRoutes(router *chi.Mux, svc obligation.ObligationService, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewObligationHandler(svc, logger)

	router.Route("/obligations/{obligationID}", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/", h.GetObligation)
		r.Get("/schedule", h.GetSchedule)
		r.Get("/payments", h.ListPayments)
		r.Post("/payments", h.RecordPayment)
	})
}

func setupQuoteRoutes(router *chi.Mux, svc obligation.ObligationService, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewQuoteHandler(svc, logger)

	router.Route("/quotes", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/loan", h.QuoteLoan)
		r.Post("/deferred", h.QuoteDeferred)
	})
}

func setupMemberRoutes(router *chi.Mux, svc Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewMemberHandler(svc.Members, svc.Obligations, logger)

	router.Route("/members/{memberID}", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/", h.GetMember)
		r.Get("/obligations", h.ListObligations)
		r.Get("/dues", h.GetDues)
	})
}
