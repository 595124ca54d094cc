package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"obligation-engine/internal/api"
	"obligation-engine/internal/batch"
	"obligation-engine/internal/config"
	"obligation-engine/internal/domain/member"
	"obligation-engine/internal/domain/obligation"
	"obligation-engine/internal/event"
	"obligation-engine/internal/infrastructure/database/postgres"
	"obligation-engine/internal/infrastructure/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultReconcileSchedule = "0 2 * * *"

// @title Obligation Engine API
// @version 1.0
// @description Installment schedules, payment reconciliation and due tracking for cooperative members.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	policy, err := policyFromConfig(cfg.Engine)
	if err != nil {
		logger.Error("Invalid engine configuration", "error", err)
		os.Exit(1)
	}

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	publisher, amqpConn := initializePublisher(cfg.RabbitMQ, logger)
	if amqpConn != nil {
		defer amqpConn.Close()
	}
	if closer, ok := publisher.(io.Closer); ok {
		defer closer.Close()
	}

	services := initializeServices(dbPool, policy, publisher, logger)

	reconcileJob := batch.NewReconciliationJob(services.Obligations, services.Members, cfg.Batch.Concurrency, logger)
	cronScheduler := startBatchJobs(cfg, logger, reconcileJob)

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()
	router := api.SetupRouter(appCtx, services, cfg, logger)

	consumer := startPaymentConsumer(appCtx, cfg.RabbitMQ, amqpConn, services, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
	if consumer != nil {
		consumer.Stop()
	}
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

// policyFromConfig parses the configured rates. Unset rates keep the
// package defaults.
func policyFromConfig(cfg config.EngineConfig) (obligation.Policy, error) {
	policy := obligation.DefaultPolicy()

	rates := []struct {
		name   string
		raw    string
		target *decimal.Decimal
	}{
		{"engine.monthlyRate", cfg.MonthlyRate, &policy.MonthlyRate},
		{"engine.serviceChargeRate", cfg.ServiceChargeRate, &policy.Fees.ServiceChargeRate},
		{"engine.filingFeeRate", cfg.FilingFeeRate, &policy.Fees.FilingFeeRate},
		{"engine.capitalBuildupRate", cfg.CapitalBuildupRate, &policy.Fees.CapitalBuildupRate},
		{"engine.deferredSurchargeRate", cfg.DeferredSurchargeRate, &policy.SurchargeRate},
	}
	for _, r := range rates {
		if r.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(r.raw)
		if err != nil {
			return obligation.Policy{}, fmt.Errorf("%s: %q is not a decimal: %w", r.name, r.raw, err)
		}
		if d.IsNegative() {
			return obligation.Policy{}, fmt.Errorf("%s: rate cannot be negative, got %s", r.name, r.raw)
		}
		*r.target = d
	}

	if len(cfg.DeferredMethodLabels) > 0 {
		policy.DeferredLabels = cfg.DeferredMethodLabels
	}
	if cfg.MaxTermMonths < 0 {
		return obligation.Policy{}, fmt.Errorf("engine.maxTermMonths: cannot be negative, got %d", cfg.MaxTermMonths)
	}
	if cfg.MaxTermMonths > 0 {
		policy.MaxTermMonths = cfg.MaxTermMonths
	}
	policy.Cache = obligation.NewScheduleCache(cfg.ScheduleCacheSize)
	return policy, nil
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializePublisher connects to RabbitMQ when enabled. Any failure falls
// back to the no-op publisher so the API keeps serving reads.
func initializePublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	if !cfg.Enabled {
		logger.Info("RabbitMQ disabled, domain events will not be published")
		return event.NewNopEventPublisher(logger), nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, events disabled", "error", err)
		return event.NewNopEventPublisher(logger), nil
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, events disabled", "error", err)
		conn.Close()
		return event.NewNopEventPublisher(logger), nil
	}
	logger.Info("RabbitMQ publisher ready", "exchange", cfg.ExchangeName)
	return publisher, conn
}

func initializeServices(dbPool *pgxpool.Pool, policy obligation.Policy, publisher event.EventPublisher, logger *slog.Logger) api.Services {
	logger.Info("Initializing application components...")
	obligationRepo := postgres.NewObligationRepository(dbPool, policy.DeferredLabels, logger)
	paymentRepo := postgres.NewPaymentRepository(dbPool, logger)
	memberRepo := postgres.NewMemberRepository(dbPool, logger)

	return api.Services{
		Obligations: obligation.NewObligationService(obligationRepo, paymentRepo, policy, publisher, logger),
		Members:     member.NewMemberService(memberRepo, publisher, logger),
	}
}

// startPaymentConsumer refreshes members as their payments are published.
// It returns nil when RabbitMQ is not connected.
func startPaymentConsumer(ctx context.Context, cfg config.RabbitMQConfig, conn *amqp.Connection, services api.Services, logger *slog.Logger) *event.Consumer {
	if conn == nil {
		return nil
	}

	listener := batch.NewPaymentListener(services.Obligations, services.Members, logger)
	consumer, err := event.NewConsumer(
		conn,
		cfg.ExchangeName,
		cfg.QueueName,
		cfg.ConsumerTag,
		[]string{event.RoutingKeyPaymentRecorded},
		listener.HandleDelivery,
		logger,
	)
	if err != nil {
		logger.Error("Failed to set up payment consumer, overdue flags refresh on schedule only", "error", err)
		return nil
	}
	if err := consumer.Start(ctx); err != nil {
		logger.Error("Failed to start payment consumer", "error", err)
		return nil
	}
	return consumer
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr)
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

type jobRunner interface {
	Run(ctx context.Context) error
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, job jobRunner) *cron.Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	scheduleSpec := cfg.Batch.ReconcileSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultReconcileSchedule
		logger.Warn("Reconciliation schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.ReconcileTimeout
	if jobTimeout <= 0 {
		jobTimeout = time.Hour
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "Reconciliation")
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Reconciliation job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule reconciliation job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled reconciliation job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	return c
}
