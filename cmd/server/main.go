package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/schoolpay/feeledger/internal/adapter/http"
	"github.com/schoolpay/feeledger/internal/adapter/http/handler"
	postgresRepo "github.com/schoolpay/feeledger/internal/adapter/repository/postgres"
	redisRepo "github.com/schoolpay/feeledger/internal/adapter/repository/redis"
	"github.com/schoolpay/feeledger/internal/infrastructure/auth"
	"github.com/schoolpay/feeledger/internal/infrastructure/config"
	"github.com/schoolpay/feeledger/internal/infrastructure/logger"
	"github.com/schoolpay/feeledger/internal/infrastructure/metrics"
	"github.com/schoolpay/feeledger/internal/infrastructure/notifier"
	"github.com/schoolpay/feeledger/internal/infrastructure/postgres"
	"github.com/schoolpay/feeledger/internal/infrastructure/redis"
	"github.com/schoolpay/feeledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(appLogger.GetLevel())

	ctx := context.Background()

	appMetrics := metrics.New()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			appMetrics.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewStudentAccountRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	feeRepo := postgresRepo.NewFeeScheduleRepository(pool)
	rosterRepo := postgresRepo.NewRosterRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger, appMetrics)

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	guardianNotifier := notifier.New(notifier.NewLogSink(appLogger), appLogger)

	// Initialize use cases
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, paymentRepo, journalRepo, idGen, guardianNotifier, appMetrics)
	enrollmentUC := usecase.NewEnrollmentUseCase(txManager, accountRepo, rosterRepo, feeRepo, idGen, appMetrics)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	feeUC := usecase.NewFeeScheduleUseCase(feeRepo, cache, appMetrics)
	rosterUC := usecase.NewRosterUseCase(rosterRepo, idGen)
	journalUC := usecase.NewJournalUseCase(journalRepo)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, paymentRepo, appMetrics)

	// Optional authentication
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("authentication enabled")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EnrollmentHandler:     handler.NewEnrollmentHandler(enrollmentUC),
		PaymentHandler:        handler.NewPaymentHandler(paymentUC, retrier),
		AccountHandler:        handler.NewAccountHandler(accountUC),
		FeeScheduleHandler:    handler.NewFeeScheduleHandler(feeUC),
		RosterHandler:         handler.NewRosterHandler(rosterUC),
		JournalHandler:        handler.NewJournalHandler(journalUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		JWTManager:            jwtManager,
		Logger:                appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
