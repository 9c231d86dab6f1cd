package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/lftbrito/bip-teste-integrado/internal/adapter/http"
	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/handler"
	"github.com/lftbrito/bip-teste-integrado/internal/adapter/idgen"
	memoryRepo "github.com/lftbrito/bip-teste-integrado/internal/adapter/repository/memory"
	postgresRepo "github.com/lftbrito/bip-teste-integrado/internal/adapter/repository/postgres"
	redisRepo "github.com/lftbrito/bip-teste-integrado/internal/adapter/repository/redis"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/config"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/logger"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/metrics"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/postgres"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/redis"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	m := metrics.New()
	healthChecks := map[string]handler.HealthCheck{}

	var store usecase.BenefitStore

	switch cfg.StoreBackend {
	case config.BackendMemory:
		store = memoryRepo.NewStore(cfg.LockWaitTimeout)
		log.Info().Msg("using in-memory benefit store")

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		store = postgresRepo.NewStore(pool, cfg.LockWaitTimeout)
		healthChecks["postgres"] = pool.Ping
	}

	var idempotencyStore usecase.IdempotencyStore

	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	var strategy usecase.TransferStrategy

	switch cfg.TransferStrategy {
	case config.StrategyPessimistic:
		strategy = usecase.NewPessimisticStrategy(store, m)
	default:
		strategy = usecase.NewOptimisticStrategy(store, cfg.TransferMaxAttempts,
			usecase.LinearBackoff(cfg.TransferRetryDelay), m)
	}
	log.Info().Str("strategy", cfg.TransferStrategy).Msg("transfer strategy selected")

	transferUC := usecase.NewTransferUseCase(strategy, m)
	benefitUC := usecase.NewBenefitUseCase(store, idgen.NewULIDGenerator(), usecase.NewRetrier(), m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BenefitHandler:   handler.NewBenefitHandler(benefitUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		HealthHandler:    handler.NewHealthHandler(healthChecks),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           log.Logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
