package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/club-admin-api/internal/config"
	"github.com/jwalitptl/club-admin-api/internal/handler/health"
	promhandler "github.com/jwalitptl/club-admin-api/internal/handler/prometheus"
	"github.com/jwalitptl/club-admin-api/internal/middleware"
	"github.com/jwalitptl/club-admin-api/internal/repository/postgres"
	cleanup "github.com/jwalitptl/club-admin-api/internal/worker"
	"github.com/jwalitptl/club-admin-api/pkg/logger"
	"github.com/jwalitptl/club-admin-api/pkg/messaging/redis"
	"github.com/jwalitptl/club-admin-api/pkg/metrics"
	"github.com/jwalitptl/club-admin-api/pkg/worker"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize logger
	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})
	log.Logger = appLogger.Zerolog()
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize Redis broker
	broker, err := redis.NewRedisBroker(ctx, cfg.Redis.ToBrokerConfig(), log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	prom := promhandler.New("club")
	workerMetrics := metrics.NewMetrics(prom.Registry(), "club", "worker")

	processor, err := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		cfg.ToWorkerConfig(),
		appLogger.WithFields(map[string]interface{}{"component": "outbox_processor"}),
		workerMetrics,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create outbox processor")
	}

	cleaner := cleanup.NewOutboxCleanupWorker(
		outboxRepo,
		cfg.Outbox.Retention,
		cfg.Outbox.CleanupInterval,
		appLogger.WithFields(map[string]interface{}{"component": "outbox_cleanup"}),
		workerMetrics,
	)

	// Health and metrics endpoints
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Recovery(), middleware.ErrorHandler())
	health.NewHandler(db).RegisterRoutes(engine)
	engine.GET(cfg.Metrics.Path, prom.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Worker.HealthPort),
		Handler: engine,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("health server failed")
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		cleaner.Start(ctx)
	}()
	log.Info().
		Str("channel", cfg.Redis.Channel).
		Int("health_port", cfg.Worker.HealthPort).
		Msg("worker started")

	// Handle shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down...")
	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}
}
