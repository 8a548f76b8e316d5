package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/club-admin-api/internal/config"
	"github.com/jwalitptl/club-admin-api/internal/email"
	appointmentHandler "github.com/jwalitptl/club-admin-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/club-admin-api/internal/handler/auth"
	billingHandler "github.com/jwalitptl/club-admin-api/internal/handler/billing"
	catalogHandler "github.com/jwalitptl/club-admin-api/internal/handler/catalog"
	contentHandler "github.com/jwalitptl/club-admin-api/internal/handler/content"
	exportHandler "github.com/jwalitptl/club-admin-api/internal/handler/export"
	"github.com/jwalitptl/club-admin-api/internal/handler/health"
	insightsHandler "github.com/jwalitptl/club-admin-api/internal/handler/insights"
	memberHandler "github.com/jwalitptl/club-admin-api/internal/handler/member"
	productHandler "github.com/jwalitptl/club-admin-api/internal/handler/product"
	promhandler "github.com/jwalitptl/club-admin-api/internal/handler/prometheus"
	scheduleHandler "github.com/jwalitptl/club-admin-api/internal/handler/schedule"
	staffHandler "github.com/jwalitptl/club-admin-api/internal/handler/staff"
	"github.com/jwalitptl/club-admin-api/internal/middleware"
	"github.com/jwalitptl/club-admin-api/internal/repository/postgres"
	"github.com/jwalitptl/club-admin-api/internal/router"
	appointmentService "github.com/jwalitptl/club-admin-api/internal/service/appointment"
	authService "github.com/jwalitptl/club-admin-api/internal/service/auth"
	billingService "github.com/jwalitptl/club-admin-api/internal/service/billing"
	catalogService "github.com/jwalitptl/club-admin-api/internal/service/catalog"
	contentService "github.com/jwalitptl/club-admin-api/internal/service/content"
	eventService "github.com/jwalitptl/club-admin-api/internal/service/event"
	exportService "github.com/jwalitptl/club-admin-api/internal/service/export"
	insightsService "github.com/jwalitptl/club-admin-api/internal/service/insights"
	memberService "github.com/jwalitptl/club-admin-api/internal/service/member"
	productService "github.com/jwalitptl/club-admin-api/internal/service/product"
	scheduleService "github.com/jwalitptl/club-admin-api/internal/service/schedule"
	staffService "github.com/jwalitptl/club-admin-api/internal/service/staff"
	"github.com/jwalitptl/club-admin-api/pkg/auth"
	"github.com/jwalitptl/club-admin-api/pkg/logger"
	"github.com/jwalitptl/club-admin-api/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})
	log.Logger = appLogger.Zerolog()
	if !cfg.Log.Pretty {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Initialize repositories
	memberRepo := postgres.NewMemberRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	productRepo := postgres.NewProductRepository(db)
	contentRepo := postgres.NewContentRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	medicalRepo := postgres.NewMedicalRecordRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	noteRepo := postgres.NewMemberNoteRepository(db)
	insightsRepo := postgres.NewInsightsRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	var encryptor security.Encryptor
	if cfg.Auth.EncryptionKey != "" {
		encryptor, err = security.NewAESEncryptorFromBase64(cfg.Auth.EncryptionKey)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid encryption key")
		}
	} else {
		log.Warn().Msg("auth.encryption_key not set; medical summaries are stored in plain text")
	}

	// Initialize services
	events := eventService.NewEventService(outboxRepo, postgres.NewTransactor(db), appLogger.WithFields(map[string]interface{}{"component": "events"}))
	memberSvc := memberService.NewService(memberService.Repositories{
		Members:        memberRepo,
		Appointments:   appointmentRepo,
		Orders:         orderRepo,
		MedicalRecords: medicalRepo,
		Notes:          noteRepo,
		Subscriptions:  subscriptionRepo,
	}, events, encryptor)
	staffSvc := staffService.NewService(staffRepo)
	catalogSvc := catalogService.NewService(serviceRepo)
	productSvc := productService.NewService(productRepo)
	contentSvc := contentService.NewService(contentRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, events)
	scheduleSvc := scheduleService.NewService(appointmentRepo, loc)
	insightsSvc := insightsService.NewService(insightsRepo, loc)
	billingSvc := billingService.NewService(
		orderRepo,
		email.NewService(cfg.SMTP),
		events,
		appLogger.WithFields(map[string]interface{}{"component": "billing"}),
	)
	exportSvc := exportService.NewService(memberRepo)
	authSvc := authService.NewService(
		auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		security.NewBcryptHasher(bcrypt.DefaultCost),
		cfg.Auth.PassphraseHash,
	)

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// Setup router
	metrics := promhandler.New("club")
	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		router.Handlers{
			Auth:         authHandler.NewHandler(authSvc),
			Health:       health.NewHandler(db),
			Members:      memberHandler.NewHandler(memberSvc),
			Staff:        staffHandler.NewHandler(staffSvc),
			Catalog:      catalogHandler.NewHandler(catalogSvc),
			Products:     productHandler.NewHandler(productSvc),
			Content:      contentHandler.NewHandler(contentSvc),
			Appointments: appointmentHandler.NewHandler(appointmentSvc, loc),
			Schedule:     scheduleHandler.NewHandler(scheduleSvc, loc),
			Insights:     insightsHandler.NewHandler(insightsSvc),
			Billing:      billingHandler.NewHandler(billingSvc),
			Export:       exportHandler.NewHandler(exportSvc),
		},
		metrics,
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			LoginPerMinute:   cfg.RateLimit.LoginPerMinute,
			CORSConfig:       middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins...),
			RequestTimeout:   cfg.Server.RequestTimeout,
			MetricsEnabled:   cfg.Metrics.Enabled,
			MetricsPath:      cfg.Metrics.Path,
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("timezone", loc.String()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
