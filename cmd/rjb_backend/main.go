package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/adapters/database/memory"
	"github.com/SscSPs/rjb_tranz/internal/adapters/database/pgsql"
	"github.com/SscSPs/rjb_tranz/internal/adapters/kv"
	"github.com/SscSPs/rjb_tranz/internal/adapters/notify"
	"github.com/SscSPs/rjb_tranz/internal/adapters/pdf"
	"github.com/SscSPs/rjb_tranz/internal/adapters/ratesource"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/SscSPs/rjb_tranz/internal/core/services"
	"github.com/SscSPs/rjb_tranz/internal/handlers"
	"github.com/SscSPs/rjb_tranz/internal/middleware"
	"github.com/SscSPs/rjb_tranz/internal/platform/config"
	"github.com/SscSPs/rjb_tranz/internal/utils"
	"github.com/SscSPs/rjb_tranz/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title RJB TRANZ Backend API
// @version 1.0
// @description Currency exchange and money transfer back office.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// background work logs through the base logger
	ctx = middleware.WithLogger(ctx, logger)

	var dbPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		dbPool, err = database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	repos, closeRepos, err := buildRepositories(ctx, cfg, dbPool, logger)
	if err != nil {
		logger.Error("Failed to initialize repositories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	container := services.NewServiceContainer(ctx, cfg, repos, analytics)
	go container.Rates.Run(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.CacheHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.MetricsMiddleware(), middleware.PosthogMiddleware(analytics))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped gracefully")
}

// buildRepositories picks the storage, rate, notification and export adapters from cfg.
// The returned func releases whatever needs closing.
func buildRepositories(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("Failed to close adapter", slog.String("error", err.Error()))
			}
		}
	}

	repos := portsrepo.RepositoryProvider{ReceiptExporter: pdf.NewReceiptExporter()}

	if dbPool != nil {
		repos.TransactionRepo = pgsql.NewTransactionRepository(dbPool)
	} else {
		repos.TransactionRepo = memory.NewTransactionRepository()
	}

	switch cfg.KVBackend {
	case config.KVBackendMemory:
		repos.KVStore = kv.NewMemoryStore()
	case config.KVBackendRedis:
		store, err := kv.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
		if err != nil {
			return repos, closeAll, err
		}
		closers = append(closers, store.Close)
		repos.KVStore = store
	case config.KVBackendPostgres:
		if dbPool == nil {
			return repos, closeAll, errors.New("postgres kv backend needs PGSQL_URL")
		}
		repos.KVStore = pgsql.NewKVRepository(dbPool)
	default:
		store, err := kv.NewFileStore(cfg.KVFilePath)
		if err != nil {
			return repos, closeAll, err
		}
		repos.KVStore = store
	}
	logger.Info("Local persistence ready", slog.String("backend", cfg.KVBackend))

	synthetic := ratesource.NewSynthetic(nil, nil)
	repos.FallbackRates = synthetic
	repos.RateHistory = synthetic
	if cfg.RatesAPIURL != "" {
		repos.LiveRates = ratesource.NewExchangeRateHost(cfg.RatesAPIURL, cfg.RatesAPIKey, nil, cfg.RatesFetchTimeout)
	} else {
		logger.Warn("RATES_API_URL not set, serving synthetic rates only")
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaNotificationTopic, logger)
		closers = append(closers, publisher.Close)
		repos.Notifier = publisher
	} else {
		repos.Notifier = notify.NewLogPublisher(logger)
	}

	return repos, closeAll, nil
}

// runMigrations applies every pending migration from ./migrations.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
