package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/voyagebooks/voyage_backoffice/internal/adapters/database/pgsql"
	"github.com/voyagebooks/voyage_backoffice/internal/core/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
	"github.com/voyagebooks/voyage_backoffice/internal/handlers"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
	"github.com/voyagebooks/voyage_backoffice/internal/scheduler"
	"github.com/voyagebooks/voyage_backoffice/pkg/config"
	"github.com/voyagebooks/voyage_backoffice/pkg/database"
)

// @title Voyage Backoffice API
// @version 1.0
// @description Travel agency back-office: sales, double-entry accounting and the sync bridge between them.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register custom validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Repositories
	accountRepo := pgsql.NewAccountRepository(dbPool)
	journalRepo := pgsql.NewJournalRepository(dbPool)
	salesRepo := pgsql.NewSalesRepository(dbPool)
	syncConfigRepo := pgsql.NewSyncConfigRepository(dbPool)
	reportingRepo := pgsql.NewReportingRepository(dbPool)
	userRepo := pgsql.NewUserRepository(dbPool)

	// Services. The scheduler sits between the sync engine and the services
	// that trigger it: sales notifies it on every recorded sale, sync config
	// asks it to reschedule when the cadence changes.
	accountSvc := services.NewAccountService(accountRepo)
	journalSvc := services.NewJournalService(journalRepo, accountSvc)
	syncSvc := services.NewSyncService(salesRepo, syncConfigRepo, journalSvc)

	sched := scheduler.New(syncSvc, syncConfigRepo, logger)

	salesSvc := services.NewSalesService(salesRepo, sched)
	syncConfigSvc := services.NewSyncConfigService(syncConfigRepo, accountSvc, sched)

	svcs := &services.ServiceContainer{
		Account:    accountSvc,
		Journal:    journalSvc,
		Sales:      salesSvc,
		Sync:       syncSvc,
		SyncConfig: syncConfigSvc,
		Reporting:  services.NewReportingService(reportingRepo),
		User:       services.NewUserService(userRepo),
	}

	if err := sched.Start(context.Background()); err != nil {
		logger.Error("Failed to start sync scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sched.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memorystore.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcs)

	// Stop the scheduler cleanly on SIGINT/SIGTERM so an in-flight sync pass
	// finishes before the process exits.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("Shutting down")
		sched.Stop()
		os.Exit(0)
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a standard sql.DB connection over the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
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

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied")
	}
	return nil
}
