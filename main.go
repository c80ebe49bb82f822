package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/zemenlab/zemen/internal/api"
	"github.com/zemenlab/zemen/internal/cache"
	"github.com/zemenlab/zemen/internal/config"
	"github.com/zemenlab/zemen/internal/database"
	"github.com/zemenlab/zemen/internal/handlers"
	"github.com/zemenlab/zemen/internal/holidays"
	"github.com/zemenlab/zemen/internal/logging"
	"github.com/zemenlab/zemen/internal/middleware"
	"github.com/zemenlab/zemen/internal/repository"
	"github.com/zemenlab/zemen/internal/service"
)

// NOTE: At least one .sql file must exist in migrations/ for embedding to work.
// Make sure to build from the project root so the path is correct.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

func runMigrations(cfg *config.Config) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	fmt.Println("Migrations applied successfully.")
	return nil
}

func main() {
	// CLI flags
	configPath := pflag.StringP("config", "c", "config.yaml", "Path to config file")
	runMigrate := pflag.BoolP("migrate", "m", false, "Run database migrations and exit")
	version := pflag.BoolP("version", "v", false, "Print version and exit")
	port := pflag.IntP("port", "p", 8080, "HTTP server listen port")
	logLevel := pflag.StringP("log-level", "l", "info", "Log level (debug, info, warn, error)")

	pflag.Parse()

	if *version {
		fmt.Println("zemend version 1.0.0")
		os.Exit(0)
	}

	if *runMigrate {
		cfg, err := config.LoadWithPath(*configPath)
		if err != nil {
			panic("Failed to load configuration: " + err.Error())
		}
		if err := runMigrations(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.LoadWithPath(*configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Override config with CLI flags if set
	if pflag.Lookup("port").Changed {
		cfg.Server.Port = *port
	}
	if pflag.Lookup("log-level").Changed {
		cfg.Logging.Level = *logLevel
	}

	// Initialize logger
	logger, err := logging.InitLogger(logging.LoggingConfig(cfg.Logging))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Configuration loaded", zap.Any("config", cfg))

	cacheTTL, err := cfg.PageCacheTTL()
	if err != nil {
		logger.Fatal("Failed to parse page cache TTL", zap.Error(err))
	}

	// Holiday catalog: built-in fixed days, plus the catalog file when present
	catalog := holidays.DefaultCatalog()
	if path := cfg.Calendar.HolidayCatalogPath; path != "" {
		loaded, err := holidays.Load(path)
		if err != nil {
			logger.Warn("Holiday catalog file not loaded, using built-in defaults",
				zap.String("path", path), zap.Error(err))
		} else {
			catalog = loaded
		}
	}

	// Initialize database connection
	db, err := database.Connect(context.Background(), cfg.Database.ToDBConfig())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pageCache := cache.New(redisClient, cacheTTL, logger)

	// Initialize repository and service
	eventRepo := repository.NewEventRepository(db, logger, pageCache)
	monthData := service.NewMonthDataService(eventRepo, catalog, pageCache, logger)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize router
	router := gin.Default()

	// Register request ID middleware
	router.Use(middleware.RequestIDMiddleware(logger))

	// Setup routes with middleware
	api.SetupRoutes(router, api.Handlers{
		Events:    handlers.NewEventHandler(eventRepo),
		Instances: handlers.NewInstanceHandler(eventRepo),
		Pages:     handlers.NewPageHandler(monthData),
		Convert:   handlers.NewConvertHandler(),
		Holidays:  handlers.NewHolidayHandler(catalog),
	}, rateLimiter)

	// Start HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Fatal("Server forced to shutdown", zap.Error(err))
		}
	}()

	logger.Info("Starting server", zap.Int("port", cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}
}
