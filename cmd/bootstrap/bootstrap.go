package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-doctor-api/config"
	deliveryHttp "go-doctor-api/internal/delivery/http"
	"go-doctor-api/internal/delivery/http/handler"
	"go-doctor-api/internal/delivery/http/middleware"
	"go-doctor-api/internal/infrastructure/cache"
	"go-doctor-api/internal/infrastructure/database"
	"go-doctor-api/internal/repository"
	"go-doctor-api/internal/service"
	"go-doctor-api/internal/usecase"
	"go-doctor-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	CacheStore  cache.Store
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	sqlDB, err := db.DB()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(sqlDB, log); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Initialize cache
	if err := app.setupCache(ctx); err != nil {
		app.Close()
		return nil, err
	}

	// Initialize all layers
	server, err := initializeServer(cfg, log, db, app.CacheStore)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)

	if cfg.Env == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.Warnf("Invalid LOG_LEVEL %q, falling back to info", cfg.LogLevel)
	}
	log.SetLevel(level)

	return log
}

// setupCache builds the cache store selected by CACHE_DRIVER.
func (app *App) setupCache(ctx context.Context) error {
	cfg := app.Config

	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, app.Log)
		if err != nil {
			return err
		}
		app.RedisClient = redisClient
		app.CacheStore = cache.NewRedisStore(redisClient, cfg.Redis.KeyPrefix, app.Log)
	default:
		store, err := cache.NewMemoryStore(cache.MemoryConfig{
			MaxEntries:      cfg.Cache.MaxEntries,
			CleanupInterval: cfg.Cache.CleanupInterval,
		})
		if err != nil {
			return fmt.Errorf("failed to create memory cache: %w", err)
		}
		app.CacheStore = store
	}

	app.Log.WithField("driver", cfg.Cache.Driver).Info("Cache initialized")
	return nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, store cache.Store) (*http.Server, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository(db)

	// Initialize services
	doctorCache := service.NewDoctorCacheService(store, log, cache.EntryOptions{
		Sliding:  cfg.Cache.SlidingTTL,
		Absolute: cfg.Cache.AbsoluteTTL,
	})

	// Initialize usecases
	doctorUsecase, err := usecase.NewDoctorUsecase(log, doctorRepo, doctorCache, customValidator)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	healthHandler := handler.NewHealthHandler(sqlDB, log)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggerMiddleware := middleware.NewLoggerMiddleware(log)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimit)

	// Initialize router
	router := deliveryHttp.NewRouter(doctorHandler, healthHandler, corsMiddleware, loggerMiddleware, rateLimitMiddleware)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: router.Setup(),
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases the cache, Redis and database, in that order.
func (app *App) Close() {
	if app.CacheStore != nil {
		if err := app.CacheStore.Close(); err != nil {
			app.Log.Warnf("Failed to close cache store: %+v", err)
		}
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis client: %+v", err)
		}
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
