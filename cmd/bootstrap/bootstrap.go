package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart-bed-allocation/config"
	deliveryHttp "smart-bed-allocation/internal/delivery/http"
	"smart-bed-allocation/internal/delivery/http/handler"
	"smart-bed-allocation/internal/delivery/http/middleware"
	"smart-bed-allocation/internal/infrastructure/cache"
	"smart-bed-allocation/internal/infrastructure/database"
	"smart-bed-allocation/internal/repository"
	"smart-bed-allocation/internal/service"
	"smart-bed-allocation/internal/usecase"
	"smart-bed-allocation/pkg/jwt"
	"smart-bed-allocation/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if err := database.Seed(db); err != nil {
		return nil, err
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Warm the availability cache before accepting traffic
	availabilityCache := service.NewAvailabilityCache(db, redisClient, logrus.StandardLogger())
	if err := availabilityCache.SyncOnStartup(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to sync availability cache: %w", err)
	}

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, availabilityCache)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, availabilityCache *service.AvailabilityCache) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	hospitalRepo := repository.NewHospitalRepository()
	admissionRepo := repository.NewAdmissionRepository()
	bookingRepo := repository.NewBookingRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, auditService, jwtService, redisClient)
	allocationUsecase := usecase.NewAllocationUsecase(db, log, cfg.Allocation, hospitalRepo, admissionRepo, bookingRepo, auditService, availabilityCache)
	dischargeUsecase := usecase.NewDischargeUsecase(db, log, hospitalRepo, admissionRepo, bookingRepo, auditService, availabilityCache)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, hospitalRepo, admissionRepo, auditService, availabilityCache)
	bookingUsecase := usecase.NewBookingUsecase(db, log, bookingRepo, hospitalRepo)
	reconciliationUsecase := usecase.NewReconciliationUsecase(db, log, cfg.Allocation, hospitalRepo, auditService, availabilityCache)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	allocationHandler := handler.NewAllocationHandler(allocationUsecase, customValidator)
	hospitalHandler := handler.NewHospitalHandler(hospitalUsecase, dischargeUsecase, bookingUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase)
	adminHandler := handler.NewAdminHandler(reconciliationUsecase, auditService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, allocationHandler, hospitalHandler, bookingHandler, adminHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
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

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
