package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-frontdesk/config"
	deliveryHttp "hotel-frontdesk/internal/delivery/http"
	"hotel-frontdesk/internal/delivery/http/handler"
	"hotel-frontdesk/internal/delivery/http/middleware"
	"hotel-frontdesk/internal/domain/entity"
	"hotel-frontdesk/internal/infrastructure/cache"
	"hotel-frontdesk/internal/infrastructure/database"
	"hotel-frontdesk/internal/infrastructure/upstream"
	"hotel-frontdesk/internal/repository"
	"hotel-frontdesk/internal/service"
	"hotel-frontdesk/internal/usecase"
	"hotel-frontdesk/pkg/jwt"
	"hotel-frontdesk/pkg/validator"

	"github.com/google/uuid"
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

// New creates a new App instance with all dependencies initialized.
// Returns an error (and never serves) when the upstream URL is absent.
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")
	logrus.Infof("Relay upstream: %s", cfg.Upstream.URL)

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
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
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	log := logrus.StandardLogger()

	tokenService := jwt.NewSessionTokenService(cfg.Session)
	customValidator := validator.NewValidator()

	// Repositories
	operatorRepo := repository.NewOperatorRepository()
	auditRepo := repository.NewEditAuditRepository()

	// Services
	relayService := service.NewRelayService(cfg.Upstream.URL, log)
	invalidationService := service.NewInvalidationService(redisClient, log)
	bookingClient := upstream.NewBookingClient(relayService)

	// Usecases
	sessionUsecase := usecase.NewSessionUsecase(db, log, operatorRepo, tokenService, redisClient)
	auditUsecase := usecase.NewEditAuditUsecase(db, log, auditRepo)
	panelUsecase := usecase.NewBookingPanelUsecase(
		log,
		bookingClient,
		invalidationService,
		auditUsecase,
		func(panelID uuid.UUID, record *entity.BookingRecord) {
			log.Debugf("Panel %s: record for %q refreshed", panelID, record.GuestName)
		},
		customValidator,
	)

	// Seed the first operator account when configured
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sessionUsecase.SeedOperator(seedCtx, cfg.Session.SeedOperator, cfg.Session.SeedEmail, cfg.Session.SeedPassword); err != nil {
		return nil, fmt.Errorf("failed to seed operator: %w", err)
	}

	// Handlers
	relayHandler := handler.NewRelayHandler(relayService, log)
	panelHandler := handler.NewBookingPanelHandler(panelUsecase, customValidator)
	sessionHandler := handler.NewSessionHandler(sessionUsecase, customValidator)
	auditHandler := handler.NewEditAuditHandler(auditUsecase)
	cacheHandler := handler.NewCacheHandler(invalidationService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, redisClient)
	relayCORS := middleware.NewRelayCORSMiddleware(cfg.CORS.Origin)
	dashboardCORS := middleware.NewDashboardCORSMiddleware(cfg.CORS.Origin)

	router := deliveryHttp.NewRouter(
		relayHandler,
		panelHandler,
		sessionHandler,
		auditHandler,
		cacheHandler,
		authMiddleware,
		relayCORS,
		dashboardCORS,
	)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
