package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medical-appointment-api/config"
	deliveryHttp "medical-appointment-api/internal/delivery/http"
	"medical-appointment-api/internal/delivery/http/handler"
	"medical-appointment-api/internal/delivery/http/middleware"
	"medical-appointment-api/internal/infrastructure/cache"
	"medical-appointment-api/internal/infrastructure/database"
	"medical-appointment-api/internal/repository"
	"medical-appointment-api/internal/service"
	"medical-appointment-api/internal/usecase"
	"medical-appointment-api/pkg/jwt"
	"medical-appointment-api/pkg/validator"

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

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.RunMigrations(db, cfg.DB.Name); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.Server = initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	doctorScheduleRepo := repository.NewDoctorScheduleRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Domain services
	slotCache := service.NewSlotCacheService(redisClient, log)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, doctorScheduleRepo, auditService)
	doctorScheduleUsecase := usecase.NewDoctorScheduleUsecase(db, log, doctorScheduleRepo, doctorRepo, slotCache, auditService)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, doctorRepo, doctorScheduleRepo, serviceRepo, invoiceRepo, slotCache, auditService)
	invoiceUsecase := usecase.NewInvoiceUsecase(db, log, invoiceRepo, patientRepo, appointmentRepo, serviceRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, appointmentUsecase, customValidator)
	doctorScheduleHandler := handler.NewDoctorScheduleHandler(doctorScheduleUsecase, customValidator)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	invoiceHandler := handler.NewInvoiceHandler(invoiceUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)
	recoveryMiddleware := middleware.NewRecoveryMiddleware(log)

	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		doctorHandler,
		doctorScheduleHandler,
		serviceHandler,
		appointmentHandler,
		invoiceHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		recoveryMiddleware,
	)

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: router.Setup(),
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
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
