package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient-appointment-service/config"
	deliveryHttp "patient-appointment-service/internal/delivery/http"
	"patient-appointment-service/internal/delivery/http/handler"
	"patient-appointment-service/internal/delivery/http/middleware"
	"patient-appointment-service/internal/domain/entity"
	"patient-appointment-service/internal/infrastructure/cache"
	"patient-appointment-service/internal/infrastructure/database"
	"patient-appointment-service/internal/infrastructure/sms"
	"patient-appointment-service/internal/infrastructure/storage"
	"patient-appointment-service/internal/repository"
	"patient-appointment-service/internal/service"
	"patient-appointment-service/internal/usecase"
	"patient-appointment-service/pkg/jwt"
	"patient-appointment-service/pkg/validator"

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

	// Run schema migration and seed reference data
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database migrated successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
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

// migrate applies the schema and seeds the role table.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.PatientProfile{},
		&entity.Doctor{},
		&entity.Appointment{},
		&entity.Payment{},
		&entity.VerificationCode{},
		&entity.AuditLog{},
	); err != nil {
		return err
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Administrator with full access"},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient, Description: "Patient booking appointments"},
	}

	roleRepo := repository.NewRoleRepository()
	for _, role := range roles {
		existing, err := roleRepo.FindByName(db, role.RoleName)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize infrastructure
	blobStore, err := storage.NewDiskBlobStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	smsSender := sms.NewTwilioSender(cfg.SMS, log)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	paymentRepo := repository.NewPaymentRepository()
	verificationCodeRepo := repository.NewVerificationCodeRepository(db)
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Initialize usecases
	verificationUsecase := usecase.NewVerificationUsecase(log, verificationCodeRepo, smsSender, cfg.Verification)
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientProfileRepo, verificationUsecase, jwtService, redisClient, auditService)
	paymentUsecase := usecase.NewPaymentUsecase(log, cfg.Payment)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientProfileRepo, doctorRepo, paymentRepo, paymentUsecase, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, blobStore, auditService, cfg.Storage)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	verificationHandler := handler.NewVerificationHandler(verificationUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		verificationHandler,
		appointmentHandler,
		doctorHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		cfg.Storage.Dir,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
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
