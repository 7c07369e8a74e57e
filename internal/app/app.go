package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propertydeals_backend/internal/cache"
	"propertydeals_backend/internal/config"
	"propertydeals_backend/internal/database"
	"propertydeals_backend/internal/email"
	"propertydeals_backend/internal/handlers"
	"propertydeals_backend/internal/logger"
	"propertydeals_backend/internal/middleware"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/routes"
	"propertydeals_backend/internal/services"
	"propertydeals_backend/internal/validator"
	"propertydeals_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database schema", "error", err)
	}
	logger.Info("Database schema migrated")

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	startWorkers(workerCtx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		emailService = email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailService = &email.MockProvider{}
		logger.Warn("SMTP is not configured. Using mock email provider.")
	}

	// nil cache when Redis is not configured; all reads fall through to the DB.
	queryCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTL)*time.Second)
	if queryCache != nil {
		logger.Info("Redis query cache initialized", "addr", cfg.Redis.Addr)
	}

	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	roleAppRepo := repositories.NewRoleApplicationRepository()
	propertyRepo := repositories.NewPropertyRepository()
	offerRepo := repositories.NewOfferRepository()
	reportRepo := repositories.NewReportRepository()
	inquiryRepo := repositories.NewInquiryRepository()
	eventRepo := repositories.NewEventRepository()
	notificationRepo := repositories.NewNotificationRepository()

	authService := services.NewAuthService(userRepo, roleAppRepo, refreshTokenRepo)
	userService := services.NewUserService(userRepo)
	roleAppService := services.NewRoleApplicationService(roleAppRepo, userRepo, notificationRepo, emailService)
	propertyService := services.NewPropertyService(propertyRepo, offerRepo, userRepo, queryCache)
	offerService := services.NewOfferService(offerRepo, propertyRepo, userRepo, notificationRepo, propertyService, emailService)
	dashboardService := services.NewDashboardService(userRepo, propertyRepo, offerRepo, reportRepo, roleAppRepo, notificationRepo)
	reportService := services.NewReportService(reportRepo, notificationRepo)
	inquiryService := services.NewInquiryService(inquiryRepo, propertyRepo, notificationRepo)
	eventService := services.NewEventService(eventRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		RoleAppService:      roleAppService,
		PropertyService:     propertyService,
		OfferService:        offerService,
		DashboardService:    dashboardService,
		ReportService:       reportService,
		InquiryService:      inquiryService,
		EventService:        eventService,
		NotificationService: notificationService,
		EmailService:        emailService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
		RoleAppHandler:      handlers.NewRoleAppHandler(baseHandler, services.RoleAppService, services.AuthService),
		PropertyHandler:     handlers.NewPropertyHandler(baseHandler, services.PropertyService, services.OfferService),
		OfferHandler:        handlers.NewOfferHandler(baseHandler, services.OfferService),
		DashboardHandler:    handlers.NewDashboardHandler(baseHandler, services.DashboardService),
		ReportHandler:       handlers.NewReportHandler(baseHandler, services.ReportService),
		InquiryHandler:      handlers.NewInquiryHandler(baseHandler, services.InquiryService),
		EventHandler:        handlers.NewEventHandler(baseHandler, services.EventService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, db *gorm.DB) {
	sweeper := workers.NewSweepWorker(
		db,
		repositories.NewOfferRepository(),
		repositories.NewEventRepository(),
		repositories.NewRefreshTokenRepository(),
		cfg.Worker.OfferSweepMinutes,
		cfg.Worker.EventSweepMinutes,
	)
	sweeper.Start(ctx)
	logger.Info("Background workers started")
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Username:     "admin",
		FullName:     "Platform Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		ActiveRole:   models.RoleBuyer,
		IsAdmin:      true,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	// The admin still participates in the role system like any other user.
	now := time.Now()
	for _, role := range models.ValidRoles {
		app := &models.RoleApplication{
			UserID:    newAdmin.ID,
			Role:      role,
			Status:    models.ApplicationStatusApproved,
			DecidedAt: &now,
		}
		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("failed to create admin role application: %w", err)
		}
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)

	return tx.Commit().Error
}
