package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "internhub/docs" // Import generated swagger docs
	appControllers "internhub/internal/app/controllers"
	appMigrations "internhub/internal/app/migrations"
	appRepos "internhub/internal/app/repositories"
	appRoutes "internhub/internal/app/routes"
	appServices "internhub/internal/app/services"
	"internhub/internal/config"
	"internhub/internal/db"
	appMiddleware "internhub/internal/middleware"
	pkgAuth "internhub/internal/pkg/auth"
	"internhub/internal/pkg/filestorage"
	"internhub/internal/pkg/helpers"
	"internhub/internal/pkg/logger"
	"internhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	UserService            *appServices.UserService
	OrganizationService    *appServices.OrganizationService
	InternshipService      *appServices.InternshipService
	ApplicationService     *appServices.ApplicationService
	PlacementService       *appServices.PlacementService
	AttendanceService      *appServices.AttendanceService
	LogbookService         *appServices.LogbookService
	EvaluationService      *appServices.EvaluationService
	NotificationService    *appServices.NotificationService
	DocumentService        *appServices.DocumentService
	DashboardService       *appServices.DashboardService
	AcademicService        *appServices.AcademicService
	AuthController         *appControllers.AuthController
	NotificationController *appControllers.NotificationController
	StudentController      *appControllers.StudentController
	CompanyController      *appControllers.CompanyController
	AcademicController     *appControllers.AcademicController
	AdminController        *appControllers.AdminController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Logger                 zerolog.Logger
	FileStorage            *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create Default Data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	// Initialize File Storage
	// Configure baseURL to match the static file serving endpoint
	var err error
	baseUrl := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseUrl + "/uploads" // This must match the static file serving URL path
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(database, deps.Repos.UserRepository, lgr)
	deps.OrganizationService = appServices.NewOrganizationService(deps.Repos.CompanyRepository, lgr)
	deps.InternshipService = appServices.NewInternshipService(
		deps.Repos.InternshipRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.ApplicationService = appServices.NewApplicationService(
		database,
		deps.Repos.ApplicationRepository,
		deps.Repos.PlacementRepository,
		deps.Repos.InternshipRepository,
		deps.Repos.UserRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.DocumentRepository,
		lgr,
	)
	deps.PlacementService = appServices.NewPlacementService(deps.Repos.PlacementRepository, lgr)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.PlacementRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.LogbookService = appServices.NewLogbookService(
		database,
		deps.Repos.LogbookRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.PlacementRepository,
		deps.Repos.UserRepository,
		deps.Repos.NotificationRepository,
		lgr,
	)
	deps.EvaluationService = appServices.NewEvaluationService(
		database,
		deps.Repos.EvaluationRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.PlacementRepository,
		deps.Repos.UserRepository,
		deps.Repos.NotificationRepository,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository, lgr)
	deps.DocumentService = appServices.NewDocumentService(deps.Repos.DocumentRepository, deps.Repos.UserRepository, lgr)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos, lgr)
	deps.AcademicService = appServices.NewAcademicService(
		deps.Repos.UserRepository,
		deps.Repos.PlacementRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.LogbookRepository,
		deps.Repos.DocumentRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.StudentController = appControllers.NewStudentController(
		deps.DashboardService,
		deps.InternshipService,
		deps.ApplicationService,
		deps.LogbookService,
		deps.AttendanceService,
		deps.DocumentService,
		deps.FileStorage,
		deps.Logger,
	)
	deps.CompanyController = appControllers.NewCompanyController(
		deps.DashboardService,
		deps.ApplicationService,
		deps.AttendanceService,
		deps.LogbookService,
		deps.EvaluationService,
		deps.Logger,
	)
	deps.AcademicController = appControllers.NewAcademicController(
		deps.AcademicService,
		deps.AttendanceService,
		deps.LogbookService,
		deps.EvaluationService,
		deps.Logger,
	)
	deps.AdminController = appControllers.NewAdminController(
		deps.DashboardService,
		deps.UserService,
		deps.OrganizationService,
		deps.InternshipService,
		deps.ApplicationService,
		deps.PlacementService,
		deps.AttendanceService,
		deps.LogbookService,
		deps.EvaluationService,
		deps.Logger,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.NotificationController,
		deps.StudentController,
		deps.CompanyController,
		deps.AcademicController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
