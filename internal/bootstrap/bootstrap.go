// Package bootstrap wires configuration, database, services and routes
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/rcastro/tutormatch/internal/app/controllers"
	appMigrations "github.com/rcastro/tutormatch/internal/app/migrations"
	appRepos "github.com/rcastro/tutormatch/internal/app/repositories"
	appRoutes "github.com/rcastro/tutormatch/internal/app/routes"
	appServices "github.com/rcastro/tutormatch/internal/app/services"
	"github.com/rcastro/tutormatch/internal/config"
	"github.com/rcastro/tutormatch/internal/db"
	appMiddleware "github.com/rcastro/tutormatch/internal/middleware"
	pkgAuth "github.com/rcastro/tutormatch/internal/pkg/auth"
	"github.com/rcastro/tutormatch/internal/pkg/filestorage"
	"github.com/rcastro/tutormatch/internal/pkg/logger"
	"github.com/rcastro/tutormatch/internal/pkg/metrics"
	"github.com/rcastro/tutormatch/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	ProfileController    *appControllers.ProfileController
	CourseController     *appControllers.CourseController
	SemesterController   *appControllers.SemesterController
	MembershipController *appControllers.MembershipController
	TutoringController   *appControllers.TutoringController
	StorageController    *appControllers.StorageController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	FileStorage          *filestorage.LocalStorage
	Registry             *prometheus.Registry
	Collector            *metrics.Collector
	Logger               zerolog.Logger
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

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
	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.Registry = prometheus.NewRegistry()
	deps.Collector = metrics.NewCollector(deps.Registry)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenExp(),
		RefreshTokenExp: cfg.RefreshTokenExp(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services, err = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage, deps.Collector)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(context.Background(), deps.Repos, deps.Collector, lgr); err != nil {
			// Startup continues even when seeding is incomplete.
			lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
		}
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.AuthService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.ProfileController = appControllers.NewProfileController(deps.Services.ProfileService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.SemesterController = appControllers.NewSemesterController(deps.Services.SemesterService)
	deps.MembershipController = appControllers.NewMembershipController(deps.Services.MembershipService)
	deps.TutoringController = appControllers.NewTutoringController(deps.Services.TutoringService)
	deps.StorageController = appControllers.NewStorageController(deps.Services.StorageService)

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

	appMiddleware.RegisterCustomValidators()

	router := gin.Default()
	router.Use(appMiddleware.Metrics(deps.Collector))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.CourseController,
		deps.SemesterController,
		deps.MembershipController,
		deps.TutoringController,
		deps.StorageController,
		deps.AuthMiddleware,
		deps.Registry,
	)

	return router
}
