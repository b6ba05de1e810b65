package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ekinura/schoolboard/internal/app/controllers"
	appRepos "github.com/ekinura/schoolboard/internal/app/repositories"
	appRoutes "github.com/ekinura/schoolboard/internal/app/routes"
	appServices "github.com/ekinura/schoolboard/internal/app/services"
	"github.com/ekinura/schoolboard/internal/config"
	"github.com/ekinura/schoolboard/internal/db"
	appMiddleware "github.com/ekinura/schoolboard/internal/middleware"
	"github.com/ekinura/schoolboard/internal/pkg/filestorage"
	"github.com/ekinura/schoolboard/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	SchoolService    appServices.SchoolService
	SchoolController *appControllers.SchoolController
	HealthController *appControllers.HealthController
	SchoolRepository *appRepos.SchoolRepository
	FileStorage      *filestorage.LocalStorage
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file next to the binary is honored when present.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	_ = godotenv.Load()

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

// SetupDatabase establishes the database connection and ensures the record
// table exists. Handlers re-ensure it per request, so a table dropped at
// runtime heals on the next call; doing it here fails fast on bad config.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*sql.DB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewMySQLDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	pool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := appRepos.NewSchoolRepository(pool).EnsureTable(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ensure schools table")
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schools table: %w", err)
	}

	lgr.Info().Msg("Database connection successfully established.")
	return pool, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, pool *sql.DB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.SchoolRepository = appRepos.NewSchoolRepository(pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.StorageURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.SchoolService = appServices.NewSchoolService(deps.SchoolRepository, deps.FileStorage)

	deps.SchoolController = appControllers.NewSchoolController(deps.SchoolService)
	deps.HealthController = appControllers.NewHealthController(pool)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router, deps.SchoolController, deps.HealthController)

	return router
}
