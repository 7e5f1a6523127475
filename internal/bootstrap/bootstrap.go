package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/hostelmess/internal/app/controllers"
	appMigrations "github.com/yigit/hostelmess/internal/app/migrations"
	appRepos "github.com/yigit/hostelmess/internal/app/repositories"
	appRoutes "github.com/yigit/hostelmess/internal/app/routes"
	appServices "github.com/yigit/hostelmess/internal/app/services"
	"github.com/yigit/hostelmess/internal/config"
	"github.com/yigit/hostelmess/internal/db"
	appMiddleware "github.com/yigit/hostelmess/internal/middleware"
	pkgAuth "github.com/yigit/hostelmess/internal/pkg/auth"
	"github.com/yigit/hostelmess/internal/pkg/email"
	"github.com/yigit/hostelmess/internal/pkg/filestorage"
	"github.com/yigit/hostelmess/internal/pkg/helpers"
	"github.com/yigit/hostelmess/internal/pkg/logger"
	"github.com/yigit/hostelmess/internal/pkg/validation"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
	"github.com/yigit/hostelmess/internal/seed"
)

// DefaultConfigPath is used when CONFIG_PATH is not set.
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Hub            *websocket.Hub
	Notifier       *appServices.NotificationService
	FileStorage    filestorage.FileStorage
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the yaml configuration and
// initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to read .env file")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.FromSlash(DefaultConfigPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.ConfigureFromStrings(cfg.Logging.Level, cfg.Logging.Format)

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds demo data into empty tables.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Server.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Server.SeedDemoData {
		err := database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return seed.CreateDefaultData(ctx, tx, lgr)
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// NewFileStorage picks the complaint photo store from the storage driver.
func NewFileStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case "s3":
		return filestorage.NewS3Storage(ctx, filestorage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			Endpoint:  cfg.Storage.S3Endpoint,
			PublicURL: cfg.Storage.S3PublicURL,
		})
	default:
		baseURL := strings.TrimRight(cfg.Server.PublicBaseURL, "/") + "/uploads"
		return filestorage.NewLocalStorage(cfg.Storage.LocalPath, baseURL)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Hub = websocket.NewHub(logger.WithComponent("realtime"))

	storage, err := NewFileStorage(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage
	uploader := filestorage.NewImageUploader(storage, cfg.Storage.MaxImageWidth)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenExp: helpers.ParseDuration(cfg.Auth.TokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.Auth.Issuer,
	})

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:           cfg.Mail.Host,
		Port:           cfg.Mail.Port,
		Username:       cfg.Mail.Username,
		Password:       cfg.Mail.Password,
		FromName:       cfg.Mail.FromName,
		FromEmail:      cfg.Mail.FromEmail,
		CommitteeEmail: cfg.Mail.CommitteeEmail,
		BaseURL:        cfg.Server.PublicBaseURL,
	}, logger.WithComponent("email"))
	if !cfg.MailEnabled() {
		lgr.Info().Msg("SMTP not configured, complaint notifications disabled")
	}
	deps.Notifier = appServices.NewNotificationService(deps.Hub, mailer, logger.WithComponent("notifications"))

	authService := appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, logger.WithComponent("auth"))
	menuService := appServices.NewMenuService(deps.Repos.MenuRepository, deps.Hub, logger.WithComponent("menu"))
	workerService := appServices.NewWorkerService(deps.Repos.WorkerRepository, logger.WithComponent("workers"))
	complaintService := appServices.NewComplaintService(deps.Repos.ComplaintRepository, uploader, deps.Hub, logger.WithComponent("complaints"))
	announcementService := appServices.NewAnnouncementService(deps.Repos.AnnouncementRepository, deps.Hub, logger.WithComponent("announcements"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(authService),
		Menu:         appControllers.NewMenuController(menuService),
		Worker:       appControllers.NewWorkerController(workerService),
		Complaint:    appControllers.NewComplaintController(complaintService),
		Announcement: appControllers.NewAnnouncementController(announcementService),
		Health:       appControllers.NewHealthController(database, deps.Hub.ClientsCount),
		Realtime:     websocket.NewHandler(deps.Hub, logger.WithComponent("realtime")),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGin(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.WithComponent("http")), appMiddleware.CORS())

	appRoutes.SetupRouter(router, deps.Controllers, cfg.Auth.AnonKey, deps.AuthMiddleware)

	if strings.EqualFold(cfg.Storage.Driver, "local") {
		setupStaticFileServing(router, cfg.Storage.LocalPath, lgr)
	}

	return router, nil
}

// setupStaticFileServing serves locally stored complaint photos at /uploads.
func setupStaticFileServing(router *gin.Engine, uploadPath string, lgr zerolog.Logger) {
	if err := os.MkdirAll(uploadPath, 0o755); err != nil {
		lgr.Error().Err(err).Str("path", uploadPath).Msg("Failed to create uploads directory")
		return
	}

	router.Static("/uploads", uploadPath)
	lgr.Info().Str("path", uploadPath).Msg("Static file serving configured for uploads directory")
}
