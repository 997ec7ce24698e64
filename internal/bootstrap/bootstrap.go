package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/hostelcare/internal/app/controllers"
	appMigrations "github.com/yigit/hostelcare/internal/app/migrations"
	appRepos "github.com/yigit/hostelcare/internal/app/repositories"
	appRoutes "github.com/yigit/hostelcare/internal/app/routes"
	appServices "github.com/yigit/hostelcare/internal/app/services"
	"github.com/yigit/hostelcare/internal/config"
	"github.com/yigit/hostelcare/internal/db"
	appMiddleware "github.com/yigit/hostelcare/internal/middleware"
	pkgAuth "github.com/yigit/hostelcare/internal/pkg/auth"
	"github.com/yigit/hostelcare/internal/pkg/helpers"
	"github.com/yigit/hostelcare/internal/pkg/logger"
	"github.com/yigit/hostelcare/internal/pkg/ratelimit"
	"github.com/yigit/hostelcare/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             appRepos.Store
	JWTService        *pkgAuth.JWTService
	AuthService       *appServices.AuthService
	StudentService    *appServices.StudentService
	AllocationService *appServices.AllocationService
	SwapService       *appServices.SwapService
	ComplaintService  *appServices.ComplaintService
	HostelService     *appServices.HostelService
	DashboardService  *appServices.DashboardService
	Controllers       appRoutes.Controllers
	AuthMiddleware    *appMiddleware.AuthMiddleware
	LoginThrottle     gin.HandlerFunc
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logCfg := logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format)
	logCfg.Service = "hostelcare"
	lgr := logger.Configure(logCfg)

	lgr.Info().Str("logLevel", string(logCfg.Level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and, when enabled, applies
// pending schema migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if !cfg.Database.AutoMigrate {
		lgr.Info().Msg("Automatic migrations disabled")
		return database, nil
	}

	if err := RunMigrations(cfg, lgr); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// RunMigrations applies every pending migration
func RunMigrations(cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator, err := appMigrations.NewMigrator(cfg.GetPostgresConnectionString(), lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize migrator")
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			lgr.Warn().Err(err).Msg("Failed to close migrator")
		}
	}()

	if err := migrator.Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupRedis connects to Redis for login throttling. Both return values are nil
// when no address is configured.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, *ratelimit.RedisLimiter, error) {
	if cfg.Redis.Addr == "" {
		lgr.Info().Msg("Redis not configured, login throttling disabled")
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := ratelimit.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
		return nil, nil, err
	}

	window := helpers.ParseDuration(cfg.Redis.LoginWindow, time.Minute)
	limiter, err := ratelimit.NewRedisLimiter(client, cfg.Redis.LoginAttempts, window)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Int("attempts", cfg.Redis.LoginAttempts).Dur("window", window).Msg("Login throttling enabled")
	return client, limiter, nil
}

// BuildDependencies initializes services, controllers and middleware over store.
// limiter may be nil.
func BuildDependencies(cfg *config.Config, store appRepos.Store, limiter appMiddleware.Limiter, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(store, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(store, lgr)
	deps.AllocationService = appServices.NewAllocationService(store, lgr)
	deps.SwapService = appServices.NewSwapService(store, lgr)
	deps.ComplaintService = appServices.NewComplaintService(store, lgr)
	deps.HostelService = appServices.NewHostelService(store)
	deps.DashboardService = appServices.NewDashboardService(store.Repos().Stats, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.LoginThrottle = appMiddleware.LoginThrottle(limiter, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, lgr),
		Student:    appControllers.NewStudentController(deps.StudentService),
		Allocation: appControllers.NewAllocationController(deps.AllocationService),
		Swap:       appControllers.NewSwapController(deps.SwapService),
		Complaint:  appControllers.NewComplaintController(deps.ComplaintService),
		Hostel:     appControllers.NewHostelController(deps.HostelService),
		Dashboard:  appControllers.NewDashboardController(deps.DashboardService, store.Ping),
	}

	return deps
}

// SeedDefaultData creates the configured admin and optional demo hostels
func SeedDefaultData(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	admin := seed.AdminAccount{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
	}
	return seed.CreateDefaultData(ctx, deps.Store, deps.AuthService, admin, cfg.Admin.SeedDemoData, deps.Logger)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router, cfg.Server.BasePath)
	appRoutes.SetupRouter(router, cfg.Server.BasePath, deps.Controllers, deps.AuthMiddleware, deps.LoginThrottle)

	return router
}
