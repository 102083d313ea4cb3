package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"docscan/internal/scanner/adapters/cache"
	"docscan/internal/scanner/adapters/files"
	"docscan/internal/scanner/adapters/jwt"
	"docscan/internal/scanner/adapters/pdf"
	redisstore "docscan/internal/scanner/adapters/redis"
	"docscan/internal/scanner/adapters/transport"
	"docscan/internal/scanner/app"
	"docscan/internal/scanner/config"
	"docscan/internal/scanner/db"
	scannerhttp "docscan/internal/scanner/http"
	portcache "docscan/internal/scanner/ports/cache"
	"docscan/internal/scanner/ports/repositories"
	"docscan/internal/scanner/resilience"
	"docscan/internal/scanner/session"
	pkgredis "docscan/pkg/db/redis"
	"docscan/pkg/logger"
	"docscan/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "SCANNER_LOGGER_MODE"
	EnvLoggerLevel = "SCANNER_LOGGER_LEVEL"
	EnvConfigFile  = "SCANNER_CONFIG_FILE"
	EnvMigrations  = "SCANNER_MIGRATIONS_DIR"

	defaultConfigFile = ".env"
	defaultMigrations = "migrations/scanner"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrOpenDatabase         = "failed to open database"
	ErrCreateStorageRoot    = "failed to create storage root"
	ErrRestoreSession       = "failed to restore session"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "scanner service started"
	LogServiceShutdownDone = "scanner service shutdown complete"
	LogInitStorage         = "initializing storage"
	LogInitSession         = "initializing backend session"
	LogSessionRestored     = "stored session restored"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogClosingDatabase     = "closing database"
)

// storage - выбранные хранилища и функции их закрытия.
type storage struct {
	credentials repositories.CredentialStore
	documents   repositories.DocumentRepository
	profiles    portcache.Cache
	hooks       []shutdown.Hook
}

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, envOr(EnvConfigFile, defaultConfigFile))
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		if err := os.MkdirAll(cfg.Storage.Root, 0o755); err != nil {
			log.Error(ctx, ErrCreateStorageRoot, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))
		store, err := openStorage(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrOpenDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitSession, zap.String("backend_url", cfg.Backend.BaseURL))
		breaker := resilience.NewCircuitBreaker("backend", cfg.Backend.BreakerConfig())
		codec := jwt.NewCodec()
		client := session.NewClient(
			cfg.Backend.SessionConfig(),
			transport.NewHTTPTransport(cfg.Backend.Timeout, breaker),
			store.credentials,
			codec,
			session.NewLogoutNotifier(),
		)

		users := app.NewUserUseCase(client, codec, store.profiles, cfg.Cache.ProfileTTL)
		auth := app.NewAuthUseCase(client, store.credentials, codec, users)

		if user, err := auth.Restore(ctx); err != nil {
			log.Warn(ctx, ErrRestoreSession, zap.Error(err))
		} else if user != nil {
			log.Info(ctx, LogSessionRestored, zap.Int64("userID", user.UserID))
		}

		library := app.NewLibraryUseCase(store.documents, files.NewStore(cfg.Storage.Root), pdf.NewAssembler())

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit(),
		})
		scannerhttp.SetupRouter(server, scannerhttp.Services{
			Auth:      auth,
			Employees: app.NewEmployeeUseCase(client),
			WaitDocs:  app.NewWaitDocumentUseCase(client),
			Library:   library,
			Session:   client,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		hooks := append([]shutdown.Hook{
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.Shutdown()
			},
		}, store.hooks...)
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// openStorage открывает хранилище учетных данных и индекс документов выбранного драйвера.
// Redis поднимается и для кэша профилей, если он включен.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	s := &storage{}

	var redisClient *goredis.Client
	if cfg.Storage.Driver == config.StorageRedis || cfg.Cache.Enabled {
		client, err := pkgredis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrCreateRedisClient, err)
		}
		redisClient = client
		s.hooks = append(s.hooks, func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogClosingRedis)
			return redisClient.Close()
		})
	}

	if cfg.Cache.Enabled {
		s.profiles = cache.NewRedisCache(redisClient, cfg.Cache.Prefix, cfg.Cache.ProfileTTL)
	}

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		database, err := db.New(ctx, &cfg.Postgres, envOr(EnvMigrations, defaultMigrations))
		if err != nil {
			s.close(ctx)
			return nil, err
		}
		repos := database.Repositories()
		s.credentials = repos.CredentialStore()
		s.documents = repos.DocumentRepository()
		s.hooks = append(s.hooks, func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogClosingDatabase)
			database.Close(ctx)
			return nil
		})
	default:
		s.credentials = redisstore.NewCredentialStore(redisClient)
		s.documents = redisstore.NewDocumentRepository(redisClient)
	}

	return s, nil
}

func (s *storage) close(ctx context.Context) {
	for _, hook := range s.hooks {
		_ = hook(ctx)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
