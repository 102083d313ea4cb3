// Package config содержит конфигурацию сервиса сканера.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "docscan/pkg/config"
	"docscan/pkg/logger"
)

const (
	serviceName = "scanner"

	LogConfigLoaded     = "scanner configuration loaded"
	ErrFailedLoadConfig = "failed to load scanner configuration"
)

// ErrUnknownStorageDriver возвращается для драйвера хранилища, отличного от redis и postgres.
var ErrUnknownStorageDriver = errors.New("unknown storage driver")

// Config представляет полную конфигурацию сканера.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Backend  BackendConfig  `yaml:"backend"`
	Logging  LoggingConfig  `yaml:"logging"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Cache    CacheConfig    `yaml:"cache"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из envPath, если файл существует, иначе из окружения.
func Load(ctx context.Context, envPath string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("backend_url", cfg.Backend.BaseURL),
		zap.Duration("backend_timeout", cfg.Backend.Timeout),
		zap.Duration("refresh_window", cfg.Backend.RefreshWindow),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("storage_root", cfg.Storage.Root),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.GetTimeout()))

	return cfg, nil
}

// Validate проверяет значения, для которых нет разумного значения по умолчанию.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}
	if c.Backend.BaseURL == "" {
		return errors.New("backend base url is empty")
	}
	return nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
