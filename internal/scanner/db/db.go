// Package db открывает базу данных сканера и применяет миграции.
package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	adapterpg "docscan/internal/scanner/adapters/postgres"
	"docscan/internal/scanner/config"
	"docscan/pkg/db/postgres"
	"docscan/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing scanner database"
	LogDBInitialized     = "scanner database initialized successfully"
	LogMigrationStarting = "starting database migrations for scanner"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply scanner database migrations"
	ErrDBConnection = "failed to connect to scanner database"
)

// DB представляет соединение с базой данных сканера.
type DB struct {
	database *postgres.Database
}

// New применяет миграции из migrationsDir и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	source, err := postgres.MigrationsSource(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", source))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), source); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.PoolOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)
	return &DB{database: database}, nil
}

// Repositories возвращает фабрику хранилищ поверх пула.
func (db *DB) Repositories() *adapterpg.RepositoryFactory {
	return adapterpg.NewRepositoryFactory(db.database.Pool())
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}
