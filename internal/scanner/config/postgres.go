package config

import (
	"fmt"
	"time"

	"docscan/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"SCANNER_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"SCANNER_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"SCANNER_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"SCANNER_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"SCANNER_POSTGRES_DB" env-default:"scanner"`
	MinConn  int    `yaml:"min_conn" env:"SCANNER_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"SCANNER_POSTGRES_MAX_CONN" env-default:"5"`

	ApplicationName string        `yaml:"application_name" env:"SCANNER_POSTGRES_APP_NAME" env-default:"docscan"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"SCANNER_POSTGRES_CONNECT_TIMEOUT" env-default:"5s"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"SCANNER_POSTGRES_MAX_CONN_IDLE" env-default:"5m"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// PoolOptions возвращает параметры пула соединений.
func (p *PostgresConfig) PoolOptions() postgres.Options {
	return postgres.Options{
		DSN:             p.GetDSN(),
		MinConns:        int32(p.MinConn), // #nosec G115 -- bounded by config
		MaxConns:        int32(p.MaxConn), // #nosec G115 -- bounded by config
		ApplicationName: p.ApplicationName,
		ConnectTimeout:  p.ConnectTimeout,
		MaxConnIdleTime: p.MaxConnIdleTime,
	}
}
