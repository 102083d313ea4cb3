package config

import (
	"time"

	pkgredis "docscan/pkg/db/redis"
)

// RedisConfig представляет конфигурацию Redis.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"SCANNER_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"SCANNER_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"SCANNER_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"SCANNER_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"SCANNER_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SCANNER_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SCANNER_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"SCANNER_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"SCANNER_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SCANNER_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"SCANNER_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
}

// ClientConfig возвращает параметры клиента Redis.
func (c *RedisConfig) ClientConfig() *pkgredis.Config {
	return &pkgredis.Config{
		Host:            c.Host,
		Port:            c.Port,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdle:         c.MinIdle,
		DialTimeout:     c.ConnectTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ConnMaxIdleTime: c.IdleTimeout,
		ConnMaxLifetime: c.MaxConnLifetime,
	}
}
