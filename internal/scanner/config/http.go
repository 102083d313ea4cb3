package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию локального HTTP API.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"SCANNER_HTTP_HOST" env-default:"127.0.0.1"`
	Port         int           `yaml:"port" env:"SCANNER_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SCANNER_HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SCANNER_HTTP_WRITE_TIMEOUT" env-default:"60s"`
	BodyLimitMB  int           `yaml:"body_limit_mb" env:"SCANNER_HTTP_BODY_LIMIT_MB" env-default:"32"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit возвращает лимит тела запроса в байтах.
func (c *HTTPConfig) BodyLimit() int {
	return c.BodyLimitMB << 20
}
