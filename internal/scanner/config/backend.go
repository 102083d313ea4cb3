package config

import (
	"time"

	"docscan/internal/scanner/resilience"
	"docscan/internal/scanner/session"
)

// BackendConfig представляет настройки подключения к бэкенду документов.
type BackendConfig struct {
	BaseURL       string        `yaml:"base_url" env:"SCANNER_BACKEND_URL" env-default:"http://10.10.100.153:8000"`
	Timeout       time.Duration `yaml:"timeout" env:"SCANNER_BACKEND_TIMEOUT" env-default:"15s"`
	RefreshWindow time.Duration `yaml:"refresh_window" env:"SCANNER_BACKEND_REFRESH_WINDOW" env-default:"60s"`

	BreakerFailures int           `yaml:"breaker_failures" env:"SCANNER_BACKEND_BREAKER_FAILURES" env-default:"5"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout" env:"SCANNER_BACKEND_BREAKER_TIMEOUT" env-default:"10s"`
}

// SessionConfig возвращает настройки клиента сессии.
func (c *BackendConfig) SessionConfig() session.Config {
	return session.Config{
		BaseURL:       c.BaseURL,
		Timeout:       c.Timeout,
		RefreshWindow: c.RefreshWindow,
	}
}

// BreakerConfig возвращает настройки Circuit Breaker транспорта.
func (c *BackendConfig) BreakerConfig() resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig()
	if c.BreakerFailures > 0 {
		cfg.ErrorThreshold = c.BreakerFailures
	}
	if c.BreakerTimeout > 0 {
		cfg.Timeout = c.BreakerTimeout
	}
	return cfg
}
