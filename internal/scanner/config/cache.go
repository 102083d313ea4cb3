package config

import "time"

// CacheConfig представляет настройки кэша профилей.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" env:"SCANNER_CACHE_ENABLED" env-default:"true"`
	Prefix     string        `yaml:"prefix" env:"SCANNER_CACHE_PREFIX" env-default:"scanner:"`
	ProfileTTL time.Duration `yaml:"profile_ttl" env:"SCANNER_CACHE_PROFILE_TTL" env-default:"15m"`
}
