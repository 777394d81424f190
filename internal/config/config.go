package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Drivers de almacenamiento soportados.
const (
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort              string        `env:"HTTP_PORT" envDefault:"8080"`
	APIBaseURL            string        `env:"API_BASE_URL" envDefault:"https://airbnbnew.cybersoft.edu.vn/api"`
	TokenCybersoft        string        `env:"TOKEN_CYBERSOFT"`
	APITimeout            time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	APIRateLimit          float64       `env:"API_RATE_LIMIT" envDefault:"0"`
	APIBurst              int           `env:"API_BURST" envDefault:"5"`
	SessionTimeoutMinutes int           `env:"SESSION_TIMEOUT_MINUTES" envDefault:"5"`
	SessionCheckInterval  time.Duration `env:"SESSION_CHECK_INTERVAL" envDefault:"10s"`
	StorageDriver         string        `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	StoragePath           string        `env:"STORAGE_PATH" envDefault:"data/session.db"`
	DatabaseURL           string        `env:"DATABASE_URL"`
	RedisAddr             string        `env:"REDIS_ADDR"`
	RedisPassword         string        `env:"REDIS_PASSWORD"`
	RedisDB               int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix           string        `env:"REDIS_PREFIX" envDefault:"rental:kv:"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa las combinaciones que env no puede expresar con tags.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageSQLite:
		if c.StoragePath == "" {
			return fmt.Errorf("%w: STORAGE_PATH is required for sqlite", ErrInvalidConfig)
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: REDIS_ADDR is required for redis", ErrInvalidConfig)
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for postgres", ErrInvalidConfig)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalidConfig, c.StorageDriver)
	}
	if c.SessionCheckInterval <= 0 {
		return fmt.Errorf("%w: SESSION_CHECK_INTERVAL must be positive", ErrInvalidConfig)
	}
	if c.APIRateLimit < 0 {
		return fmt.Errorf("%w: API_RATE_LIMIT must not be negative", ErrInvalidConfig)
	}
	return nil
}

// SessionTimeout devuelve la ventana de inactividad; valores no positivos usan 5 minutos.
func (c *Config) SessionTimeout() time.Duration {
	if c.SessionTimeoutMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.SessionTimeoutMinutes) * time.Minute
}
