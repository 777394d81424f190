package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPPort != "8080" || cfg.StorageDriver != StorageSQLite || cfg.StoragePath != "data/session.db" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SessionTimeout() != 5*time.Minute || cfg.SessionCheckInterval != 10*time.Second || cfg.APITimeout != 30*time.Second {
		t.Fatalf("unexpected session defaults %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_TIMEOUT_MINUTES", "15")
	t.Setenv("SESSION_CHECK_INTERVAL", "2s")
	t.Setenv("API_RATE_LIMIT", "2.5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionTimeout() != 15*time.Minute || cfg.SessionCheckInterval != 2*time.Second || cfg.APIRateLimit != 2.5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"memory", Config{StorageDriver: StorageMemory, SessionCheckInterval: time.Second}, true},
		{"redis sin addr", Config{StorageDriver: StorageRedis, SessionCheckInterval: time.Second}, false},
		{"postgres sin url", Config{StorageDriver: StoragePostgres, SessionCheckInterval: time.Second}, false},
		{"postgres", Config{StorageDriver: StoragePostgres, DatabaseURL: "postgres://x", SessionCheckInterval: time.Second}, true},
		{"driver desconocido", Config{StorageDriver: "etcd", SessionCheckInterval: time.Second}, false},
		{"intervalo cero", Config{StorageDriver: StorageMemory}, false},
		{"rate negativo", Config{StorageDriver: StorageMemory, SessionCheckInterval: time.Second, APIRateLimit: -1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
