// Package config loads process-level settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries the aggregator's runtime settings. Values come from the
// environment; main loads an optional .env file first, with real environment
// variables taking precedence.
type Config struct {
	ListenAddr    string
	CacheTTL      time.Duration
	CacheBackend  string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LogLevel      string
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		CacheTTL:      time.Duration(getenvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		CacheBackend:  getenv("CACHE_BACKEND", "memory"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvInt("REDIS_DB", 0),
		LogLevel:      getenv("LOG_LEVEL", "INFO"),
	}
	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		return cfg, fmt.Errorf("unknown CACHE_BACKEND %q (want memory or redis)", cfg.CacheBackend)
	}
	if cfg.CacheTTL <= 0 {
		return cfg, fmt.Errorf("CACHE_TTL_SECONDS must be positive")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		if _, err := fmt.Sscanf(v, "%d", &out); err == nil {
			return out
		}
	}
	return def
}
