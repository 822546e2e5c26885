// Package config reads gateway configuration from the environment once at
// startup. Values are injected into the core from main; nothing re-reads the
// environment per call.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultUpstreamURL = "https://api.the-odds-api.com/v4"
	defaultCacheTTL    = 60 * time.Second
	defaultPort        = ":8090"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds Hermes configuration
type Config struct {
	Port         string
	UpstreamURL  string
	APIKey       string
	CacheTTL     time.Duration
	CacheBackend string
	RedisURL     string
	CORSOrigins  []string
}

// Load reads configuration from environment variables, honoring a local
// .env file when present
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("HERMES_PORT", defaultPort),
		UpstreamURL:  getEnv("HERMES_UPSTREAM_URL", defaultUpstreamURL),
		APIKey:       os.Getenv("ODDS_API_KEY"),
		CacheTTL:     defaultCacheTTL,
		CacheBackend: getEnv("HERMES_CACHE_BACKEND", BackendMemory),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		CORSOrigins:  splitList(getEnv("HERMES_CORS_ORIGINS", "http://localhost:3000")),
	}

	if ttlStr := os.Getenv("HERMES_CACHE_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			cfg.CacheTTL = parsed
		} else {
			fmt.Printf("⚠ Invalid HERMES_CACHE_TTL '%s', using default %v\n", ttlStr, defaultCacheTTL)
		}
	}

	return cfg
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
