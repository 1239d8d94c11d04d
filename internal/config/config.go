package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr string

	// Storage
	DatabaseURL string
	RedisAddr   string
	RedisPass   string

	// Auth
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string

	// Background work
	SweepInterval time.Duration

	// Rate limiting
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads environment variables into AppConfig. DATABASE_URL and
// REDIS_ADDR are optional: without them the service runs on in-memory
// storage with no distributed rate limiting, which is fine for
// development and tests.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		RedisPass:   getEnv("REDIS_PASS", ""),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 24*time.Hour),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@gymdesk.app"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Hour),

		RateLimit:       getEnvInt("RATE_LIMIT", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
