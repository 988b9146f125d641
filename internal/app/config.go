package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mauriciosalazarsh/anuncia/pkg/jwtx"
)

type Config struct {
	SecretKey string // Required: HMAC secret for session tokens

	Issuer     string        // Optional: issuer claim for tokens (default: anuncia)
	SessionTTL time.Duration // Optional: session lifetime (default: 30m)

	RedisAddr     string // Optional: session store address (default: localhost:6379)
	RedisPassword string // Optional: session store password
	RedisDB       int    // Optional: session store database index (default: 0)

	DatabaseFile string // Optional: path to SQLite database file (default: ./anuncia.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. A missing SECRET_KEY
// is an error: the service must not fall back to a guessable default and
// silently issue forgeable tokens.
func LoadConfig() (Config, error) {
	cfg := Config{
		SecretKey:           os.Getenv("SECRET_KEY"),
		Issuer:              getEnvOrDefault("TOKEN_ISSUER", "anuncia"),
		SessionTTL:          getEnvDurationOrDefault("SESSION_TTL", jwtx.DefaultAccessTokenTTL),
		RedisAddr:           getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvIntOrDefault("REDIS_DB", 0),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "anuncia.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required")
	}

	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
