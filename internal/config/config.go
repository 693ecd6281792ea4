// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the junkshop services.
type Config struct {
	// AppEnv is "development" or "production".
	AppEnv string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// HTTPPort is the port the API server listens on.
	HTTPPort string

	// DatabaseURL is the PostgreSQL DSN.
	DatabaseURL string

	// AllowReopen permits moving shipments out of final statuses.
	AllowReopen bool

	// ChangeFeedChannel is the LISTEN/NOTIFY channel the worker consumes.
	ChangeFeedChannel string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		HTTPPort:          getEnv("APP_PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AllowReopen:       getEnvBool("SHIPMENT_ALLOW_REOPEN", true),
		ChangeFeedChannel: getEnv("CHANGEFEED_CHANNEL", "junkshop_changes"),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("required environment variable DATABASE_URL not set")
	}
	return cfg, nil
}

// Development reports whether the app runs in development mode.
func (c Config) Development() bool {
	return c.AppEnv == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
