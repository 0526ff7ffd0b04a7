package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env       string `validate:"required"`
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Report    ReportConfig
	Security  SecurityConfig
	Scheduler SchedulerConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `validate:"required,numeric"`
	Host string `validate:"required"`
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `validate:"required"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `validate:"min=1,dive,required"`
}

// ReportConfig controls how calendar days are derived from stored instants.
type ReportConfig struct {
	Timezone string `validate:"required"`
	Location *time.Location
}

// SecurityConfig holds the Fernet key used to seal resolution notes at rest.
// An empty key makes the server generate an ephemeral one.
type SecurityConfig struct {
	ResolutionKey string
}

// SchedulerConfig holds the cron spec for the report snapshot refresh.
type SchedulerConfig struct {
	SnapshotSchedule string `validate:"required"`
}

// RateLimitConfig bounds API requests per client IP.
type RateLimitConfig struct {
	PerSecond float64 `validate:"gt=0"`
	Burst     int     `validate:"min=1"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	perSecond, err := strconv.ParseFloat(getEnv("RATE_LIMIT_PER_SEC", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_SEC: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	config := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/watchdog.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Report: ReportConfig{
			Timezone: getEnv("REPORT_TIMEZONE", "UTC"),
		},
		Security: SecurityConfig{
			ResolutionKey: os.Getenv("RESOLUTION_KEY"),
		},
		Scheduler: SchedulerConfig{
			SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "@daily"),
		},
		RateLimit: RateLimitConfig{
			PerSecond: perSecond,
			Burst:     burst,
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	config.Report.Location, err = time.LoadLocation(config.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", config.Report.Timezone, err)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
