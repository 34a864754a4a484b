package config

import (
	"os"
	"strconv"
	"time"

	"trendlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Session  SessionConfig
	Forecast ForecastConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// UploadConfig holds dataset upload limits
type UploadConfig struct {
	MaxFileSizeMB int64
	PreviewRows   int
}

// SessionConfig holds browser session settings
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// ForecastConfig holds the forecast horizon bounds exposed by the slider
type ForecastConfig struct {
	MinHorizon     int
	MaxHorizon     int
	DefaultHorizon int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Upload: UploadConfig{
			MaxFileSizeMB: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)),
			PreviewRows:   getEnvIntOrDefault("PREVIEW_ROWS", 5),
		},
		Session: SessionConfig{
			CookieName: getEnvOrDefault("SESSION_COOKIE", "trendlab_sid"),
			TTL:        getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour),
		},
		Forecast: ForecastConfig{
			MinHorizon:     5,
			MaxHorizon:     60,
			DefaultHorizon: getEnvIntOrDefault("FORECAST_DEFAULT", 12),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxFileSizeMB <= 0 {
		return errors.ConfigInvalid("upload size limit must be positive")
	}
	if config.Forecast.DefaultHorizon < config.Forecast.MinHorizon ||
		config.Forecast.DefaultHorizon > config.Forecast.MaxHorizon {
		return errors.ConfigInvalid("default forecast horizon must fall within [5, 60]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
