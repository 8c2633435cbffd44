package config

import (
	"os"
	"strconv"

	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Reference ReferenceConfig
	Identify  IdentifyConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ReferenceConfig selects where the master postcode list comes from:
// a Postgres table when DATABASE_URL is set, otherwise a local file.
type ReferenceConfig struct {
	FilePath  string
	TableName string
}

// IdentifyConfig holds default identification knobs, overridable per request
type IdentifyConfig struct {
	SampleSize       int
	SuccessThreshold float64
	Seed             int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Reference: ReferenceConfig{
			FilePath:  getEnvOrDefault("REFERENCE_FILE", ""),
			TableName: getEnvOrDefault("REFERENCE_TABLE", "master_postcodes"),
		},
		Identify: IdentifyConfig{
			SampleSize:       getEnvIntOrDefault("SAMPLE_SIZE", 100),
			SuccessThreshold: getEnvFloatOrDefault("SUCCESS_THRESHOLD", 0.1),
			Seed:             int64(getEnvIntOrDefault("SAMPLE_SEED", 42)),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Database.URL == "" && cfg.Reference.FilePath == "" {
		return errors.ConfigInvalid("either DATABASE_URL or REFERENCE_FILE is required")
	}
	if cfg.Identify.SampleSize <= 0 {
		return errors.ConfigInvalid("SAMPLE_SIZE must be positive")
	}
	if cfg.Identify.SuccessThreshold < 0 || cfg.Identify.SuccessThreshold > 1 {
		return errors.ConfigInvalid("SUCCESS_THRESHOLD must be in [0, 1]")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
