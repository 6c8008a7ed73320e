package config

import (
	"os"
	"strconv"

	"chartadvisor/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Store     StoreConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional PostgreSQL backend settings.
// When URL is empty the local file-backed chart store is used instead.
type DatabaseConfig struct {
	URL string
}

// StoreConfig holds local chart store settings
type StoreConfig struct {
	Dir string
}

// ProfilingConfig holds dataset profiling settings
type ProfilingConfig struct {
	SampleSize      int
	MaxSampleValues int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Store: StoreConfig{
			Dir: getEnv("CHART_STORE_DIR", "data/charts"),
		},
		Profiling: ProfilingConfig{
			SampleSize:      getEnvInt("PROFILE_SAMPLE_SIZE", 5000),
			MaxSampleValues: getEnvInt("PROFILE_MAX_SAMPLE_VALUES", 5),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validate(c *Config) error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if c.Profiling.SampleSize < 0 {
		return errors.ConfigInvalid("PROFILE_SAMPLE_SIZE cannot be negative")
	}
	if c.Profiling.MaxSampleValues < 1 {
		return errors.ConfigInvalid("PROFILE_MAX_SAMPLE_VALUES must be at least 1")
	}
	if c.Database.URL == "" && c.Store.Dir == "" {
		return errors.ConfigInvalid("either DATABASE_URL or CHART_STORE_DIR is required")
	}
	return nil
}

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
