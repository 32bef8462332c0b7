// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	// Database connections (validated lazily, only when a database source is used)
	Postgres  *PostgresConfig
	Snowflake *SnowflakeConfig

	// Pipeline settings
	OutputDir   string
	WorkerCount int // 0 means derive from runtime.NumCPU()
	MaxRows     int // 0 means unlimited
	ReportHTML  bool

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from the environment, reading an optional .env file first
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := &Config{
		OutputDir:   getEnv("OUTPUT_DIR", "out"),
		WorkerCount: getEnvAsInt("WORKER_COUNT", 0),
		MaxRows:     getEnvAsInt("MAX_ROWS", 0),
		ReportHTML:  getEnvAsBool("REPORT_HTML", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
	}

	cfg.Postgres = LoadPostgresConfig()
	cfg.Snowflake = LoadSnowflakeConfig()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.WorkerCount < 0 {
		return errors.New("worker count cannot be negative")
	}

	if c.MaxRows < 0 {
		return errors.New("max rows cannot be negative")
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return errors.New("log format must be json or console")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
