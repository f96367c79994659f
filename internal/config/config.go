// Package config reads command defaults from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds defaults that command line flags may override.
type Config struct {
	// Export
	OutputRoot string
	Overwrite  string
	Jobs       int
	Encoding   string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig reads EXCEL2CSV_* and LOG_* variables. Call godotenv.Load
// first to pick up a .env file.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		OutputRoot: getEnv("EXCEL2CSV_OUTPUT", "Exports"),
		Overwrite:  strings.ToLower(getEnv("EXCEL2CSV_OVERWRITE", "ask")),
		Jobs:       getEnvInt("EXCEL2CSV_JOBS", 1),
		Encoding:   getEnv("EXCEL2CSV_ENCODING", "utf-8"),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "console")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enum and range values.
func (c *Config) Validate() error {
	switch c.Overwrite {
	case "ask", "always", "never":
	default:
		return fmt.Errorf("EXCEL2CSV_OVERWRITE must be ask, always, or never, got %q", c.Overwrite)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("EXCEL2CSV_JOBS must be at least 1, got %d", c.Jobs)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
