// ABOUTME: Centralized configuration for the habits CLI and servers
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harper/habits/internal/storage/sqlite"
)

// Config holds all configuration for the tracker
type Config struct {
	// Storage settings
	DBPath string

	// Logging settings
	LogLevel       string
	LogDevelopment bool

	// HTTP settings
	HTTPAddr        string
	CORSOrigins     []string
	ShutdownTimeout time.Duration

	// parse errors from the environment, reported by Validate
	envErrs []error
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var envErrs []error
	cfg := &Config{
		DBPath:          getEnv("HABITS_DB_PATH", sqlite.DefaultDBPath()),
		LogLevel:        strings.ToLower(getEnv("HABITS_LOG_LEVEL", "info")),
		LogDevelopment:  getEnvBool("HABITS_LOG_DEV", false),
		HTTPAddr:        getEnv("HABITS_HTTP_ADDR", "127.0.0.1:4850"),
		CORSOrigins:     getEnvList("HABITS_CORS_ORIGINS", []string{"http://localhost:5173"}),
		ShutdownTimeout: getEnvDuration("HABITS_SHUTDOWN_TIMEOUT", 5*time.Second, &envErrs),
	}
	cfg.envErrs = envErrs

	return cfg, cfg.Validate()
}

// Validate checks values and reports environment variables that failed to parse
func (c *Config) Validate() error {
	if len(c.envErrs) > 0 {
		return c.envErrs[0]
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("HABITS_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("HABITS_HTTP_ADDR cannot be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("HABITS_SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvDuration parses key as a duration. A malformed value is recorded in
// errs and the default is returned.
func getEnvDuration(key string, defaultVal time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a duration like 5s, got %q: %w", key, v, err))
		return defaultVal
	}
	return d
}
