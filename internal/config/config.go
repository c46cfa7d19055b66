// Package config centralizes environment configuration for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPort    = 8080
	DefaultBlobDir = "data/blobs"
)

// Config holds the runtime configuration. DATABASE_URL is required for the
// server; GEMINI_API_KEY is optional — without it cover-letter generation uses
// the deterministic fallback.
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	BlobDir     string
}

// FromEnv reads configuration from the environment. Call after godotenv has
// had a chance to populate it from .env.
func FromEnv() Config {
	cfg := Config{
		Port:        DefaultPort,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		BlobDir:     os.Getenv("BLOB_DIR"),
	}

	if cfg.BlobDir == "" {
		cfg.BlobDir = DefaultBlobDir
	}

	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			cfg.Port = port
		}
	}

	return cfg
}

// Validate checks that the configuration can run the server.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.BlobDir == "" {
		return fmt.Errorf("config error: blob directory is empty")
	}
	return nil
}
