// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Photo storage
	UploadRoot     string // directory holding per-listing photo directories
	PublicDir      string // built frontend bundle; empty disables static serving
	MaxPhotos      int    // ceiling of stored photos per listing
	MaxPhotoBytes  int64  // per-file upload size limit
	MaxUploadFiles int    // files accepted in a single request

	// Remote catalog API
	CatalogBaseURL string

	// PostgreSQL connection (admin users, contact messages)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache + session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
}

const (
	// DefaultMaxPhotos is the per-listing photo ceiling.
	DefaultMaxPhotos = 10

	// DefaultMaxPhotoBytes is the per-file upload size limit (5 MiB).
	DefaultMaxPhotoBytes = 5 << 20
)

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first if present. Returns an error if critical values are
// missing in production mode.
func Load() (*Config, error) {
	// Missing .env is fine — the environment is the primary source.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		UploadRoot:     envOrDefault("UPLOAD_ROOT", "uploads"),
		PublicDir:      os.Getenv("PUBLIC_DIR"),
		MaxPhotos:      envIntOrDefault("MAX_PHOTOS", DefaultMaxPhotos),
		MaxPhotoBytes:  int64(envIntOrDefault("MAX_PHOTO_BYTES", DefaultMaxPhotoBytes)),
		MaxUploadFiles: envIntOrDefault("MAX_UPLOAD_FILES", DefaultMaxPhotos),

		CatalogBaseURL: envOrDefault("CATALOG_BASE_URL", "http://localhost:3000/catalog"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "imovia"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "imovia"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	if cfg.MaxPhotos <= 0 {
		return nil, fmt.Errorf("MAX_PHOTOS must be positive, got %d", cfg.MaxPhotos)
	}
	if cfg.MaxPhotoBytes <= 0 {
		return nil, fmt.Errorf("MAX_PHOTO_BYTES must be positive, got %d", cfg.MaxPhotoBytes)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOrDefault reads an integer environment variable, returning a fallback
// if unset, empty, or unparseable.
func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
