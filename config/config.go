package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage backends for uploaded recipe images.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (rate limiting); optional
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Image storage
	StorageBackend string // "local" or "s3"
	MediaRoot      string // root directory for the local backend
	S3Bucket       string
	AWSRegion      string
}

// LoadConfig creates a new Config instance from environment variables, with
// Docker secrets as a fallback for credentials in production.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getEnv("DB_NAME", "recipes"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        0,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageLocal),
		MediaRoot:      getEnv("MEDIA_ROOT", "media"),
		S3Bucket:       os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:      os.Getenv("AWS_REGION"),
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			cfg.DBPassword = readSecret("db_password")
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = readSecret("jwt_secret")
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that the configuration is usable in the current
// environment. Development and test get an insecure default JWT secret;
// production does not.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		if IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "insecure-dev-secret"
	}

	switch cfg.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if cfg.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required with the s3 storage backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}

	return nil
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
