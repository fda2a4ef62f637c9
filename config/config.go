package config

import (
	"fmt"
	"os"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional, enables upload rate limiting)
	RedisAddr     string
	RedisPassword string

	// Object storage configuration
	MinioEndpoint  string
	MinioPort      string
	MinioUseSSL    bool
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	AWSRegion      string
}

// LoadConfig creates a new Config instance with values from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "cooko"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost"),
		MinioPort:      getEnv("MINIO_PORT", "9000"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET_NAME", "cooko-uploads"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that required configuration values are present
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" {
		return fmt.Errorf("DB_HOST and DB_PORT are required")
	}
	if cfg.DBUser == "" || cfg.DBName == "" {
		return fmt.Errorf("DB_USER and DB_NAME are required")
	}
	if cfg.MinioBucket == "" {
		return fmt.Errorf("MINIO_BUCKET_NAME must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
