package main

import (
	"fmt"
	"os"
)

// Config holds all configuration for the table-ordering service.
type Config struct {
	Port             string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	RedisURL         string
	AWSRegion        string
	AWSEndpoint      string
	S3Bucket         string
	S3Prefix         string
	S3PublicBaseURL  string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint:      os.Getenv("AWS_ENDPOINT"),
		S3Bucket:         getEnv("AWS_S3_BUCKET", "simenu"),
		S3Prefix:         getEnv("AWS_S3_PREFIX", "menu/"),
		S3PublicBaseURL:  os.Getenv("AWS_S3_PUBLIC_BASE_URL"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	return cfg, nil
}

// DSN builds the Postgres connection string from the loaded config.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB,
		c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
