package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	DBLogLevel  string

	HTTPAddr string
	GinMode  string

	TelegramToken string

	S3Bucket      string
	S3Region      string
	CloudFrontURL string
}

// Load reads .env (when present) and the environment
func Load() (*Config, error) {
	// .env is optional; the environment wins over it
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getenv("SQLITE_PATH", "meal-planner.db"),
		DBLogLevel:    getenv("DB_LOG_LEVEL", "warn"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		GinMode:       os.Getenv("GIN_MODE"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getenv("S3_REGION", os.Getenv("AWS_REGION")),
		CloudFrontURL: strings.TrimRight(os.Getenv("CLOUDFRONT_URL"), "/"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL not set")
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// ImagesEnabled reports whether recipe image upload is configured
func (c *Config) ImagesEnabled() bool {
	return c.S3Bucket != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
