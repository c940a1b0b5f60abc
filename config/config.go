package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultDatabasePath = "pdv.db"

// Config holds all application configuration
type Config struct {
	DatabaseURL        string   `envconfig:"DATABASE_URL"`
	Port               string   `envconfig:"PORT" default:"8080"`
	GoEnv              string   `envconfig:"GO_ENV" default:"development"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	RateLimitPerMinute int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"0"`
	BackupDir          string   `envconfig:"BACKUP_DIR" default:"backups"`
	AWSRegion          string   `envconfig:"AWS_REGION" default:"us-east-1"`
	BackupS3Bucket     string   `envconfig:"BACKUP_S3_BUCKET"`
	AWSAccessKeyID     string   `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string   `envconfig:"AWS_SECRET_ACCESS_KEY"`
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// PDV_DB_PATH is what the previous deployment used
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("PDV_DB_PATH")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabasePath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration values are usable
func (c *Config) Validate() error {
	switch c.GoEnv {
	case "development", "test", "production":
	default:
		return fmt.Errorf("GO_ENV must be one of development, test, production (got %q)", c.GoEnv)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// BackupEnabled reports whether backups should also be shipped to S3
func (c *Config) BackupEnabled() bool {
	return c.BackupS3Bucket != ""
}
