package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		PublicBaseURL string `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL"`
		MigrationsDir string `yaml:"migrations_dir" env:"SERVER_MIGRATIONS_DIR"`
		SeedDemoData  bool   `yaml:"seed_demo_data" env:"SERVER_SEED_DEMO_DATA"`
	} `yaml:"server"`

	Database struct {
		// URL takes precedence over the discrete connection fields when set.
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Auth struct {
		AnonKey         string `yaml:"anon_key" env:"MESS_ANON_KEY"`
		JWTSecret       string `yaml:"jwt_secret" env:"JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"auth"`

	Storage struct {
		// Driver is either "local" or "s3".
		Driver        string `yaml:"driver" env:"STORAGE_DRIVER"`
		LocalPath     string `yaml:"local_path" env:"STORAGE_LOCAL_PATH"`
		S3Bucket      string `yaml:"s3_bucket" env:"STORAGE_S3_BUCKET"`
		S3Region      string `yaml:"s3_region" env:"STORAGE_S3_REGION"`
		S3AccessKey   string `yaml:"s3_access_key" env:"STORAGE_S3_ACCESS_KEY"`
		S3SecretKey   string `yaml:"s3_secret_key" env:"STORAGE_S3_SECRET_KEY"`
		S3Endpoint    string `yaml:"s3_endpoint" env:"STORAGE_S3_ENDPOINT"`
		S3PublicURL   string `yaml:"s3_public_url" env:"STORAGE_S3_PUBLIC_URL"`
		MaxImageWidth int    `yaml:"max_image_width" env:"STORAGE_MAX_IMAGE_WIDTH"`
	} `yaml:"storage"`

	Mail struct {
		Host           string `yaml:"host" env:"SMTP_HOST"`
		Port           int    `yaml:"port" env:"SMTP_PORT"`
		Username       string `yaml:"username" env:"SMTP_USERNAME"`
		Password       string `yaml:"password" env:"SMTP_PASSWORD"`
		FromEmail      string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		FromName       string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		CommitteeEmail string `yaml:"committee_email" env:"MAIL_COMMITTEE_EMAIL"`
	} `yaml:"mail"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// A missing file is fine; everything can come from the environment.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.PublicBaseURL = "http://localhost:8080"
	config.Server.MigrationsDir = "migrations"
	config.Server.SeedDemoData = true

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "hostel_mess"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.Auth.TokenExpiration = "12h"
	config.Auth.Issuer = "hostel-mess"

	config.Storage.Driver = "local"
	config.Storage.LocalPath = "uploads"
	config.Storage.MaxImageWidth = 1280

	config.Mail.Port = 587
	config.Mail.FromName = "Mess Committee"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return errors.New("database url or host is required")
	}

	if config.Auth.AnonKey == "" {
		return errors.New("anon key is required")
	}

	if config.Auth.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.Auth.TokenExpiration); err != nil {
		return fmt.Errorf("invalid token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}

	switch strings.ToLower(config.Storage.Driver) {
	case "local":
		if config.Storage.LocalPath == "" {
			return errors.New("storage local_path is required for the local driver")
		}
	case "s3":
		if config.Storage.S3Bucket == "" || config.Storage.S3Region == "" {
			return errors.New("storage s3_bucket and s3_region are required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.Mail.Host != "" && c.Mail.CommitteeEmail != ""
}
