package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `mapstructure:"-"`

	// Server configuration
	ServerHost         string   `mapstructure:"server_host"`
	ServerPort         string   `mapstructure:"server_port"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	PublicBaseURL      string   `mapstructure:"public_base_url"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Redis configuration
	RedisURL      string        `mapstructure:"redis_url"`
	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     string        `mapstructure:"redis_port"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	ProfileTTL    time.Duration `mapstructure:"profile_ttl"`

	// Catalog
	CatalogSource string `mapstructure:"catalog_source"`
	CatalogPath   string `mapstructure:"catalog_path"`

	// Database configuration, used by the database catalog source and cmd/migrate
	DBDriver   string `mapstructure:"db_driver"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_ssl_mode"`
	SQLitePath string `mapstructure:"sqlite_path"`

	// Upload storage
	S3BucketName      string `mapstructure:"s3_bucket_name"`
	AWSRegion         string `mapstructure:"aws_region"`
	S3Endpoint        string `mapstructure:"s3_endpoint"`
	S3AccessKeyID     string `mapstructure:"s3_access_key_id"`
	S3SecretAccessKey string `mapstructure:"s3_secret_access_key"`

	// Menu ingestion
	IngestDefaultBooth string `mapstructure:"ingest_default_booth"`
	IngestMaxFiles     int    `mapstructure:"ingest_max_files"`
	IngestRateLimit    int    `mapstructure:"ingest_rate_limit"`
	IngestSeed         int64  `mapstructure:"ingest_seed"`
}

var defaults = map[string]any{
	"server_host":          "0.0.0.0",
	"server_port":          "8080",
	"cors_allowed_origins": []string{"http://localhost:3000"},
	"public_base_url":      "http://localhost:3000",
	"log_level":            "info",
	"log_format":           "console",
	"redis_url":            "",
	"redis_host":           "",
	"redis_port":           "6379",
	"redis_password":       "",
	"redis_db":             0,
	"profile_ttl":          30 * 24 * time.Hour,
	"catalog_source":       "embedded",
	"catalog_path":         "",
	"db_driver":            "sqlite",
	"db_host":              "localhost",
	"db_port":              "5432",
	"db_user":              "postgres",
	"db_password":          "",
	"db_name":              "festival",
	"db_ssl_mode":          "disable",
	"sqlite_path":          "festival.db",
	"s3_bucket_name":       "",
	"aws_region":           "ap-northeast-2",
	"s3_endpoint":          "",
	"s3_access_key_id":     "",
	"s3_secret_access_key": "",
	"ingest_default_booth": "B01",
	"ingest_max_files":     10,
	"ingest_rate_limit":    30,
	"ingest_seed":          0,
}

// LoadConfig reads configuration from the environment, optionally seeded
// from a .env file, applies defaults and validates it for the current
// environment.
func LoadConfig() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Environment = GetEnvironment()

	// Docker secrets fill credentials the environment left empty
	if cfg.DBPassword == "" {
		cfg.DBPassword = readSecret("db_password")
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = readSecret("redis_password")
	}
	if cfg.S3SecretAccessKey == "" {
		cfg.S3SecretAccessKey = readSecret("s3_secret_access_key")
	}

	cfg.CORSAllowedOrigins = splitList(cfg.CORSAllowedOrigins)
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvFile loads ENV_FILE, or .env in the working directory, when present.
// Variables already set in the environment win.
func loadEnvFile() {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
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

// splitList flattens comma-separated entries and drops blanks.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// RedisEnabled reports whether a Redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether uploaded menu files are kept in S3.
func (c *Config) S3Enabled() bool {
	return c.S3BucketName != ""
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
