package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequireRedis    bool
	RequireJSONLogs bool
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {},
		Test:        {},
		CI:          {},
		Production: {
			// profiles must survive restarts
			RequireRedis:    true,
			RequireJSONLogs: true,
		},
	}
)

var (
	validLogFormats     = []string{"console", "json"}
	validCatalogSources = []string{"embedded", "file", "database"}
	validDBDrivers      = []string{"sqlite", "postgres"}
)

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	reqs := requirements[cfg.Environment]

	var errs []ValidationError
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		fail("SERVER_PORT", "must be a port number, got %q", cfg.ServerPort)
	}
	if !oneOf(cfg.LogFormat, validLogFormats) {
		fail("LOG_FORMAT", "must be one of %s", strings.Join(validLogFormats, ", "))
	}
	if u, err := url.Parse(cfg.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		fail("PUBLIC_BASE_URL", "must be an absolute URL, got %q", cfg.PublicBaseURL)
	}
	if cfg.ProfileTTL < 0 {
		fail("PROFILE_TTL", "must not be negative")
	}

	switch {
	case !oneOf(cfg.CatalogSource, validCatalogSources):
		fail("CATALOG_SOURCE", "must be one of %s", strings.Join(validCatalogSources, ", "))
	case cfg.CatalogSource == "file" && cfg.CatalogPath == "":
		fail("CATALOG_PATH", "is required when CATALOG_SOURCE is file")
	}
	if !oneOf(cfg.DBDriver, validDBDrivers) {
		fail("DB_DRIVER", "must be one of %s", strings.Join(validDBDrivers, ", "))
	}
	if cfg.CatalogSource == "database" && cfg.DBDriver == "postgres" {
		if cfg.DBHost == "" {
			fail("DB_HOST", "is required for the postgres driver")
		}
		if cfg.DBName == "" {
			fail("DB_NAME", "is required for the postgres driver")
		}
	}

	if cfg.IngestMaxFiles <= 0 {
		fail("INGEST_MAX_FILES", "must be positive")
	}
	if cfg.IngestRateLimit < 0 {
		fail("INGEST_RATE_LIMIT", "must not be negative")
	}
	if cfg.IngestDefaultBooth == "" {
		fail("INGEST_DEFAULT_BOOTH", "is required")
	}

	if reqs.RequireRedis && !cfg.RedisEnabled() {
		fail("REDIS_URL", "REDIS_URL or REDIS_HOST is required in %s", cfg.Environment)
	}
	if reqs.RequireJSONLogs && cfg.LogFormat != "json" {
		fail("LOG_FORMAT", "must be json in %s", cfg.Environment)
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
	}

	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
