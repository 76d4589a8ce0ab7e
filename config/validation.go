package config

import (
	"fmt"
	"os"
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
	RequiredEnvVars []string
	RequiredSecrets []string
}

var (
	// Environment-specific requirements. Development and test fall back to
	// local defaults, so nothing is strictly required there.
	requirements = map[Environment]ConfigRequirements{
		Development: {},
		Test:        {},
		CI: {
			RequiredEnvVars: []string{
				"SERVER_PORT",
				"DB_HOST",
				"DB_PORT",
				"DB_USER",
				"DB_NAME",
				"TEST_DB_PASSWORD",
				"TEST_JWT_SECRET",
			},
		},
		Production: {
			RequiredSecrets: []string{
				"server_port",
				"db_host",
				"db_port",
				"db_user",
				"db_password",
				"db_name",
				"jwt_secret",
			},
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []string

	for _, envVar := range reqs.RequiredEnvVars {
		if value := os.Getenv(envVar); value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", envVar))
		}
	}

	for _, secret := range reqs.RequiredSecrets {
		if value := readSecret(secret); value == "" {
			errors = append(errors, fmt.Sprintf("required secret %s is not set", secret))
		}
	}

	for _, verr := range validateValues(cfg) {
		errors = append(errors, verr.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

func validateValues(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "jwt_secret", Message: "must not be empty"})
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errs = append(errs, ValidationError{Field: "server_port", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "db_host", Message: "postgres requires host and database name"})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "sqlite_path", Message: "must not be empty"})
		}
	default:
		errs = append(errs, ValidationError{Field: "db_driver", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}
	if cfg.SpoonacularCacheTTL <= 0 {
		errs = append(errs, ValidationError{Field: "spoonacular_cache_ttl", Message: "must be positive"})
	}

	return errs
}
