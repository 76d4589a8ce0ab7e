package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	LogLevel    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	// Spoonacular proxy configuration
	SpoonacularAPIKey   string
	SpoonacularBaseURL  string
	SpoonacularCacheTTL time.Duration

	// Image storage
	S3Bucket  string
	AWSRegion string
}

const (
	defaultSpoonacularURL = "https://api.spoonacular.com"
	defaultCacheTTL       = 30 * time.Minute
	defaultJWTExpiry      = 7 * 24 * time.Hour
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	loadCommonConfig(cfg)

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment using only environment variables
func loadCIConfig(cfg *Config) error {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.RedisDB = 0

	return nil
}

// loadDevConfig loads configuration for development: environment variables
// with local defaults, overridden by any Docker secret that is present.
func loadDevConfig(cfg *Config) error {
	cfg.ServerPort = secretOrEnv("server_port", "SERVER_PORT", "5000")
	cfg.ServerHost = secretOrEnv("server_host", "SERVER_HOST", "0.0.0.0")
	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DBHost = secretOrEnv("db_host", "DB_HOST", "localhost")
	cfg.DBPort = secretOrEnv("db_port", "DB_PORT", "5432")
	cfg.DBUser = secretOrEnv("db_user", "DB_USER", "postgres")
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD", "postgres")
	cfg.DBName = secretOrEnv("db_name", "DB_NAME", "recipeshare")
	cfg.DBSSLMode = secretOrEnv("db_ssl_mode", "DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "recipeshare.db")
	cfg.RedisHost = secretOrEnv("redis_host", "REDIS_HOST", "localhost")
	cfg.RedisPort = secretOrEnv("redis_port", "REDIS_PORT", "6379")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD", "")
	cfg.RedisURL = secretOrEnv("redis_url", "REDIS_URL", "")
	cfg.RedisDB = 0
	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET", "dev-secret-change-me")
	cfg.SpoonacularAPIKey = secretOrEnv("spoonacular_api_key", "SPOONACULAR_API_KEY", "")

	return nil
}

// loadProdConfig loads configuration for production environment using Docker secrets
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisURL = readSecret("redis_url")
	cfg.SpoonacularAPIKey = readSecret("spoonacular_api_key")

	return nil
}

// loadCommonConfig fills non-secret settings shared by every environment.
func loadCommonConfig(cfg *Config) {
	if cfg.DBDriver == "" {
		cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = getEnv("SQLITE_PATH", "recipeshare.db")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "5000"
	}
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"))
	cfg.JWTExpiry = getDuration("JWT_EXPIRY", defaultJWTExpiry)
	cfg.SpoonacularBaseURL = getEnv("SPOONACULAR_BASE_URL", defaultSpoonacularURL)
	cfg.SpoonacularCacheTTL = getDuration("SPOONACULAR_CACHE_TTL", defaultCacheTTL)
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(secret, envKey, fallback string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return getEnv(envKey, fallback)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// bare integers are seconds
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
