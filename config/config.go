package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Fixed sampling parameters for the completion provider
const (
	TokenLimit           = 800
	Temperature          = 0.6
	FeasibilityMaxTokens = 600
	RecipeMaxTokens      = 800
)

const (
	defaultServerPort        = "8000"
	defaultCompletionURL     = "https://api.openai.com/v1/completions"
	defaultCompletionModel   = "gpt-3.5-turbo-instruct"
	defaultCompletionTimeout = 60 * time.Second
	defaultRateLimitPerHour  = 30
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8000",
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string
	LogLevel       string

	// Completion provider configuration
	OpenAIAPIKey      string
	CompletionURL     string
	CompletionModel   string
	CompletionTimeout time.Duration

	// Shared secret callers must present in the request body
	AuthKey string

	// Redis configuration (rate limiting, optional)
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	RedisURL         string
	RateLimitPerHour int

	// Database configuration (usage records, optional)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// RedisEnabled reports whether a Redis connection was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// DatabaseEnabled reports whether a usage database was configured
func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	// A missing .env file is fine, the environment may already be populated
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI, Development, Test:
		loadEnvConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply configuration defaults: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads environment variables first and falls back to Docker secrets for credentials
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.CompletionURL = os.Getenv("COMPLETION_API_URL")
	cfg.CompletionModel = os.Getenv("COMPLETION_MODEL")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")

	cfg.OpenAIAPIKey = envOrSecret("OPENAI_API_KEY", "openai_api_key")
	cfg.AuthKey = envOrSecret("AUTH_KEY", "auth_key")
	cfg.RedisPassword = envOrSecret("REDIS_PASSWORD", "redis_password")
	cfg.RedisURL = envOrSecret("REDIS_URL", "redis_url")
	cfg.DBUser = envOrSecret("DB_USER", "db_user")
	cfg.DBPassword = envOrSecret("DB_PASSWORD", "db_password")
}

// loadProdConfig loads credentials using ONLY Docker secrets, plain settings from the environment
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.CompletionURL = os.Getenv("COMPLETION_API_URL")
	cfg.CompletionModel = os.Getenv("COMPLETION_MODEL")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")

	cfg.OpenAIAPIKey = readSecret("openai_api_key")
	cfg.AuthKey = readSecret("auth_key")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = readSecret("redis_url")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
}

func applyDefaults(cfg *Config) error {
	if cfg.ServerPort == "" {
		cfg.ServerPort = defaultServerPort
	}
	if cfg.CompletionURL == "" {
		cfg.CompletionURL = defaultCompletionURL
	}
	if cfg.CompletionModel == "" {
		cfg.CompletionModel = defaultCompletionModel
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RedisHost != "" && cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if cfg.DBHost != "" {
		if cfg.DBPort == "" {
			cfg.DBPort = "5432"
		}
		if cfg.DBSSLMode == "" {
			cfg.DBSSLMode = "disable"
		}
	}

	cfg.CompletionTimeout = defaultCompletionTimeout
	if v := os.Getenv("COMPLETION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid COMPLETION_TIMEOUT %q: %w", v, err)
		}
		cfg.CompletionTimeout = d
	}

	cfg.RateLimitPerHour = defaultRateLimitPerHour
	if v := os.Getenv("RATE_LIMIT_PER_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_PER_HOUR %q: %w", v, err)
		}
		cfg.RateLimitPerHour = n
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	cfg.AllowedOrigins = defaultAllowedOrigins
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}

	return nil
}

// envOrSecret prefers the environment variable and falls back to the Docker secret
func envOrSecret(envName, secretName string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return readSecret(secretName)
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
