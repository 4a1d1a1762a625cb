package config

import (
	"fmt"
	"net/url"
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

// ValidateConfig checks that the configuration is usable for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []string

	if cfg.OpenAIAPIKey == "" {
		errs = append(errs, credentialError(env, "OPENAI_API_KEY", "openai_api_key").Error())
	}
	if cfg.AuthKey == "" {
		errs = append(errs, credentialError(env, "AUTH_KEY", "auth_key").Error())
	}

	if u, err := url.Parse(cfg.CompletionURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "COMPLETION_API_URL", Message: fmt.Sprintf("invalid URL %q", cfg.CompletionURL)}.Error())
	}
	if cfg.CompletionTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "COMPLETION_TIMEOUT", Message: "must be positive"}.Error())
	}
	if cfg.RateLimitPerHour <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_HOUR", Message: "must be positive"}.Error())
	}
	if len(cfg.AllowedOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: "at least one origin is required"}.Error())
	}

	if cfg.DatabaseEnabled() {
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "DB_NAME", Message: "required when DB_HOST is set"}.Error())
		}
		if cfg.DBUser == "" {
			errs = append(errs, credentialError(env, "DB_USER", "db_user").Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}

func credentialError(env Environment, envVar, secret string) ValidationError {
	if env == Production {
		return ValidationError{Field: secret, Message: "secret is required"}
	}
	return ValidationError{Field: envVar, Message: fmt.Sprintf("environment variable or %s secret is required", secret)}
}
