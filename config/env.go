package config

import (
	"os"
	"strings"
)

// Environment is the deployment stage the process runs in
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// ParseEnvironment maps an ENV value onto an Environment. Unknown and empty values
// fall back to Development.
func ParseEnvironment(value string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(value))) {
	case Production, "prod":
		return Production
	case Test:
		return Test
	case CI:
		return CI
	default:
		return Development
	}
}

// GetEnvironment reads the environment from CI=true or ENV
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// IsDevelopment reports whether verbose, local-friendly behaviour should be enabled
func IsDevelopment() bool {
	return GetEnvironment() == Development
}

// IsProduction reports whether credentials must come from secrets only
func IsProduction() bool {
	return GetEnvironment() == Production
}
