package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// generation endpoints excluded from session validation by default so that a
// login on another device does not abort a multi-second generation call
var defaultSessionExemptPaths = []string{
	"/api/v1/practice/roleplay",
	"/api/v1/practice/feedback",
}

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	generatorKey := os.Getenv("GENERATOR_API_KEY")
	generatorBaseURL := os.Getenv("GENERATOR_BASE_URL")
	billingSecret := os.Getenv("BILLING_WEBHOOK_SECRET")
	environment := os.Getenv("ENVIRONMENT")

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if generatorKey == "" {
		return nil, fmt.Errorf("GENERATOR_API_KEY environment variable is required")
	}

	if generatorBaseURL == "" {
		generatorBaseURL = "https://api.pitchprep.app/generator"
	}

	if environment == "" {
		environment = "development"
	}

	return &Config{
		DatabaseURL:          databaseURL,
		JWTSecret:            jwtSecret,
		GeneratorAPIKey:      generatorKey,
		GeneratorBaseURL:     generatorBaseURL,
		BillingWebhookSecret: billingSecret,
		Environment:          environment,
		SessionExemptPaths:   loadSessionExemptPaths(),
	}, nil
}

// reads the session validation exemption list, falling back to the defaults
func loadSessionExemptPaths() []string {
	raw := os.Getenv("SESSION_EXEMPT_PATHS")
	if raw == "" {
		return defaultSessionExemptPaths
	}

	var paths []string

	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}

	return paths
}
