package config

// Config holds all server configuration loaded from the environment
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	GeneratorAPIKey      string
	GeneratorBaseURL     string
	BillingWebhookSecret string
	Environment          string
	SessionExemptPaths   []string
}

// reports whether a durable Postgres backend is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
