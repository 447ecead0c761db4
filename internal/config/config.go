// Package config loads application configuration from the environment.
// All values have development-safe defaults except the database URL.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all runtime configuration for the EmployArmor server.
type Config struct {
	// Env is the deployment environment ("development" or "production").
	Env string `env:"ENV" env-default:"development"`

	// Port the HTTP server listens on.
	Port string `env:"PORT" env-default:"8080"`

	// BaseURL is used when constructing document and package URLs
	// returned by the agent API.
	BaseURL string `env:"BASE_URL" env-default:"https://employarmor.com"`

	Database DatabaseConfig
	Session  SessionConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL" env-required:"true"`
	MaxConns int32  `env:"DB_MAX_CONNS" env-default:"25"`
	MinConns int32  `env:"DB_MIN_CONNS" env-default:"5"`
}

// SessionConfig holds browser session settings for the app surface.
type SessionConfig struct {
	Expiration time.Duration `env:"SESSION_EXPIRATION" env-default:"8h"`
	CookieName string        `env:"SESSION_COOKIE_NAME" env-default:"employarmor_session"`
	Secure     bool          `env:"SESSION_COOKIE_SECURE" env-default:"true"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the server runs in production mode.
// Template reloading and verbose startup output are disabled there.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
