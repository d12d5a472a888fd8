// Package config handles configuration for the development backend,
// including defaults, JSON overlay, environment variables and
// command-line flags.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - AdminEmail / AdminPassword: the seeded super administrator.
//   - SeedSampleData: populate events, users, reports and transactions.
type Config struct {
	EndpointAddr                 string        `envconfig:"ADDR"`
	SecretKey                    string        `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `envconfig:"ACCESS_TTL"`
	RefreshTokenValidityDuration time.Duration `envconfig:"REFRESH_TTL"`
	AdminEmail                   string        `envconfig:"ADMIN_EMAIL"`
	AdminPassword                string        `envconfig:"ADMIN_PASSWORD"`
	SeedSampleData               bool          `envconfig:"SEED"`
	LogLevel                     string        `envconfig:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure and meant for local runs only.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 1 * time.Minute
	c.RefreshTokenValidityDuration = 30 * time.Minute
	c.AdminEmail = "admin@example.com"
	c.AdminPassword = "admin"
	c.SeedSampleData = true
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("secret key cannot be empty")
	}
	if c.AccessTokenValidityDuration <= 0 || c.RefreshTokenValidityDuration <= 0 {
		return fmt.Errorf("token lifetimes must be > 0")
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return fmt.Errorf("seed administrator email and password are required")
	}
	return nil
}
