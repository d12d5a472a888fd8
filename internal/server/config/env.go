package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every variable, e.g. EVENTADMIN_SERVER_ADDR=:9090.
const EnvPrefix = "EVENTADMIN_SERVER"

func parseEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to process environment variables: %w", err)
	}
	return nil
}
