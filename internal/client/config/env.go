package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every variable, e.g. EVENTADMIN_ENV=dev.
const EnvPrefix = "EVENTADMIN"

// parseEnv overlays cfg with EVENTADMIN_* variables. Unset variables leave
// the current value alone.
func parseEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to process environment variables: %w", err)
	}
	return nil
}
