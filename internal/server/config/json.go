package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventadmin/internal/flagx"
	"github.com/dmitrijs2005/eventadmin/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Token
// lifetimes use timex.Duration ("1m" or integer nanoseconds).
type JSONConfig struct {
	EndpointAddr                 *string         `json:"endpoint_addr"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	AdminEmail                   *string         `json:"admin_email"`
	AdminPassword                *string         `json:"admin_password"`
	SeedSampleData               *bool           `json:"seed_sample_data"`
	LogLevel                     *string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.EndpointAddr, jc.EndpointAddr)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.AdminEmail, jc.AdminEmail)
	setString(&cfg.AdminPassword, jc.AdminPassword)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.RefreshTokenValidityDuration != nil {
		cfg.RefreshTokenValidityDuration = jc.RefreshTokenValidityDuration.Duration
	}
	if jc.SeedSampleData != nil {
		cfg.SeedSampleData = *jc.SeedSampleData
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
