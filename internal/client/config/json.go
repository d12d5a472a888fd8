package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventadmin/internal/flagx"
	"github.com/dmitrijs2005/eventadmin/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" from "zero" so a partial file only overrides what it
// names.
type JSONConfig struct {
	Environment    *string         `json:"environment"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	Platform       *string         `json:"platform"`
	DBPath         *string         `json:"db_path"`
	StoreKey       *string         `json:"store_key"`
	Debug          *bool           `json:"debug"`
	LogLevel       *string         `json:"log_level"`
}

// parseJSON overlays cfg with values from the file named by -c/-config in
// args. No flag means no file and no changes.
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

	if jc.Environment != nil {
		cfg.Environment = Environment(*jc.Environment)
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Platform != nil {
		cfg.Platform = *jc.Platform
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.StoreKey != nil {
		cfg.StoreKey = *jc.StoreKey
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
