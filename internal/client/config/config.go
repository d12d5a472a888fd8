package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Environment selects which backend the console talks to.
type Environment string

const (
	EnvDev   Environment = "dev"
	EnvProd  Environment = "prod"
	EnvLocal Environment = "local"
)

var baseURLs = map[Environment]string{
	EnvDev:   "http://10.227.195.115:8080/api/",
	EnvProd:  "https://artpriyo-backend.onrender.com/api/",
	EnvLocal: "http://127.0.0.1:8080/api/",
}

// BaseURL returns the API root for e.
func (e Environment) BaseURL() (string, error) {
	u, ok := baseURLs[e]
	if !ok {
		return "", fmt.Errorf("unknown environment %q (want dev, prod or local)", string(e))
	}
	return u, nil
}

// Config holds runtime settings for the CLI.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	Environment    Environment   `envconfig:"ENV"`
	RequestTimeout time.Duration `envconfig:"TIMEOUT"`
	Platform       string        `envconfig:"PLATFORM"`
	DBPath         string        `envconfig:"DB_PATH"`
	// StoreKey, when set, seals stored session values at rest.
	StoreKey string `envconfig:"STORE_KEY"`
	Debug    bool   `envconfig:"DEBUG"`
	LogLevel string `envconfig:"LOG_LEVEL"`

	// BaseURL is derived from Environment by LoadConfig.
	BaseURL string `ignored:"true"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Environment = EnvProd
	c.RequestTimeout = 10 * time.Second
	c.Platform = runtime.GOOS
	c.DBPath = defaultDBPath()
	c.LogLevel = "info"
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "eventadmin.db"
	}
	return filepath.Join(dir, "eventadmin", "session.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. args excludes the program name.
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
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve validates the merged values and fixes BaseURL.
func (c *Config) resolve() error {
	u, err := c.Environment.BaseURL()
	if err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be > 0, got %s", c.RequestTimeout)
	}
	if c.Platform == "" {
		return fmt.Errorf("platform cannot be empty")
	}
	c.BaseURL = u
	return nil
}
