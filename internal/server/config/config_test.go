package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"ADDR", "SECRET_KEY", "ACCESS_TTL", "REFRESH_TTL", "ADMIN_EMAIL", "ADMIN_PASSWORD", "SEED", "LOG_LEVEL"} {
		t.Setenv(EnvPrefix+"_"+k, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+"_"+k))
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 30*time.Minute, c.RefreshTokenValidityDuration)
	assert.True(t, c.SeedSampleData)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "server.json")
	b, err := json.Marshal(map[string]any{
		"endpoint_addr":                  ":9000",
		"secret_key":                     "from-json",
		"access_token_validity_duration": "5s",
		"seed_sample_data":               false,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	t.Setenv("EVENTADMIN_SERVER_SECRET_KEY", "from-env")
	t.Setenv("EVENTADMIN_SERVER_REFRESH_TTL", "2h")

	cfg, err := LoadConfig([]string{"-config", path, "-a", ":9100", "-u", "root@example.com"})
	require.NoError(t, err)

	want := &Config{
		EndpointAddr:                 ":9100",
		SecretKey:                    "from-env",
		AccessTokenValidityDuration:  5 * time.Second,
		RefreshTokenValidityDuration: 2 * time.Hour,
		AdminEmail:                   "root@example.com",
		AdminPassword:                "admin",
		SeedSampleData:               false,
		LogLevel:                     "info",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name:     "lifetimes",
			args:     []string{"-t", "10", "-r", "5"},
			expected: &Config{AccessTokenValidityDuration: 10 * time.Second, RefreshTokenValidityDuration: 5 * time.Minute},
		},
		{
			name:     "seed off",
			args:     []string{"-seed=false", "-s", "k"},
			expected: &Config{SecretKey: "k"},
		},
		{name: "bad lifetime", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.SecretKey = ""
	assert.Error(t, c.Validate())

	c.LoadDefaults()
	c.AccessTokenValidityDuration = 0
	assert.Error(t, c.Validate())

	c.LoadDefaults()
	c.AdminPassword = ""
	assert.Error(t, c.Validate())
}
