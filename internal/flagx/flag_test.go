package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	console := []string{"-e", "-t", "-p", "-d"}
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate values", []string{"-e", "prod", "-addr", ":9090", "-t", "5"}, console, []string{"-e", "prod", "-t", "5"}},
		{"equals form", []string{"-p=android", "-secret=x"}, console, []string{"-p=android"}},
		{"order preserved", []string{"-d", "/tmp/s.db", "-e", "dev"}, console, []string{"-d", "/tmp/s.db", "-e", "dev"}},
		{"nothing allowed matches", []string{"-addr", ":8080", "positional"}, console, []string{}},
		{"trailing flag without value", []string{"-e"}, console, []string{"-e"}},
		{"dash token is not a value", []string{"-e", "-t", "3"}, console, []string{"-e", "-t", "3"}},
		{"equals value may start with dash", []string{"-config=-odd.json"}, []string{"-config"}, []string{"-config=-odd.json"}},
		{"repeats kept", []string{"-e", "dev", "-e", "prod"}, console, []string{"-e", "dev", "-e", "prod"}},
		{"empty", []string{}, console, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestFilterArgs_BoolFlagsDoNotConsumeValue(t *testing.T) {
	got := FilterArgs([]string{"-v", "positional", "-e", "prod"}, []string{"-v", "-e"}, "-v")
	assert.Equal(t, []string{"-v", "-e", "prod"}, got)
}

func TestConfigFilePath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short -c with value", []string{"-c", "/path/short.json"}, "/path/short.json"},
		{"long -config with value", []string{"-config", "/path/long.json"}, "/path/long.json"},
		{"equals form", []string{"-e", "dev", "-config=/path/eq.json"}, "/path/eq.json"},
		{"unknown flags are ignored", []string{"-x", "1", "-y", "2"}, ""},
		{"multiple flags, last wins", []string{"-c", "/path/1.json", "-config", "/path/2.json"}, "/path/2.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFilePath(tt.args))
		})
	}
}
