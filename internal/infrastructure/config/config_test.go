package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Blueprint config
	assert.Equal(t, "./apps", cfg.Blueprint.Dir)

	// Telemetry config
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Empty(t, cfg.Telemetry.Endpoint)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"BLUEPRINT_DIR":      "/srv/apps",
		"TELEMETRY_ENDPOINT": "http://collector:9200/faults",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "/srv/apps", cfg.Blueprint.Dir)
	assert.Equal(t, "http://collector:9200/faults", cfg.Telemetry.Endpoint)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
}

func TestModeFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want Mode
	}{
		{"production", ModeProduction},
		{"prod", ModeProduction},
		{"development", ModeDevelopment},
		{"", ModeDevelopment},
		{"staging", ModeDevelopment},
	}

	for _, tt := range tests {
		t.Setenv("ENV", tt.env)
		assert.Equal(t, tt.want, ModeFromEnv(), "ENV=%q", tt.env)
	}
	os.Unsetenv("ENV")
}

func TestModePredicates(t *testing.T) {
	assert.True(t, ModeDevelopment.Development())
	assert.False(t, ModeDevelopment.Production())
	assert.True(t, ModeProduction.Production())
	assert.False(t, ModeProduction.Development())
}
