package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
)

// Mode is the process-wide build mode. It is resolved once at startup and
// must not change for the lifetime of any boundary constructed with it.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Development reports whether verbose diagnostics may be disclosed.
func (m Mode) Development() bool {
	return m != ModeProduction
}

// Production reports whether the process runs with user-safe output only.
func (m Mode) Production() bool {
	return m == ModeProduction
}

// ModeFromEnv resolves the build mode from the ENV variable.
// Anything other than "production"/"prod" is treated as development.
func ModeFromEnv() Mode {
	switch os.Getenv("ENV") {
	case "production", "prod":
		return ModeProduction
	default:
		return ModeDevelopment
	}
}

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Blueprint BlueprintConfig
	Telemetry TelemetryConfig
	Logging   LogConfig
	RateLimit RateLimitConfig

	// Mode is not read by envconfig; it is resolved via ModeFromEnv
	// so the same ENV switch drives logging and disclosure policy.
	Mode Mode `ignored:"true"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// BlueprintConfig holds blueprint loading configuration.
type BlueprintConfig struct {
	Dir string `envconfig:"BLUEPRINT_DIR" default:"./apps"`
}

// TelemetryConfig holds fault telemetry sink configuration.
type TelemetryConfig struct {
	Endpoint string `envconfig:"TELEMETRY_ENDPOINT" default:""`
	Enabled  bool   `envconfig:"TELEMETRY_ENABLED" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Mode = ModeFromEnv()
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Blueprint: BlueprintConfig{
			Dir: "./apps",
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Mode: ModeFromEnv(),
	}
}
