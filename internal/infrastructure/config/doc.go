// Package config provides 12-factor configuration management for renderguard.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Blueprint: blueprint directory for protected apps
//   - Telemetry: fault telemetry sink settings
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// The process-wide build Mode (development vs production) is resolved from
// the ENV variable exactly once at startup; it gates diagnostic disclosure
// in recovery views and the selection of the fault reporting sink.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, BLUEPRINT_DIR
//   - TELEMETRY_ENDPOINT, TELEMETRY_ENABLED
//   - LOG_LEVEL, LOG_DEV, ENV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST
package config
