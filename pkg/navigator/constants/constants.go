// Package constants defines shared constants and defaults used throughout
// the navigator packages and the navsim tool.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// DebugEnvVar raises the internal navigator log level to debug when set.
const DebugEnvVar = "NAVIGATOR_DEBUG"

// ConfigFileEnvVar points navsim at a configuration file.
const ConfigFileEnvVar = "NAVSIM_CONFIG_FILE"

// EnvPrefix is the prefix for navsim environment overrides (NAVSIM_LOG_LEVEL, ...).
const EnvPrefix = "NAVSIM"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// IsDebug returns true if NAVIGATOR_DEBUG is set to a non-empty value.
func IsDebug() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Remote bridge defaults.
const (
	DefaultListenAddr          = "127.0.0.1:8787"       // navsim serve bind address
	DefaultClientSendBuffer    = 16                     // Snapshots queued per websocket client before it is dropped
	DefaultWriteTimeout        = 5 * time.Second        // Deadline for a single websocket write
	DefaultShutdownGracePeriod = 3 * time.Second        // HTTP server shutdown budget
	DefaultWatchDebounce       = 200 * time.Millisecond // Coalescing window for scenario file changes
)
