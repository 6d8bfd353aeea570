// Package config provides configuration helpers for go-choreo commands.
package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration for the choreod server,
// loaded from environment variables with flag overrides in cmd/.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Engine
	Seed       int64  // RNG seed, 0 means time-based
	TickRate   int    // runner frequency in Hz
	PresetPath string // optional YAML preset file
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port:       envInt("CHOREO_PORT", 8080),
		LogLevel:   envStr("CHOREO_LOG_LEVEL", "info"),
		Seed:       int64(envInt("CHOREO_SEED", 0)),
		TickRate:   envInt("CHOREO_TICK_RATE", 60),
		PresetPath: envStr("CHOREO_PRESET", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
