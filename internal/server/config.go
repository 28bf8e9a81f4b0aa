package server

import (
	"os"
	"strconv"
)

// Config holds the HTTP transport settings.
type Config struct {
	Addr              string
	ShutdownTimeoutMs int
}

// LoadConfig reads server configuration from environment variables,
// falling back to defaults suitable for local use.
func LoadConfig() Config {
	cfg := Config{
		Addr:              ":8080",
		ShutdownTimeoutMs: 5000,
	}
	if addr := os.Getenv("VISITS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if ms := os.Getenv("VISITS_SHUTDOWN_TIMEOUT_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			cfg.ShutdownTimeoutMs = v
		}
	}
	return cfg
}
