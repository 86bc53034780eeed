package config

import "os"

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL = "TRUSTCART_API_BASE_URL"
	EnvDBPath     = "TRUSTCART_DB_PATH"
	EnvLogLevel   = "TRUSTCART_LOG_LEVEL"
)

// parseEnv overlays non-empty environment variables.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
