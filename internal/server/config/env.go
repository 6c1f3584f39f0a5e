package config

import "os"

// Environment variables read by parseEnv.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGeminiModel  = "GEMINI_MODEL"
	EnvDatabaseDSN  = "DATABASE_DSN"
)

var lookupEnv = os.LookupEnv

// parseEnv overlays non-empty environment variables.
func parseEnv(config *Config) {
	if v, ok := lookupEnv(EnvGeminiAPIKey); ok && v != "" {
		config.GeminiAPIKey = v
	}
	if v, ok := lookupEnv(EnvGeminiModel); ok && v != "" {
		config.GeminiModel = v
	}
	if v, ok := lookupEnv(EnvDatabaseDSN); ok && v != "" {
		config.DatabaseDSN = v
	}
}
