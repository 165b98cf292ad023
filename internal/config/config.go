// package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds runtime knobs that are not part of the settings file.
type Config struct {
	// input files
	SettingsPath string
	TemplatePath string

	// solver
	MaxAttempts int

	// delivery
	SendIntervalSec int

	// logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		SettingsPath:    getEnv("SETTINGS_PATH", "settings.yml"),
		TemplatePath:    getEnv("TEMPLATE_PATH", "email_template.tmpl"),
		MaxAttempts:     getEnvInt("MAX_ATTEMPTS", 20),
		SendIntervalSec: getEnvInt("SEND_INTERVAL_SECONDS", 1),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
