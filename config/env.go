package config

import (
	"os"
	"strconv"
)

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"MONARCH_API_URL",
		"DATA_DIR",
		"LOG_DIR",
		"PAGE_LIMIT",
		"REQUEST_DELAY_MS",
		"HTTP_TIMEOUT_SECONDS",
		"ADDRESS",
		"PORT",
		"SCHEDULE_AT",
	}
}
