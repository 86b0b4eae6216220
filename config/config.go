// Package config has the configuration for the converter.
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

// Defaults reproduce the behavior of a bare run: Monarch v3 API, data/
// output directory, 100-item pages, 100ms politeness delay.
const (
	DefaultAPIBaseURL = "https://api-v3.monarchinitiative.org/v3/api"
	DefaultDataDir    = "data"
	DefaultLogDir     = "logs"
	DefaultPageLimit  = 100
)

// Config holds all application configuration
type Config struct {
	APIBaseURL   string        // Monarch API base URL, no trailing slash
	DataDir      string        // directory for the three mapping files
	LogDir       string        // directory for per-run log files
	PageLimit    int           // search page size
	RequestDelay time.Duration // politeness delay between API requests
	HTTPTimeout  time.Duration // per-request timeout
	Address      string        // ops server bind address (schedule mode)
	Port         string        // ops server port (schedule mode)
	ScheduleAt   string        // daily run time in HH:MM (schedule mode)
}

// Load loads and validates configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:   getEnvWithDefault("MONARCH_API_URL", DefaultAPIBaseURL),
		DataDir:      getEnvWithDefault("DATA_DIR", DefaultDataDir),
		LogDir:       getEnvWithDefault("LOG_DIR", DefaultLogDir),
		PageLimit:    getIntEnvWithDefault("PAGE_LIMIT", DefaultPageLimit),
		RequestDelay: time.Duration(getIntEnvWithDefault("REQUEST_DELAY_MS", 100)) * time.Millisecond,
		HTTPTimeout:  time.Duration(getIntEnvWithDefault("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		Address:      getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Port:         getEnvWithDefault("PORT", "8000"),
		ScheduleAt:   getEnvWithDefault("SCHEDULE_AT", "06:00"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validateBaseURL(cfg.APIBaseURL); err != nil {
		return fmt.Errorf("invalid MONARCH_API_URL: %w", err)
	}

	if cfg.DataDir == "" {
		return fmt.Errorf("DATA_DIR cannot be empty")
	}

	if cfg.LogDir == "" {
		return fmt.Errorf("LOG_DIR cannot be empty")
	}

	if cfg.PageLimit < 1 || cfg.PageLimit > 500 {
		return fmt.Errorf("PAGE_LIMIT must be between 1 and 500, got: %d", cfg.PageLimit)
	}

	if cfg.RequestDelay < 0 {
		return fmt.Errorf("REQUEST_DELAY_MS cannot be negative")
	}

	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}

	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateScheduleAt(cfg.ScheduleAt); err != nil {
		return fmt.Errorf("invalid SCHEDULE_AT: %w", err)
	}

	return nil
}

// validateBaseURL validates the MONARCH_API_URL environment variable
func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("MONARCH_API_URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("MONARCH_API_URL must be a valid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("MONARCH_API_URL must use http or https, got: %s", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("MONARCH_API_URL must include a host")
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

var scheduleAtRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// validateScheduleAt validates the SCHEDULE_AT environment variable
func validateScheduleAt(at string) error {
	if !scheduleAtRegex.MatchString(at) {
		return fmt.Errorf("SCHEDULE_AT must be in HH:MM 24-hour format, got: %s", at)
	}
	return nil
}
