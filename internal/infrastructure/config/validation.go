package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// validateConfig collects every violation and reports them together.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateExtraction(config)...)
	validationErrors = append(validationErrors, validateFetch(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateExtraction(config *Config) []string {
	var validationErrors []string
	if config.Extraction.MaxHardLinkSize < 0 {
		validationErrors = append(validationErrors, "extraction.max_hard_link_size must be non-negative (0 disables hard links)")
	}
	if config.Extraction.ConfirmFileThreshold < 1 {
		validationErrors = append(validationErrors, "extraction.confirm_file_threshold must be positive")
	}
	return validationErrors
}

func validateFetch(config *Config) []string {
	if config.Fetch.TimeoutSeconds < 1 {
		return []string{"fetch.timeout_seconds must be positive"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !slices.Contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of %s (got %q)", strings.Join(validLogLevels, ", "), config.Logging.Level))
	}
	if !slices.Contains(validLogFormats, config.Logging.Format) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of %s (got %q)", strings.Join(validLogFormats, ", "), config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be positive")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}
