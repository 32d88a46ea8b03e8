package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "session.poll_interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.Shell.Binary == "" {
		errors = append(errors, ValidationError{
			Field:   "shell.binary",
			Value:   c.Shell.Binary,
			Message: "must not be empty",
		})
	}

	if c.Shell.ID == "" {
		errors = append(errors, ValidationError{
			Field:   "shell.id",
			Value:   c.Shell.ID,
			Message: "must not be empty; readiness detection keys off this token",
		})
	}

	if c.Session.PollIntervalMs < 10 {
		errors = append(errors, ValidationError{
			Field:   "session.poll_interval_ms",
			Value:   c.Session.PollIntervalMs,
			Message: "must be at least 10",
		})
	}

	if c.Session.ConnectTimeoutSec <= 0 {
		errors = append(errors, ValidationError{
			Field:   "session.connect_timeout_sec",
			Value:   c.Session.ConnectTimeoutSec,
			Message: "must be positive",
		})
	}

	if c.Session.CommandTimeoutSec <= 0 {
		errors = append(errors, ValidationError{
			Field:   "session.command_timeout_sec",
			Value:   c.Session.CommandTimeoutSec,
			Message: "must be positive",
		})
	}

	if c.Capture.PreviewFilename == "" {
		errors = append(errors, ValidationError{
			Field:   "capture.preview_filename",
			Value:   c.Capture.PreviewFilename,
			Message: "must not be empty; preview classification keys off this name",
		})
	}

	if strings.ContainsAny(c.Capture.PreviewFilename, "/\\") {
		errors = append(errors, ValidationError{
			Field:   "capture.preview_filename",
			Value:   c.Capture.PreviewFilename,
			Message: "must be a bare filename, not a path",
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
