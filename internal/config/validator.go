package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "page.tile_size")
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
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// maxTileSize keeps one tile buffer at or below 64 MiB.
const maxTileSize = 4096

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePage()...)
	errors = append(errors, c.validateGenerator()...)
	errors = append(errors, c.validateSimulate()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validatePage() []ValidationError {
	var errors []ValidationError

	if c.Page.Cols < 1 {
		errors = append(errors, ValidationError{
			Field: "page.cols", Value: c.Page.Cols, Message: "must be at least 1",
		})
	}
	if c.Page.Rows < 1 {
		errors = append(errors, ValidationError{
			Field: "page.rows", Value: c.Page.Rows, Message: "must be at least 1",
		})
	}
	if c.Page.TileSize < 1 || c.Page.TileSize > maxTileSize {
		errors = append(errors, ValidationError{
			Field:   "page.tile_size",
			Value:   c.Page.TileSize,
			Message: fmt.Sprintf("must be between 1 and %d", maxTileSize),
		})
	}

	return errors
}

func (c *Config) validateGenerator() []ValidationError {
	var errors []ValidationError

	if c.Generator.Workers < 1 {
		errors = append(errors, ValidationError{
			Field: "generator.workers", Value: c.Generator.Workers, Message: "must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateSimulate() []ValidationError {
	var errors []ValidationError

	if c.Simulate.ViewportRows < 1 {
		errors = append(errors, ValidationError{
			Field: "simulate.viewport_rows", Value: c.Simulate.ViewportRows, Message: "must be at least 1",
		})
	} else if c.Page.Rows >= 1 && c.Simulate.ViewportRows > c.Page.Rows {
		errors = append(errors, ValidationError{
			Field:   "simulate.viewport_rows",
			Value:   c.Simulate.ViewportRows,
			Message: fmt.Sprintf("must not exceed page.rows (%d)", c.Page.Rows),
		})
	}
	if c.Simulate.Steps < 0 {
		errors = append(errors, ValidationError{
			Field: "simulate.steps", Value: c.Simulate.Steps, Message: "must not be negative",
		})
	}
	if c.Simulate.ReloadEvery < 0 {
		errors = append(errors, ValidationError{
			Field: "simulate.reload_every", Value: c.Simulate.ReloadEvery, Message: "must not be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
