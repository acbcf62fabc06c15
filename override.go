// FILE: lixenwraith/conlog/override.go
package conlog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride returns a copy of the configuration with string key-value
// overrides applied. Each override should be in the format "key=value".
// The receiver is left untouched.
//
// Example:
//
//	cfg, err := conlog.DefaultConfig().ApplyOverride(
//	    "modes=console,file",
//	    "directory=/var/log/app",
//	    "flush_interval_ms=500",
//	)
func (c *Config) ApplyOverride(overrides ...string) (*Config, error) {
	cfg := c.Clone()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, combineConfigErrors(errors)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("conlog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "conlog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Sink selection
	case "modes":
		cfg.Modes = value
	case "debug":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for debug '%s': %w", value, err)
		}
		cfg.Debug = boolVal

	// Destinations
	case "app_name":
		cfg.AppName = value
	case "directory":
		cfg.Directory = value
	case "file_name":
		cfg.FileName = value
	case "database_name":
		cfg.DatabaseName = value

	// Batching
	case "flush_interval_ms":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for flush_interval_ms '%s': %w", value, err)
		}
		cfg.FlushIntervalMs = intVal

	// Console output
	case "console_target":
		cfg.ConsoleTarget = value
	case "console_color":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for console_color '%s': %w", value, err)
		}
		cfg.ConsoleColor = boolVal

	// Internal error handling
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
