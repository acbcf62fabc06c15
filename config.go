// FILE: lixenwraith/conlog/config.go
package conlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
	"github.com/pelletier/go-toml/v2"
)

// Key prefix of the logger section in configuration files
const configPrefix = "conlog."

// Config holds all logger configuration values
type Config struct {
	// Sink selection
	Modes string `toml:"modes"` // comma separated: console, file, database, default
	Debug bool   `toml:"debug"` // enables Verbose and Dir output

	// Destinations
	AppName      string `toml:"app_name"`  // names the platform log directory
	Directory    string `toml:"directory"` // empty resolves the platform log directory
	FileName     string `toml:"file_name"`
	DatabaseName string `toml:"database_name"`

	// Batching
	FlushIntervalMs int64 `toml:"flush_interval_ms"` // quiet period before a batch is written

	// Console output
	ConsoleTarget string `toml:"console_target"` // "split", "stdout", or "stderr"
	ConsoleColor  bool   `toml:"console_color"`  // colorize levels when attached to a terminal

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Sink selection
	Modes: "",
	Debug: false,

	// Destinations
	AppName:      "desktop-pet",
	Directory:    "",
	FileName:     "log.txt",
	DatabaseName: "log.db",

	// Batching
	FlushIntervalMs: defaultFlushInterval.Milliseconds(),

	// Console output
	ConsoleTarget: consoleTargetSplit,
	ConsoleColor:  true,

	// Internal error handling
	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct(configPrefix, *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, configPrefix, cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
// keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes cfg as a TOML document readable by NewConfigFromFile
func SaveConfig(cfg *Config, path string) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	doc := map[string]*Config{strings.TrimSuffix(configPrefix, "."): cfg}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmtErrorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmtErrorf("failed to create config directory '%s': %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmtErrorf("failed to write config '%s': %w", path, err)
	}
	return nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		switch v := value.(type) {
		case string:
			field.SetString(v)
		case []string:
			field.SetString(strings.Join(v, ","))
		case []any:
			parts := make([]string, 0, len(v))
			for _, p := range v {
				s, ok := p.(string)
				if !ok {
					return fmt.Errorf("expected string list, got element %T", p)
				}
				parts = append(parts, s)
			}
			field.SetString(strings.Join(parts, ","))
		default:
			return fmt.Errorf("expected string, got %T", value)
		}

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return fmtErrorf("app_name cannot be empty")
	}

	if err := validateFileName("file_name", c.FileName); err != nil {
		return err
	}
	if err := validateFileName("database_name", c.DatabaseName); err != nil {
		return err
	}
	if c.FileName == c.DatabaseName {
		return fmtErrorf("file_name and database_name must differ: %s", c.FileName)
	}

	if c.FlushIntervalMs <= 0 {
		return fmtErrorf("flush_interval_ms must be positive: %d", c.FlushIntervalMs)
	}

	switch c.ConsoleTarget {
	case consoleTargetSplit, consoleTargetStdout, consoleTargetStderr:
	default:
		return fmtErrorf("invalid console_target: '%s' (use split, stdout, or stderr)", c.ConsoleTarget)
	}

	return nil
}

func validateFileName(key, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmtErrorf("%s cannot be empty", key)
	}
	if filepath.Base(name) != name {
		return fmtErrorf("%s must be a bare file name: %s", key, name)
	}
	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

func (c *Config) flushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}
