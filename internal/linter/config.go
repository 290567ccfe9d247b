package linter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the decoded .starlint.json file. Unknown top-level keys are
// rejected at load time, mirroring how rule options reject unknown keys
// at activation.
type Config struct {
	// Enable is a list of rules or categories to enable (e.g., ["all"], ["style"])
	Enable []string `json:"enable,omitempty"`

	// Disable is a list of rules or patterns to disable (e.g., ["no-*"])
	Disable []string `json:"disable,omitempty"`

	// WarningsAsErrors treats all warnings as errors
	WarningsAsErrors bool `json:"warnings_as_errors,omitempty"`

	// Format selects the default output format (text, compact, json,
	// github). A -format flag on the command line wins over this.
	Format string `json:"format,omitempty"`

	// Rules contains per-rule configuration overrides
	Rules map[string]RuleConfigOverride `json:"rules,omitempty"`
}

// RuleConfigOverride allows overriding rule-specific settings.
type RuleConfigOverride struct {
	// Severity overrides the default severity for this rule
	Severity string `json:"severity,omitempty"`

	// Options contains rule-specific configuration options. The record is
	// validated against the rule's option schema at activation.
	Options map[string]any `json:"options,omitempty"`
}

// LoadConfig loads the configuration file from the specified path.
// If path is empty, it searches for .starlint.json in the current directory
// and parent directories.
func LoadConfig(path string) (*Config, error) {
	configPath := path

	// If no path specified, search for .starlint.json
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, err
		}
		if found == "" {
			// No config file found, return default config
			return &Config{}, nil
		}
		configPath = found
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var config Config
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
	}

	return &config, nil
}

// findConfigFile searches for .starlint.json in the current directory and
// parent directories. Returns an empty string if no config file is found.
func findConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	// Search up the directory tree
	for {
		configPath := filepath.Join(dir, ".starlint.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root directory
			break
		}
		dir = parent
	}

	return "", nil
}

// ApplyToRegistry applies the configuration to a registry. Option values
// are stored raw here; schema validation happens once at rule activation.
func (c *Config) ApplyToRegistry(registry *Registry) error {
	if len(c.Enable) > 0 {
		registry.Enable(c.Enable...)
	}
	if len(c.Disable) > 0 {
		registry.Disable(c.Disable...)
	}

	for ruleName, override := range c.Rules {
		if _, exists := registry.Rule(ruleName); !exists {
			return fmt.Errorf("unknown rule in config: %s", ruleName)
		}

		config := RuleConfig{Options: override.Options}
		if override.Severity != "" {
			sev, err := parseSeverity(override.Severity)
			if err != nil {
				return fmt.Errorf("invalid severity for rule %s: %w", ruleName, err)
			}
			config.Severity = sev
			config.HasSeverity = true
		}

		if err := registry.SetConfig(ruleName, config); err != nil {
			return err
		}
	}

	return nil
}

// parseSeverity converts a string to a Severity value.
func parseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "hint":
		return SeverityHint, nil
	default:
		return 0, fmt.Errorf("unknown severity: %s (must be one of: error, warning, info, hint)", s)
	}
}
