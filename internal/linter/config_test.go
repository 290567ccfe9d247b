package linter

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".starlint.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// TestLoadConfig verifies parsing of a full configuration file.
func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
  "enable": ["all"],
  "disable": ["no-*"],
  "warnings_as_errors": true,
  "rules": {
    "functional-parameters": {
      "severity": "error",
      "options": {"allowRestParameter": true}
    }
  }
}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Enable) != 1 || cfg.Enable[0] != "all" {
		t.Errorf("Enable = %v, want [all]", cfg.Enable)
	}
	if len(cfg.Disable) != 1 || cfg.Disable[0] != "no-*" {
		t.Errorf("Disable = %v, want [no-*]", cfg.Disable)
	}
	if !cfg.WarningsAsErrors {
		t.Error("WarningsAsErrors should be true")
	}

	override, ok := cfg.Rules["functional-parameters"]
	if !ok {
		t.Fatal("missing rule override")
	}
	if override.Severity != "error" {
		t.Errorf("Severity = %q, want error", override.Severity)
	}
	if override.Options["allowRestParameter"] != true {
		t.Errorf("Options = %v, want allowRestParameter true", override.Options)
	}
}

// TestLoadConfig_Format verifies the default output format setting.
func TestLoadConfig_Format(t *testing.T) {
	path := writeConfig(t, `{"format": "json"}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
}

// TestLoadConfig_UnknownKey verifies unrecognized top-level keys are
// rejected rather than silently dropped.
func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, `{"enabled": ["all"]}`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("unknown config key should be an error")
	}
}

// TestLoadConfig_Missing verifies an explicit path that does not exist fails.
func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing explicit config path should be an error")
	}
}

// TestLoadConfig_Malformed verifies invalid JSON fails.
func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "{not json")
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed config should be an error")
	}
}

// TestConfig_ApplyToRegistry verifies enable/disable and per-rule overrides
// reach the registry.
func TestConfig_ApplyToRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(
		testRule("rule-a", "style"),
		testRule("rule-b", "style"),
	); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cfg := &Config{
		Disable: []string{"rule-b"},
		Rules: map[string]RuleConfigOverride{
			"rule-a": {
				Severity: "error",
				Options:  map[string]any{"ignore": []any{"x"}},
			},
		},
	}

	if err := cfg.ApplyToRegistry(reg); err != nil {
		t.Fatalf("ApplyToRegistry: %v", err)
	}

	enabled := reg.EnabledRules()
	if len(enabled) != 1 || enabled[0].Name != "rule-a" {
		t.Errorf("enabled = %v, want only rule-a", enabled)
	}

	rc := reg.GetConfig("rule-a")
	if !rc.HasSeverity || rc.Severity != SeverityError {
		t.Errorf("rule-a severity = %v (has=%v), want explicit error", rc.Severity, rc.HasSeverity)
	}
	if rc.Options == nil {
		t.Error("rule-a options should be stored")
	}
}

// TestConfig_ApplyToRegistry_Errors verifies unknown rules and severities
// are rejected.
func TestConfig_ApplyToRegistry_Errors(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testRule("rule-a", "style")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	unknownRule := &Config{Rules: map[string]RuleConfigOverride{"mystery": {}}}
	if err := unknownRule.ApplyToRegistry(reg); err == nil {
		t.Error("unknown rule in config should be an error")
	}

	badSeverity := &Config{Rules: map[string]RuleConfigOverride{"rule-a": {Severity: "fatal"}}}
	if err := badSeverity.ApplyToRegistry(reg); err == nil {
		t.Error("unknown severity should be an error")
	}
}

// TestParseSeverity verifies severity string parsing.
func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"warning", SeverityWarning, false},
		{"info", SeverityInfo, false},
		{"hint", SeverityHint, false},
		{"fatal", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSeverity(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSeverity: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseSeverity = %v, want %v", got, tt.want)
			}
		})
	}
}
