package linter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starforge/starlint/internal/rule"
	"github.com/starforge/starlint/internal/sortutil"
)

// RuleConfig holds the raw per-rule configuration collected before
// activation. Options are validated against the rule's schema when the
// rule is activated, not here.
type RuleConfig struct {
	// Severity overrides the rule's default severity.
	// Zero value means use the rule's default.
	Severity Severity

	// HasSeverity marks an explicit severity override (zero is a valid
	// severity value).
	HasSeverity bool

	// Options holds the user-supplied option record for the rule.
	Options map[string]any
}

// Registry manages a collection of lint rules with enable/disable controls.
type Registry struct {
	// rules maps rule names to their definitions
	rules map[string]*rule.Rule

	// enabled tracks which rules are currently enabled
	enabled map[string]bool

	// configs holds per-rule configuration
	configs map[string]RuleConfig

	// categories maps category names to rule names
	categories map[string][]string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:      make(map[string]*rule.Rule),
		enabled:    make(map[string]bool),
		configs:    make(map[string]RuleConfig),
		categories: make(map[string][]string),
	}
}

// Register adds rules to the registry. Returns an error if any rule
// duplicates an existing name. Rule-name format is validated at rule
// construction, so only collisions are checked here.
func (r *Registry) Register(rules ...*rule.Rule) error {
	for _, rl := range rules {
		if _, exists := r.rules[rl.Name]; exists {
			return fmt.Errorf("duplicate rule name: %s", rl.Name)
		}

		r.rules[rl.Name] = rl

		// Enable by default
		r.enabled[rl.Name] = true

		if cat := rl.Meta.Docs.Category; cat != "" {
			r.categories[cat] = append(r.categories[cat], rl.Name)
		}
	}

	return nil
}

// Rule returns a registered rule by name.
func (r *Registry) Rule(name string) (*rule.Rule, bool) {
	rl, ok := r.rules[name]
	return rl, ok
}

// Enable enables the specified rules by name or category.
// Names can be exact rule names, category names, glob patterns, or "all".
// If a name matches both a rule and a category, the rule takes precedence.
func (r *Registry) Enable(names ...string) {
	r.setEnabled(true, names)
}

// Disable disables the specified rules by name or category.
// Names can be exact rule names, category names, glob patterns, or "all".
// If a name matches both a rule and a category, the rule takes precedence.
func (r *Registry) Disable(names ...string) {
	r.setEnabled(false, names)
}

func (r *Registry) setEnabled(state bool, names []string) {
	for _, name := range names {
		if name == "all" {
			for ruleName := range r.rules {
				r.enabled[ruleName] = state
			}
			continue
		}

		// Check if it's a specific rule
		if _, exists := r.rules[name]; exists {
			r.enabled[name] = state
			continue
		}

		// Check if it's a category
		if rules, exists := r.categories[name]; exists {
			for _, ruleName := range rules {
				r.enabled[ruleName] = state
			}
			continue
		}

		// Check if it's a glob pattern (e.g., "no-*")
		if strings.Contains(name, "*") {
			for ruleName := range r.rules {
				if matchGlob(name, ruleName) {
					r.enabled[ruleName] = state
				}
			}
		}
	}
}

// SetConfig sets the configuration for a specific rule.
func (r *Registry) SetConfig(ruleName string, config RuleConfig) error {
	if _, exists := r.rules[ruleName]; !exists {
		return fmt.Errorf("unknown rule: %s", ruleName)
	}
	r.configs[ruleName] = config
	return nil
}

// GetConfig returns the configuration for a specific rule.
// Returns an empty config if none is set.
func (r *Registry) GetConfig(ruleName string) RuleConfig {
	if config, exists := r.configs[ruleName]; exists {
		return config
	}
	return RuleConfig{}
}

// EnabledRules returns all currently enabled rules, sorted by name so
// descriptor ordering stays deterministic across runs.
func (r *Registry) EnabledRules() []*rule.Rule {
	var enabled []*rule.Rule
	for name, rl := range r.rules {
		if r.enabled[name] {
			enabled = append(enabled, rl)
		}
	}

	sortutil.ByName(enabled, func(r *rule.Rule) string { return r.Name })
	return enabled
}

// AllRules returns all registered rules, sorted by name.
func (r *Registry) AllRules() []*rule.Rule {
	rules := make([]*rule.Rule, 0, len(r.rules))
	for _, rl := range r.rules {
		rules = append(rules, rl)
	}

	sortutil.ByName(rules, func(r *rule.Rule) string { return r.Name })
	return rules
}

// Categories returns all known categories.
func (r *Registry) Categories() []string {
	cats := make([]string, 0, len(r.categories))
	for cat := range r.categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// RulesByCategory returns all rules in a specific category.
func (r *Registry) RulesByCategory(category string) []*rule.Rule {
	names, exists := r.categories[category]
	if !exists {
		return nil
	}

	rules := make([]*rule.Rule, 0, len(names))
	for _, name := range names {
		if rl, exists := r.rules[name]; exists {
			rules = append(rules, rl)
		}
	}

	return rules
}

// matchGlob is a simple glob pattern matcher supporting only '*' wildcard.
func matchGlob(pattern, str string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == str
	}

	// Simple implementation: split on '*' and check prefix/suffix
	parts := strings.Split(pattern, "*")
	if len(parts) == 2 {
		prefix, suffix := parts[0], parts[1]
		return strings.HasPrefix(str, prefix) && strings.HasSuffix(str, suffix) &&
			len(str) >= len(prefix)+len(suffix)
	}

	// For more complex patterns, fall back to basic prefix/suffix matching
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(str, strings.TrimPrefix(pattern, "*"))
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(str, strings.TrimSuffix(pattern, "*"))
	}

	return false
}
