package linter

import (
	"testing"

	"github.com/bazelbuild/buildtools/build"

	"github.com/starforge/starlint/internal/astutil"
	"github.com/starforge/starlint/internal/rule"
)

// testRule builds a minimal rule that flags every identifier, for registry
// and driver tests.
func testRule(name, category string) *rule.Rule {
	return rule.MustNew(name,
		rule.Meta{
			Docs: rule.Docs{Description: "flags identifiers", Category: category},
			Messages: map[string]string{
				"found": "identifier {{name}} flagged",
			},
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"ignore": map[string]any{"type": "array"},
				},
				"additionalProperties": false,
			},
		},
		nil,
		rule.SeverityWarning,
		nil,
		map[astutil.Kind]rule.Handler{
			astutil.KindIdent: func(node astutil.Node, ctx *rule.Context, opts *rule.Options) rule.Result {
				if opts.ShouldIgnore(node, ctx) {
					return rule.Result{Context: ctx}
				}
				ident := node.Expr.(*build.Ident)
				return rule.Result{Context: ctx, Descriptors: []rule.Descriptor{{
					Node:      node,
					MessageID: "found",
					Data:      map[string]string{"name": ident.Name},
				}}}
			},
		},
	)
}

// TestRegistry_Register verifies registration and duplicate rejection.
func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(testRule("rule-a", "style")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(testRule("rule-a", "style")); err == nil {
		t.Error("duplicate name should be rejected")
	}

	if _, ok := reg.Rule("rule-a"); !ok {
		t.Error("registered rule should be retrievable")
	}
	if _, ok := reg.Rule("missing"); ok {
		t.Error("unregistered rule should not be retrievable")
	}
}

// TestRegistry_EnableDisable verifies toggling by name, category, glob, and all.
func TestRegistry_EnableDisable(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(
		testRule("no-foo", "restriction"),
		testRule("no-bar", "restriction"),
		testRule("style-check", "style"),
	); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// All rules are enabled by default
	if got := len(reg.EnabledRules()); got != 3 {
		t.Fatalf("got %d enabled rules, want 3", got)
	}

	reg.Disable("no-foo")
	if got := len(reg.EnabledRules()); got != 2 {
		t.Errorf("after disabling one rule: %d enabled, want 2", got)
	}

	reg.Disable("restriction")
	if got := len(reg.EnabledRules()); got != 1 {
		t.Errorf("after disabling the category: %d enabled, want 1", got)
	}

	reg.Enable("all")
	if got := len(reg.EnabledRules()); got != 3 {
		t.Errorf("after enabling all: %d enabled, want 3", got)
	}

	reg.Disable("no-*")
	if got := len(reg.EnabledRules()); got != 1 {
		t.Errorf("after disabling the glob: %d enabled, want 1", got)
	}
}

// TestRegistry_EnabledRulesSorted verifies deterministic ordering by name.
func TestRegistry_EnabledRulesSorted(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(
		testRule("zeta", "style"),
		testRule("alpha", "style"),
		testRule("mid", "style"),
	); err != nil {
		t.Fatalf("Register: %v", err)
	}

	want := []string{"alpha", "mid", "zeta"}
	rules := reg.EnabledRules()
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, rl := range rules {
		if rl.Name != want[i] {
			t.Errorf("rule %d = %s, want %s", i, rl.Name, want[i])
		}
	}
}

// TestRegistry_Config verifies per-rule configuration storage.
func TestRegistry_Config(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testRule("rule-a", "style")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cfg := RuleConfig{
		Severity:    SeverityError,
		HasSeverity: true,
		Options:     map[string]any{"ignore": []any{"x"}},
	}
	if err := reg.SetConfig("rule-a", cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if err := reg.SetConfig("missing", cfg); err == nil {
		t.Error("config for an unknown rule should be rejected")
	}

	got := reg.GetConfig("rule-a")
	if !got.HasSeverity || got.Severity != SeverityError {
		t.Errorf("GetConfig severity = %v (has=%v), want explicit error", got.Severity, got.HasSeverity)
	}

	if empty := reg.GetConfig("unset"); empty.HasSeverity || empty.Options != nil {
		t.Error("GetConfig for an unconfigured rule should be empty")
	}
}

// TestRegistry_Categories verifies category listing and lookup.
func TestRegistry_Categories(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(
		testRule("no-foo", "restriction"),
		testRule("style-check", "style"),
	); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cats := reg.Categories()
	if len(cats) != 2 || cats[0] != "restriction" || cats[1] != "style" {
		t.Errorf("Categories = %v, want [restriction style]", cats)
	}

	byCat := reg.RulesByCategory("restriction")
	if len(byCat) != 1 || byCat[0].Name != "no-foo" {
		t.Errorf("RulesByCategory(restriction) = %v", byCat)
	}
	if reg.RulesByCategory("nope") != nil {
		t.Error("unknown category should yield nil")
	}
}
