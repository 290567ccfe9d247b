// Package ignore implements the shared ignore-pattern matching used by
// every rule to exempt nodes from checking.
//
// A rule exposes the patterns under its "ignore" option: each entry is a
// literal name, a {"name": ...} or {"pattern": ...} matcher applied to the
// node's derived name, or a {"path": ...} glob applied to the file being
// analyzed. Entries are compiled once at rule activation; matching is a
// pure predicate and never reports anything itself.
package ignore

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/starforge/starlint/internal/astutil"
)

// Matcher holds compiled ignore patterns for one rule activation.
type Matcher struct {
	names    []string
	patterns []*regexp.Regexp
	paths    []string
}

// Compile validates and compiles the raw value of a rule's "ignore"
// option. The value is the decoded JSON array; a nil value compiles to a
// matcher that ignores nothing. Invalid entries are reported with their
// index so activation can surface a precise configuration error.
func Compile(raw any) (*Matcher, error) {
	m := &Matcher{}
	if raw == nil {
		return m, nil
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("ignore option must be an array, got %T", raw)
	}

	for i, entry := range entries {
		switch e := entry.(type) {
		case string:
			m.names = append(m.names, e)
		case map[string]any:
			if err := m.compileEntry(e); err != nil {
				return nil, fmt.Errorf("ignore entry %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("ignore entry %d: must be a string or object, got %T", i, entry)
		}
	}
	return m, nil
}

func (m *Matcher) compileEntry(entry map[string]any) error {
	if name, ok := entry["name"].(string); ok {
		m.names = append(m.names, name)
		return nil
	}
	if pattern, ok := entry["pattern"].(string); ok {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		m.patterns = append(m.patterns, re)
		return nil
	}
	if path, ok := entry["path"].(string); ok {
		if !doublestar.ValidatePattern(path) {
			return fmt.Errorf("invalid path glob %q", path)
		}
		m.paths = append(m.paths, path)
		return nil
	}
	return fmt.Errorf("must set one of name, pattern, path")
}

// Empty reports whether the matcher has no patterns at all.
func (m *Matcher) Empty() bool {
	return len(m.names) == 0 && len(m.patterns) == 0 && len(m.paths) == 0
}

// ShouldIgnore reports whether the node is exempt from checking: true when
// any compiled entry matches the node's derived name or the file path.
// Nodes with no derivable name can only match path entries.
func (m *Matcher) ShouldIgnore(node astutil.Node, filePath string) bool {
	if m == nil || m.Empty() {
		return false
	}

	if name := astutil.DerivedName(node.Expr); name != "" {
		for _, n := range m.names {
			if n == name {
				return true
			}
		}
		for _, re := range m.patterns {
			if re.MatchString(name) {
				return true
			}
		}
	}

	for _, p := range m.paths {
		if ok, err := doublestar.Match(p, filePath); err == nil && ok {
			return true
		}
	}
	return false
}

// Schema returns the JSON-schema fragment for the shared "ignore" option;
// rules embed it in their option schema under the "ignore" property.
func Schema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"oneOf": []any{
				map[string]any{"type": "string"},
				map[string]any{
					"type":                 "object",
					"properties":           map[string]any{"name": map[string]any{"type": "string"}},
					"required":             []any{"name"},
					"additionalProperties": false,
				},
				map[string]any{
					"type":                 "object",
					"properties":           map[string]any{"pattern": map[string]any{"type": "string"}},
					"required":             []any{"pattern"},
					"additionalProperties": false,
				},
				map[string]any{
					"type":                 "object",
					"properties":           map[string]any{"path": map[string]any{"type": "string"}},
					"required":             []any{"path"},
					"additionalProperties": false,
				},
			},
		},
	}
}
