// Package rule defines the contract every lint rule is declared against:
// a name, metadata (docs, message catalog, option schema), default options,
// and one handler per node kind. A declared rule is immutable and shared
// across files; all per-run state lives in the activation produced by
// Activate, which binds the resolved options once.
package rule

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/starforge/starlint/internal/astutil"
	"github.com/starforge/starlint/internal/filekind"
	"github.com/starforge/starlint/internal/options"
)

// Docs describes a rule for listings and explanations.
type Docs struct {
	// Description is a one-line description of what the rule checks.
	Description string

	// URL is an optional link to detailed documentation.
	URL string

	// Category groups related rules (e.g., "style", "correctness").
	Category string
}

// Meta holds a rule's static metadata.
type Meta struct {
	// Docs describes the rule.
	Docs Docs

	// Messages is the diagnostic message catalog: message ID to template.
	// Templates interpolate {{placeholder}} from descriptor data.
	Messages map[string]string

	// Schema is the JSON-Schema-compatible description of the rule's
	// accepted option shape. Unknown keys must be rejected by the schema
	// (additionalProperties: false).
	Schema map[string]any
}

// Context carries the per-file environment a handler may read. It is owned
// by the driver and borrowed for the duration of one handler call.
type Context struct {
	// FilePath is the path of the file being analyzed.
	FilePath string

	// FileKind is the detected kind of the file.
	FileKind filekind.Kind

	// Content is the raw source of the file.
	Content []byte

	// Severity is the effective severity for findings of this activation.
	Severity Severity
}

// Handler inspects one node and returns the violations found on it.
// Handlers are pure: same node, context, and options yield the same
// descriptors in the same order. They never report directly and never
// retain the node past return.
type Handler func(node astutil.Node, ctx *Context, opts *Options) Result

// Rule is a declared lint rule. Construct with New or MustNew; the value
// is immutable afterward and safe to share across files.
type Rule struct {
	// Name is the unique kebab-case identifier (e.g., "functional-parameters").
	Name string

	// Meta is the rule's static metadata.
	Meta Meta

	// DefaultOptions is the rule's declared default option record.
	DefaultOptions map[string]any

	// Severity is the default severity for findings from this rule.
	Severity Severity

	// FileKinds specifies which file kinds this rule applies to.
	// Empty means the rule applies to all file kinds.
	FileKinds []filekind.Kind

	// Handlers maps a node kind to the handler for that kind. At most one
	// handler per kind; a rule composes multiple checks for one kind by
	// running several detectors inside a single handler.
	Handlers map[astutil.Kind]Handler

	schema *jsonschema.Schema
}

// New validates and constructs a rule definition. It rejects malformed
// names, an empty message catalog, missing handlers, and option schemas
// that do not compile.
func New(name string, meta Meta, defaults map[string]any, severity Severity, kinds []filekind.Kind, handlers map[astutil.Kind]Handler) (*Rule, error) {
	if !isValidRuleName(name) {
		return nil, fmt.Errorf("invalid rule name %q: must be kebab-case (lowercase with hyphens)", name)
	}
	if len(meta.Messages) == 0 {
		return nil, fmt.Errorf("rule %s: message catalog is empty", name)
	}
	for id, tmpl := range meta.Messages {
		if tmpl == "" {
			return nil, fmt.Errorf("rule %s: message %s has an empty template", name, id)
		}
	}
	if len(handlers) == 0 {
		return nil, fmt.Errorf("rule %s: no handlers registered", name)
	}
	for kind, h := range handlers {
		if h == nil {
			return nil, fmt.Errorf("rule %s: nil handler for kind %s", name, kind)
		}
		if kind == astutil.KindUnhandled {
			return nil, fmt.Errorf("rule %s: cannot register a handler for the unhandled kind", name)
		}
	}

	schema, err := options.CompileSchema(name, meta.Schema)
	if err != nil {
		return nil, err
	}

	return &Rule{
		Name:           name,
		Meta:           meta,
		DefaultOptions: defaults,
		Severity:       severity,
		FileKinds:      kinds,
		Handlers:       handlers,
		schema:         schema,
	}, nil
}

// MustNew is like New but panics on error. Intended for built-in rule
// declarations, where a failure is a programming error.
func MustNew(name string, meta Meta, defaults map[string]any, severity Severity, kinds []filekind.Kind, handlers map[astutil.Kind]Handler) *Rule {
	r, err := New(name, meta, defaults, severity, kinds, handlers)
	if err != nil {
		panic(err)
	}
	return r
}

// AppliesTo reports whether the rule applies to a file kind.
func (r *Rule) AppliesTo(kind filekind.Kind) bool {
	if len(r.FileKinds) == 0 {
		return true
	}
	for _, k := range r.FileKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// isValidRuleName checks if a rule name follows kebab-case convention.
// Allows lowercase letters, digits, hyphens, and underscores.
func isValidRuleName(name string) bool {
	if name == "" {
		return false
	}

	for i, ch := range name {
		if ch >= 'a' && ch <= 'z' {
			continue
		}
		if ch >= '0' && ch <= '9' && i > 0 {
			continue
		}
		if (ch == '-' || ch == '_') && i > 0 && i < len(name)-1 {
			continue
		}
		return false
	}

	return true
}
