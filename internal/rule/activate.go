package rule

import (
	"fmt"

	"github.com/starforge/starlint/internal/astutil"
	"github.com/starforge/starlint/internal/ignore"
	"github.com/starforge/starlint/internal/options"
)

// Options is the resolved, immutable option record one activation exposes
// to its handlers, together with the compiled ignore matcher for the
// shared "ignore" option.
type Options struct {
	values map[string]any
	ignore *ignore.Matcher
}

// Value returns the raw option value for a key, or nil when absent.
func (o *Options) Value(key string) any {
	return o.values[key]
}

// Bool returns a boolean option; ok is false when absent or not a bool.
func (o *Options) Bool(key string) (value, ok bool) {
	value, ok = o.values[key].(bool)
	return value, ok
}

// String returns a string option; ok is false when absent or not a string.
func (o *Options) String(key string) (string, bool) {
	s, ok := o.values[key].(string)
	return s, ok
}

// Strings returns a string-array option. Non-string elements are skipped;
// the schema is expected to have rejected them already.
func (o *Options) Strings(key string) []string {
	raw, ok := o.values[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Record returns an object-valued option; ok is false when absent or not
// an object.
func (o *Options) Record(key string) (map[string]any, bool) {
	m, ok := o.values[key].(map[string]any)
	return m, ok
}

// ShouldIgnore reports whether the node is exempt under the activation's
// compiled ignore patterns. Handlers call this first and short-circuit to
// an empty result, so ignoring a node suppresses every detector of the
// rule uniformly.
func (o *Options) ShouldIgnore(node astutil.Node, ctx *Context) bool {
	return o.ignore.ShouldIgnore(node, ctx.FilePath)
}

// Activated is a rule bound to one resolved option record. All handler
// invocations within one analysis session observe the same options value.
type Activated struct {
	rule *Rule
	opts *Options
}

// Activate resolves the user-supplied options against the rule's defaults
// and schema, compiles the shared ignore patterns, and binds the result.
// Any validation failure is a *options.ConfigurationError; the rule must
// not run afterward.
func (r *Rule) Activate(user map[string]any) (*Activated, error) {
	resolved, err := options.Resolve(r.Name, r.schema, r.DefaultOptions, user)
	if err != nil {
		return nil, err
	}

	matcher, err := ignore.Compile(resolved["ignore"])
	if err != nil {
		return nil, &options.ConfigurationError{Rule: r.Name, Path: "/ignore", Err: err}
	}

	return &Activated{
		rule: r,
		opts: &Options{values: resolved, ignore: matcher},
	}, nil
}

// Rule returns the underlying rule definition.
func (a *Activated) Rule() *Rule {
	return a.rule
}

// Options returns the activation's resolved options.
func (a *Activated) Options() *Options {
	return a.opts
}

// Visit dispatches the node to the rule's handler for its kind. Kinds the
// rule does not handle return an empty result; they are not an error. A
// panic inside a handler is a programming-error signal and is deliberately
// not recovered here.
func (a *Activated) Visit(node astutil.Node, ctx *Context) Result {
	handler, ok := a.rule.Handlers[node.Kind()]
	if !ok {
		return Result{Context: ctx}
	}
	return handler(node, ctx, a.opts)
}

// Message renders the catalog entry for a descriptor produced by this
// rule. Unknown message IDs and unfilled placeholders are errors.
func (a *Activated) Message(d Descriptor) (string, error) {
	tmpl, ok := a.rule.Meta.Messages[d.MessageID]
	if !ok {
		return "", fmt.Errorf("rule %s: unknown message id %q", a.rule.Name, d.MessageID)
	}
	msg, err := RenderMessage(tmpl, d.Data)
	if err != nil {
		return "", fmt.Errorf("rule %s: %w", a.rule.Name, err)
	}
	return msg, nil
}
