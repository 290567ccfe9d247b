package rules

import (
	"github.com/bazelbuild/buildtools/build"

	"github.com/starforge/starlint/internal/astutil"
	"github.com/starforge/starlint/internal/ignore"
	"github.com/starforge/starlint/internal/rule"
)

// NoRestrictedNames flags uses of restricted identifiers. Name slots such
// as named-argument keys, dict keys, and parameter names are exempt.
var NoRestrictedNames = rule.MustNew(
	"no-restricted-names",
	rule.Meta{
		Docs: rule.Docs{
			Description: "Disallow references to restricted identifiers",
			Category:    "restriction",
		},
		Messages: map[string]string{
			"restricted": "Restricted name {{name}} may not be used.",
		},
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"names": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
					},
				},
				"ignore": ignore.Schema(),
			},
			"additionalProperties": false,
		},
	},
	map[string]any{
		"names":  []any{"arguments"},
		"ignore": []any{},
	},
	rule.SeverityWarning,
	nil,
	map[astutil.Kind]rule.Handler{
		astutil.KindIdent: checkRestrictedName,
	},
)

func checkRestrictedName(node astutil.Node, ctx *rule.Context, opts *rule.Options) rule.Result {
	if opts.ShouldIgnore(node, ctx) {
		return rule.Result{Context: ctx}
	}
	return rule.RunDetectors(ctx, detectRestrictedName(node, opts))
}

func detectRestrictedName(node astutil.Node, opts *rule.Options) rule.Detector {
	return func(ctx *rule.Context) []rule.Descriptor {
		ident, ok := node.Expr.(*build.Ident)
		if !ok {
			return nil
		}
		if astutil.IsPropertyKey(node) {
			return nil
		}

		for _, name := range opts.Strings("names") {
			if name == ident.Name {
				return []rule.Descriptor{{
					Node:      node,
					MessageID: "restricted",
					Data:      map[string]string{"name": ident.Name},
				}}
			}
		}
		return nil
	}
}
