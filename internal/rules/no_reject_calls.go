package rules

import (
	"github.com/starforge/starlint/internal/astutil"
	"github.com/starforge/starlint/internal/ignore"
	"github.com/starforge/starlint/internal/rule"
)

// NoRejectCalls flags calls to rejection-style callees, which encode
// failure as a value instead of raising it.
var NoRejectCalls = rule.MustNew(
	"no-reject-calls",
	rule.Meta{
		Docs: rule.Docs{
			Description: "Disallow calls to rejection-style callees",
			Category:    "functional",
		},
		Messages: map[string]string{
			"generic": "Unexpected call to {{callee}}.",
		},
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"callees": map[string]any{
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
		"callees": []any{"Promise.reject"},
		"ignore":  []any{},
	},
	rule.SeverityWarning,
	nil,
	map[astutil.Kind]rule.Handler{
		astutil.KindCall: checkRejectCall,
	},
)

func checkRejectCall(node astutil.Node, ctx *rule.Context, opts *rule.Options) rule.Result {
	if opts.ShouldIgnore(node, ctx) {
		return rule.Result{Context: ctx}
	}
	return rule.RunDetectors(ctx, detectRejectCall(node, opts))
}

// detectRejectCall matches the call's derived callee name against the
// configured callees.
func detectRejectCall(node astutil.Node, opts *rule.Options) rule.Detector {
	return func(ctx *rule.Context) []rule.Descriptor {
		callee := astutil.CalleeName(node.Expr)
		if callee == "" {
			return nil
		}

		for _, name := range opts.Strings("callees") {
			if name == callee {
				return []rule.Descriptor{{
					Node:      node,
					MessageID: "generic",
					Data:      map[string]string{"callee": callee},
				}}
			}
		}
		return nil
	}
}
