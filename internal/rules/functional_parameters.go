package rules

import (
	"github.com/starforge/starlint/internal/astutil"
	"github.com/starforge/starlint/internal/ignore"
	"github.com/starforge/starlint/internal/rule"
)

// FunctionalParameters enforces functional-style parameter lists: no *args
// or **kwargs, and a configurable minimum or exact parameter count.
var FunctionalParameters = rule.MustNew(
	"functional-parameters",
	rule.Meta{
		Docs: rule.Docs{
			Description: "Enforce functional parameter lists on function definitions and lambdas",
			Category:    "functional",
		},
		Messages: map[string]string{
			"paramCountAtLeastOne": "Functions must have at least one parameter.",
			"paramCountExactlyOne": "Functions must have exactly one parameter.",
			"restParam":            "Functions must not have a rest parameter.",
			"keywordsParam":        "Functions must not have a keywords parameter.",
		},
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"enforceParameterCount": map[string]any{
					"oneOf": []any{
						map[string]any{
							"type": "string",
							"enum": []any{"atLeastOne", "exactlyOne"},
						},
						map[string]any{
							"const": false,
						},
						map[string]any{
							"type": "object",
							"properties": map[string]any{
								"count": map[string]any{
									"type": "string",
									"enum": []any{"atLeastOne", "exactlyOne"},
								},
								"ignoreIIFE": map[string]any{
									"type": "boolean",
								},
							},
							"required":             []any{"count"},
							"additionalProperties": false,
						},
					},
				},
				"allowRestParameter": map[string]any{
					"type": "boolean",
				},
				"allowKeywordsParameter": map[string]any{
					"type": "boolean",
				},
				"ignore": ignore.Schema(),
			},
			"additionalProperties": false,
		},
	},
	map[string]any{
		"enforceParameterCount":  "atLeastOne",
		"allowRestParameter":     false,
		"allowKeywordsParameter": false,
		"ignore":                 []any{},
	},
	rule.SeverityWarning,
	nil,
	map[astutil.Kind]rule.Handler{
		astutil.KindFunctionDef: checkFunctionParams,
		astutil.KindLambda:      checkFunctionParams,
	},
)

func checkFunctionParams(node astutil.Node, ctx *rule.Context, opts *rule.Options) rule.Result {
	if opts.ShouldIgnore(node, ctx) {
		return rule.Result{Context: ctx}
	}
	return rule.RunDetectors(ctx,
		detectRestParam(node, opts),
		detectKeywordsParam(node, opts),
		detectParamCount(node, opts),
	)
}

// detectRestParam flags *args parameters unless allowRestParameter is set.
func detectRestParam(node astutil.Node, opts *rule.Options) rule.Detector {
	return func(ctx *rule.Context) []rule.Descriptor {
		if allow, _ := opts.Bool("allowRestParameter"); allow {
			return nil
		}
		if _, ok := astutil.RestParam(node.Expr); !ok {
			return nil
		}
		return []rule.Descriptor{{Node: node, MessageID: "restParam"}}
	}
}

// detectKeywordsParam flags **kwargs parameters unless allowKeywordsParameter
// is set.
func detectKeywordsParam(node astutil.Node, opts *rule.Options) rule.Detector {
	return func(ctx *rule.Context) []rule.Descriptor {
		if allow, _ := opts.Bool("allowKeywordsParameter"); allow {
			return nil
		}
		if _, ok := astutil.KeywordsParam(node.Expr); !ok {
			return nil
		}
		return []rule.Descriptor{{Node: node, MessageID: "keywordsParam"}}
	}
}

// detectParamCount enforces the configured parameter-count policy.
func detectParamCount(node astutil.Node, opts *rule.Options) rule.Detector {
	return func(ctx *rule.Context) []rule.Descriptor {
		policy, ignoreIIFE, enforce := parameterCountPolicy(opts)
		if !enforce {
			return nil
		}
		if ignoreIIFE && astutil.IsIIFECallee(node) {
			return nil
		}

		count := astutil.ParamCount(node.Expr)
		switch policy {
		case "atLeastOne":
			if count < 1 {
				return []rule.Descriptor{{Node: node, MessageID: "paramCountAtLeastOne"}}
			}
		case "exactlyOne":
			if count != 1 {
				return []rule.Descriptor{{Node: node, MessageID: "paramCountExactlyOne"}}
			}
		}
		return nil
	}
}

// parameterCountPolicy normalizes the three accepted shapes of the
// enforceParameterCount option. enforce is false when the option is the
// literal false.
func parameterCountPolicy(opts *rule.Options) (policy string, ignoreIIFE, enforce bool) {
	switch v := opts.Value("enforceParameterCount").(type) {
	case string:
		return v, false, true
	case bool:
		return "", false, false
	case map[string]any:
		policy, _ = v["count"].(string)
		ignoreIIFE, _ = v["ignoreIIFE"].(bool)
		return policy, ignoreIIFE, true
	}
	return "", false, false
}
