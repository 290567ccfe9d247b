// Package options merges and validates per-rule configuration.
//
// Each rule declares default options and a JSON Schema for the accepted
// shape. At activation the user-supplied record is validated against the
// schema, deep-merged over the defaults (user values win, arrays and
// union-typed values replaced wholesale), and the merged record is
// validated again. The result is immutable for the activation's lifetime.
package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CompileSchema compiles a rule's declared option schema. The schema is a
// JSON-Schema-compatible document expressed as a Go value. Schemas are
// static rule metadata, so a compile failure is a programming error in the
// rule definition, not a configuration error.
func CompileSchema(ruleName string, schema map[string]any) (*jsonschema.Schema, error) {
	doc, err := canonicalize(schema)
	if err != nil {
		return nil, fmt.Errorf("rule %s: encoding option schema: %w", ruleName, err)
	}

	compiler := jsonschema.NewCompiler()
	resource := ruleName + "/options.json"
	if err := compiler.AddResource(resource, doc); err != nil {
		return nil, fmt.Errorf("rule %s: adding option schema: %w", ruleName, err)
	}

	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("rule %s: compiling option schema: %w", ruleName, err)
	}
	return compiled, nil
}

// Resolve merges user-supplied options over a rule's declared defaults and
// validates the result against the rule's compiled schema.
//
// Merge semantics: keys present in user replace the default value, even
// when the user value is false or empty; nested records are filled per key
// from the defaults; arrays and values whose type differs between user and
// default (union-typed fields) are replaced wholesale, never merged
// element-wise. A nil user record yields the defaults unchanged.
//
// Unknown keys and values failing the schema surface as a
// *ConfigurationError naming the rule and the offending option path.
func Resolve(ruleName string, schema *jsonschema.Schema, defaults, user map[string]any) (map[string]any, error) {
	if user != nil {
		if err := validate(ruleName, schema, user); err != nil {
			return nil, err
		}
	}

	// Both records are deep-copied through a JSON round trip so the merge
	// can never alias or mutate the rule's declared defaults.
	merged, err := copyRecord(defaults)
	if err != nil {
		return nil, fmt.Errorf("rule %s: copying default options: %w", ruleName, err)
	}
	userCopy, err := copyRecord(user)
	if err != nil {
		return nil, fmt.Errorf("rule %s: copying options: %w", ruleName, err)
	}

	mergeRecords(merged, userCopy)

	if err := validate(ruleName, schema, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// mergeRecords overlays the user record onto dst key by key. Presence in
// the user record is explicit: a key's value replaces the default even
// when it is false or empty. Nested records are filled per key; arrays
// and values whose type differs from the default are replaced wholesale.
//
// Both records come out of a JSON round trip, so every nested record is a
// map[string]any and the recursion terminates at scalars and arrays.
func mergeRecords(dst, user map[string]any) {
	for key, value := range user {
		if userRecord, ok := value.(map[string]any); ok {
			if dstRecord, ok := dst[key].(map[string]any); ok {
				mergeRecords(dstRecord, userRecord)
				continue
			}
		}
		dst[key] = value
	}
}

// validate checks a candidate record against the schema, reporting the
// deepest failing instance location.
func validate(ruleName string, schema *jsonschema.Schema, record map[string]any) error {
	doc, err := canonicalize(record)
	if err != nil {
		return &ConfigurationError{Rule: ruleName, Path: "/", Err: err}
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			leaf := leafCause(verr)
			return &ConfigurationError{
				Rule: ruleName,
				Path: instancePath(leaf.InstanceLocation),
				Err:  err,
			}
		}
		return &ConfigurationError{Rule: ruleName, Path: "/", Err: err}
	}
	return nil
}

// copyRecord deep-copies an options record. A nil record copies to an
// empty one.
func copyRecord(record map[string]any) (map[string]any, error) {
	if record == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// canonicalize round-trips a Go value through JSON so the validator sees
// the same types a decoded configuration file would produce.
func canonicalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// leafCause follows the first cause chain to the most specific failure.
func leafCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

// instancePath renders an instance location as a JSON-pointer-style path.
func instancePath(parts []string) string {
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}
