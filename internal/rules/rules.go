// Package rules declares the built-in lint rules.
package rules

import (
	"github.com/starforge/starlint/internal/rule"
)

// All returns the built-in rules in a stable order.
func All() []*rule.Rule {
	return []*rule.Rule{
		FunctionalParameters,
		NoRejectCalls,
		NoRestrictedNames,
	}
}
