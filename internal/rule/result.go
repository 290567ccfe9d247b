package rule

import (
	"github.com/starforge/starlint/internal/astutil"
)

// Descriptor is one reported violation: the node it targets, a key into
// the rule's message catalog, and optional interpolation data. Descriptors
// are created fresh per violation and never mutated afterward.
type Descriptor struct {
	// Node is the tree node the violation targets.
	Node astutil.Node

	// MessageID is a key into the rule's message catalog.
	MessageID string

	// Data maps placeholder names to interpolation values.
	Data map[string]string
}

// Result is what a handler returns for one visited node: zero or more
// descriptors in detection order. The order is deterministic for a given
// (node, context, options) triple.
type Result struct {
	// Context is the context the handler was invoked with.
	Context *Context

	// Descriptors holds the violations found on the node, in detection
	// order. Empty means no violation.
	Descriptors []Descriptor
}

// Detector is one independent violation check. Detectors are pure
// functions so they can be unit-tested in isolation; handlers compose them
// by concatenation, never through shared mutable collectors.
type Detector func(ctx *Context) []Descriptor

// RunDetectors runs each detector in declaration order and concatenates
// their descriptors into a single result.
func RunDetectors(ctx *Context, detectors ...Detector) Result {
	res := Result{Context: ctx}
	for _, detect := range detectors {
		res.Descriptors = append(res.Descriptors, detect(ctx)...)
	}
	return res
}
