// Package sortutil provides common sorting utilities for lint findings.
package sortutil

import (
	"cmp"
	"slices"
)

// ByName sorts a slice of elements using a function that extracts the name.
func ByName[S ~[]E, E any](s S, getName func(E) string) {
	slices.SortFunc(s, func(a, b E) int {
		return cmp.Compare(getName(a), getName(b))
	})
}

// ByLocation sorts elements by file path, then line, then column.
// This is the most common sorting pattern for findings and diagnostics.
func ByLocation[S ~[]E, E any](s S, getPath func(E) string, getLine func(E) int, getCol func(E) int) {
	slices.SortFunc(s, func(a, b E) int {
		// cmp.Or requires Go 1.22; expanded inline for the Go 1.21 toolchain.
		if c := cmp.Compare(getPath(a), getPath(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(getLine(a), getLine(b)); c != 0 {
			return c
		}
		return cmp.Compare(getCol(a), getCol(b))
	})
}
