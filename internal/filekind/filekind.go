// Package filekind defines the types of Starlark files recognized by starlint.
package filekind

import "path/filepath"

// Kind represents the type of Starlark file.
type Kind string

const (
	// KindStarlark is a generic .star file.
	KindStarlark Kind = "starlark"

	// KindBUILD represents BUILD and BUILD.bazel files.
	KindBUILD Kind = "BUILD"
	// KindBzl represents .bzl extension files.
	KindBzl Kind = "bzl"
	// KindWORKSPACE represents WORKSPACE and WORKSPACE.bazel files.
	KindWORKSPACE Kind = "WORKSPACE"
	// KindMODULE represents MODULE.bazel files (bzlmod).
	KindMODULE Kind = "MODULE"

	// KindUnknown indicates an unrecognized file type.
	KindUnknown Kind = "unknown"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsTopLevel returns true if this kind represents a top-level build file
// (e.g., BUILD, WORKSPACE, MODULE.bazel).
func (k Kind) IsTopLevel() bool {
	switch k {
	case KindBUILD, KindWORKSPACE, KindMODULE:
		return true
	}
	return false
}

// IsExtension returns true if this kind represents an extension/library
// file (e.g., .bzl, .star files).
func (k Kind) IsExtension() bool {
	switch k {
	case KindBzl, KindStarlark:
		return true
	}
	return false
}

// Detect determines the file kind from a path based on its filename and
// extension. Unrecognized names detect as KindUnknown, which parses with
// the default Starlark entry point.
func Detect(path string) Kind {
	base := filepath.Base(path)

	switch base {
	case "BUILD", "BUILD.bazel":
		return KindBUILD
	case "WORKSPACE", "WORKSPACE.bazel":
		return KindWORKSPACE
	case "MODULE.bazel":
		return KindMODULE
	}

	switch filepath.Ext(base) {
	case ".bzl":
		return KindBzl
	case ".star", ".starlark":
		return KindStarlark
	}

	return KindUnknown
}

// AllKinds returns all defined file kinds.
func AllKinds() []Kind {
	return []Kind{
		KindStarlark,
		KindBUILD,
		KindBzl,
		KindWORKSPACE,
		KindMODULE,
		KindUnknown,
	}
}
