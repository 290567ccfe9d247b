package astutil

import (
	"github.com/bazelbuild/buildtools/build"
)

// DerivedName returns the identifying string for an expression: the
// identifier text, or the dotted path of a member access whose base
// resolves to identifiers (e.g. "Promise.reject"). Returns "" when no
// name can be derived; such nodes never match name-based ignore patterns.
func DerivedName(expr build.Expr) string {
	switch e := expr.(type) {
	case *build.Ident:
		return e.Name
	case *build.DotExpr:
		base := DerivedName(unwrapParen(e.X))
		if base == "" {
			return ""
		}
		return base + "." + e.Name
	case *build.DefStmt:
		return e.Name
	}
	return ""
}

// CalleeName returns the derived name of a call expression's callee,
// or "" if the expression is not a call or the callee has no derivable name.
func CalleeName(expr build.Expr) string {
	call, ok := expr.(*build.CallExpr)
	if !ok {
		return ""
	}
	return DerivedName(unwrapParen(call.X))
}
