package astutil

import (
	"github.com/bazelbuild/buildtools/build"
)

// ParamKind classifies one entry of a function's parameter list.
type ParamKind int

const (
	// ParamNormal is a plain positional parameter.
	ParamNormal ParamKind = iota
	// ParamDefault is a parameter with a default value (name=expr).
	ParamDefault
	// ParamRest is a *args rest parameter.
	ParamRest
	// ParamKeywords is a **kwargs keywords parameter.
	ParamKeywords
	// ParamMarker is the bare * keyword-only marker; it binds nothing.
	ParamMarker
)

// ClassifyParam returns the kind of a single parameter-list entry.
// Safe on any expression shape; unexpected shapes classify as ParamNormal.
func ClassifyParam(param build.Expr) ParamKind {
	switch p := param.(type) {
	case *build.UnaryExpr:
		switch p.Op {
		case "*":
			if p.X == nil {
				return ParamMarker
			}
			return ParamRest
		case "**":
			return ParamKeywords
		}
	case *build.AssignExpr:
		return ParamDefault
	}
	return ParamNormal
}

// FunctionParams returns the parameter list of a function definition or
// lambda expression. ok is false for any other shape.
func FunctionParams(expr build.Expr) (params []build.Expr, ok bool) {
	switch fn := expr.(type) {
	case *build.DefStmt:
		return fn.Params, true
	case *build.LambdaExpr:
		return fn.Params, true
	}
	return nil, false
}

// ParamCount returns the number of binding parameters of a function node,
// excluding the bare * marker. Returns 0 for non-function shapes.
func ParamCount(expr build.Expr) int {
	params, ok := FunctionParams(expr)
	if !ok {
		return 0
	}
	count := 0
	for _, p := range params {
		if ClassifyParam(p) != ParamMarker {
			count++
		}
	}
	return count
}

// RestParam returns the *args parameter entry of a function node, if any.
func RestParam(expr build.Expr) (build.Expr, bool) {
	return findParam(expr, ParamRest)
}

// KeywordsParam returns the **kwargs parameter entry of a function node, if any.
func KeywordsParam(expr build.Expr) (build.Expr, bool) {
	return findParam(expr, ParamKeywords)
}

func findParam(expr build.Expr, kind ParamKind) (build.Expr, bool) {
	params, ok := FunctionParams(expr)
	if !ok {
		return nil, false
	}
	for _, p := range params {
		if ClassifyParam(p) == kind {
			return p, true
		}
	}
	return nil, false
}

// unwrapParen strips any number of enclosing parentheses.
func unwrapParen(expr build.Expr) build.Expr {
	for {
		paren, ok := expr.(*build.ParenExpr)
		if !ok {
			return expr
		}
		expr = paren.X
	}
}

// IsIIFE reports whether a call expression immediately invokes a function
// expression, e.g. (lambda x: x)(1). False for every other shape.
func IsIIFE(expr build.Expr) bool {
	call, ok := expr.(*build.CallExpr)
	if !ok {
		return false
	}
	_, ok = unwrapParen(call.X).(*build.LambdaExpr)
	return ok
}

// IsIIFECallee reports whether the node is a function expression that is
// the callee of an immediately-invoked call. Looks at most two hops up the
// parent chain (through one level of parentheses).
func IsIIFECallee(n Node) bool {
	if _, ok := n.Expr.(*build.LambdaExpr); !ok {
		return false
	}

	parent := n.Parent()
	hop := 2
	if _, ok := parent.(*build.ParenExpr); ok {
		parent = n.Ancestor(hop)
		hop++
	}

	call, ok := parent.(*build.CallExpr)
	if !ok {
		return false
	}
	return unwrapParen(call.X) == n.Expr
}

// IsPropertyKey reports whether an identifier node is used as a name slot
// rather than a value reference: a named-argument key, a dict-literal key,
// or a parameter name in a function definition. False for non-identifier
// nodes.
func IsPropertyKey(n Node) bool {
	ident, ok := n.Expr.(*build.Ident)
	if !ok {
		return false
	}

	switch parent := n.Parent().(type) {
	case *build.KeyValueExpr:
		return parent.Key == n.Expr
	case *build.AssignExpr:
		if parent.LHS != n.Expr {
			return false
		}
		// name=value inside a call is a named argument; inside a def or
		// lambda parameter list it is a defaulted parameter name.
		switch n.Ancestor(2).(type) {
		case *build.CallExpr, *build.DefStmt, *build.LambdaExpr:
			return true
		}
		return false
	case *build.DefStmt:
		return isParamOf(parent.Params, ident)
	case *build.LambdaExpr:
		return isParamOf(parent.Params, ident)
	case *build.UnaryExpr:
		// *args and **kwargs parameter names.
		if parent.Op != "*" && parent.Op != "**" {
			return false
		}
		switch n.Ancestor(2).(type) {
		case *build.DefStmt, *build.LambdaExpr:
			return true
		}
		return false
	}
	return false
}

func isParamOf(params []build.Expr, ident *build.Ident) bool {
	for _, p := range params {
		if p == build.Expr(ident) {
			return true
		}
	}
	return false
}
