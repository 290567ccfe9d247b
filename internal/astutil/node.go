// Package astutil provides node handles and shape predicates over the
// buildtools Starlark syntax tree.
//
// Rules never traverse the tree themselves: the driver walks it and hands
// each rule a Node, which pairs the current expression with its ancestor
// stack. Predicates in this package are pure classifiers over a node's tag
// and immediate shape; context predicates look at most a few hops up the
// parent chain.
package astutil

import (
	"github.com/bazelbuild/buildtools/build"
)

// Kind identifies the syntax-tree shapes the rule framework dispatches on.
// Any other shape maps to KindUnhandled, which no handler receives.
type Kind string

const (
	// KindFunctionDef is a named function definition (def statement).
	KindFunctionDef Kind = "function-def"
	// KindLambda is an anonymous function expression.
	KindLambda Kind = "lambda"
	// KindCall is a call expression.
	KindCall Kind = "call"
	// KindIdent is an identifier.
	KindIdent Kind = "ident"
	// KindDot is a dotted member access (e.g. ctx.attr).
	KindDot Kind = "dot"
	// KindUnhandled covers every shape the framework does not dispatch on.
	KindUnhandled Kind = "unhandled"
)

// KindOf returns the dispatch kind for an expression.
func KindOf(expr build.Expr) Kind {
	switch expr.(type) {
	case *build.DefStmt:
		return KindFunctionDef
	case *build.LambdaExpr:
		return KindLambda
	case *build.CallExpr:
		return KindCall
	case *build.Ident:
		return KindIdent
	case *build.DotExpr:
		return KindDot
	default:
		return KindUnhandled
	}
}

// Node is a borrowed reference to one tree node during a handler call.
// Stack holds the ancestors from the root down to, but not including,
// Expr; the immediate parent is Stack[len(Stack)-1]. Handlers must not
// mutate the tree through it.
type Node struct {
	Expr  build.Expr
	Stack []build.Expr
}

// Kind returns the dispatch kind of the node.
func (n Node) Kind() Kind {
	return KindOf(n.Expr)
}

// Parent returns the immediate parent expression, or nil at the root.
func (n Node) Parent() build.Expr {
	if len(n.Stack) == 0 {
		return nil
	}
	return n.Stack[len(n.Stack)-1]
}

// Ancestor returns the ancestor i hops above the node (Ancestor(1) is the
// parent). Returns nil when the chain is shorter than i.
func (n Node) Ancestor(i int) build.Expr {
	if i < 1 || i > len(n.Stack) {
		return nil
	}
	return n.Stack[len(n.Stack)-i]
}

// Span returns the start and end positions of the node's expression.
func (n Node) Span() (build.Position, build.Position) {
	return n.Expr.Span()
}
