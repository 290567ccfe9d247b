package astutil

import (
	"testing"

	"github.com/bazelbuild/buildtools/build"
)

// parseSource parses Starlark source for tests.
func parseSource(t *testing.T, src string) *build.File {
	t.Helper()
	f, err := build.ParseDefault("test.star", []byte(src))
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	return f
}

// findNode returns the first node of the given kind in the source.
func findNode(t *testing.T, src string, kind Kind) Node {
	t.Helper()
	f := parseSource(t, src)

	var found *Node
	build.Walk(f, func(expr build.Expr, stack []build.Expr) {
		if found != nil {
			return
		}
		if KindOf(expr) == kind {
			n := Node{Expr: expr, Stack: append([]build.Expr(nil), stack...)}
			found = &n
		}
	})
	if found == nil {
		t.Fatalf("no %s node in %q", kind, src)
	}
	return *found
}

// findIdent returns the node for the first identifier with the given name.
func findIdent(t *testing.T, src, name string) Node {
	t.Helper()
	f := parseSource(t, src)

	var found *Node
	build.Walk(f, func(expr build.Expr, stack []build.Expr) {
		if found != nil {
			return
		}
		if ident, ok := expr.(*build.Ident); ok && ident.Name == name {
			n := Node{Expr: expr, Stack: append([]build.Expr(nil), stack...)}
			found = &n
		}
	})
	if found == nil {
		t.Fatalf("no identifier %q in %q", name, src)
	}
	return *found
}

// TestKindOf verifies the dispatch kind for each handled shape.
func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind Kind
	}{
		{"function def", "def f(x):\n    pass\n", KindFunctionDef},
		{"lambda", "f = lambda x: x\n", KindLambda},
		{"call", "foo()\n", KindCall},
		{"ident", "x\n", KindIdent},
		{"dot", "a.b\n", KindDot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := findNode(t, tt.src, tt.kind)
			if node.Kind() != tt.kind {
				t.Errorf("Kind() = %s, want %s", node.Kind(), tt.kind)
			}
		})
	}
}

// TestKindOf_Unhandled verifies that other shapes map to the unhandled kind.
func TestKindOf_Unhandled(t *testing.T) {
	f := parseSource(t, "x = [1, 2]\n")
	for _, stmt := range f.Stmt {
		assign, ok := stmt.(*build.AssignExpr)
		if !ok {
			continue
		}
		if got := KindOf(assign.RHS); got != KindUnhandled {
			t.Errorf("KindOf(list) = %s, want %s", got, KindUnhandled)
		}
	}
}

// TestClassifyParam verifies classification of each parameter shape.
func TestClassifyParam(t *testing.T) {
	src := "def f(a, b = 1, *args, **kwargs):\n    pass\n"
	node := findNode(t, src, KindFunctionDef)

	params, ok := FunctionParams(node.Expr)
	if !ok {
		t.Fatal("FunctionParams returned !ok for a def")
	}
	if len(params) != 4 {
		t.Fatalf("got %d params, want 4", len(params))
	}

	want := []ParamKind{ParamNormal, ParamDefault, ParamRest, ParamKeywords}
	for i, p := range params {
		if got := ClassifyParam(p); got != want[i] {
			t.Errorf("param %d: got %v, want %v", i, got, want[i])
		}
	}
}

// TestParamCount verifies that the bare * marker is not counted.
func TestParamCount(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind Kind
		want int
	}{
		{"no params", "def f():\n    pass\n", KindFunctionDef, 0},
		{"two params", "def f(a, b):\n    pass\n", KindFunctionDef, 2},
		{"keyword-only marker excluded", "def f(a, *, b = 1):\n    pass\n", KindFunctionDef, 2},
		{"rest and keywords counted", "def f(*args, **kwargs):\n    pass\n", KindFunctionDef, 2},
		{"lambda", "f = lambda x, y: x\n", KindLambda, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := findNode(t, tt.src, tt.kind)
			if got := ParamCount(node.Expr); got != tt.want {
				t.Errorf("ParamCount = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestParamCount_NonFunction verifies the zero result for other shapes.
func TestParamCount_NonFunction(t *testing.T) {
	node := findNode(t, "foo()\n", KindCall)
	if got := ParamCount(node.Expr); got != 0 {
		t.Errorf("ParamCount on a call = %d, want 0", got)
	}
}

// TestRestParam verifies detection of *args parameters.
func TestRestParam(t *testing.T) {
	node := findNode(t, "def f(a, *args):\n    pass\n", KindFunctionDef)
	if _, ok := RestParam(node.Expr); !ok {
		t.Error("RestParam should find *args")
	}

	node = findNode(t, "def f(a, *, b = 1):\n    pass\n", KindFunctionDef)
	if _, ok := RestParam(node.Expr); ok {
		t.Error("bare * marker is not a rest parameter")
	}
}

// TestKeywordsParam verifies detection of **kwargs parameters.
func TestKeywordsParam(t *testing.T) {
	node := findNode(t, "def f(a, **kwargs):\n    pass\n", KindFunctionDef)
	if _, ok := KeywordsParam(node.Expr); !ok {
		t.Error("KeywordsParam should find **kwargs")
	}

	node = findNode(t, "def f(a):\n    pass\n", KindFunctionDef)
	if _, ok := KeywordsParam(node.Expr); ok {
		t.Error("KeywordsParam should not match a plain parameter")
	}
}

// TestIsIIFE verifies detection of immediately-invoked function expressions.
func TestIsIIFE(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"paren lambda call", "x = (lambda: 1)()\n", true},
		{"named call", "x = foo()\n", false},
		{"lambda not called", "f = lambda: 1\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseSource(t, tt.src)
			got := false
			build.Walk(f, func(expr build.Expr, stack []build.Expr) {
				if IsIIFE(expr) {
					got = true
				}
			})
			if got != tt.want {
				t.Errorf("IsIIFE = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestIsIIFECallee verifies the callee-side view of an immediate invocation.
func TestIsIIFECallee(t *testing.T) {
	node := findNode(t, "x = (lambda: 1)()\n", KindLambda)
	if !IsIIFECallee(node) {
		t.Error("lambda inside an immediate call should be an IIFE callee")
	}

	node = findNode(t, "f = lambda: 1\n", KindLambda)
	if IsIIFECallee(node) {
		t.Error("assigned lambda is not an IIFE callee")
	}

	node = findNode(t, "x = sorted(items, key = lambda i: i)\n", KindLambda)
	if IsIIFECallee(node) {
		t.Error("lambda passed as an argument is not an IIFE callee")
	}
}

// TestIsPropertyKey verifies that name slots are distinguished from value
// references.
func TestIsPropertyKey(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		ident string
		want  bool
	}{
		{"named argument key", "foo(alpha = 1)\n", "alpha", true},
		{"dict key", "d = {alpha: 1}\n", "alpha", true},
		{"dict value", "d = {\"k\": alpha}\n", "alpha", false},
		{"parameter name", "def f(alpha):\n    pass\n", "alpha", true},
		{"defaulted parameter name", "def f(alpha = 1):\n    pass\n", "alpha", true},
		{"rest parameter name", "def f(*alpha):\n    pass\n", "alpha", true},
		{"keywords parameter name", "def f(**alpha):\n    pass\n", "alpha", true},
		{"plain reference", "x = alpha\n", "alpha", false},
		{"call argument value", "foo(alpha)\n", "alpha", false},
		{"assignment target", "alpha = 1\n", "alpha", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := findIdent(t, tt.src, tt.ident)
			if got := IsPropertyKey(node); got != tt.want {
				t.Errorf("IsPropertyKey = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDerivedName verifies name derivation for the shapes that have one.
func TestDerivedName(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind Kind
		want string
	}{
		{"ident", "x\n", KindIdent, "x"},
		{"dotted path", "y = a.b.c\n", KindDot, "a.b.c"},
		{"function def", "def helper():\n    pass\n", KindFunctionDef, "helper"},
		{"lambda has no name", "f = lambda: 1\n", KindLambda, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := findNode(t, tt.src, tt.kind)
			if got := DerivedName(node.Expr); got != tt.want {
				t.Errorf("DerivedName = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCalleeName verifies callee name derivation on calls.
func TestCalleeName(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"simple call", "foo()\n", "foo"},
		{"dotted call", "Promise.reject(err)\n", "Promise.reject"},
		{"computed callee", "fns[0]()\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := findNode(t, tt.src, KindCall)
			if got := CalleeName(node.Expr); got != tt.want {
				t.Errorf("CalleeName = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestNode_Parent verifies parent and ancestor access.
func TestNode_Parent(t *testing.T) {
	node := findNode(t, "foo(a.b)\n", KindDot)

	if _, ok := node.Parent().(*build.CallExpr); !ok {
		t.Errorf("parent of the dot expression should be the call, got %T", node.Parent())
	}
	if node.Ancestor(1) != node.Parent() {
		t.Error("Ancestor(1) should equal Parent()")
	}
	if node.Ancestor(100) != nil {
		t.Error("Ancestor beyond the root should be nil")
	}
}
