package resolver_test

import (
	"context"
	"testing"

	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/parser"
	"github.com/roxlang/rox/lang/resolver"
	"github.com/roxlang/rox/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSource(t *testing.T, src string) (*ast.Chunk, resolver.LocalsMap, error) {
	t.Helper()

	ctx := context.Background()
	fset := token.NewFileSet()
	ch, err := parser.ParseChunk(ctx, fset, "test", []byte(src))
	require.NoError(t, err)

	locals := make(resolver.LocalsMap)
	return ch, locals, resolver.ResolveChunk(ctx, fset, ch, locals)
}

// varHops collects, in evaluation order, the recorded hop distance of each
// variable reference with the given name (-1 when the reference resolves to
// globals).
func varHops(ch *ast.Chunk, locals resolver.LocalsMap, name string) []int {
	var hops []int
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		if ve, ok := n.(*ast.VarExpr); ok && ve.Name.Lexeme == name {
			if d, ok := locals[ve.ExprID]; ok {
				hops = append(hops, d)
			} else {
				hops = append(hops, -1)
			}
		}
		return v
	}
	ast.Walk(v, ch)
	return hops
}

func TestHopDistances(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want map[string][]int
	}{
		{
			name: "globals stay unresolved",
			src:  `var a = 1; print a; { print a; }`,
			want: map[string][]int{"a": {-1, -1}},
		},
		{
			name: "same block",
			src:  `{ var a = 1; print a; }`,
			want: map[string][]int{"a": {0}},
		},
		{
			name: "nested block",
			src:  `{ var a = 1; { print a; { print a; } } }`,
			want: map[string][]int{"a": {1, 2}},
		},
		{
			name: "shadowing rebinds the inner reference",
			src:  `{ var a = 1; { var a = 2; print a; } print a; }`,
			want: map[string][]int{"a": {0, 0}},
		},
		{
			name: "closure capture",
			src:  `fun outer() { var i = 0; fun inner() { i = i + 1; print i; } }`,
			want: map[string][]int{"i": {1, 1}},
		},
		{
			name: "parameters resolve like locals",
			src:  `fun f(a) { print a; { print a; } }`,
			want: map[string][]int{"a": {0, 1}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch, locals, err := resolveSource(t, c.src)
			require.NoError(t, err)
			for name, want := range c.want {
				assert.Equal(t, want, varHops(ch, locals, name), "hops of %s", name)
			}
		})
	}
}

// The hop map is a pure function of the AST: resolving the same tree twice
// yields the same map.
func TestResolveIdempotent(t *testing.T) {
	ctx := context.Background()
	src := `
fun outer() {
  var i = 0;
  fun inner(a) { i = i + a; return i; }
  return inner;
}
class C { init() { this.x = 1; } get() { return this.x; } }
`
	fset := token.NewFileSet()
	ch, err := parser.ParseChunk(ctx, fset, "test", []byte(src))
	require.NoError(t, err)

	first := make(resolver.LocalsMap)
	require.NoError(t, resolver.ResolveChunk(ctx, fset, ch, first))
	second := make(resolver.LocalsMap)
	require.NoError(t, resolver.ResolveChunk(ctx, fset, ch, second))
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestThisSuperHops(t *testing.T) {
	src := `
class B < A {
  method() {
    print this;
    fun nested() { print this; }
    super.method();
  }
}
`
	// declare A so the superclass reference resolves (to globals)
	src = "var A;" + src

	ch, locals, err := resolveSource(t, src)
	require.NoError(t, err)

	type ref struct {
		hops int
		ok   bool
	}
	var thisRefs, superRefs []ref
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		switch n := n.(type) {
		case *ast.ThisExpr:
			d, ok := locals[n.ExprID]
			thisRefs = append(thisRefs, ref{d, ok})
		case *ast.SuperExpr:
			d, ok := locals[n.ExprID]
			superRefs = append(superRefs, ref{d, ok})
		}
		return v
	}
	ast.Walk(v, ch)

	// method body: this scope is 1 hop away (method params+body scope, then
	// the implicit this scope); inside the nested function, one more.
	require.Len(t, thisRefs, 2)
	assert.Equal(t, ref{1, true}, thisRefs[0])
	assert.Equal(t, ref{2, true}, thisRefs[1])

	// super lives one scope above this.
	require.Len(t, superRefs, 1)
	assert.Equal(t, ref{2, true}, superRefs[0])
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "own initializer",
			src:  `{ var a = 1; { var a = a; } }`,
			want: "cannot read local variable a in its own initializer",
		},
		{
			name: "redeclaration in block",
			src:  `{ var a = 1; var a = 2; }`,
			want: "already declared in this block: a",
		},
		{
			name: "return at top level",
			src:  `return 1;`,
			want: "cannot return from top-level code",
		},
		{
			name: "return value in initializer",
			src:  `class C { init() { return 1; } }`,
			want: "cannot return a value from an initializer",
		},
		{
			name: "this outside class",
			src:  `print this;`,
			want: "cannot use 'this' outside of a class",
		},
		{
			name: "this in plain function",
			src:  `fun f() { print this; }`,
			want: "cannot use 'this' outside of a class",
		},
		{
			name: "super outside class",
			src:  `fun f() { super.m(); }`,
			want: "cannot use 'super' outside of a class",
		},
		{
			name: "super without superclass",
			src:  `class C { m() { super.m(); } }`,
			want: "cannot use 'super' in a class with no superclass",
		},
		{
			name: "self inheritance",
			src:  `class A < A {}`,
			want: "a class cannot inherit from itself",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := resolveSource(t, c.src)
			assert.ErrorContains(t, err, c.want)
		})
	}
}

func TestResolveAllowed(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{
			name: "bare return in initializer",
			src:  `class C { init() { return; } }`,
		},
		{
			name: "global redeclaration",
			src:  `var a = 1; var a = 2;`,
		},
		{
			name: "shadowing in nested block",
			src:  `{ var a = 1; { var a = 2; } }`,
		},
		{
			name: "function recursion",
			src:  `fun f(n) { if (n > 0) f(n - 1); }`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := resolveSource(t, c.src)
			assert.NoError(t, err)
		})
	}
}
