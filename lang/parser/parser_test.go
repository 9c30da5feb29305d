package parser_test

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/roxlang/rox/internal/filetest"
	"github.com/roxlang/rox/internal/maincmd"
	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/parser"
	"github.com/roxlang/rox/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdateParserTests = flag.Bool("test.update-parser-tests", false, "If set, replace expected parser test results with actual results.")

func TestParser(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".rox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.ParseFiles(ctx, stdio, token.PosNone, "%v", filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateParserTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateParserTests)

			if t.Failed() && testing.Verbose() {
				b, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
				if assert.NoError(t, err) {
					t.Logf("source file:\n%s\n", string(b))
				}
			}
		})
	}
}

// The canonical source printer and the parser round-trip: rendering a parsed
// chunk and reparsing the result must yield a structurally identical tree,
// and re-rendering it the identical source text.
func TestSourceRoundTrip(t *testing.T) {
	ctx := context.Background()

	sources := []string{
		`var x = 1; print x + 2 * 3;`,
		`print (1 + 2) * 3;`,
		`print -x.y.z(1, "two", nil);`,
		`{ var a = "global"; { fun show() { print a; } show(); } }`,
		`if (a and b or !c) print 1; else { print 2; }`,
		`for (var i = 0; i < 3; i = i + 1) print i;`,
		`for (;;) x = x + 1;`,
		`while (x < 10) x = x * 2;`,
		`fun add(a, b) { return a + b; }`,
		`class B < A { init(x) { this.x = x; } method() { super.method(); return this; } }`,
		`x = y = z;`,
		`obj.field = other.method(1)(2);`,
	}
	for i, src := range sources {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			ch1, err := parser.ParseChunk(ctx, token.NewFileSet(), "a", []byte(src))
			require.NoError(t, err)

			src1 := ast.Source(ch1)
			ch2, err := parser.ParseChunk(ctx, token.NewFileSet(), "b", []byte(src1))
			require.NoError(t, err, "rendered source:\n%s", src1)

			// the reparsed tree must be structurally identical (positions
			// aside, which the dump does not include)
			assert.Equal(t, dumpTree(t, ch1), dumpTree(t, ch2))

			// and rendering is a fixed point
			assert.Equal(t, src1, ast.Source(ch2))
		})
	}
}

func dumpTree(t *testing.T, ch *ast.Chunk) string {
	t.Helper()

	var buf bytes.Buffer
	printer := ast.Printer{Output: &buf}
	require.NoError(t, printer.Print(ch, nil))
	return buf.String()
}

// The parser enforces the 255 parameters/arguments cap.
func TestArityCap(t *testing.T) {
	ctx := context.Background()

	var decl, call bytes.Buffer
	decl.WriteString("fun f(")
	call.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			decl.WriteString(", ")
			call.WriteString(", ")
		}
		fmt.Fprintf(&decl, "p%d", i)
		fmt.Fprintf(&call, "%d", i)
	}
	decl.WriteString(") { return 0; }")
	call.WriteString(");")

	_, err := parser.ParseChunk(ctx, token.NewFileSet(), "decl", decl.Bytes())
	assert.ErrorContains(t, err, "cannot have more than 255 parameters")

	_, err = parser.ParseChunk(ctx, token.NewFileSet(), "call", call.Bytes())
	assert.ErrorContains(t, err, "cannot have more than 255 arguments")
}

// An invalid assignment target is reported but parsing continues (the
// statement still parses, keeping its left-hand side expression).
func TestInvalidAssignTarget(t *testing.T) {
	ctx := context.Background()

	ch, err := parser.ParseChunk(ctx, token.NewFileSet(), "t", []byte("a + b = c; print 1;"))
	assert.ErrorContains(t, err, "invalid assignment target")
	require.Len(t, ch.Stmts, 2)
}

// Expression identities are unique and monotonically assigned: textually
// identical expressions at different positions must remain distinct.
func TestExprIdentity(t *testing.T) {
	ctx := context.Background()

	ch, err := parser.ParseChunk(ctx, token.NewFileSet(), "t", []byte("print a; print a;"))
	require.NoError(t, err)

	seen := make(map[int]bool)
	var count int
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		if e, ok := n.(ast.Expr); ok {
			assert.False(t, seen[e.ID()], "duplicate expression id %d", e.ID())
			seen[e.ID()] = true
			count++
		}
		return v
	}
	ast.Walk(v, ch)
	assert.Equal(t, 2, count) // the two variable references
}
