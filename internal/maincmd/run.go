package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/roxlang/rox/lang/interp"
	"github.com/roxlang/rox/lang/parser"
	"github.com/roxlang/rox/lang/resolver"
	"github.com/roxlang/rox/lang/scanner"
)

// runFile executes the full pipeline on a source file: parse, resolve, run.
// Static errors print to stderr and exit with the syntax code, runtime
// errors with the runtime code.
func (c *Cmd) runFile(ctx context.Context, stdio mainer.Stdio, file string) mainer.ExitCode {
	fset, chunks, err := parser.ParseFiles(ctx, file)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return exitSyntax
	}

	it := interp.New()
	it.Stdout = stdio.Stdout

	if err := resolver.ResolveFiles(ctx, fset, chunks, it); err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return exitSyntax
	}

	for _, ch := range chunks {
		if err := it.RunChunk(ctx, ch); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return exitRuntime
		}
	}
	return mainer.Success
}
