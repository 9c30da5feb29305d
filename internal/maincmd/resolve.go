package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/parser"
	"github.com/roxlang/rox/lang/resolver"
	"github.com/roxlang/rox/lang/scanner"
	"github.com/roxlang/rox/lang/token"
)

// ResolveFiles parses and resolves the source files and prints their ASTs to
// stdout, with resolved expressions suffixed by their "@hops" distance.
// Parse and resolve errors print to stderr, after any printed trees.
func ResolveFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, nodeFmt string, files ...string) error {
	fs, chunks, err := parser.ParseFiles(ctx, files...)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}

	locals := make(resolver.LocalsMap)
	rerr := resolver.ResolveFiles(ctx, fs, chunks, locals)

	printer := ast.Printer{
		Output:  stdio.Stdout,
		Pos:     posMode,
		NodeFmt: nodeFmt,
		Hops: func(e ast.Expr) (int, bool) {
			d, ok := locals[e.ID()]
			return d, ok
		},
	}
	for _, ch := range chunks {
		if err := printer.Print(ch, fs.File(ch.Name)); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	if rerr != nil {
		scanner.PrintError(stdio.Stderr, rerr)
	}
	return rerr
}
