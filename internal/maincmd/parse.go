package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/parser"
	"github.com/roxlang/rox/lang/scanner"
	"github.com/roxlang/rox/lang/token"
)

// ParseFiles parses the source files and prints their ASTs to stdout. Parse
// errors print to stderr, after any successfully parsed trees.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, nodeFmt string, files ...string) error {
	printer := ast.Printer{
		Output:  stdio.Stdout,
		Pos:     posMode,
		NodeFmt: nodeFmt,
	}
	fs, chunks, err := parser.ParseFiles(ctx, files...)
	for _, ch := range chunks {
		if err := printer.Print(ch, fs.File(ch.Name)); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
