package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/roxlang/rox/lang/scanner"
	"github.com/roxlang/rox/lang/token"
)

// TokenizeFiles scans the source files and prints their tokens to stdout,
// one per line as "line: KIND [lexeme]". Scan errors print to stderr.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	_, tokensByFile, err := scanner.ScanFiles(ctx, files...)
	for _, toks := range tokensByFile {
		for _, tok := range toks {
			switch tok.Kind {
			case token.IDENT, token.NUMBER, token.STRING:
				fmt.Fprintf(stdio.Stdout, "%d: %s %s\n", tok.Line, tok.Kind, tok.Lexeme)
			default:
				fmt.Fprintf(stdio.Stdout, "%d: %s\n", tok.Line, tok.Kind)
			}
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
