package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mna/mainer"
	"github.com/roxlang/rox/lang/interp"
	"github.com/roxlang/rox/lang/parser"
	"github.com/roxlang/rox/lang/resolver"
	"github.com/roxlang/rox/lang/scanner"
	"github.com/roxlang/rox/lang/token"
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

// repl runs the interactive session: each line goes through the full
// pipeline against a persistent evaluator, so definitions accumulate across
// lines. Errors of any kind print and the session continues; it ends on an
// "exit" line or EOF.
func (c *Cmd) repl(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	defer rl.Close()

	cyanColor.Fprintf(stdio.Stdout, "%s %s (type 'exit' or ctrl-D to quit)\n", binName, c.BuildVersion)

	it := interp.New()
	it.Stdout = stdio.Stdout
	fset := token.NewFileSet()

	for lineno := 1; ; lineno++ {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(stdio.Stderr, err)
			}
			return mainer.Success
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return mainer.Success
		}
		rl.SaveHistory(line)

		name := fmt.Sprintf("repl:%d", lineno)
		runLine(ctx, stdio, it, fset, name, []byte(line))
	}
}

// runLine runs a single REPL line through parse, resolve and eval, printing
// any error in red to stderr.
func runLine(ctx context.Context, stdio mainer.Stdio, it *interp.Interp, fset *token.FileSet, name string, src []byte) {
	ch, err := parser.ParseChunk(ctx, fset, name, src)
	if err != nil {
		printErrorList(stdio, err)
		return
	}
	if err := resolver.ResolveChunk(ctx, fset, ch, it); err != nil {
		printErrorList(stdio, err)
		return
	}
	if err := it.RunChunk(ctx, ch); err != nil {
		redColor.Fprintf(stdio.Stderr, "%s\n", err)
	}
}

func printErrorList(stdio mainer.Stdio, err error) {
	var el scanner.ErrorList
	if errors.As(err, &el) {
		for _, e := range el {
			redColor.Fprintf(stdio.Stderr, "%s\n", e)
		}
		return
	}
	redColor.Fprintf(stdio.Stderr, "%s\n", err)
}

// the evaluator must satisfy the resolver's collaborator interface.
var _ resolver.Locals = (*interp.Interp)(nil)
