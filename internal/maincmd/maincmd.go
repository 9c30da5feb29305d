// Package maincmd implements the rox command-line tool: it runs source
// files, starts the interactive session, and exposes the individual pipeline
// phases (scanner, parser, resolver) for inspection.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/roxlang/rox/lang/token"
)

const binName = "rox"

// Exit codes of the rox tool: sysexits-style usage error, plus distinct
// codes for static (scan/parse/resolve) and runtime failures.
const (
	exitUsage   mainer.ExitCode = 64
	exitSyntax  mainer.ExitCode = 65
	exitRuntime mainer.ExitCode = 70
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the %[1]s programming language. With a <path>,
runs that file and exits; without one, starts an interactive session that
runs each line as it is entered (exit with an 'exit' line or ctrl-D).

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options when a <path> is provided:
       --tokenize                Execute only the scanner phase and print
                                 the resulting tokens.
       --parse                   Execute up to the parser phase and print
                                 the resulting abstract syntax tree (AST).
       --resolve                 Execute up to the resolver phase and print
                                 the resulting AST with variable resolution
                                 information.
       --pos                     Include position information in the
                                 --parse and --resolve output.
`, binName)
)

// Cmd is the rox command. Its exported fields are set by the flag parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Tokenize bool `flag:"tokenize"`
	Parse    bool `flag:"parse"`
	Resolve  bool `flag:"resolve"`
	Pos      bool `flag:"pos"`

	args  []string
	flags map[string]bool
}

// SetArgs implements the mainer interface to receive non-flag arguments.
func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

// SetFlags implements the mainer interface to receive the set flags.
func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

// Validate implements the mainer interface to validate the combination of
// flags and arguments.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) > 1 {
		return errors.New("at most one file may be provided")
	}

	var phases int
	for _, on := range []bool{c.Tokenize, c.Parse, c.Resolve} {
		if on {
			phases++
		}
	}
	if phases > 1 {
		return errors.New("at most one of --tokenize, --parse and --resolve may be set")
	}
	if phases == 1 && len(c.args) == 0 {
		return errors.New("a file must be provided to run a single phase")
	}
	if c.flags["pos"] && !c.Parse && !c.Resolve {
		return errors.New("invalid flag 'pos': requires --parse or --resolve")
	}
	return nil
}

// Main is the entry point of the command, it returns the process exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	posMode := token.PosNone
	if c.Pos {
		posMode = token.PosLong
	}

	switch {
	case c.Tokenize:
		if err := TokenizeFiles(ctx, stdio, c.args...); err != nil {
			return exitSyntax
		}
	case c.Parse:
		if err := ParseFiles(ctx, stdio, posMode, "", c.args...); err != nil {
			return exitSyntax
		}
	case c.Resolve:
		if err := ResolveFiles(ctx, stdio, posMode, "", c.args...); err != nil {
			return exitSyntax
		}
	case len(c.args) == 1:
		return c.runFile(ctx, stdio, c.args[0])
	default:
		return c.repl(ctx, stdio)
	}
	return mainer.Success
}
