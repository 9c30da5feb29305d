// Package ast defines the types to represent the abstract syntax tree (AST)
// of the language. The parser desugars "for" loops into "while" loops, so
// the AST has no "for" node; except for that desugaring, whitespace
// normalization and comment removal, the tree could recreate the source code
// precisely.
//
// Every expression node carries a stable identity, a small integer assigned
// by the parser at construction time. The identity is the key under which
// the resolver records lexical hop distances for the evaluator; two
// textually identical expressions at different source positions have
// distinct identities.
package ast

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/roxlang/rox/lang/token"
)

var lastID atomic.Int64

// NewID returns the next expression identity. Identities are monotonically
// increasing and never reused for the lifetime of the process, so hop
// distances recorded against one tree can never be confused with those of
// another tree evaluated by the same evaluator (as happens in the REPL,
// where every line is a new tree but closures from earlier lines stay
// live).
func NewID() int { return int(lastID.Add(1)) }

// Node represents any node in the AST.
type Node interface {
	// Every Node implements the fmt.Formatter interface so they can print a
	// description of themselves. The only supported verbs are 'v' and 's'.
	// The '#' flag can be used to print count information about children
	// nodes. A width can be set to define the number of runes to print for
	// the node description - by default, that width is padded with spaces
	// on the left if the description is shorter, otherwise it is truncated
	// to that width. The '-' flag can be used to pad with spaces on the
	// right instead, and the '+' flag can be used to prevent padding
	// altogether - it only truncates if longer.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each node inside itself to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node

	// ID returns the expression's stable identity.
	ID() int

	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

// Chunk represents a parsed source file (or REPL line): the list of
// top-level declarations plus the position of the EOF marker, which is
// useful for empty files to get a valid position.
type Chunk struct {
	// Name is the filename, which may be empty if the chunk is not a file.
	Name string

	// Stmts is the list of top-level statements in the chunk.
	Stmts []Stmt

	EOF token.Pos // position of the EOF marker
}

func (n *Chunk) Format(f fmt.State, verb rune) {
	format(f, verb, n, "chunk", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Chunk) Span() (start, end token.Pos) {
	if len(n.Stmts) == 0 {
		return n.EOF, n.EOF
	}
	start, _ = n.Stmts[0].Span()
	_, end = n.Stmts[len(n.Stmts)-1].Span()
	return start, end
}
func (n *Chunk) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	// replace tabs and newlines with the corresponding unicode key
	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")
	label = strings.ReplaceAll(label, "\v", "⭿")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
