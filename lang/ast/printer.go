package ast

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roxlang/rox/lang/token"
)

// Printer controls pretty-printing of the AST nodes, one node per line in an
// indented tree form.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Pos indicates the position printing mode.
	Pos token.PosMode

	// NodeFmt is the format string to use to print the nodes. The verb must
	// be either `s` or `v`, a width can be set, and the `#` and `-` flags are
	// supported (`-` only when a width is set, to pad with spaces on the right
	// instead of the left). Defaults to `%v`.
	NodeFmt string

	// Hops optionally reports the resolved lexical hop distance of an
	// expression. When set, expressions for which it reports ok are printed
	// with an "@distance" suffix. It is used to print a resolved AST.
	Hops func(e Expr) (hops int, ok bool)
}

// Print pretty-prints the AST node n from the specified file. The file
// argument is only required for printing positions, if p.Pos ==
// token.PosNone, it does not have to be provided.
func (p *Printer) Print(n Node, file *token.File) error {
	if file == nil && p.Pos != token.PosNone {
		return errors.New("file must be provided to print positions")
	}

	pp := &printer{
		w:       p.Output,
		pos:     p.Pos,
		nodeFmt: p.NodeFmt,
		hops:    p.Hops,
		file:    file,
	}
	if p.NodeFmt == "" {
		pp.nodeFmt = "%v"
	}

	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	pos     token.PosMode
	nodeFmt string
	hops    func(e Expr) (int, bool)
	file    *token.File
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.pos != token.PosNone {
		format += "[%s:%s] "
		start, end := n.Span()
		args = append(args,
			token.FormatPos(p.pos, p.file, start),
			token.FormatPos(p.pos, p.file, end),
		)
	}
	format += p.nodeFmt
	args = append(args, n)

	if p.hops != nil {
		if e, ok := n.(Expr); ok {
			if d, ok := p.hops(e); ok {
				format += "@%d"
				args = append(args, d)
			}
		}
	}
	format += "\n"

	_, p.err = fmt.Fprintf(p.w, format, args...)
}
