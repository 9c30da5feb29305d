package ast

import (
	"fmt"
	"io"
	"strings"
)

// WriteSource renders n back to canonical source form. The output parses to
// a tree that is structurally identical to n: "for" loops (already desugared
// in the AST) print as their "while" form, and formatting is normalized to
// one top-level statement per line with single spaces elsewhere.
func WriteSource(w io.Writer, n Node) error {
	var b strings.Builder
	switch n := n.(type) {
	case *Chunk:
		for _, s := range n.Stmts {
			writeStmt(&b, s)
			b.WriteByte('\n')
		}
	case Stmt:
		writeStmt(&b, n)
		b.WriteByte('\n')
	case Expr:
		writeExpr(&b, n)
		b.WriteByte('\n')
	default:
		return fmt.Errorf("cannot render node %T to source", n)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Source is a convenience wrapper around WriteSource that returns the
// rendered source as a string.
func Source(n Node) string {
	var b strings.Builder
	_ = WriteSource(&b, n) // strings.Builder does not fail
	return b.String()
}

func writeStmt(b *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *ExprStmt:
		writeExpr(b, s.Expr)
		b.WriteByte(';')

	case *PrintStmt:
		b.WriteString("print ")
		writeExpr(b, s.Expr)
		b.WriteByte(';')

	case *VarStmt:
		b.WriteString("var ")
		b.WriteString(s.Name.Lexeme)
		if s.Init != nil {
			b.WriteString(" = ")
			writeExpr(b, s.Init)
		}
		b.WriteByte(';')

	case *BlockStmt:
		writeBlock(b, s.Stmts)

	case *IfStmt:
		b.WriteString("if (")
		writeExpr(b, s.Cond)
		b.WriteString(") ")
		writeStmt(b, s.Then)
		if s.Else != nil {
			b.WriteString(" else ")
			writeStmt(b, s.Else)
		}

	case *WhileStmt:
		b.WriteString("while (")
		writeExpr(b, s.Cond)
		b.WriteString(") ")
		writeStmt(b, s.Body)

	case *FuncStmt:
		if s.Fun.IsValid() {
			b.WriteString("fun ")
		}
		writeFunc(b, s)

	case *ReturnStmt:
		b.WriteString("return")
		if s.Value != nil {
			b.WriteByte(' ')
			writeExpr(b, s.Value)
		}
		b.WriteByte(';')

	case *ClassStmt:
		b.WriteString("class ")
		b.WriteString(s.Name.Lexeme)
		if s.Superclass != nil {
			b.WriteString(" < ")
			b.WriteString(s.Superclass.Name.Lexeme)
		}
		b.WriteString(" {")
		for _, m := range s.Methods {
			b.WriteByte(' ')
			writeFunc(b, m)
		}
		b.WriteString(" }")

	case *BadStmt:
		// nothing sensible to render

	default:
		panic(fmt.Sprintf("unexpected stmt %T", s))
	}
}

func writeFunc(b *strings.Builder, fn *FuncStmt) {
	b.WriteString(fn.Name.Lexeme)
	b.WriteByte('(')
	for i, param := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Lexeme)
	}
	b.WriteString(") ")
	writeBlock(b, fn.Body)
}

func writeBlock(b *strings.Builder, stmts []Stmt) {
	b.WriteByte('{')
	for _, s := range stmts {
		b.WriteByte(' ')
		writeStmt(b, s)
	}
	b.WriteString(" }")
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *LiteralExpr:
		b.WriteString(e.Tok.Lexeme)

	case *VarExpr:
		b.WriteString(e.Name.Lexeme)

	case *AssignExpr:
		b.WriteString(e.Name.Lexeme)
		b.WriteString(" = ")
		writeExpr(b, e.Value)

	case *UnaryExpr:
		b.WriteString(e.Op.Lexeme)
		writeExpr(b, e.Right)

	case *BinExpr:
		writeExpr(b, e.Left)
		b.WriteByte(' ')
		b.WriteString(e.Op.Lexeme)
		b.WriteByte(' ')
		writeExpr(b, e.Right)

	case *LogicalExpr:
		writeExpr(b, e.Left)
		b.WriteByte(' ')
		b.WriteString(e.Op.Lexeme)
		b.WriteByte(' ')
		writeExpr(b, e.Right)

	case *GroupExpr:
		b.WriteByte('(')
		writeExpr(b, e.Expr)
		b.WriteByte(')')

	case *CallExpr:
		writeExpr(b, e.Callee)
		b.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, arg)
		}
		b.WriteByte(')')

	case *GetExpr:
		writeExpr(b, e.Object)
		b.WriteByte('.')
		b.WriteString(e.Name.Lexeme)

	case *SetExpr:
		writeExpr(b, e.Object)
		b.WriteByte('.')
		b.WriteString(e.Name.Lexeme)
		b.WriteString(" = ")
		writeExpr(b, e.Value)

	case *ThisExpr:
		b.WriteString("this")

	case *SuperExpr:
		b.WriteString("super.")
		b.WriteString(e.Method.Lexeme)

	case *BadExpr:
		// nothing sensible to render

	default:
		panic(fmt.Sprintf("unexpected expr %T", e))
	}
}
