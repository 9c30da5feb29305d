package ast

import (
	"fmt"

	"github.com/roxlang/rox/lang/token"
)

type (
	// LiteralExpr represents a nil, boolean, number or string constant. The
	// constant is carried by the token (its kind for nil/true/false, its Num
	// or Str value otherwise).
	LiteralExpr struct {
		ExprID int
		Tok    token.Token
	}

	// VarExpr represents an identifier reference.
	VarExpr struct {
		ExprID int
		Name   token.Token
	}

	// AssignExpr represents an assignment to a variable, e.g. x = 1. The
	// parser only produces it when the assignment target was a VarExpr.
	AssignExpr struct {
		ExprID int
		Name   token.Token
		Value  Expr
	}

	// UnaryExpr represents a unary operator expression, '!' or '-'.
	UnaryExpr struct {
		ExprID int
		Op     token.Token
		Right  Expr
	}

	// BinExpr represents a binary arithmetic, comparison or equality
	// expression, e.g. x + y.
	BinExpr struct {
		ExprID int
		Left   Expr
		Op     token.Token
		Right  Expr
	}

	// LogicalExpr represents an "and" or "or" expression. It is distinct
	// from BinExpr because its right operand evaluates conditionally.
	LogicalExpr struct {
		ExprID int
		Left   Expr
		Op     token.Token
		Right  Expr
	}

	// GroupExpr represents an expression wrapped in parentheses.
	GroupExpr struct {
		ExprID int
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// CallExpr represents a function call, e.g. x(y, z). Rparen is kept as a
	// full token because runtime call errors (arity, non-callable callee)
	// are reported at its line.
	CallExpr struct {
		ExprID int
		Callee Expr
		Args   []Expr
		Rparen token.Token
	}

	// GetExpr represents a property read, e.g. x.y.
	GetExpr struct {
		ExprID int
		Object Expr
		Name   token.Token
	}

	// SetExpr represents a property write, e.g. x.y = z. The parser only
	// produces it when the assignment target was a GetExpr.
	SetExpr struct {
		ExprID int
		Object Expr
		Name   token.Token
		Value  Expr
	}

	// ThisExpr represents the "this" keyword.
	ThisExpr struct {
		ExprID  int
		Keyword token.Token
	}

	// SuperExpr represents a superclass method access, e.g. super.m.
	SuperExpr struct {
		ExprID  int
		Keyword token.Token
		Method  token.Token
	}

	// BadExpr represents a bad expression that failed to parse.
	BadExpr struct {
		ExprID int
		Start  token.Pos
		End    token.Pos
	}
)

func tokenSpan(t token.Token) (start, end token.Pos) {
	return t.Pos, t.Pos + token.Pos(len(t.Lexeme))
}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "literal "+n.Tok.Lexeme, nil)
}
func (n *LiteralExpr) Span() (start, end token.Pos) { return tokenSpan(n.Tok) }
func (n *LiteralExpr) Walk(v Visitor)               {}
func (n *LiteralExpr) ID() int                      { return n.ExprID }
func (n *LiteralExpr) expr()                        {}

func (n *VarExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "variable "+n.Name.Lexeme, nil)
}
func (n *VarExpr) Span() (start, end token.Pos) { return tokenSpan(n.Name) }
func (n *VarExpr) Walk(v Visitor)               {}
func (n *VarExpr) ID() int                      { return n.ExprID }
func (n *VarExpr) expr()                        {}

func (n *AssignExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Name.Lexeme, nil)
}
func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = tokenSpan(n.Name)
	_, end = n.Value.Span()
	return start, end
}
func (n *AssignExpr) Walk(v Visitor) { Walk(v, n.Value) }
func (n *AssignExpr) ID() int        { return n.ExprID }
func (n *AssignExpr) expr()          {}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.Kind.GoString(), nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.Op.Pos, end
}
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *UnaryExpr) ID() int        { return n.ExprID }
func (n *UnaryExpr) expr()          {}

func (n *BinExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.Kind.GoString(), nil)
}
func (n *BinExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinExpr) ID() int { return n.ExprID }
func (n *BinExpr) expr()   {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "logical "+n.Op.Kind.String(), nil)
}
func (n *LogicalExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) ID() int { return n.ExprID }
func (n *LogicalExpr) expr()   {}

func (n *GroupExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "(expr)", nil)
}
func (n *GroupExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *GroupExpr) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *GroupExpr) ID() int        { return n.ExprID }
func (n *GroupExpr) expr()          {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Callee.Span()
	_, end = tokenSpan(n.Rparen)
	return start, end
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *CallExpr) ID() int { return n.ExprID }
func (n *CallExpr) expr()   {}

func (n *GetExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "get "+n.Name.Lexeme, nil)
}
func (n *GetExpr) Span() (start, end token.Pos) {
	start, _ = n.Object.Span()
	_, end = tokenSpan(n.Name)
	return start, end
}
func (n *GetExpr) Walk(v Visitor) { Walk(v, n.Object) }
func (n *GetExpr) ID() int        { return n.ExprID }
func (n *GetExpr) expr()          {}

func (n *SetExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "set "+n.Name.Lexeme, nil)
}
func (n *SetExpr) Span() (start, end token.Pos) {
	start, _ = n.Object.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *SetExpr) Walk(v Visitor) {
	Walk(v, n.Object)
	Walk(v, n.Value)
}
func (n *SetExpr) ID() int { return n.ExprID }
func (n *SetExpr) expr()   {}

func (n *ThisExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "this", nil)
}
func (n *ThisExpr) Span() (start, end token.Pos) { return tokenSpan(n.Keyword) }
func (n *ThisExpr) Walk(v Visitor)               {}
func (n *ThisExpr) ID() int                      { return n.ExprID }
func (n *ThisExpr) expr()                        {}

func (n *SuperExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "super."+n.Method.Lexeme, nil)
}
func (n *SuperExpr) Span() (start, end token.Pos) {
	start, _ = tokenSpan(n.Keyword)
	_, end = tokenSpan(n.Method)
	return start, end
}
func (n *SuperExpr) Walk(v Visitor) {}
func (n *SuperExpr) ID() int        { return n.ExprID }
func (n *SuperExpr) expr()          {}

func (n *BadExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad expr!", nil)
}
func (n *BadExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *BadExpr) Walk(v Visitor)               {}
func (n *BadExpr) ID() int                      { return n.ExprID }
func (n *BadExpr) expr()                        {}
