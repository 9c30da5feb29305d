package ast

import (
	"fmt"

	"github.com/roxlang/rox/lang/token"
)

type (
	// ExprStmt represents an expression used as a statement.
	ExprStmt struct {
		Expr Expr
	}

	// PrintStmt represents a print statement.
	PrintStmt struct {
		Print token.Pos
		Expr  Expr
	}

	// VarStmt represents a variable declaration, with an optional
	// initializer.
	VarStmt struct {
		Var  token.Pos
		Name token.Token
		Init Expr // may be nil
	}

	// BlockStmt represents a braced block of statements.
	BlockStmt struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// IfStmt represents an if statement with an optional else branch.
	IfStmt struct {
		If   token.Pos
		Cond Expr
		Then Stmt
		Else Stmt // may be nil
	}

	// WhileStmt represents a while loop. "for" loops desugar to it at parse
	// time, wrapped in a BlockStmt when the loop has an initializer.
	WhileStmt struct {
		While token.Pos
		Cond  Expr
		Body  Stmt
	}

	// FuncStmt represents a function declaration, or a method when it
	// appears in a ClassStmt's Methods list (methods have no "fun" keyword,
	// so Fun is NoPos for them).
	FuncStmt struct {
		Fun    token.Pos // NoPos for methods
		Name   token.Token
		Params []token.Token
		Body   []Stmt
		Rbrace token.Pos
	}

	// ReturnStmt represents a return statement with an optional value. The
	// keyword is kept as a full token for error reporting.
	ReturnStmt struct {
		Keyword token.Token
		Value   Expr // may be nil
	}

	// ClassStmt represents a class declaration with an optional superclass
	// reference.
	ClassStmt struct {
		Class      token.Pos
		Name       token.Token
		Superclass *VarExpr // may be nil
		Methods    []*FuncStmt
		Rbrace     token.Pos
	}

	// BadStmt represents a bad statement that failed to parse.
	BadStmt struct {
		Start token.Pos
		End   token.Pos
	}
)

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.Expr.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *ExprStmt) stmt()                         {}

func (n *PrintStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "print", nil) }
func (n *PrintStmt) Span() (start, end token.Pos) {
	_, end = n.Expr.Span()
	return n.Print, end
}
func (n *PrintStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *PrintStmt) stmt()          {}

func (n *VarStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "var decl "+n.Name.Lexeme, nil)
}
func (n *VarStmt) Span() (start, end token.Pos) {
	if n.Init != nil {
		_, end = n.Init.Span()
	} else {
		_, end = tokenSpan(n.Name)
	}
	return n.Var, end
}
func (n *VarStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *VarStmt) stmt() {}

func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *BlockStmt) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) stmt() {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	var elseCount int
	if n.Else != nil {
		elseCount = 1
	}
	format(f, verb, n, "if", map[string]int{"else": elseCount})
}
func (n *IfStmt) Span() (start, end token.Pos) {
	if n.Else != nil {
		_, end = n.Else.Span()
	} else {
		_, end = n.Then.Span()
	}
	return n.If, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.While, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}

func (n *FuncStmt) Format(f fmt.State, verb rune) {
	lbl := "fun decl "
	if !n.Fun.IsValid() {
		lbl = "method "
	}
	format(f, verb, n, lbl+n.Name.Lexeme, map[string]int{"params": len(n.Params)})
}
func (n *FuncStmt) Span() (start, end token.Pos) {
	start = n.Fun
	if !start.IsValid() {
		start, _ = tokenSpan(n.Name)
	}
	return start, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *FuncStmt) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *FuncStmt) stmt() {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) {
	var exprCount int
	if n.Value != nil {
		exprCount = 1
	}
	format(f, verb, n, "return", map[string]int{"expr": exprCount})
}
func (n *ReturnStmt) Span() (start, end token.Pos) {
	start, end = tokenSpan(n.Keyword)
	if n.Value != nil {
		_, end = n.Value.Span()
	}
	return start, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) stmt() {}

func (n *ClassStmt) Format(f fmt.State, verb rune) {
	var inheritsCount int
	if n.Superclass != nil {
		inheritsCount = 1
	}
	format(f, verb, n, "class decl "+n.Name.Lexeme, map[string]int{
		"inherits": inheritsCount,
		"methods":  len(n.Methods),
	})
}
func (n *ClassStmt) Span() (start, end token.Pos) {
	return n.Class, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *ClassStmt) Walk(v Visitor) {
	if n.Superclass != nil {
		Walk(v, n.Superclass)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (n *ClassStmt) stmt() {}

func (n *BadStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "!bad stmt!", nil) }
func (n *BadStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *BadStmt) Walk(v Visitor)                {}
func (n *BadStmt) stmt()                         {}
