package parser

import (
	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/token"
)

// The expression grammar encodes precedence in the call hierarchy, from
// lowest (assignment) to highest (primary):
//
//	assignment -> ( call "." IDENT | IDENT ) "=" assignment | logic_or
//	logic_or   -> logic_and ( "or" logic_and )*
//	logic_and  -> equality ( "and" equality )*
//	equality   -> comparison ( ("!="|"==") comparison )*
//	comparison -> term ( (">"|">="|"<"|"<=") term )*
//	term       -> factor ( ("-"|"+") factor )*
//	factor     -> unary ( ("/"|"*") unary )*
//	unary      -> ("!"|"-") unary | call
//	call       -> primary ( "(" args? ")" | "." IDENT )*
func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() ast.Expr {
	expr := p.parseOr()

	if p.tok.Kind == token.EQ {
		eq := p.expect(token.EQ)
		value := p.parseAssignment()

		switch e := expr.(type) {
		case *ast.VarExpr:
			return &ast.AssignExpr{ExprID: p.newID(), Name: e.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{ExprID: p.newID(), Object: e.Object, Name: e.Name, Value: value}
		}
		// the '=' is consumed, keep parsing with the left-hand side
		p.error(eq.Pos, "invalid assignment target")
	}
	return expr
}

func (p *parser) parseOr() ast.Expr {
	expr := p.parseAnd()
	for p.tok.Kind == token.OR {
		op := p.expect(token.OR)
		right := p.parseAnd()
		expr = &ast.LogicalExpr{ExprID: p.newID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseAnd() ast.Expr {
	expr := p.parseEquality()
	for p.tok.Kind == token.AND {
		op := p.expect(token.AND)
		right := p.parseEquality()
		expr = &ast.LogicalExpr{ExprID: p.newID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseEquality() ast.Expr {
	expr := p.parseComparison()
	for p.tok.Kind == token.BANGEQ || p.tok.Kind == token.EQEQ {
		op := p.expect(p.tok.Kind)
		right := p.parseComparison()
		expr = &ast.BinExpr{ExprID: p.newID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseComparison() ast.Expr {
	expr := p.parseTerm()
	for kindIn(p.tok.Kind, token.GT, token.GE, token.LT, token.LE) {
		op := p.expect(p.tok.Kind)
		right := p.parseTerm()
		expr = &ast.BinExpr{ExprID: p.newID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.tok.Kind == token.MINUS || p.tok.Kind == token.PLUS {
		op := p.expect(p.tok.Kind)
		right := p.parseFactor()
		expr = &ast.BinExpr{ExprID: p.newID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseFactor() ast.Expr {
	expr := p.parseUnary()
	for p.tok.Kind == token.SLASH || p.tok.Kind == token.STAR {
		op := p.expect(p.tok.Kind)
		right := p.parseUnary()
		expr = &ast.BinExpr{ExprID: p.newID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseUnary() ast.Expr {
	if p.tok.Kind == token.BANG || p.tok.Kind == token.MINUS {
		op := p.expect(p.tok.Kind)
		right := p.parseUnary()
		return &ast.UnaryExpr{ExprID: p.newID(), Op: op, Right: right}
	}
	return p.parseCall()
}

func (p *parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case token.LPAREN:
			expr = p.finishCall(expr)
		case token.DOT:
			p.advance()
			name := p.expect(token.IDENT)
			expr = &ast.GetExpr{ExprID: p.newID(), Object: expr, Name: name}
		default:
			return expr
		}
	}
}

// finishCall parses the argument list of a call whose callee has already
// been parsed. The opening paren has not been consumed yet.
func (p *parser) finishCall(callee ast.Expr) *ast.CallExpr {
	expr := ast.CallExpr{ExprID: p.newID(), Callee: callee}

	p.expect(token.LPAREN)
	if p.tok.Kind != token.RPAREN {
		for {
			if len(expr.Args) >= maxArity {
				p.error(p.tok.Pos, "cannot have more than 255 arguments")
			}
			expr.Args = append(expr.Args, p.parseExpr())
			if p.tok.Kind != token.COMMA {
				break
			}
			p.advance()
		}
	}
	expr.Rparen = p.expect(token.RPAREN)
	return &expr
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.tok.Kind {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NIL:
		return &ast.LiteralExpr{ExprID: p.newID(), Tok: p.expect(p.tok.Kind)}

	case token.IDENT:
		return &ast.VarExpr{ExprID: p.newID(), Name: p.expect(token.IDENT)}

	case token.THIS:
		return &ast.ThisExpr{ExprID: p.newID(), Keyword: p.expect(token.THIS)}

	case token.SUPER:
		keyword := p.expect(token.SUPER)
		p.expect(token.DOT)
		method := p.expect(token.IDENT)
		return &ast.SuperExpr{ExprID: p.newID(), Keyword: keyword, Method: method}

	case token.LPAREN:
		var expr ast.GroupExpr
		expr.ExprID = p.newID()
		expr.Lparen = p.expect(token.LPAREN).Pos
		expr.Expr = p.parseExpr()
		expr.Rparen = p.expect(token.RPAREN).Pos
		return &expr

	default:
		p.errorExpected(p.tok.Pos, "expression")
		panic(errPanicMode)
	}
}

func kindIn(k token.Kind, kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
