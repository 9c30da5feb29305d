package parser

import (
	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/token"
)

func (p *parser) parseChunk() *ast.Chunk {
	var chunk ast.Chunk

	var list []ast.Stmt
	for p.tok.Kind != token.EOF {
		if stmt := p.parseDecl(); stmt != nil {
			list = append(list, stmt)
		}
	}
	chunk.Stmts = list
	chunk.EOF = p.expect(token.EOF).Pos
	return &chunk
}

// parseDecl parses a single declaration or statement. On a syntax error it
// synchronizes to the next safe point and returns a BadStmt covering the
// interval.
func (p *parser) parseDecl() (stmt ast.Stmt) {
	start := p.tok.Pos

	defer func() {
		if err := recover(); err != nil {
			if err == errPanicMode {
				stmt = &ast.BadStmt{
					Start: start,
					End:   p.syncAfterError(),
				}
				return
			}
			panic(err)
		}
	}()

	switch p.tok.Kind {
	case token.CLASS:
		return p.parseClassDecl()
	case token.FUN:
		funPos := p.expect(token.FUN).Pos
		return p.parseFunction(funPos)
	case token.VAR:
		return p.parseVarDecl()
	default:
		return p.parseStmt()
	}
}

func (p *parser) parseClassDecl() *ast.ClassStmt {
	var stmt ast.ClassStmt
	stmt.Class = p.expect(token.CLASS).Pos
	stmt.Name = p.expect(token.IDENT)

	if p.tok.Kind == token.LT {
		p.advance()
		stmt.Superclass = &ast.VarExpr{ExprID: p.newID(), Name: p.expect(token.IDENT)}
	}

	p.expect(token.LBRACE)
	for p.tok.Kind != token.RBRACE && p.tok.Kind != token.EOF {
		stmt.Methods = append(stmt.Methods, p.parseFunction(token.NoPos))
	}
	stmt.Rbrace = p.expect(token.RBRACE).Pos
	return &stmt
}

// parseFunction parses a function declaration or, when funPos is NoPos, a
// method (which has no "fun" keyword).
func (p *parser) parseFunction(funPos token.Pos) *ast.FuncStmt {
	var stmt ast.FuncStmt
	stmt.Fun = funPos
	stmt.Name = p.expect(token.IDENT)

	p.expect(token.LPAREN)
	if p.tok.Kind != token.RPAREN {
		for {
			if len(stmt.Params) >= maxArity {
				p.error(p.tok.Pos, "cannot have more than 255 parameters")
			}
			stmt.Params = append(stmt.Params, p.expect(token.IDENT))
			if p.tok.Kind != token.COMMA {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RPAREN)

	p.expect(token.LBRACE)
	stmt.Body, stmt.Rbrace = p.parseBlockStmts()
	return &stmt
}

func (p *parser) parseVarDecl() *ast.VarStmt {
	var stmt ast.VarStmt
	stmt.Var = p.expect(token.VAR).Pos
	stmt.Name = p.expect(token.IDENT)
	if p.tok.Kind == token.EQ {
		p.advance()
		stmt.Init = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case token.FOR:
		return p.parseForStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseBlock() *ast.BlockStmt {
	var stmt ast.BlockStmt
	stmt.Lbrace = p.expect(token.LBRACE).Pos
	stmt.Stmts, stmt.Rbrace = p.parseBlockStmts()
	return &stmt
}

// parseBlockStmts parses declarations up to and including the closing brace,
// whose position is returned. The opening brace has already been consumed.
func (p *parser) parseBlockStmts() ([]ast.Stmt, token.Pos) {
	var list []ast.Stmt
	for p.tok.Kind != token.RBRACE && p.tok.Kind != token.EOF {
		if stmt := p.parseDecl(); stmt != nil {
			list = append(list, stmt)
		}
	}
	rbrace := p.expect(token.RBRACE).Pos
	return list, rbrace
}

// parseForStmt parses a for loop and desugars it into while form:
//
//	for (init; cond; incr) body
//
// becomes
//
//	{ init while (cond) { body incr; } }
//
// with the enclosing block omitted when there is no initializer, the inner
// block omitted when there is no increment, and a true literal standing in
// for an absent condition.
func (p *parser) parseForStmt() ast.Stmt {
	forPos := p.expect(token.FOR).Pos
	p.expect(token.LPAREN)

	var init ast.Stmt
	switch p.tok.Kind {
	case token.SEMICOLON:
		p.advance()
	case token.VAR:
		init = p.parseVarDecl()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if p.tok.Kind != token.SEMICOLON {
		cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON)

	var incr ast.Expr
	if p.tok.Kind != token.RPAREN {
		incr = p.parseExpr()
	}
	rparen := p.expect(token.RPAREN).Pos

	body := p.parseStmt()
	_, bodyEnd := body.Span()

	if incr != nil {
		body = &ast.BlockStmt{
			Lbrace: forPos,
			Stmts:  []ast.Stmt{body, &ast.ExprStmt{Expr: incr}},
			Rbrace: bodyEnd,
		}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{ExprID: p.newID(), Tok: token.Token{
			Kind:   token.TRUE,
			Lexeme: "true",
			Pos:    rparen,
			Line:   p.file.Line(rparen),
		}}
	}

	var loop ast.Stmt = &ast.WhileStmt{While: forPos, Cond: cond, Body: body}
	if init != nil {
		loop = &ast.BlockStmt{
			Lbrace: forPos,
			Stmts:  []ast.Stmt{init, loop},
			Rbrace: bodyEnd,
		}
	}
	return loop
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	var stmt ast.IfStmt
	stmt.If = p.expect(token.IF).Pos
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)
	stmt.Then = p.parseStmt()
	if p.tok.Kind == token.ELSE {
		p.advance()
		stmt.Else = p.parseStmt()
	}
	return &stmt
}

func (p *parser) parsePrintStmt() *ast.PrintStmt {
	var stmt ast.PrintStmt
	stmt.Print = p.expect(token.PRINT).Pos
	stmt.Expr = p.parseExpr()
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	var stmt ast.ReturnStmt
	stmt.Keyword = p.expect(token.RETURN)
	if p.tok.Kind != token.SEMICOLON {
		stmt.Value = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	var stmt ast.WhileStmt
	stmt.While = p.expect(token.WHILE).Pos
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)
	stmt.Body = p.parseStmt()
	return &stmt
}

func (p *parser) parseExprStmt() *ast.ExprStmt {
	var stmt ast.ExprStmt
	stmt.Expr = p.parseExpr()
	p.expect(token.SEMICOLON)
	return &stmt
}
