// Package resolver implements the static scope analysis pass that runs
// between parsing and evaluation. It walks the AST once, maintaining a stack
// of block scopes, and records for every variable-referencing expression the
// lexical hop count from the use site to its defining scope.
//
// The global scope is not represented on the stack: names that do not
// resolve to any block scope are left untouched and the evaluator looks them
// up dynamically in the globals environment.
//
// The resolver does not know about the evaluator directly; it reports hop
// distances through the Locals collaborator interface, so that either
// component can be driven in isolation.
package resolver

import (
	"context"
	"fmt"

	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/scanner"
	"github.com/roxlang/rox/lang/token"
)

// Locals is the write channel from the resolver to the evaluator. Resolve is
// called once for every expression that references a binding in an enclosing
// block scope; expressions it is not called for refer to globals.
type Locals interface {
	// Resolve records that the expression with identity id reads its binding
	// hops enclosing environments away from the evaluation-time environment.
	Resolve(id, hops int)
}

// LocalsMap is a basic Locals implementation backed by a map from expression
// identity to hop distance.
type LocalsMap map[int]int

// Resolve implements Locals for LocalsMap.
func (m LocalsMap) Resolve(id, hops int) { m[id] = hops }

// funcKind tracks what kind of function body is being resolved, to reject
// misplaced return statements.
type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
	funcMethod
	funcInitializer
)

// classKind tracks whether a class body is being resolved, to reject
// misplaced this/super expressions.
type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// initializerName is the method name that makes a method an initializer.
const initializerName = "init"

// ResolveFiles takes the file set and corresponding list of chunks from a
// successful parse result and resolves the variable references in the source
// code, reporting hop distances to locals. On success, the AST is ready to
// be evaluated.
//
// An AST that resulted in errors in the parse phase should never be passed
// to the resolver, the behavior is undefined.
//
// The returned error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ResolveFiles(ctx context.Context, fset *token.FileSet, chunks []*ast.Chunk, locals Locals) error {
	var r resolver
	r.locals = locals

	for _, ch := range chunks {
		r.init(fset.File(ch.Name))
		for _, s := range ch.Stmts {
			r.stmt(s)
		}
	}
	r.errors.Sort()
	return r.errors.Err()
}

// ResolveChunk is like ResolveFiles for a single chunk.
func ResolveChunk(ctx context.Context, fset *token.FileSet, ch *ast.Chunk, locals Locals) error {
	return ResolveFiles(ctx, fset, []*ast.Chunk{ch}, locals)
}

type resolver struct {
	file   *token.File
	errors scanner.ErrorList
	locals Locals

	// scopes is the stack of block scopes, innermost last. Each scope maps a
	// declared name to whether it is fully initialized: a name is declared
	// (false) while its initializer resolves, and defined (true) after.
	scopes []map[string]bool

	curFunc  funcKind
	curClass classKind
}

func (r *resolver) init(file *token.File) {
	r.file = file
	r.scopes = r.scopes[:0]
	r.curFunc = funcNone
	r.curClass = classNone
}

func (r *resolver) errorf(p token.Pos, format string, args ...interface{}) {
	r.errors.Add(r.file.Position(p), fmt.Sprintf(format, args...))
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts name in the innermost scope, marked not-yet-initialized.
// Declaring at the top level (empty scope stack) is a no-op, globals are
// resolved dynamically. Redeclaring a name in the same scope is an error
// unless allowDup is set (function parameters and the implicit this/super
// slots rebind freely).
func (r *resolver) declare(tok token.Token, allowDup bool) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[tok.Lexeme]; ok && !allowDup {
		// rule: can only shadow in a nested block
		r.errorf(tok.Pos, "already declared in this block: %s", tok.Lexeme)
		return
	}
	scope[tok.Lexeme] = false
}

// define marks name as fully initialized in the innermost scope.
func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal walks the scope stack top-down looking for name; if found at
// depth d (0 = innermost), it records d as the hop distance of the
// expression. Names not found on the stack are globals and stay unrecorded.
func (r *resolver) resolveLocal(id int, name string) {
	last := len(r.scopes) - 1
	for i := last; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals.Resolve(id, last-i)
			return
		}
	}
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.VarStmt:
		r.declare(stmt.Name, false)
		if stmt.Init != nil {
			r.expr(stmt.Init)
		}
		r.define(stmt.Name.Lexeme)

	case *ast.BlockStmt:
		r.beginScope()
		for _, s := range stmt.Stmts {
			r.stmt(s)
		}
		r.endScope()

	case *ast.FuncStmt:
		// bind the name before the body, so the function can recurse
		r.declare(stmt.Name, false)
		r.define(stmt.Name.Lexeme)
		r.function(stmt, funcFunction)

	case *ast.ClassStmt:
		r.class(stmt)

	case *ast.ExprStmt:
		r.expr(stmt.Expr)

	case *ast.PrintStmt:
		r.expr(stmt.Expr)

	case *ast.IfStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Then)
		if stmt.Else != nil {
			r.stmt(stmt.Else)
		}

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Body)

	case *ast.ReturnStmt:
		if r.curFunc == funcNone {
			r.errorf(stmt.Keyword.Pos, "cannot return from top-level code")
		}
		if stmt.Value != nil {
			if r.curFunc == funcInitializer {
				r.errorf(stmt.Keyword.Pos, "cannot return a value from an initializer")
			}
			r.expr(stmt.Value)
		}

	case *ast.BadStmt:
		// nothing to resolve

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

func (r *resolver) expr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		// nothing to do

	case *ast.VarExpr:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; declared && !defined {
				r.errorf(expr.Name.Pos, "cannot read local variable %s in its own initializer", expr.Name.Lexeme)
			}
		}
		r.resolveLocal(expr.ExprID, expr.Name.Lexeme)

	case *ast.AssignExpr:
		r.expr(expr.Value)
		r.resolveLocal(expr.ExprID, expr.Name.Lexeme)

	case *ast.UnaryExpr:
		r.expr(expr.Right)

	case *ast.BinExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.LogicalExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.GroupExpr:
		r.expr(expr.Expr)

	case *ast.CallExpr:
		r.expr(expr.Callee)
		for _, e := range expr.Args {
			r.expr(e)
		}

	case *ast.GetExpr:
		// the name is looked up dynamically, only the object resolves
		r.expr(expr.Object)

	case *ast.SetExpr:
		r.expr(expr.Value)
		r.expr(expr.Object)

	case *ast.ThisExpr:
		if r.curClass == classNone {
			r.errorf(expr.Keyword.Pos, "cannot use 'this' outside of a class")
			return
		}
		r.resolveLocal(expr.ExprID, expr.Keyword.Lexeme)

	case *ast.SuperExpr:
		switch r.curClass {
		case classNone:
			r.errorf(expr.Keyword.Pos, "cannot use 'super' outside of a class")
			return
		case classClass:
			r.errorf(expr.Keyword.Pos, "cannot use 'super' in a class with no superclass")
			return
		}
		r.resolveLocal(expr.ExprID, expr.Keyword.Lexeme)

	case *ast.BadExpr:
		// nothing to resolve

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

// function resolves a function or method body: parameters bind in a new
// scope that encloses the body's block scope.
func (r *resolver) function(fn *ast.FuncStmt, kind funcKind) {
	enclosing := r.curFunc
	r.curFunc = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param, true)
		r.define(param.Lexeme)
	}
	for _, s := range fn.Body {
		r.stmt(s)
	}
	r.endScope()

	r.curFunc = enclosing
}

func (r *resolver) class(cl *ast.ClassStmt) {
	enclosing := r.curClass
	r.curClass = classClass

	r.declare(cl.Name, false)
	r.define(cl.Name.Lexeme)

	if cl.Superclass != nil {
		r.curClass = classSubclass
		if cl.Superclass.Name.Lexeme == cl.Name.Lexeme {
			r.errorf(cl.Superclass.Name.Pos, "a class cannot inherit from itself")
		}
		r.expr(cl.Superclass)

		// the scope holding the implicit 'super' slot
		r.beginScope()
		r.define("super")
	}

	// the scope holding the implicit 'this' slot
	r.beginScope()
	r.define("this")

	for _, m := range cl.Methods {
		kind := funcMethod
		if m.Name.Lexeme == initializerName {
			kind = funcInitializer
		}
		r.function(m, kind)
	}

	r.endScope()
	if cl.Superclass != nil {
		r.endScope()
	}

	r.curClass = enclosing
}
