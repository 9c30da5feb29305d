package interp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/token"
)

// Error is a runtime error, tagged with the source line of the offending
// token. In file mode it unwinds the whole call stack to the driver; the
// REPL reports it and continues.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("[line %d] %s", e.Line, e.Msg) }

func errorAt(tok token.Token, format string, args ...interface{}) *Error {
	return &Error{Line: tok.Line, Msg: fmt.Sprintf(format, args...)}
}

// returnSignal unwinds a return statement up to the nearest function call
// frame. It implements error so that it flows through the same channel as
// runtime errors, but it never escapes a Function call (the resolver rejects
// return at the top level).
type returnSignal struct {
	value Value
}

func (*returnSignal) Error() string { return "internal error: unhandled return" }

// An Interp is a tree-walking evaluator. It carries the globals frame, the
// current environment, and the hop distances recorded by the resolver. An
// Interp is not safe for concurrent use; evaluation is blocking recursion on
// the calling goroutine.
type Interp struct {
	// Stdout is where the print statement writes. If nil, os.Stdout is used.
	Stdout io.Writer

	globals *Env
	env     *Env
	locals  map[int]int
}

// New creates an evaluator whose globals frame is populated with the
// Universe natives.
func New() *Interp {
	g := NewEnv(nil)
	for name, v := range Universe {
		g.Define(name, v)
	}
	return &Interp{
		globals: g,
		env:     g,
		locals:  make(map[int]int),
	}
}

// Globals returns the globals frame, the unique root environment.
func (it *Interp) Globals() *Env { return it.globals }

// DefineNative registers a host function in the globals frame. It is the
// registration surface for embedders; the Universe natives are pre-defined.
func (it *Interp) DefineNative(name string, arity int, fn func(it *Interp, args []Value) (Value, error)) {
	it.globals.Define(name, NewBuiltin(name, arity, fn))
}

// Resolve records the hop distance of the expression with identity id. It
// implements the resolver's Locals interface.
func (it *Interp) Resolve(id, hops int) {
	it.locals[id] = hops
}

// Hops reports the recorded hop distance of e, if any. It is the read-side
// counterpart of Resolve, usable as an ast.Printer Hops callback.
func (it *Interp) Hops(e ast.Expr) (int, bool) {
	d, ok := it.locals[e.ID()]
	return d, ok
}

func (it *Interp) stdout() io.Writer {
	if it.Stdout != nil {
		return it.Stdout
	}
	return os.Stdout
}

// RunChunk executes the chunk's top-level statements in order. The chunk
// must have been resolved against this evaluator first. The returned error,
// if non-nil, is a *Error (or the context's error if ctx was cancelled
// between statements).
func (it *Interp) RunChunk(ctx context.Context, ch *ast.Chunk) error {
	for _, s := range ch.Stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := it.exec(s); err != nil {
			return err
		}
	}
	return nil
}

// exec evaluates a statement for its side effects. The returned error is
// either a runtime *Error or a *returnSignal unwinding to the nearest
// function call frame.
func (it *Interp) exec(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		_, err := it.eval(stmt.Expr)
		return err

	case *ast.PrintStmt:
		v, err := it.eval(stmt.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.stdout(), v.String())
		return nil

	case *ast.VarStmt:
		var v Value = Nil
		if stmt.Init != nil {
			var err error
			if v, err = it.eval(stmt.Init); err != nil {
				return err
			}
		}
		it.env.Define(stmt.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return it.execBlock(stmt.Stmts, NewEnv(it.env))

	case *ast.IfStmt:
		cond, err := it.eval(stmt.Cond)
		if err != nil {
			return err
		}
		if Truth(cond) {
			return it.exec(stmt.Then)
		}
		if stmt.Else != nil {
			return it.exec(stmt.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := it.eval(stmt.Cond)
			if err != nil {
				return err
			}
			if !Truth(cond) {
				return nil
			}
			if err := it.exec(stmt.Body); err != nil {
				return err
			}
		}

	case *ast.FuncStmt:
		fn := &Function{decl: stmt, closure: it.env}
		it.env.Define(stmt.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var v Value = Nil
		if stmt.Value != nil {
			var err error
			if v, err = it.eval(stmt.Value); err != nil {
				return err
			}
		}
		return &returnSignal{value: v}

	case *ast.ClassStmt:
		return it.execClass(stmt)

	default:
		panic(fmt.Sprintf("internal error: executing %T", stmt))
	}
}

// execBlock executes stmts with env installed as the current environment,
// restoring the previous environment on every exit path.
func (it *Interp) execBlock(stmts []ast.Stmt, env *Env) error {
	prev := it.env
	it.env = env
	defer func() { it.env = prev }()

	for _, s := range stmts {
		if err := it.exec(s); err != nil {
			return err
		}
	}
	return nil
}

// execClass evaluates a class declaration. The name is defined to nil
// before the methods are built (two-phase, so methods can refer to the
// class), and when there is a superclass the method closures get an extra
// frame binding "super" to it.
func (it *Interp) execClass(stmt *ast.ClassStmt) error {
	var superclass *Class
	if stmt.Superclass != nil {
		sv, err := it.eval(stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sv.(*Class)
		if !ok {
			return errorAt(stmt.Superclass.Name, "superclass must be a class")
		}
		superclass = sc
	}

	it.env.Define(stmt.Name.Lexeme, Nil)

	env := it.env
	if superclass != nil {
		env = NewEnv(env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name.Lexeme] = &Function{
			decl:    m,
			closure: env,
			isInit:  m.Name.Lexeme == initName,
		}
	}

	it.env.Define(stmt.Name.Lexeme, NewClass(stmt.Name.Lexeme, superclass, methods))
	return nil
}

// eval evaluates an expression to a value.
func (it *Interp) eval(expr ast.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		switch expr.Tok.Kind {
		case token.NUMBER:
			return Float(expr.Tok.Num), nil
		case token.STRING:
			return String(expr.Tok.Str), nil
		case token.TRUE:
			return True, nil
		case token.FALSE:
			return False, nil
		case token.NIL:
			return Nil, nil
		default:
			panic(fmt.Sprintf("internal error: literal %v", expr.Tok.Kind))
		}

	case *ast.GroupExpr:
		return it.eval(expr.Expr)

	case *ast.VarExpr:
		return it.lookupVar(expr.ExprID, expr.Name)

	case *ast.ThisExpr:
		return it.lookupVar(expr.ExprID, expr.Keyword)

	case *ast.AssignExpr:
		v, err := it.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		if d, ok := it.locals[expr.ExprID]; ok {
			it.env.AssignAt(d, expr.Name.Lexeme, v)
		} else if !it.globals.Assign(expr.Name.Lexeme, v) {
			return nil, errorAt(expr.Name, "undefined variable '%s'", expr.Name.Lexeme)
		}
		return v, nil

	case *ast.UnaryExpr:
		return it.evalUnary(expr)

	case *ast.BinExpr:
		return it.evalBinary(expr)

	case *ast.LogicalExpr:
		left, err := it.eval(expr.Left)
		if err != nil {
			return nil, err
		}
		if expr.Op.Kind == token.OR {
			if Truth(left) {
				return left, nil
			}
		} else if !Truth(left) {
			return left, nil
		}
		return it.eval(expr.Right)

	case *ast.CallExpr:
		return it.evalCall(expr)

	case *ast.GetExpr:
		obj, err := it.eval(expr.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, errorAt(expr.Name, "only instances have properties")
		}
		v, ok := inst.Attr(expr.Name.Lexeme)
		if !ok {
			return nil, errorAt(expr.Name, "undefined property '%s'", expr.Name.Lexeme)
		}
		return v, nil

	case *ast.SetExpr:
		obj, err := it.eval(expr.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, errorAt(expr.Name, "only instances have fields")
		}
		v, err := it.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		inst.SetAttr(expr.Name.Lexeme, v)
		return v, nil

	case *ast.SuperExpr:
		return it.evalSuper(expr)

	default:
		panic(fmt.Sprintf("internal error: evaluating %T", expr))
	}
}

// lookupVar reads a variable or this reference: hop-based when the resolver
// recorded a distance for the expression, dynamically in globals otherwise.
func (it *Interp) lookupVar(id int, name token.Token) (Value, error) {
	if d, ok := it.locals[id]; ok {
		return it.env.GetAt(d, name.Lexeme), nil
	}
	if v, ok := it.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, errorAt(name, "undefined variable '%s'", name.Lexeme)
}

func (it *Interp) evalUnary(expr *ast.UnaryExpr) (Value, error) {
	right, err := it.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.MINUS:
		f, ok := right.(Float)
		if !ok {
			return nil, errorAt(expr.Op, "operand must be a number")
		}
		return -f, nil
	case token.BANG:
		return Bool(!Truth(right)), nil
	default:
		panic(fmt.Sprintf("internal error: unary %v", expr.Op.Kind))
	}
}

func (it *Interp) evalBinary(expr *ast.BinExpr) (Value, error) {
	left, err := it.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.EQEQ:
		return Bool(Equal(left, right)), nil
	case token.BANGEQ:
		return Bool(!Equal(left, right)), nil

	case token.PLUS:
		if lf, ok := left.(Float); ok {
			if rf, ok := right.(Float); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return ls + rs, nil
			}
		}
		return nil, errorAt(expr.Op, "operands must be two numbers or two strings")
	}

	lf, lok := left.(Float)
	rf, rok := right.(Float)
	if !lok || !rok {
		return nil, errorAt(expr.Op, "operands must be numbers")
	}

	switch expr.Op.Kind {
	case token.MINUS:
		return lf - rf, nil
	case token.STAR:
		return lf * rf, nil
	case token.SLASH:
		if rf == 0 {
			return nil, errorAt(expr.Op, "division by zero")
		}
		return lf / rf, nil
	case token.GT:
		return Bool(lf > rf), nil
	case token.GE:
		return Bool(lf >= rf), nil
	case token.LT:
		return Bool(lf < rf), nil
	case token.LE:
		return Bool(lf <= rf), nil
	default:
		panic(fmt.Sprintf("internal error: binary %v", expr.Op.Kind))
	}
}

func (it *Interp) evalCall(expr *ast.CallExpr) (Value, error) {
	callee, err := it.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		v, err := it.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, errorAt(expr.Rparen, "can only call functions and classes")
	}
	if len(args) != fn.Arity() {
		return nil, errorAt(expr.Rparen, "expected %d arguments but got %d", fn.Arity(), len(args))
	}
	return fn.Call(it, args)
}

// evalSuper reads the superclass at the expression's hop distance and the
// receiver one frame closer (the implicit super frame directly encloses the
// implicit this frame), then returns the superclass method bound to the
// receiver.
func (it *Interp) evalSuper(expr *ast.SuperExpr) (Value, error) {
	d, ok := it.locals[expr.ExprID]
	if !ok {
		panic("internal error: unresolved super expression")
	}

	superclass := it.env.GetAt(d, "super").(*Class)
	this := it.env.GetAt(d-1, "this").(*Instance)

	m := superclass.FindMethod(expr.Method.Lexeme)
	if m == nil {
		return nil, errorAt(expr.Method, "undefined property '%s'", expr.Method.Lexeme)
	}
	return m.bind(this), nil
}
