package interp

import (
	"errors"

	"github.com/roxlang/rox/lang/ast"
)

// A Function is a function declared in the program: its declaration plus the
// environment in force at its definition site (the closure). Methods are
// Functions whose closure additionally binds "this" (and "super" for methods
// of a subclass).
type Function struct {
	decl    *ast.FuncStmt
	closure *Env
	isInit  bool
}

var _ Callable = (*Function)(nil)

func (fn *Function) String() string { return "<fn " + fn.decl.Name.Lexeme + ">" }
func (fn *Function) Type() string   { return "function" }
func (fn *Function) Name() string   { return fn.decl.Name.Lexeme }
func (fn *Function) Arity() int     { return len(fn.decl.Params) }

// Call binds the arguments in a fresh frame enclosing the closure and
// executes the body. A return statement unwinds here; falling off the end of
// the body yields nil. Initializers yield the instance in both cases,
// regardless of an explicit bare return.
func (fn *Function) Call(it *Interp, args []Value) (Value, error) {
	env := NewEnv(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := it.execBlock(fn.decl.Body, env); err != nil {
		var ret *returnSignal
		if !errors.As(err, &ret) {
			return nil, err
		}
		if fn.isInit {
			return fn.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}

	if fn.isInit {
		return fn.closure.GetAt(0, "this"), nil
	}
	return Nil, nil
}

// bind returns a copy of the method whose closure is extended with a frame
// binding "this" to the instance.
func (fn *Function) bind(inst *Instance) *Function {
	env := NewEnv(fn.closure)
	env.Define("this", inst)
	return &Function{decl: fn.decl, closure: env, isInit: fn.isInit}
}
