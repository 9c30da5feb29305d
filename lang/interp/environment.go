package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// An Env is one frame of name to value bindings plus a link to its enclosing
// frame; the chain realizes lexical scope at runtime. The globals frame is
// the unique root of every chain (its enclosing frame is nil). Frames are
// shared: closures keep a reference to the frame in force at their
// definition site, so a frame outlives its block when captured.
type Env struct {
	values    *swiss.Map[string, Value]
	enclosing *Env
}

// NewEnv creates an empty frame enclosed by the provided one. The globals
// frame is created with a nil enclosing frame.
func NewEnv(enclosing *Env) *Env {
	return &Env{
		values:    swiss.NewMap[string, Value](8),
		enclosing: enclosing,
	}
}

// Define binds name to v in this frame. Rebinding an existing name in the
// same frame overwrites it.
func (e *Env) Define(name string, v Value) {
	e.values.Put(name, v)
}

// Get reads name in this frame only. It does not walk the chain: resolved
// locals are read with GetAt and unresolved names belong to the globals
// frame.
func (e *Env) Get(name string) (Value, bool) {
	return e.values.Get(name)
}

// Assign overwrites name in this frame if it is bound, and reports whether
// it was.
func (e *Env) Assign(name string, v Value) bool {
	if !e.values.Has(name) {
		return false
	}
	e.values.Put(name, v)
	return true
}

// GetAt walks exactly distance enclosing links and reads name there. The
// resolver certified that the binding exists; any failure is an internal
// error, not a user error.
func (e *Env) GetAt(distance int, name string) Value {
	v, ok := e.ancestor(distance).values.Get(name)
	if !ok {
		panic(fmt.Sprintf("internal error: no binding for %s at distance %d", name, distance))
	}
	return v
}

// AssignAt walks exactly distance enclosing links and overwrites name there.
// Like GetAt, a missing binding is an internal error.
func (e *Env) AssignAt(distance int, name string, v Value) {
	anc := e.ancestor(distance)
	if !anc.values.Has(name) {
		panic(fmt.Sprintf("internal error: no binding for %s at distance %d", name, distance))
	}
	anc.values.Put(name, v)
}

func (e *Env) ancestor(distance int) *Env {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
		if env == nil {
			panic(fmt.Sprintf("internal error: hop distance %d exceeds environment chain", distance))
		}
	}
	return env
}
