// Package interp implements the tree-walking evaluator of the language: the
// runtime value universe, the environment chain that realizes lexical scope,
// and the statement/expression evaluation itself.
//
// The evaluator consumes the hop distances recorded by the resolver: it
// implements the resolver's Locals interface, keyed by expression identity.
// Expressions with a recorded hop read and write their binding exactly that
// many environments up the chain; expressions without one are globals.
package interp

// Value is the interface implemented by any value manipulated by the
// evaluator. The set of implementations is closed: NilType, Bool, Float,
// String, *Function, *Builtin, *Class and *Instance. Operators dispatch on
// the concrete type at the operation site.
type Value interface {
	// String returns the display representation of the value, the exact text
	// emitted by the print statement.
	String() string

	// Type returns a short string describing the value's type.
	Type() string
}

// A Callable value f may be the operand of a function call, f(x). The
// evaluator checks Arity against the argument count before calling.
type Callable interface {
	Value
	Name() string
	Arity() int
	Call(it *Interp, args []Value) (Value, error)
}

// Truth reports the truthiness of v: only nil and false are falsy.
func Truth(v Value) bool {
	switch v := v.(type) {
	case NilType:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports whether x and y are equal: nil equals nil, booleans and
// numbers compare by value, strings by content, and functions, classes and
// instances by identity. It is defined for all pairs of operands and never
// fails.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case NilType:
		_, ok := y.(NilType)
		return ok
	case Bool:
		yb, ok := y.(Bool)
		return ok && x == yb
	case Float:
		yf, ok := y.(Float)
		return ok && x == yf
	case String:
		ys, ok := y.(String)
		return ok && x == ys
	default:
		// identity for functions, builtins, classes and instances
		return x == y
	}
}
