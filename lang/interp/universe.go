package interp

import "time"

// initName is the method name that makes a method an initializer.
const initName = "init"

// Universe defines the set of native functions available to every program.
// This should not be modified; use Interp.DefineNative to extend the set of
// natives available to a program.
var Universe = map[string]Value{
	"clock": NewBuiltin("clock", 0, func(it *Interp, args []Value) (Value, error) {
		return Float(time.Now().UnixMilli()), nil
	}),
}

// IsUniverse returns true if name is a universal native.
func IsUniverse(name string) bool {
	_, ok := Universe[name]
	return ok
}
