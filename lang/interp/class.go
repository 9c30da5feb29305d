package interp

import (
	"github.com/dolthub/swiss"
)

// A Class is a class declaration value. Classes are callable: calling one
// constructs an instance and runs its initializer, if any.
type Class struct {
	name       string
	superclass *Class // may be nil
	methods    map[string]*Function
}

var _ Callable = (*Class)(nil)

// NewClass creates a class with the provided (possibly nil) superclass and
// method table.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{name: name, superclass: superclass, methods: methods}
}

func (c *Class) String() string { return c.name }
func (c *Class) Type() string   { return "class" }
func (c *Class) Name() string   { return c.name }

// Arity is the arity of the initializer, or zero when the class has none.
func (c *Class) Arity() int {
	if init := c.FindMethod(initName); init != nil {
		return init.Arity()
	}
	return 0
}

// FindMethod looks name up on the class and then linearly up the superclass
// chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.methods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil
}

// Call constructs a fresh instance; if the class defines an initializer it
// is bound to the instance and invoked with the arguments, and its return
// value is discarded.
func (c *Class) Call(it *Interp, args []Value) (Value, error) {
	inst := &Instance{
		class:  c,
		fields: swiss.NewMap[string, Value](8),
	}
	if init := c.FindMethod(initName); init != nil {
		if _, err := init.bind(inst).Call(it, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// An Instance is an object created by calling a class. Fields live on the
// instance and are created on first write; methods come from the class.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, Value]
}

var _ Value = (*Instance)(nil)

func (i *Instance) String() string { return i.class.name + " instance" }
func (i *Instance) Type() string   { return "instance" }

// Attr returns the field named name or, when the instance has no such
// field, the method of that name bound to the instance. Fields shadow
// methods. It reports false when neither exists.
func (i *Instance) Attr(name string) (Value, bool) {
	if v, ok := i.fields.Get(name); ok {
		return v, true
	}
	if m := i.class.FindMethod(name); m != nil {
		return m.bind(i), true
	}
	return nil, false
}

// SetAttr writes the field named name, creating it if needed.
func (i *Instance) SetAttr(name string, v Value) {
	i.fields.Put(name, v)
}
