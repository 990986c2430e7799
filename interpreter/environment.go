package interpreter

import "sort"

// Environment is one frame of the scope chain. A nil enclosing frame marks
// the globals.
type Environment struct {
	values    map[string]Value
	consts    map[string]bool
	enclosing *Environment
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    map[string]Value{},
		consts:    map[string]bool{},
		enclosing: enclosing,
	}
}

// NewGlobals returns a root frame holding the builtin functions.
func NewGlobals() *Environment {
	env := NewEnvironment(nil)
	for _, b := range builtins {
		env.Define(b.Name, b, false)
	}
	return env
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define binds name in this frame, replacing any previous binding and its
// constness.
func (e *Environment) Define(name string, v Value, constant bool) {
	e.values[name] = v
	if constant {
		e.consts[name] = true
	} else {
		delete(e.consts, name)
	}
}

func (e *Environment) Get(name string) (Value, bool) {
	if frame := e.Resolve(name); frame != nil {
		return frame.values[name], true
	}
	return nil, false
}

// Resolve returns the nearest frame defining name, or nil.
func (e *Environment) Resolve(name string) *Environment {
	for frame := e; frame != nil; frame = frame.enclosing {
		if _, ok := frame.values[name]; ok {
			return frame
		}
	}
	return nil
}

func (e *Environment) IsConst(name string) bool {
	return e.consts[name]
}

// set overwrites an existing binding in this frame.
func (e *Environment) set(name string, v Value) {
	e.values[name] = v
}

// Names lists the bindings of this frame only, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
