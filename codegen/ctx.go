package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/JoeySoprano420/Trion/errors"
	tri "github.com/JoeySoprano420/Trion/types"
)

type namedThing interface{ isNamedThing() }
type NamedThingImpl struct{}

func (n NamedThingImpl) isNamedThing() {}

// LLVMMutableValue is a `let` binding: a stack slot that is loaded on read.
type LLVMMutableValue struct {
	NamedThingImpl
	value.Value
	elem types.Type
}

// LLVMValue is a `const` binding or a function: used as is.
type LLVMValue struct {
	NamedThingImpl
	value.Value
}

type ctx struct {
	names           []map[string]namedThing
	module          *ir.Module
	allocas         *ir.Block
	printf          *ir.Func
	floor           *ir.Func
	stringConstants map[string]value.Value
}

func (c *ctx) pushScope() {
	c.names = append(c.names, make(map[string]namedThing))
}

func (c *ctx) popScope() {
	c.names = c.names[:len(c.names)-1]
}

func (c *ctx) lookup(name string, pos tri.Position) namedThing {
	for i := len(c.names) - 1; i >= 0; i-- {
		val, ok := c.names[i][name]
		if ok {
			return val
		}
	}

	panic(errors.Errorf(errors.NameError, pos, "Undefined variable '%s'", name))
}

func (c *ctx) top() map[string]namedThing {
	return c.names[len(c.names)-1]
}

// unsupported aborts lowering of the current statement.
func unsupported(pos tri.Position, what string) {
	panic(errors.Errorf(errors.TypeFault, pos, "%s is not supported by the compiler", what))
}

func mismatch(pos tri.Position, format string, args ...interface{}) {
	panic(errors.Errorf(errors.TypeFault, pos, format, args...))
}
