package codegen

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/JoeySoprano420/Trion/ast"
)

func hash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 10)
}

func addPrintf(m *ir.Module) *ir.Func {
	fn := m.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	fn.Sig.Variadic = true
	return fn
}

func (c *ctx) floorFunc() *ir.Func {
	if c.floor == nil {
		c.floor = c.module.NewFunc("llvm.floor.f64", Float, ir.NewParam("x", Float))
	}
	return c.floor
}

// wholeSuffix yields ".0" for whole floats that %g prints without an
// exponent, so 2.0 prints as "2.0" rather than "2".
func (c *ctx) wholeSuffix(val value.Value, b *ir.Block) value.Value {
	whole := b.NewFCmp(enum.FPredOEQ, b.NewCall(c.floorFunc(), val), val)
	above := b.NewFCmp(enum.FPredOGT, val, constant.NewFloat(Float, -1e6))
	below := b.NewFCmp(enum.FPredOLT, val, constant.NewFloat(Float, 1e6))
	plain := b.NewAnd(whole, b.NewAnd(above, below))
	return b.NewSelect(plain, c.cstring(".0"), c.cstring(""))
}

// cstring returns an i8* to a NUL terminated global holding s. Identical
// strings share one global.
func (c *ctx) cstring(s string) value.Value {
	if ptr, ok := c.stringConstants[s]; ok {
		return ptr
	}

	data := append([]byte(s), 0)
	arr := types.NewArray(uint64(len(data)), types.I8)
	g := c.module.NewGlobalDef("_str_"+hash(s), constant.NewCharArray(data))
	g.Immutable = true

	zero := constant.NewInt(types.I32, 0)
	ptr := constant.NewGetElementPtr(arr, g, zero, zero)
	c.stringConstants[s] = ptr
	return ptr
}

// lowerPrint turns print(a, b) into one printf call, space separated with a
// trailing newline.
func (c *ctx) lowerPrint(call *ast.Call, b *ir.Block) value.Value {
	var format []string
	args := []value.Value{nil}

	for _, arg := range call.Arguments {
		val := c.expression(arg, b)
		switch t := val.Type(); {
		case t.Equal(Int):
			format = append(format, "%lld")
		case t.Equal(Float):
			format = append(format, "%g%s")
			args = append(args, val)
			val = c.wholeSuffix(val, b)
		case t.Equal(Bool):
			format = append(format, "%s")
			val = b.NewSelect(val, c.cstring("true"), c.cstring("false"))
		case t.Equal(String):
			format = append(format, "%s")
		default:
			mismatch(arg.Position(), "cannot print a value of type '%s'", typeName(t))
		}
		args = append(args, val)
	}

	args[0] = c.cstring(strings.Join(format, " ") + "\n")
	return b.NewCall(c.printf, args...)
}
