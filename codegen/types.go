package codegen

import "github.com/llir/llvm/ir/types"

// Static types of the compiled subset.
var (
	Int    = types.I64
	Float  = types.Double
	Bool   = types.I1
	String = types.I8Ptr
)

func typeName(t types.Type) string {
	switch {
	case t.Equal(Int):
		return "int"
	case t.Equal(Float):
		return "float"
	case t.Equal(Bool):
		return "bool"
	case t.Equal(String):
		return "str"
	}
	return t.String()
}
