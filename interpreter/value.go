package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JoeySoprano420/Trion/ast"
	"github.com/JoeySoprano420/Trion/types"
)

// Value is the closed set of runtime values. String gives the form print and
// str() produce.
type Value interface {
	TypeName() string
	String() string
	is_Value()
}

type Int int64
type Float float64
type Str string
type Bool bool
type Null struct{}

type List struct {
	Elements []Value
}

type Function struct {
	Decl    *ast.FnDecl
	Closure *Environment
}

// BuiltinFunc receives already evaluated arguments whose count has been
// checked against Arity.
type BuiltinFunc func(in *Interpreter, pos types.Position, args []Value) (Value, error)

type Builtin struct {
	Name string
	// Arity is the exact argument count, or -1 for variadic builtins.
	Arity int
	Fn    BuiltinFunc
}

type Class struct {
	Name    string
	Super   *Class
	Methods map[string]*Function
}

func (Int) is_Value()       {}
func (Float) is_Value()     {}
func (Str) is_Value()       {}
func (Bool) is_Value()      {}
func (Null) is_Value()      {}
func (*List) is_Value()     {}
func (*Function) is_Value() {}
func (*Builtin) is_Value()  {}
func (*Class) is_Value()    {}

func (Int) TypeName() string       { return "int" }
func (Float) TypeName() string     { return "float" }
func (Str) TypeName() string       { return "str" }
func (Bool) TypeName() string      { return "bool" }
func (Null) TypeName() string      { return "null" }
func (*List) TypeName() string     { return "list" }
func (*Function) TypeName() string { return "function" }
func (*Builtin) TypeName() string  { return "function" }
func (*Class) TypeName() string    { return "class" }

func (v Int) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v Float) String() string {
	return FormatFloat(float64(v))
}

func (v Str) String() string {
	return string(v)
}

func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (Null) String() string {
	return "null"
}

func (v *List) String() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = Repr(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v *Function) String() string {
	return fmt.Sprintf("<function %s>", v.Decl.Name)
}

func (v *Builtin) String() string {
	return fmt.Sprintf("<builtin function %s>", v.Name)
}

func (v *Class) String() string {
	return fmt.Sprintf("<class %s>", v.Name)
}

// Repr is the form a value takes inside a list: strings are quoted.
func Repr(v Value) string {
	if s, ok := v.(Str); ok {
		return strconv.Quote(string(s))
	}
	return v.String()
}

// FormatFloat always shows floats as floats: whole numbers keep a ".0" and
// very large or very small magnitudes switch to exponent form.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	abs := math.Abs(f)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Truthy: null, false, zero, the empty string and the empty list are false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(v)
	case Int:
		return v != 0
	case Float:
		return v != 0
	case Str:
		return v != ""
	case *List:
		return len(v.Elements) > 0
	}
	return true
}

// FindMethod looks name up on c and then on its superclasses.
func (c *Class) FindMethod(name string) (*Function, bool) {
	for k := c; k != nil; k = k.Super {
		if m, ok := k.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// FromLiteral converts a parsed literal to its runtime value.
func FromLiteral(v interface{}) Value {
	switch v := v.(type) {
	case int64:
		return Int(v)
	case float64:
		return Float(v)
	case string:
		return Str(v)
	case bool:
		return Bool(v)
	}
	return Null{}
}
