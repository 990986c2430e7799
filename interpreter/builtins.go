package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/types"
)

var builtins = []*Builtin{
	{Name: "print", Arity: -1, Fn: builtinPrint},
	{Name: "len", Arity: 1, Fn: builtinLen},
	{Name: "type", Arity: 1, Fn: builtinType},
	{Name: "str", Arity: 1, Fn: builtinStr},
	{Name: "int", Arity: 1, Fn: builtinInt},
	{Name: "float", Arity: 1, Fn: builtinFloat},
}

func builtinPrint(in *Interpreter, pos types.Position, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	if _, err := fmt.Fprintln(in.out, strings.Join(parts, " ")); err != nil {
		return nil, errors.Errorf(errors.RuntimeFault, pos, "print: %s", err)
	}
	return Null{}, nil
}

func builtinLen(in *Interpreter, pos types.Position, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case Str:
		return Int(len([]rune(string(v)))), nil
	case *List:
		return Int(len(v.Elements)), nil
	}
	return nil, errors.Errorf(errors.TypeFault, pos, "object of type '%s' has no len()", args[0].TypeName())
}

func builtinType(in *Interpreter, pos types.Position, args []Value) (Value, error) {
	return Str(args[0].TypeName()), nil
}

func builtinStr(in *Interpreter, pos types.Position, args []Value) (Value, error) {
	return Str(args[0].String()), nil
}

func builtinInt(in *Interpreter, pos types.Position, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case Int:
		return v, nil
	case Float:
		f := float64(v)
		if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return nil, errors.Errorf(errors.TypeFault, pos, "cannot convert float %s to int", v)
		}
		return Int(f), nil
	case Bool:
		if v {
			return Int(1), nil
		}
		return Int(0), nil
	case Str:
		n, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		if err != nil {
			return nil, errors.Errorf(errors.TypeFault, pos, "invalid literal for int(): %s", strconv.Quote(string(v)))
		}
		return Int(n), nil
	}
	return nil, errors.Errorf(errors.TypeFault, pos, "int() argument must be a string or a number, not '%s'", args[0].TypeName())
}

func builtinFloat(in *Interpreter, pos types.Position, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case Int:
		return Float(v), nil
	case Float:
		return v, nil
	case Bool:
		if v {
			return Float(1), nil
		}
		return Float(0), nil
	case Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err != nil {
			return nil, errors.Errorf(errors.TypeFault, pos, "could not convert string to float: %s", strconv.Quote(string(v)))
		}
		return Float(f), nil
	}
	return nil, errors.Errorf(errors.TypeFault, pos, "float() argument must be a string or a number, not '%s'", args[0].TypeName())
}
