package interpreter

import (
	"math"
	"strings"

	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/types"
)

func numeric(v Value) (float64, bool) {
	switch v := v.(type) {
	case Int:
		return float64(v), true
	case Float:
		return float64(v), true
	}
	return 0, false
}

func unsupported(pos types.Position, op string, l, r Value) error {
	return errors.Errorf(errors.TypeFault, pos,
		"unsupported operand types for %s: '%s' and '%s'", op, l.TypeName(), r.TypeName())
}

// binaryOp applies a non-logical operator to two evaluated operands.
func binaryOp(pos types.Position, op string, l, r Value) (Value, error) {
	switch op {
	case "==":
		return Bool(Equal(l, r)), nil
	case "!=":
		return Bool(!Equal(l, r)), nil
	case "<", "<=", ">", ">=":
		return compare(pos, op, l, r)
	case "+":
		return add(pos, l, r)
	case "*":
		if v, ok, err := repeat(pos, l, r); ok {
			return v, err
		}
	}

	li, lint := l.(Int)
	ri, rint := r.(Int)
	lf, lnum := numeric(l)
	rf, rnum := numeric(r)
	if !lnum || !rnum {
		return nil, unsupported(pos, op, l, r)
	}
	both := lint && rint

	switch op {
	case "-":
		if both {
			return li - ri, nil
		}
		return Float(lf - rf), nil
	case "*":
		if both {
			return li * ri, nil
		}
		return Float(lf * rf), nil
	case "/":
		if rf == 0 {
			return nil, errors.Errorf(errors.ValueFault, pos, "Division by zero")
		}
		return Float(lf / rf), nil
	case "%":
		if rf == 0 {
			return nil, errors.Errorf(errors.ValueFault, pos, "Modulo by zero")
		}
		if both {
			m := li % ri
			if m != 0 && (m < 0) != (ri < 0) {
				m += ri
			}
			return m, nil
		}
		m := math.Mod(lf, rf)
		if m != 0 && (m < 0) != (rf < 0) {
			m += rf
		}
		return Float(m), nil
	case "**":
		if both && ri >= 0 {
			return ipow(li, ri), nil
		}
		return Float(math.Pow(lf, rf)), nil
	}

	return nil, errors.Errorf(errors.RuntimeFault, pos, "Unknown operator '%s'", op)
}

func ipow(base, exp Int) Int {
	result := Int(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func add(pos types.Position, l, r Value) (Value, error) {
	switch l := l.(type) {
	case Int:
		switch r := r.(type) {
		case Int:
			return l + r, nil
		case Float:
			return Float(l) + r, nil
		}
	case Float:
		switch r := r.(type) {
		case Int:
			return l + Float(r), nil
		case Float:
			return l + r, nil
		}
	case Str:
		if r, ok := r.(Str); ok {
			return l + r, nil
		}
	case *List:
		if r, ok := r.(*List); ok {
			out := make([]Value, 0, len(l.Elements)+len(r.Elements))
			out = append(out, l.Elements...)
			out = append(out, r.Elements...)
			return &List{Elements: out}, nil
		}
	}
	return nil, unsupported(pos, "+", l, r)
}

// MaxRepeatLength bounds the length of a string or list built by *.
const MaxRepeatLength = 1 << 26

func repeatTooLong(pos types.Position, size int, n Int) error {
	if size > 0 && n > Int(MaxRepeatLength/size) {
		return errors.Errorf(errors.ValueFault, pos, "repeated sequence is too long")
	}
	return nil
}

// repeat handles sequence * int in either order.
func repeat(pos types.Position, l, r Value) (Value, bool, error) {
	if n, ok := l.(Int); ok {
		l, r = r, n
	}
	n, ok := r.(Int)
	if !ok {
		return nil, false, nil
	}
	if n < 0 {
		n = 0
	}

	switch l := l.(type) {
	case Str:
		if err := repeatTooLong(pos, len(l), n); err != nil {
			return nil, true, err
		}
		return Str(strings.Repeat(string(l), int(n))), true, nil
	case *List:
		if err := repeatTooLong(pos, len(l.Elements), n); err != nil {
			return nil, true, err
		}
		if len(l.Elements) == 0 {
			return &List{}, true, nil
		}
		out := make([]Value, 0, len(l.Elements)*int(n))
		for i := Int(0); i < n; i++ {
			out = append(out, l.Elements...)
		}
		return &List{Elements: out}, true, nil
	}
	return nil, false, nil
}

func compare(pos types.Position, op string, l, r Value) (Value, error) {
	var c int
	if ls, ok := l.(Str); ok {
		rs, ok := r.(Str)
		if !ok {
			return nil, errors.Errorf(errors.TypeFault, pos,
				"'%s' not supported between instances of '%s' and '%s'", op, l.TypeName(), r.TypeName())
		}
		c = strings.Compare(string(ls), string(rs))
	} else {
		lf, lok := numeric(l)
		rf, rok := numeric(r)
		if !lok || !rok {
			return nil, errors.Errorf(errors.TypeFault, pos,
				"'%s' not supported between instances of '%s' and '%s'", op, l.TypeName(), r.TypeName())
		}
		li, lint := l.(Int)
		ri, rint := r.(Int)
		switch {
		case lint && rint && li < ri, !(lint && rint) && lf < rf:
			c = -1
		case lint && rint && li > ri, !(lint && rint) && lf > rf:
			c = 1
		}
	}

	switch op {
	case "<":
		return Bool(c < 0), nil
	case "<=":
		return Bool(c <= 0), nil
	case ">":
		return Bool(c > 0), nil
	}
	return Bool(c >= 0), nil
}

// Equal compares by value for scalars and lists and by identity otherwise.
// Ints and floats compare numerically; bools never equal numbers.
func Equal(l, r Value) bool {
	if lf, ok := numeric(l); ok {
		rf, ok := numeric(r)
		if !ok {
			return false
		}
		li, lint := l.(Int)
		ri, rint := r.(Int)
		if lint && rint {
			return li == ri
		}
		return lf == rf
	}

	switch l := l.(type) {
	case Str:
		r, ok := r.(Str)
		return ok && l == r
	case Bool:
		r, ok := r.(Bool)
		return ok && l == r
	case Null:
		_, ok := r.(Null)
		return ok
	case *List:
		r, ok := r.(*List)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !Equal(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	}
	return l == r
}

func unaryOp(pos types.Position, op string, v Value) (Value, error) {
	switch op {
	case "not":
		return Bool(!Truthy(v)), nil
	case "-":
		switch v := v.(type) {
		case Int:
			return -v, nil
		case Float:
			return -v, nil
		}
		return nil, errors.Errorf(errors.TypeFault, pos, "bad operand type for unary -: '%s'", v.TypeName())
	}
	return nil, errors.Errorf(errors.RuntimeFault, pos, "Unknown operator '%s'", op)
}

// index resolves seq[i]. Negative indexes count from the end.
func index(pos types.Position, seq, idx Value) (Value, error) {
	var length int
	switch s := seq.(type) {
	case *List:
		length = len(s.Elements)
	case Str:
		length = len([]rune(string(s)))
	default:
		return nil, errors.Errorf(errors.TypeFault, pos, "'%s' object is not subscriptable", seq.TypeName())
	}

	i, ok := idx.(Int)
	if !ok {
		return nil, errors.Errorf(errors.TypeFault, pos, "%s indices must be integers, not '%s'", seq.TypeName(), idx.TypeName())
	}
	if i < 0 {
		i += Int(length)
	}
	if i < 0 || i >= Int(length) {
		return nil, errors.Errorf(errors.ValueFault, pos, "%s index out of range", seq.TypeName())
	}

	if s, ok := seq.(Str); ok {
		return Str([]rune(string(s))[i]), nil
	}
	return seq.(*List).Elements[i], nil
}

// iterate returns the items a for loop visits.
func iterate(pos types.Position, v Value) ([]Value, error) {
	switch v := v.(type) {
	case *List:
		items := make([]Value, len(v.Elements))
		copy(items, v.Elements)
		return items, nil
	case Str:
		var items []Value
		for _, r := range string(v) {
			items = append(items, Str(r))
		}
		return items, nil
	}
	return nil, errors.Errorf(errors.TypeFault, pos, "'%s' object is not iterable", v.TypeName())
}
