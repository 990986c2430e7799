package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/repr"

	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/parser"
	"github.com/JoeySoprano420/Trion/types"
)

func run(t *testing.T, in *Interpreter, source string) (Value, *errors.Reporter) {
	t.Helper()
	prog, rep := parser.ParseString(source, "test.tri")
	if rep.HasErrors() {
		t.Fatalf("unexpected parse errors:\n%s", rep.Err())
	}
	return in.Interpret(prog)
}

func output(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	_, rep := run(t, New(&out), source)
	if rep.HasErrors() {
		t.Fatalf("unexpected runtime errors:\n%s\noutput so far: %q", rep.Err(), out.String())
	}
	return out.String()
}

func fault(t *testing.T, source string) *errors.Diagnostic {
	t.Helper()
	v, rep := run(t, New(&bytes.Buffer{}), source)
	if v != nil {
		t.Fatalf("expected no value from a faulting program, got %s", repr.String(v))
	}
	if len(rep.Errors) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d:\n%s", len(rep.Errors), rep.Err())
	}
	return rep.Errors[0]
}

func TestArithmeticPrecedence(t *testing.T) {
	v, rep := run(t, New(nil), "2 + 3 * 4")
	if rep.HasErrors() || v != Int(14) {
		t.Fatalf("got %s, %v", repr.String(v), rep.Err())
	}
}

func TestFactorial(t *testing.T) {
	v, rep := run(t, New(nil), `
fn factorial(n) {
    if n <= 1 { return 1 }
    return n * factorial(n - 1)
}
factorial(5)
`)
	if rep.HasErrors() || v != Int(120) {
		t.Fatalf("got %s, %v", repr.String(v), rep.Err())
	}
}

func TestDivisionByZero(t *testing.T) {
	d := fault(t, "10 / 0")
	if d.Kind != errors.ValueFault || d.Message != "Division by zero" {
		t.Fatalf("unexpected diagnostic %s", d)
	}
	if d.Error() != "ValueError: Division by zero. test.tri:1:4" {
		t.Fatalf("unexpected rendering %q", d.Error())
	}

	d = fault(t, "5 % 0")
	if d.Kind != errors.ValueFault || d.Message != "Modulo by zero" {
		t.Fatalf("unexpected diagnostic %s", d)
	}
}

func TestScoping(t *testing.T) {
	got := output(t, `
let x = 10
fn f() {
    let x = 20
    print(x)
}
f()
print(x)
`)
	if got != "20\n10\n" {
		t.Fatalf("got %q", got)
	}
}

func TestBlockScope(t *testing.T) {
	if got := output(t, "let x = 1\n{ let x = 2 }\nprint(x)"); got != "1\n" {
		t.Fatalf("got %q", got)
	}
	if got := output(t, "let i = 0\nwhile i < 3 { i += 1 }\nprint(i)"); got != "3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestLoopClosuresCaptureTheirIteration(t *testing.T) {
	got := output(t, `
let fns = []
for item in [1, 2, 3] {
    fn show() { return item }
    fns = fns + [show]
}
print(fns[0](), fns[1](), fns[2]())
`)
	if got != "1 2 3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestLogicalOperatorsAreEager(t *testing.T) {
	got := output(t, `
let count = 0
fn bump() {
    count += 1
    return true
}
let r = false and bump()
let s = true or bump()
print(count, r, s)
print(0 or "x", 1 and 2, null or 0)
`)
	if got != "2 false true\nx 2 0\n" {
		t.Fatalf("got %q", got)
	}
}

func TestTryWithoutCatchIsFailOpen(t *testing.T) {
	var out bytes.Buffer
	v, rep := run(t, New(&out), `try { throw "x"; }`)
	if rep.HasErrors() || v != (Null{}) || out.Len() != 0 {
		t.Fatalf("expected a silent no-op, got %s, %v, %q", repr.String(v), rep.Err(), out.String())
	}

	if got := output(t, `try { missing } finally { print("f") }`); got != "f\n" {
		t.Fatalf("got %q", got)
	}
}

func TestTryCatchFinally(t *testing.T) {
	got := output(t, `
try {
    1 / 0
} catch (Error e) {
    print("caught", e)
} finally {
    print("finally")
}
try { throw "boom" } catch (TypeError e) { print(e) } catch (Error e) { print("second") }
`)
	if got != "caught Division by zero\nfinally\nboom\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReturnPassesThroughTry(t *testing.T) {
	got := output(t, `
fn f() {
    try {
        return 1
    } catch (Error e) {
        return 2
    } finally {
        print("cleanup")
    }
    return 3
}
print(f())
`)
	if got != "cleanup\n1\n" {
		t.Fatalf("got %q", got)
	}
}

func TestFinallyFaultOverrides(t *testing.T) {
	d := fault(t, `try { print(1) } finally { throw "late" }`)
	if d.Kind != errors.ThrowFault || d.Message != "late" {
		t.Fatalf("unexpected diagnostic %s", d)
	}
}

func TestUncaughtThrow(t *testing.T) {
	d := fault(t, `throw "bad " + str(1)`)
	if d.Kind != errors.ThrowFault || d.Error() != "Error: bad 1. test.tri:1:1" {
		t.Fatalf("unexpected diagnostic %s", d)
	}
}

func TestFaults(t *testing.T) {
	cases := []struct {
		source  string
		kind    errors.Kind
		message string
	}{
		{"y = 1", errors.NameError, "Undefined variable 'y'"},
		{"print(nope)", errors.NameError, "Undefined variable 'nope'"},
		{"const c = 1\nc = 2", errors.RuntimeFault, "Cannot assign to constant 'c'"},
		{"fn f(a) { }\nf()", errors.TypeFault, "f() takes 1 argument but 0 were given"},
		{"len(1, 2)", errors.TypeFault, "len() takes exactly 1 argument (2 given)"},
		{"let n = 3\nn()", errors.TypeFault, "'int' object is not callable"},
		{"[1][5]", errors.ValueFault, "list index out of range"},
		{"5[0]", errors.TypeFault, "'int' object is not subscriptable"},
		{`"a" + 1`, errors.TypeFault, "unsupported operand types for +: 'str' and 'int'"},
		{`1 < "a"`, errors.TypeFault, "'<' not supported between instances of 'int' and 'str'"},
		{`-"a"`, errors.TypeFault, "bad operand type for unary -: 'str'"},
		{`int("abc")`, errors.TypeFault, `invalid literal for int(): "abc"`},
		{"for x in 5 { }", errors.TypeFault, "'int' object is not iterable"},
		{"return 1", errors.RuntimeFault, "'return' outside function"},
		{"fn r(n) { return r(n + 1) }\nr(0)", errors.RuntimeFault, "Maximum call depth exceeded"},
		{"class A { }\nA.b", errors.NameError, "Class 'A' has no member 'b'"},
		{"class B : Nope { }", errors.NameError, "Undefined variable 'Nope'"},
		{"int(1e300)", errors.TypeFault, "cannot convert float 1e+300 to int"},
		{"int(-1e19)", errors.TypeFault, "cannot convert float -1e+19 to int"},
		{"[1] * 1000000000000", errors.ValueFault, "repeated sequence is too long"},
		{`"ab" * 9223372036854775807`, errors.ValueFault, "repeated sequence is too long"},
	}

	for _, c := range cases {
		d := fault(t, c.source)
		if d.Kind != c.kind || d.Message != c.message {
			t.Errorf("%q: got %s", c.source, d)
		}
	}
}

func TestValues(t *testing.T) {
	got := output(t, `print(7 / 2, 7 % -3, -7 % 3, 2 ** 10, 2 ** -1, "ab" * 3, [1] + [2], 1.0, 1e20)
print(type(1.5), len("héllo"), str([1, "a"]), int("42"), float("2.5"), "abc"[-1], int(3.9))
print(1 == 1.0, true == 1, [1, 2] == [1, 2], "a" < "b", null, type(print), type(null))`)
	want := "3.5 -2 2 1024 0.5 ababab [1, 2] 1.0 1e+20\n" +
		"float 5 [1, \"a\"] 42 2.5 c 3\n" +
		"true false true true null function null\n"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestClasses(t *testing.T) {
	got := output(t, `
class Animal {
    fn speak() { return "..." }
    fn kind() { return "animal" }
}
class Dog : Animal {
    fn speak() { return "woof" }
}
print(Dog.speak(), Dog.kind(), type(Dog), Dog)
`)
	if got != "woof animal class <class Dog>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestImportAndRedeclaration(t *testing.T) {
	got := output(t, `
import math as m
import os
print(m, os)
const a = 1
let a = 2
a = 3
print(a)
`)
	if got != "Module: math Module: os\n3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestInterpretIsIdempotentWithFreshEnvironments(t *testing.T) {
	source := "let total = 0\nfor i in [1, 2, 3] { total += i }\nprint(total)\ntotal"
	prog, rep := parser.ParseString(source, "")
	if rep.HasErrors() {
		t.Fatalf("%s", rep.Err())
	}

	var first, second bytes.Buffer
	in := New(&first)
	v1, r1 := in.InterpretIn(prog, NewGlobals())
	in.out = &second
	v2, r2 := in.InterpretIn(prog, NewGlobals())

	if r1.HasErrors() || r2.HasErrors() || r1 == r2 {
		t.Fatalf("expected two clean, distinct reporters")
	}
	if v1 != Int(6) || v2 != Int(6) || first.String() != second.String() {
		t.Fatalf("runs differ: %s %q / %s %q", repr.String(v1), first.String(), repr.String(v2), second.String())
	}
}

func TestGlobalsPersistAcrossInterpretCalls(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	run(t, in, "let x = 41")
	run(t, in, "undefined_thing")
	v, rep := run(t, in, "x + 1")
	if rep.HasErrors() || v != Int(42) {
		t.Fatalf("got %s, %v", repr.String(v), rep.Err())
	}
}

func TestPanicsBecomeDiagnostics(t *testing.T) {
	in := New(nil)
	in.Globals().Define("boom", &Builtin{Name: "boom", Arity: 0, Fn: func(*Interpreter, types.Position, []Value) (Value, error) {
		panic("kaboom")
	}}, false)

	v, rep := run(t, in, "boom()")
	if v != nil || len(rep.Errors) != 1 || rep.Errors[0].Kind != errors.RuntimeFault ||
		!strings.Contains(rep.Errors[0].Message, "kaboom") {
		t.Fatalf("got %s, %v", repr.String(v), rep.Err())
	}
}

func TestTruthy(t *testing.T) {
	falsy := []Value{Null{}, Bool(false), Int(0), Float(0), Str(""), &List{}}
	truthy := []Value{Bool(true), Int(-1), Float(0.5), Str("0"), &List{Elements: []Value{Null{}}}, &Class{Name: "A"}}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("%s should be falsy", repr.String(v))
		}
	}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("%s should be truthy", repr.String(v))
		}
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		3:           "3.0",
		0.1:         "0.1",
		-2.5:        "-2.5",
		1e16:        "1e+16",
		0.00001:     "1e-05",
		123456789.0: "123456789.0",
		0:           "0.0",
	}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestEnvironmentNames(t *testing.T) {
	env := NewEnvironment(NewGlobals())
	env.Define("b", Int(1), false)
	env.Define("a", Int(2), true)
	if got := strings.Join(env.Names(), ","); got != "a,b" {
		t.Fatalf("got %s", got)
	}
	if !env.IsConst("a") || env.IsConst("b") {
		t.Fatalf("unexpected constness")
	}
	if _, ok := env.Get("print"); !ok || env.Resolve("print") != env.Enclosing() {
		t.Fatalf("builtins should resolve in the enclosing frame")
	}
}

func TestStatementValues(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"let x = 5", "5"},
		{"const c = \"k\"", "\"k\""},
		{"fn f() { return 1 }", "<function f>"},
		{"class A { }", "<class A>"},
		{"{ 1 + 2 }", "3"},
		{"if true { 7 }", "7"},
		{"if false { 7 } else { 8 }", "8"},
		{"if false { 7 }", "null"},
		{"let i = 0\nwhile i < 3 { i += 1 }", "3"},
		{"for x of [1, 2] { x * 10 }", "20"},
		{"try { 4 } finally { 5 }", "4"},
		{"{ }", "null"},
	}
	for _, c := range cases {
		v, rep := run(t, New(nil), c.source)
		if rep.HasErrors() || v == nil || Repr(v) != c.want {
			t.Errorf("%q: got %s, %v", c.source, repr.String(v), rep.Err())
		}
	}
}

func TestDeclaredFunctionIsFirstClass(t *testing.T) {
	v, rep := run(t, New(nil), "fn twice(n) { return n * 2 }")
	if fn, ok := v.(*Function); rep.HasErrors() || !ok || fn.Decl.Name != "twice" {
		t.Fatalf("got %s, %v", repr.String(v), rep.Err())
	}

	// A body ending in an expression still returns null without 'return'.
	if got := output(t, "fn f() { 1 }\nprint(f())"); got != "null\n" {
		t.Fatalf("got %q", got)
	}
}

func TestCompoundAssignmentOperators(t *testing.T) {
	v, rep := run(t, New(nil), "let x = 7\nx %= 3\nx *= 10\nx -= 4\nx /= 2\nx")
	if rep.HasErrors() || v != Float(3) {
		t.Fatalf("got %s, %v", repr.String(v), rep.Err())
	}
}

func TestForLoopKeywordIsLenient(t *testing.T) {
	if got := output(t, "for x of [1, 2] { print(x) }"); got != "1\n2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRepeatEmptySequence(t *testing.T) {
	if got := output(t, `print([] * 1000000000000, "" * 1000000000000)`); got != "[] \n" {
		t.Fatalf("got %q", got)
	}
}
