package codegen

import (
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/repr"

	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/parser"
)

func lower(t *testing.T, source string, settings Settings) (string, *errors.Reporter, SymbolTable) {
	t.Helper()
	prog, rep := parser.ParseString(source, "prog.tri")
	if rep.HasErrors() {
		t.Fatalf("unexpected parse errors:\n%s", rep.Err())
	}
	m, crep := Lower(prog, settings)
	if m == nil {
		return "", crep, SymbolTable{}
	}
	syms, err := ModuleSymbols(m)
	if err != nil {
		t.Fatal(err)
	}
	return m.String(), crep, syms
}

func TestLowerProgram(t *testing.T) {
	ir, rep, syms := lower(t, `
const limit = 3
let i = 0
let total = 0.5
while i < limit {
    if i % 2 == 0 {
        print("even", i)
    } elif i == 1 {
        print(true)
    } else {
        print(total / 2)
    }
    i += 1
}
`, Settings{Package: "demo"})

	if rep.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", rep.Err())
	}
	for _, want := range []string{
		"declare i32 @printf(",
		"define i32 @main()",
		"srem i64",
		"icmp slt i64",
		"fdiv double",
		"ret i32 0",
		"@__trion_symbols",
		`c"%s %lld\0A\00"`,
	} {
		if !strings.Contains(ir, want) {
			t.Errorf("missing %q in:\n%s", want, ir)
		}
	}

	want := SymbolTable{
		Package:   "demo",
		Variables: map[string]string{"i": "int", "total": "float"},
		Constants: map[string]string{"limit": "int"},
	}
	if !reflect.DeepEqual(syms, want) {
		t.Fatalf("got %s, want %s", repr.String(syms), repr.String(want))
	}
}

func TestLibraryEntryName(t *testing.T) {
	ir, rep, _ := lower(t, `print("hi")`, Settings{Package: "lib", Library: true})
	if rep.HasErrors() || !strings.Contains(ir, "define i32 @lib_main()") {
		t.Fatalf("unexpected module (%v):\n%s", rep.Err(), ir)
	}
}

func TestUnsupportedConstructs(t *testing.T) {
	ir, rep, _ := lower(t, `
fn f() { }
let xs = [1]
let s = "a"
s = 1
const k = 1
k = 2
if 1 { }
print(undefined)
`, Settings{})

	want := []string{
		"TypeError: function declaration is not supported by the compiler. prog.tri:2:1",
		"TypeError: list literal is not supported by the compiler. prog.tri:3:10",
		"TypeError: tried to assign something of type 'int' to 's' of type 'str'. prog.tri:5:1",
		"RuntimeError: Cannot assign to constant 'k'. prog.tri:7:1",
		"TypeError: condition must be a bool, not 'int'. prog.tri:8:4",
		"NameError: Undefined variable 'undefined'. prog.tri:9:7",
	}
	if ir != "" {
		t.Fatalf("no module should be produced when lowering fails")
	}
	if len(rep.Errors) != len(want) {
		t.Fatalf("expected %d errors, got:\n%s", len(want), rep.Err())
	}
	for i, d := range rep.Errors {
		if d.Error() != want[i] {
			t.Errorf("error %d: got %q, want %q", i, d.Error(), want[i])
		}
	}
}

func TestParseSymbols(t *testing.T) {
	syms, err := ParseSymbols(`{"package":"p","variables":{"x":"int"},"constants":{}}`)
	if err != nil || syms.Package != "p" || syms.Variables["x"] != "int" {
		t.Fatalf("got %s, %v", repr.String(syms), err)
	}
	if _, err := ParseSymbols("{"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestPrintKeepsWholeFloatsFloats(t *testing.T) {
	ir, rep, _ := lower(t, `print(2.0, 7)`, Settings{Package: "p"})
	if rep.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", rep.Err())
	}
	for _, want := range []string{
		"declare double @llvm.floor.f64(double",
		`c"%g%s %lld\0A\00"`,
		`c".0\00"`,
		"select i1",
	} {
		if !strings.Contains(ir, want) {
			t.Errorf("missing %q in:\n%s", want, ir)
		}
	}
}
