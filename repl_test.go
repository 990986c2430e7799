package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JoeySoprano420/Trion/config"
)

func TestPending(t *testing.T) {
	cases := map[string]bool{
		"print(1)":            false,
		"fn f() {":            true,
		"let xs = [1,":        true,
		"if x { print((1)) }": false,
		`print("{")`:          false,
		"}":                   false,
	}
	for src, want := range cases {
		if got := pending(src); got != want {
			t.Errorf("pending(%q) = %v, want %v", src, got, want)
		}
	}
}

func TestREPLSession(t *testing.T) {
	var out, errs bytes.Buffer
	r := newREPL(config.Default("t"), &out, &errs, nil)

	inputs := []string{
		"let x = 20",
		"fn twice(n) {\n    return n * 2\n}",
		"twice(x) + 2",
		"missing",
		"print(\"side effect\")",
		`"text"`,
		":env",
	}
	for _, in := range inputs {
		if r.handle(in) {
			t.Fatalf("%q should not end the session", in)
		}
	}
	if !r.handle(":quit") {
		t.Fatalf(":quit should end the session")
	}

	want := "20\n<function twice>\n42\nside effect\n\"text\"\ntwice = <function twice>\nx = 20\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
	if !strings.Contains(errs.String(), "NameError: Undefined variable 'missing'") {
		t.Fatalf("unexpected stderr %q", errs.String())
	}
}
