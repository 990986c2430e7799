package main

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/alecthomas/participle"
)

const sample = `
// comment
type Expression = | Literal | Identifier ;
type Statement = | Block ;
`

func TestGenerateDecls(t *testing.T) {
	parser := participle.MustBuild(&TypeDecls{})
	decls := TypeDecls{}
	if err := parser.ParseString(sample, &decls); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(decls.Declarations) != 2 || len(decls.Declarations[0].Cases) != 2 {
		t.Fatalf("unexpected declarations %+v", decls.Declarations)
	}
	if err := decls.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	out := GenerateDecls("ast", "nodes.adt", &decls)
	for _, want := range []string{
		"// Code generated by adtgen from nodes.adt. DO NOT EDIT.",
		"package ast",
		"func (*Literal) is_Expression() {}",
		"func (*Block) is_Statement() {}",
		"func (v *Identifier) Position() types.Position",
		"_ Statement  = (*Block)(nil)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("generated code is missing %q:\n%s", want, out)
		}
	}
}

func TestValidateRejectsSharedVariant(t *testing.T) {
	decls := TypeDecls{Declarations: []*Declaration{
		{Name: "Expression", Cases: []string{"Block"}},
		{Name: "Statement", Cases: []string{"Block"}},
	}}
	if err := decls.Validate(); err == nil {
		t.Fatalf("expected an error")
	}
}

// body drops everything before the first method so import formatting does
// not matter.
func body(src string) string {
	return src[strings.Index(src, "func "):]
}

func TestCheckedInNodesAreCurrent(t *testing.T) {
	adt, err := ioutil.ReadFile("../ast/nodes.adt")
	if err != nil {
		t.Fatal(err)
	}
	committed, err := ioutil.ReadFile("../ast/nodes_gen.go")
	if err != nil {
		t.Fatal(err)
	}

	decls := TypeDecls{}
	if err := participle.MustBuild(&TypeDecls{}).ParseBytes(adt, &decls); err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := GenerateDecls("ast", "nodes.adt", &decls)
	if body(got) != body(string(committed)) {
		t.Fatalf("ast/nodes_gen.go is stale, run go generate ./ast:\n%s", got)
	}
}
