package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

const typesPkg = "github.com/JoeySoprano420/Trion/types"

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Cases []string `("|" @Ident)+`
	I     struct{} `";"`
}

// Validate rejects a variant listed under more than one sum type, since the
// generated Position methods would collide.
func (t *TypeDecls) Validate() error {
	seen := map[string]string{}
	for _, decl := range t.Declarations {
		for _, it := range decl.Cases {
			if prev, ok := seen[it]; ok {
				return fmt.Errorf("%s is a variant of both %s and %s", it, prev, decl.Name)
			}
			seen[it] = decl.Name
		}
	}
	return nil
}

func GenerateDecls(pkgname, source string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by adtgen from %s. DO NOT EDIT.", source))

	for _, decl := range t.Declarations {
		for _, it := range decl.Cases {
			f.Func().Params(Op("*").Id(it)).Id("is_" + decl.Name).Params().Block()
			f.Func().Params(Id("v").Op("*").Id(it)).Id("Position").Params().Qual(typesPkg, "Position").Block(
				Return(Id("v").Dot("Pos")),
			)
		}
	}

	var assertions []Code
	for _, decl := range t.Declarations {
		for _, it := range decl.Cases {
			assertions = append(assertions, Id("_").Id(decl.Name).Op("=").Parens(Op("*").Id(it)).Call(Nil()))
		}
	}
	f.Var().Defs(assertions...)

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtgen <in.adt> <out.go> <package>")
		os.Exit(2)
	}

	parser := participle.MustBuild(&TypeDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast := TypeDecls{}
	err = parser.ParseBytes(inData, &ast)
	if err != nil {
		panic(err)
	}
	if err := ast.Validate(); err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, filepath.Base(in), &ast)), 0644)
	if err != nil {
		panic(err)
	}
}
