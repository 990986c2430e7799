package ast

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

import "github.com/JoeySoprano420/Trion/types"

// Node is anything produced by the parser. Nodes are never mutated once the
// parser returns them.
type Node interface {
	Position() types.Position
}

type Expression interface {
	Node
	is_Expression()
}

type Statement interface {
	Node
	is_Statement()
}

// Literal holds an int64, float64, string, bool or nil.
type Literal struct {
	Pos   types.Position
	Value interface{}
}

type Identifier struct {
	Pos  types.Position
	Name string
}

type BinaryOp struct {
	Pos      types.Position
	Left     Expression
	Operator string
	Right    Expression
}

type UnaryOp struct {
	Pos      types.Position
	Operator string
	Operand  Expression
}

type Assignment struct {
	Pos    types.Position
	Target *Identifier
	Value  Expression
}

type Call struct {
	Pos       types.Position
	Callee    Expression
	Arguments []Expression
}

type IndexAccess struct {
	Pos    types.Position
	Object Expression
	Index  Expression
}

type MemberAccess struct {
	Pos    types.Position
	Object Expression
	Name   string
}

type ListLiteral struct {
	Pos      types.Position
	Elements []Expression
}

type ExprStmt struct {
	Pos  types.Position
	Expr Expression
}

type Block struct {
	Pos        types.Position
	Statements []Statement
}

type VarDecl struct {
	Pos   types.Position
	Name  string
	Init  Expression
	Const bool
}

type ElifClause struct {
	Condition Expression
	Body      *Block
}

type If struct {
	Pos       types.Position
	Condition Expression
	Then      *Block
	Elifs     []ElifClause
	Else      *Block
}

type While struct {
	Pos       types.Position
	Condition Expression
	Body      *Block
}

type For struct {
	Pos      types.Position
	Variable string
	Iterable Expression
	Body     *Block
}

type Return struct {
	Pos   types.Position
	Value Expression
}

type FnDecl struct {
	Pos    types.Position
	Name   string
	Params []string
	Body   *Block
}

type ClassDecl struct {
	Pos     types.Position
	Name    string
	Super   string
	Methods []*FnDecl
}

// CatchClause has an optional Type and an optional Binding; empty strings
// mean absent.
type CatchClause struct {
	Type    string
	Binding string
	Body    *Block
}

type Try struct {
	Pos     types.Position
	Body    *Block
	Catches []CatchClause
	Finally *Block
}

type Throw struct {
	Pos   types.Position
	Value Expression
}

type Import struct {
	Pos    types.Position
	Module string
	Alias  string
}

type Program struct {
	Statements []Statement
}

func (p *Program) Position() types.Position {
	if len(p.Statements) == 0 {
		return types.Position{}
	}
	return p.Statements[0].Position()
}
