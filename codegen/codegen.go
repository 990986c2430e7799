package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/JoeySoprano420/Trion/ast"
	"github.com/JoeySoprano420/Trion/errors"
)

type Settings struct {
	Package string
	// Library names the entry function <package>_main instead of main so the
	// module can be linked as a shared object.
	Library bool
}

func (s Settings) entryName() string {
	if s.Library {
		return s.Package + "_main"
	}
	return "main"
}

// Lower compiles the statically typed subset of Trion to an LLVM module:
// scalar let/const bindings, arithmetic, comparisons, if/elif/else, while and
// print. Anything else is reported, and no module is returned when any
// diagnostic was recorded.
func Lower(prog *ast.Program, settings Settings) (*ir.Module, *errors.Reporter) {
	rep := errors.NewReporter()

	c := &ctx{
		names:           []map[string]namedThing{{}},
		module:          ir.NewModule(),
		stringConstants: map[string]value.Value{},
	}
	c.printf = addPrintf(c.module)

	entry := c.module.NewFunc(settings.entryName(), types.I32)
	c.allocas = entry.NewBlock("entry")
	b := entry.NewBlock("body")

	for _, stmt := range prog.Statements {
		b = c.lowerToplevel(stmt, b, rep)
	}

	c.allocas.NewBr(entry.Blocks[1])
	b.NewRet(constant.NewInt(types.I32, 0))

	if rep.HasErrors() {
		return nil, rep
	}
	registerSymbols(c.module, c.symbols(settings.Package))
	return c.module, rep
}

func (c *ctx) lowerToplevel(stmt ast.Statement, b *ir.Block, rep *errors.Reporter) (out *ir.Block) {
	defer func() {
		if r := recover(); r != nil {
			d, ok := r.(*errors.Diagnostic)
			if !ok {
				panic(r)
			}
			rep.Add(d)
			out = b
		}
	}()
	return c.statement(stmt, b)
}

// statement lowers stmt into b and returns the block that control falls
// through to afterwards.
func (c *ctx) statement(stmt ast.Statement, b *ir.Block) *ir.Block {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.expression(s.Expr, b)
		return b

	case *ast.VarDecl:
		if s.Init == nil {
			unsupported(s.Pos, "a declaration without an initializer")
		}
		val := c.expression(s.Init, b)
		if s.Const {
			c.top()[s.Name] = LLVMValue{Value: val}
			return b
		}
		slot := c.allocas.NewAlloca(val.Type())
		slot.SetName(fmt.Sprintf("%s.%d", s.Name, len(c.allocas.Insts)))
		b.NewStore(val, slot)
		c.top()[s.Name] = LLVMMutableValue{Value: slot, elem: val.Type()}
		return b

	case *ast.Block:
		c.pushScope()
		defer c.popScope()
		for _, inner := range s.Statements {
			b = c.statement(inner, b)
		}
		return b

	case *ast.If:
		fn := b.Parent
		merge := fn.NewBlock("")

		branch := func(cond ast.Expression, body *ast.Block, from *ir.Block) *ir.Block {
			condVal := c.condition(cond, from)
			then := fn.NewBlock("")
			next := fn.NewBlock("")
			from.NewCondBr(condVal, then, next)
			if end := c.statement(body, then); end.Term == nil {
				end.NewBr(merge)
			}
			return next
		}

		next := branch(s.Condition, s.Then, b)
		for _, elif := range s.Elifs {
			next = branch(elif.Condition, elif.Body, next)
		}
		if s.Else != nil {
			next = c.statement(s.Else, next)
		}
		next.NewBr(merge)
		return merge

	case *ast.While:
		fn := b.Parent
		cond := fn.NewBlock("")
		body := fn.NewBlock("")
		exit := fn.NewBlock("")

		b.NewBr(cond)
		cond.NewCondBr(c.condition(s.Condition, cond), body, exit)
		if end := c.statement(s.Body, body); end.Term == nil {
			end.NewBr(cond)
		}
		return exit

	case *ast.FnDecl:
		unsupported(s.Pos, "function declaration")
	case *ast.ClassDecl:
		unsupported(s.Pos, "class declaration")
	case *ast.For:
		unsupported(s.Pos, "for loop")
	case *ast.Return:
		unsupported(s.Pos, "return")
	case *ast.Try:
		unsupported(s.Pos, "try statement")
	case *ast.Throw:
		unsupported(s.Pos, "throw")
	case *ast.Import:
		unsupported(s.Pos, "import")
	}

	unsupported(stmt.Position(), fmt.Sprintf("statement %T", stmt))
	return nil
}

// condition lowers expr and requires a bool.
func (c *ctx) condition(expr ast.Expression, b *ir.Block) value.Value {
	val := c.expression(expr, b)
	if !val.Type().Equal(Bool) {
		mismatch(expr.Position(), "condition must be a bool, not '%s'", typeName(val.Type()))
	}
	return val
}

func (c *ctx) expression(expr ast.Expression, b *ir.Block) value.Value {
	switch e := expr.(type) {
	case *ast.Literal:
		switch lit := e.Value.(type) {
		case int64:
			return constant.NewInt(Int, lit)
		case float64:
			return constant.NewFloat(Float, lit)
		case bool:
			return constant.NewBool(lit)
		case string:
			return c.cstring(lit)
		}
		unsupported(e.Pos, "null")

	case *ast.Identifier:
		switch v := c.lookup(e.Name, e.Pos).(type) {
		case LLVMValue:
			return v.Value
		case LLVMMutableValue:
			return b.NewLoad(v.elem, v.Value)
		}

	case *ast.Assignment:
		val := c.expression(e.Value, b)
		to, ok := c.lookup(e.Target.Name, e.Pos).(LLVMMutableValue)
		if !ok {
			panic(errors.Errorf(errors.RuntimeFault, e.Pos, "Cannot assign to constant '%s'", e.Target.Name))
		}
		if !val.Type().Equal(to.elem) {
			mismatch(e.Pos, "tried to assign something of type '%s' to '%s' of type '%s'",
				typeName(val.Type()), e.Target.Name, typeName(to.elem))
		}
		b.NewStore(val, to.Value)
		return val

	case *ast.UnaryOp:
		val := c.expression(e.Operand, b)
		switch {
		case e.Operator == "not" && val.Type().Equal(Bool):
			return b.NewXor(val, constant.True)
		case e.Operator == "-" && val.Type().Equal(Int):
			return b.NewSub(constant.NewInt(Int, 0), val)
		case e.Operator == "-" && val.Type().Equal(Float):
			return b.NewFNeg(val)
		}
		mismatch(e.Pos, "bad operand type for unary %s: '%s'", e.Operator, typeName(val.Type()))

	case *ast.BinaryOp:
		return c.binary(e, b)

	case *ast.Call:
		if callee, ok := e.Callee.(*ast.Identifier); ok && callee.Name == "print" {
			return c.lowerPrint(e, b)
		}
		unsupported(e.Pos, "calling anything but print")

	case *ast.IndexAccess:
		unsupported(e.Pos, "indexing")
	case *ast.MemberAccess:
		unsupported(e.Pos, "member access")
	case *ast.ListLiteral:
		unsupported(e.Pos, "list literal")
	}

	unsupported(expr.Position(), fmt.Sprintf("expression %T", expr))
	return nil
}

var intPreds = map[string]enum.IPred{
	"==": enum.IPredEQ,
	"!=": enum.IPredNE,
	"<":  enum.IPredSLT,
	"<=": enum.IPredSLE,
	">":  enum.IPredSGT,
	">=": enum.IPredSGE,
}

var floatPreds = map[string]enum.FPred{
	"==": enum.FPredOEQ,
	"!=": enum.FPredONE,
	"<":  enum.FPredOLT,
	"<=": enum.FPredOLE,
	">":  enum.FPredOGT,
	">=": enum.FPredOGE,
}

func (c *ctx) binary(e *ast.BinaryOp, b *ir.Block) value.Value {
	l := c.expression(e.Left, b)
	r := c.expression(e.Right, b)
	lt, rt := l.Type(), r.Type()

	if lt.Equal(Bool) && rt.Equal(Bool) {
		switch e.Operator {
		case "and":
			return b.NewAnd(l, r)
		case "or":
			return b.NewOr(l, r)
		case "==":
			return b.NewICmp(enum.IPredEQ, l, r)
		case "!=":
			return b.NewICmp(enum.IPredNE, l, r)
		}
	}

	if lt.Equal(Int) && rt.Equal(Int) {
		switch e.Operator {
		case "+":
			return b.NewAdd(l, r)
		case "-":
			return b.NewSub(l, r)
		case "*":
			return b.NewMul(l, r)
		case "%":
			// Floored modulo: the result takes the sign of the divisor.
			rem := b.NewSRem(l, r)
			nonzero := b.NewICmp(enum.IPredNE, rem, constant.NewInt(Int, 0))
			signs := b.NewICmp(enum.IPredSLT, b.NewXor(rem, r), constant.NewInt(Int, 0))
			return b.NewSelect(b.NewAnd(nonzero, signs), b.NewAdd(rem, r), rem)
		}
		if pred, ok := intPreds[e.Operator]; ok {
			return b.NewICmp(pred, l, r)
		}
	}

	isNum := func(t types.Type) bool { return t.Equal(Int) || t.Equal(Float) }
	if isNum(lt) && isNum(rt) {
		if lt.Equal(Int) {
			l = b.NewSIToFP(l, Float)
		}
		if rt.Equal(Int) {
			r = b.NewSIToFP(r, Float)
		}
		switch e.Operator {
		case "+":
			return b.NewFAdd(l, r)
		case "-":
			return b.NewFSub(l, r)
		case "*":
			return b.NewFMul(l, r)
		case "/":
			return b.NewFDiv(l, r)
		}
		if pred, ok := floatPreds[e.Operator]; ok {
			return b.NewFCmp(pred, l, r)
		}
	}

	mismatch(e.Pos, "operator '%s' is not supported by the compiler for '%s' and '%s'",
		e.Operator, typeName(lt), typeName(rt))
	return nil
}
