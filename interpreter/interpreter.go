package interpreter

import (
	"io"
	"os"

	"github.com/JoeySoprano420/Trion/ast"
	"github.com/JoeySoprano420/Trion/errors"
)

// MaxCallDepth bounds nested calls so runaway recursion becomes a fault
// instead of exhausting the host stack.
const MaxCallDepth = 1000

type flow int

const (
	flowNormal flow = iota
	flowReturning
)

// completion is the outcome of a statement that did not fault. A fault is
// carried by the error return alongside it.
type completion struct {
	flow  flow
	value Value
}

type Interpreter struct {
	globals *Environment
	out     io.Writer
	depth   int
}

// New returns an interpreter with fresh globals whose print builtin writes
// to out, or to stdout when out is nil.
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{
		globals: NewGlobals(),
		out:     out,
	}
}

func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Interpret runs prog against the interpreter's globals.
func (in *Interpreter) Interpret(prog *ast.Program) (Value, *errors.Reporter) {
	return in.InterpretIn(prog, in.globals)
}

// InterpretIn runs prog in env. It returns the value of the last statement
// (Null when that statement has no value), or nil and exactly one diagnostic
// when a fault escapes.
func (in *Interpreter) InterpretIn(prog *ast.Program, env *Environment) (result Value, rep *errors.Reporter) {
	rep = errors.NewReporter()
	in.depth = 0

	defer func() {
		if r := recover(); r != nil {
			rep.Report(errors.RuntimeFault, prog.Position(), "internal error: %v", r)
			result = nil
		}
	}()

	result = Null{}
	for _, stmt := range prog.Statements {
		c, err := in.execute(stmt, env)
		if err != nil {
			rep.Add(diagnostic(err))
			return nil, rep
		}
		if c.flow == flowReturning {
			rep.Report(errors.RuntimeFault, stmt.Position(), "'return' outside function")
			return nil, rep
		}
		result = c.value
		if result == nil {
			result = Null{}
		}
	}
	return result, rep
}

func diagnostic(err error) *errors.Diagnostic {
	if d, ok := err.(*errors.Diagnostic); ok {
		return d
	}
	return &errors.Diagnostic{Kind: errors.RuntimeFault, Message: err.Error()}
}

func (in *Interpreter) execute(stmt ast.Statement, env *Environment) (completion, error) {
	switch v := stmt.(type) {
	case *ast.ExprStmt:
		val, err := in.evaluate(v.Expr, env)
		return completion{value: val}, err

	case *ast.VarDecl:
		var val Value = Null{}
		if v.Init != nil {
			var err error
			if val, err = in.evaluate(v.Init, env); err != nil {
				return completion{}, err
			}
		}
		env.Define(v.Name, val, v.Const)
		return completion{value: val}, nil

	case *ast.Block:
		return in.executeBlock(v.Statements, NewEnvironment(env))

	case *ast.If:
		cond, err := in.evaluate(v.Condition, env)
		if err != nil {
			return completion{}, err
		}
		if Truthy(cond) {
			return in.execute(v.Then, env)
		}
		for _, elif := range v.Elifs {
			cond, err := in.evaluate(elif.Condition, env)
			if err != nil {
				return completion{}, err
			}
			if Truthy(cond) {
				return in.execute(elif.Body, env)
			}
		}
		if v.Else != nil {
			return in.execute(v.Else, env)
		}
		return completion{}, nil

	case *ast.While:
		var last Value = Null{}
		for {
			cond, err := in.evaluate(v.Condition, env)
			if err != nil {
				return completion{}, err
			}
			if !Truthy(cond) {
				return completion{value: last}, nil
			}
			c, err := in.execute(v.Body, env)
			if err != nil || c.flow == flowReturning {
				return c, err
			}
			last = c.value
		}

	case *ast.For:
		iterable, err := in.evaluate(v.Iterable, env)
		if err != nil {
			return completion{}, err
		}
		items, err := iterate(v.Pos, iterable)
		if err != nil {
			return completion{}, err
		}
		var last Value = Null{}
		for _, item := range items {
			iteration := NewEnvironment(env)
			iteration.Define(v.Variable, item, false)
			c, err := in.execute(v.Body, iteration)
			if err != nil || c.flow == flowReturning {
				return c, err
			}
			last = c.value
		}
		return completion{value: last}, nil

	case *ast.Return:
		var val Value = Null{}
		if v.Value != nil {
			var err error
			if val, err = in.evaluate(v.Value, env); err != nil {
				return completion{}, err
			}
		}
		return completion{flow: flowReturning, value: val}, nil

	case *ast.FnDecl:
		fn := &Function{Decl: v, Closure: env}
		env.Define(v.Name, fn, false)
		return completion{value: fn}, nil

	case *ast.ClassDecl:
		class, err := in.declareClass(v, env)
		if err != nil {
			return completion{}, err
		}
		return completion{value: class}, nil

	case *ast.Try:
		return in.executeTry(v, env)

	case *ast.Throw:
		val, err := in.evaluate(v.Value, env)
		if err != nil {
			return completion{}, err
		}
		return completion{}, errors.Errorf(errors.ThrowFault, v.Pos, "%s", val.String())

	case *ast.Import:
		name := v.Alias
		if name == "" {
			name = v.Module
		}
		env.Define(name, Str("Module: "+v.Module), false)
		return completion{}, nil
	}

	return completion{}, errors.Errorf(errors.RuntimeFault, stmt.Position(), "cannot execute %T", stmt)
}

// executeBlock yields the completion of the last statement it ran.
func (in *Interpreter) executeBlock(stmts []ast.Statement, env *Environment) (completion, error) {
	var last completion
	for _, stmt := range stmts {
		c, err := in.execute(stmt, env)
		if err != nil || c.flow == flowReturning {
			return c, err
		}
		last = c
	}
	return last, nil
}

// executeTry never intercepts a return. A fault goes to the first catch
// clause whatever its declared type, and is dropped when there is none.
func (in *Interpreter) executeTry(v *ast.Try, env *Environment) (completion, error) {
	c, err := in.execute(v.Body, env)
	if err != nil {
		if len(v.Catches) > 0 {
			clause := v.Catches[0]
			scope := NewEnvironment(env)
			if clause.Binding != "" {
				scope.Define(clause.Binding, Str(diagnostic(err).Message), false)
			}
			c, err = in.execute(clause.Body, scope)
		} else {
			c, err = completion{}, nil
		}
	}

	if v.Finally != nil {
		fc, ferr := in.execute(v.Finally, env)
		if ferr != nil || fc.flow == flowReturning {
			return fc, ferr
		}
	}
	return c, err
}

func (in *Interpreter) declareClass(v *ast.ClassDecl, env *Environment) (*Class, error) {
	class := &Class{Name: v.Name, Methods: map[string]*Function{}}
	if v.Super != "" {
		super, ok := env.Get(v.Super)
		if !ok {
			return nil, errors.Errorf(errors.NameError, v.Pos, "Undefined variable '%s'", v.Super)
		}
		class.Super, ok = super.(*Class)
		if !ok {
			return nil, errors.Errorf(errors.TypeFault, v.Pos, "Superclass '%s' must be a class, not '%s'", v.Super, super.TypeName())
		}
	}
	for _, m := range v.Methods {
		class.Methods[m.Name] = &Function{Decl: m, Closure: env}
	}
	env.Define(v.Name, class, false)
	return class, nil
}

func (in *Interpreter) evaluate(expr ast.Expression, env *Environment) (Value, error) {
	switch v := expr.(type) {
	case *ast.Literal:
		return FromLiteral(v.Value), nil

	case *ast.Identifier:
		if val, ok := env.Get(v.Name); ok {
			return val, nil
		}
		return nil, errors.Errorf(errors.NameError, v.Pos, "Undefined variable '%s'", v.Name)

	case *ast.BinaryOp:
		// Both operands are always evaluated, including for and/or.
		left, err := in.evaluate(v.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := in.evaluate(v.Right, env)
		if err != nil {
			return nil, err
		}
		switch v.Operator {
		case "and":
			if !Truthy(left) {
				return left, nil
			}
			return right, nil
		case "or":
			if Truthy(left) {
				return left, nil
			}
			return right, nil
		}
		return binaryOp(v.Pos, v.Operator, left, right)

	case *ast.UnaryOp:
		operand, err := in.evaluate(v.Operand, env)
		if err != nil {
			return nil, err
		}
		return unaryOp(v.Pos, v.Operator, operand)

	case *ast.Assignment:
		val, err := in.evaluate(v.Value, env)
		if err != nil {
			return nil, err
		}
		frame := env.Resolve(v.Target.Name)
		if frame == nil {
			return nil, errors.Errorf(errors.NameError, v.Pos, "Undefined variable '%s'", v.Target.Name)
		}
		if frame.IsConst(v.Target.Name) {
			return nil, errors.Errorf(errors.RuntimeFault, v.Pos, "Cannot assign to constant '%s'", v.Target.Name)
		}
		frame.set(v.Target.Name, val)
		return val, nil

	case *ast.Call:
		callee, err := in.evaluate(v.Callee, env)
		if err != nil {
			return nil, err
		}
		args := make([]Value, len(v.Arguments))
		for i, arg := range v.Arguments {
			if args[i], err = in.evaluate(arg, env); err != nil {
				return nil, err
			}
		}
		return in.call(v, callee, args)

	case *ast.IndexAccess:
		obj, err := in.evaluate(v.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := in.evaluate(v.Index, env)
		if err != nil {
			return nil, err
		}
		return index(v.Pos, obj, idx)

	case *ast.MemberAccess:
		obj, err := in.evaluate(v.Object, env)
		if err != nil {
			return nil, err
		}
		if class, ok := obj.(*Class); ok {
			if m, ok := class.FindMethod(v.Name); ok {
				return m, nil
			}
			return nil, errors.Errorf(errors.NameError, v.Pos, "Class '%s' has no member '%s'", class.Name, v.Name)
		}
		return nil, errors.Errorf(errors.TypeFault, v.Pos, "'%s' object has no member '%s'", obj.TypeName(), v.Name)

	case *ast.ListLiteral:
		list := &List{Elements: make([]Value, len(v.Elements))}
		for i, el := range v.Elements {
			var err error
			if list.Elements[i], err = in.evaluate(el, env); err != nil {
				return nil, err
			}
		}
		return list, nil
	}

	return nil, errors.Errorf(errors.RuntimeFault, expr.Position(), "cannot evaluate %T", expr)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (in *Interpreter) call(site *ast.Call, callee Value, args []Value) (Value, error) {
	switch fn := callee.(type) {
	case *Builtin:
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return nil, errors.Errorf(errors.TypeFault, site.Pos,
				"%s() takes exactly %d argument%s (%d given)", fn.Name, fn.Arity, plural(fn.Arity), len(args))
		}
		return fn.Fn(in, site.Pos, args)

	case *Function:
		params := fn.Decl.Params
		if len(args) != len(params) {
			return nil, errors.Errorf(errors.TypeFault, site.Pos,
				"%s() takes %d argument%s but %d were given", fn.Decl.Name, len(params), plural(len(params)), len(args))
		}
		if in.depth >= MaxCallDepth {
			return nil, errors.Errorf(errors.RuntimeFault, site.Pos, "Maximum call depth exceeded")
		}
		in.depth++
		defer func() { in.depth-- }()

		scope := NewEnvironment(fn.Closure)
		for i, name := range params {
			scope.Define(name, args[i], false)
		}
		c, err := in.executeBlock(fn.Decl.Body.Statements, scope)
		if err != nil {
			return nil, err
		}
		if c.flow == flowReturning {
			return c.value, nil
		}
		return Null{}, nil
	}

	return nil, errors.Errorf(errors.TypeFault, site.Pos, "'%s' object is not callable", callee.TypeName())
}
