package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders a node back to a fully parenthesised source form. The output
// is stable and is what the parser tests compare against.
func String(n Node) string {
	var b strings.Builder
	write(&b, n, 0)
	return b.String()
}

func LiteralString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		return s
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprintf("%v", v)
}

func exprs(list []Expression) string {
	var parts []string
	for _, e := range list {
		parts = append(parts, String(e))
	}
	return strings.Join(parts, ", ")
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
}

func writeBlock(b *strings.Builder, blk *Block, depth int) {
	b.WriteString("{\n")
	for _, s := range blk.Statements {
		indent(b, depth+1)
		write(b, s, depth+1)
		b.WriteString("\n")
	}
	indent(b, depth)
	b.WriteString("}")
}

func write(b *strings.Builder, n Node, depth int) {
	switch v := n.(type) {
	case *Literal:
		b.WriteString(LiteralString(v.Value))
	case *Identifier:
		b.WriteString(v.Name)
	case *BinaryOp:
		fmt.Fprintf(b, "(%s %s %s)", String(v.Left), v.Operator, String(v.Right))
	case *UnaryOp:
		fmt.Fprintf(b, "(%s %s)", v.Operator, String(v.Operand))
	case *Assignment:
		fmt.Fprintf(b, "(%s = %s)", v.Target.Name, String(v.Value))
	case *Call:
		fmt.Fprintf(b, "%s(%s)", String(v.Callee), exprs(v.Arguments))
	case *IndexAccess:
		fmt.Fprintf(b, "%s[%s]", String(v.Object), String(v.Index))
	case *MemberAccess:
		fmt.Fprintf(b, "%s.%s", String(v.Object), v.Name)
	case *ListLiteral:
		fmt.Fprintf(b, "[%s]", exprs(v.Elements))

	case *ExprStmt:
		b.WriteString(String(v.Expr))
	case *Block:
		writeBlock(b, v, depth)
	case *VarDecl:
		kw := "let"
		if v.Const {
			kw = "const"
		}
		if v.Init == nil {
			fmt.Fprintf(b, "%s %s", kw, v.Name)
		} else {
			fmt.Fprintf(b, "%s %s = %s", kw, v.Name, String(v.Init))
		}
	case *If:
		fmt.Fprintf(b, "if %s ", String(v.Condition))
		writeBlock(b, v.Then, depth)
		for _, elif := range v.Elifs {
			fmt.Fprintf(b, " elif %s ", String(elif.Condition))
			writeBlock(b, elif.Body, depth)
		}
		if v.Else != nil {
			b.WriteString(" else ")
			writeBlock(b, v.Else, depth)
		}
	case *While:
		fmt.Fprintf(b, "while %s ", String(v.Condition))
		writeBlock(b, v.Body, depth)
	case *For:
		fmt.Fprintf(b, "for %s in %s ", v.Variable, String(v.Iterable))
		writeBlock(b, v.Body, depth)
	case *Return:
		if v.Value == nil {
			b.WriteString("return")
		} else {
			fmt.Fprintf(b, "return %s", String(v.Value))
		}
	case *FnDecl:
		fmt.Fprintf(b, "fn %s(%s) ", v.Name, strings.Join(v.Params, ", "))
		writeBlock(b, v.Body, depth)
	case *ClassDecl:
		fmt.Fprintf(b, "class %s ", v.Name)
		if v.Super != "" {
			fmt.Fprintf(b, ": %s ", v.Super)
		}
		b.WriteString("{\n")
		for _, m := range v.Methods {
			indent(b, depth+1)
			write(b, m, depth+1)
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("}")
	case *Try:
		b.WriteString("try ")
		writeBlock(b, v.Body, depth)
		for _, c := range v.Catches {
			b.WriteString(" catch ")
			switch {
			case c.Type != "" && c.Binding != "":
				fmt.Fprintf(b, "(%s %s) ", c.Type, c.Binding)
			case c.Type != "":
				fmt.Fprintf(b, "(%s) ", c.Type)
			}
			writeBlock(b, c.Body, depth)
		}
		if v.Finally != nil {
			b.WriteString(" finally ")
			writeBlock(b, v.Finally, depth)
		}
	case *Throw:
		fmt.Fprintf(b, "throw %s", String(v.Value))
	case *Import:
		if v.Alias == "" {
			fmt.Fprintf(b, "import %s", v.Module)
		} else {
			fmt.Fprintf(b, "import %s as %s", v.Module, v.Alias)
		}
	case *Program:
		for i, s := range v.Statements {
			if i > 0 {
				b.WriteString("\n")
			}
			write(b, s, depth)
		}
	case nil:
		b.WriteString("<nil>")
	default:
		panic(fmt.Sprintf("unhandled node %T", n))
	}
}
