package parser

import (
	"strconv"

	"github.com/JoeySoprano420/Trion/ast"
	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/types"
)

var compound = map[types.TokenKind]string{
	types.PLUS_ASSIGN:    "+",
	types.MINUS_ASSIGN:   "-",
	types.STAR_ASSIGN:    "*",
	types.SLASH_ASSIGN:   "/",
	types.PERCENT_ASSIGN: "%",
}

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expression {
	expr := p.or()

	if !p.PeekIs(types.ASSIGN, types.PLUS_ASSIGN, types.MINUS_ASSIGN, types.STAR_ASSIGN, types.SLASH_ASSIGN, types.PERCENT_ASSIGN) {
		return expr
	}
	op := p.advance()
	p.skipNewlines()
	value := p.assignment()

	target, ok := expr.(*ast.Identifier)
	if !ok {
		p.reporter.Report(errors.SyntaxError, op.Pos(), "Invalid assignment target")
		return expr
	}
	if bin, ok := compound[op.Kind]; ok {
		value = &ast.BinaryOp{Pos: op.Pos(), Left: target, Operator: bin, Right: value}
	}
	return &ast.Assignment{Pos: target.Pos, Target: target, Value: value}
}

// binary parses a left-associative chain of operand separated by any of ops.
func (p *Parser) binary(operand func() ast.Expression, ops ...types.TokenKind) ast.Expression {
	expr := operand()
	for p.PeekIs(ops...) {
		op := p.advance()
		p.skipNewlines()
		right := operand()
		expr = &ast.BinaryOp{Pos: op.Pos(), Left: expr, Operator: op.Text, Right: right}
	}
	return expr
}

func (p *Parser) or() ast.Expression {
	return p.binary(p.and, types.OR)
}

func (p *Parser) and() ast.Expression {
	return p.binary(p.equality, types.AND)
}

func (p *Parser) equality() ast.Expression {
	return p.binary(p.comparison, types.EQUAL, types.NOT_EQUAL)
}

func (p *Parser) comparison() ast.Expression {
	return p.binary(p.term, types.LESS, types.LESS_EQUAL, types.GREATER, types.GREATER_EQUAL)
}

func (p *Parser) term() ast.Expression {
	return p.binary(p.factor, types.PLUS, types.MINUS)
}

func (p *Parser) factor() ast.Expression {
	return p.binary(p.power, types.STAR, types.SLASH, types.PERCENT)
}

func (p *Parser) power() ast.Expression {
	expr := p.unary()
	if p.PeekIs(types.POWER) {
		op := p.advance()
		p.skipNewlines()
		return &ast.BinaryOp{Pos: op.Pos(), Left: expr, Operator: op.Text, Right: p.power()}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.PeekIs(types.MINUS, types.NOT) {
		op := p.advance()
		return &ast.UnaryOp{Pos: op.Pos(), Operator: op.Text, Operand: p.unary()}
	}
	return p.call()
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for {
		switch {
		case p.PeekIs(types.LPAREN):
			p.advance()
			expr = &ast.Call{
				Pos:       expr.Position(),
				Callee:    expr,
				Arguments: p.list(types.RPAREN, "Expected ')' after arguments"),
			}
		case p.PeekIs(types.LBRACKET):
			bracket := p.advance()
			p.skipNewlines()
			index := p.expression()
			p.skipNewlines()
			p.expect(types.RBRACKET, "Expected ']' after index")
			expr = &ast.IndexAccess{Pos: bracket.Pos(), Object: expr, Index: index}
		case p.PeekIs(types.DOT):
			dot := p.advance()
			name := p.expect(types.IDENTIFIER, "Expected property name after '.'")
			expr = &ast.MemberAccess{Pos: dot.Pos(), Object: expr, Name: name.Text}
		default:
			return expr
		}
	}
}

// list parses comma separated expressions up to and including the closing
// token. Newlines and a trailing comma are allowed.
func (p *Parser) list(closing types.TokenKind, message string) (ret []ast.Expression) {
	p.skipNewlines()
	for !p.PeekIs(closing) {
		ret = append(ret, p.expression())
		p.skipNewlines()
		if !p.match(types.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.expect(closing, message)
	return
}

func (p *Parser) primary() ast.Expression {
	tok := p.peek()
	pos := tok.Pos()

	switch tok.Kind {
	case types.INTEGER:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			panic(errors.Errorf(errors.SyntaxError, pos, "Integer literal out of range: %s", tok.Text))
		}
		return &ast.Literal{Pos: pos, Value: v}
	case types.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			panic(errors.Errorf(errors.SyntaxError, pos, "Invalid float literal: %s", tok.Text))
		}
		return &ast.Literal{Pos: pos, Value: v}
	case types.STRING:
		p.advance()
		return &ast.Literal{Pos: pos, Value: tok.Text}
	case types.TRUE, types.FALSE:
		p.advance()
		return &ast.Literal{Pos: pos, Value: tok.Kind == types.TRUE}
	case types.NULL:
		p.advance()
		return &ast.Literal{Pos: pos, Value: nil}
	case types.IDENTIFIER:
		p.advance()
		return &ast.Identifier{Pos: pos, Name: tok.Text}
	case types.LPAREN:
		p.advance()
		p.skipNewlines()
		expr := p.expression()
		p.skipNewlines()
		p.expect(types.RPAREN, "Expected ')' after expression")
		return expr
	case types.LBRACKET:
		p.advance()
		return &ast.ListLiteral{Pos: pos, Elements: p.list(types.RBRACKET, "Expected ']' after list elements")}
	}

	panic(errors.UnexpectedToken{Got: tok})
}
