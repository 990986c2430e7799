package parser

import (
	"github.com/JoeySoprano420/Trion/ast"
	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/lexer"
	"github.com/JoeySoprano420/Trion/types"
)

type Parser struct {
	tokens   []types.Token
	current  int
	reporter *errors.Reporter
}

func NewParser(tokens []types.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != types.EOF {
		var pos types.Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Location.To
		}
		tokens = append(tokens, types.Token{Kind: types.EOF, Location: types.SingleCharSpan(pos)})
	}
	return &Parser{
		tokens:   tokens,
		reporter: errors.NewReporter(),
	}
}

// Parse builds a Program from tokens. The Program is never nil; statements
// that failed to parse are left out and described in the reporter.
func Parse(tokens []types.Token) (*ast.Program, *errors.Reporter) {
	p := NewParser(tokens)
	return p.Parse(), p.reporter
}

// ParseString lexes and parses source, merging both stages' diagnostics.
func ParseString(source, filename string) (*ast.Program, *errors.Reporter) {
	tokens, rep := lexer.Tokenize(source, filename)
	prog, prep := Parse(tokens)
	rep.Merge(prep)
	return prog, rep
}

func (p *Parser) Reporter() *errors.Reporter {
	return p.reporter
}

func (p *Parser) Parse() (prog *ast.Program) {
	prog = &ast.Program{}
	defer func() {
		if r := recover(); r != nil {
			p.reporter.Report(errors.SyntaxError, p.peek().Pos(), "internal parser error: %v", r)
		}
	}()

	for {
		p.skipSeparators()
		if p.PeekIs(types.EOF) {
			return
		}
		if stmt := p.declaration(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
}

func (p *Parser) peek() types.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() types.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) PeekIs(k ...types.TokenKind) bool {
	tok := p.peek()
	for _, kind := range k {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) advance() types.Token {
	tok := p.peek()
	if tok.Kind != types.EOF {
		p.current++
	}
	return tok
}

func (p *Parser) match(k ...types.TokenKind) bool {
	if p.PeekIs(k...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind types.TokenKind, message string) types.Token {
	if p.PeekIs(kind) {
		return p.advance()
	}
	panic(errors.ExpectedKindGotKind{
		Expected: kind,
		Got:      p.peek(),
		Message:  message,
	})
}

func (p *Parser) skipNewlines() {
	for p.match(types.NEWLINE) {
	}
}

func (p *Parser) skipSeparators() {
	for p.match(types.NEWLINE, types.SEMICOLON) {
	}
}

// continues reports whether the next token after any newlines is one of k,
// consuming the newlines only in that case.
func (p *Parser) continues(k ...types.TokenKind) bool {
	i := p.current
	for p.tokens[i].Kind == types.NEWLINE {
		i++
	}
	for _, kind := range k {
		if p.tokens[i].Kind == kind {
			p.current = i
			return true
		}
	}
	return false
}

func (p *Parser) report(err error) {
	var d *errors.Diagnostic
	switch e := err.(type) {
	case *errors.Diagnostic:
		d = e
	case errors.ExpectedKindGotKind:
		d = errors.Errorf(errors.SyntaxError, e.Got.Pos(), "%s", e.Error())
	case errors.ExpectedOneOfKindGotKind:
		d = errors.Errorf(errors.SyntaxError, e.Got.Pos(), "%s", e.Error())
	case errors.UnexpectedToken:
		d = errors.Errorf(errors.SyntaxError, e.Got.Pos(), "%s", e.Error())
	case errors.DuplicateName:
		d = errors.Errorf(errors.SyntaxError, e.Location.From, "%s", e.Error())
	default:
		d = errors.Errorf(errors.SyntaxError, p.peek().Pos(), "%s", err)
	}

	// Nested bodies left open at end of input all fail at the same EOF token.
	if n := len(p.reporter.Errors); n > 0 {
		last := p.reporter.Errors[n-1]
		if last.Message == d.Message && last.Location == d.Location {
			return
		}
	}
	p.reporter.Add(d)
}

var syncPoints = []types.TokenKind{
	types.FUNCTION, types.LET, types.CONST, types.CLASS, types.IF,
	types.WHILE, types.FOR, types.RETURN, types.TRY,
}

// synchronize always consumes at least one token, then stops just past a
// semicolon or just before a token that can start a declaration.
func (p *Parser) synchronize() {
	p.advance()
	for !p.PeekIs(types.EOF) {
		if p.previous().Kind == types.SEMICOLON {
			return
		}
		if p.PeekIs(syncPoints...) {
			return
		}
		p.advance()
	}
}

func (p *Parser) declaration() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				panic(r)
			}
			p.report(err)
			p.synchronize()
			stmt = nil
		}
	}()

	switch p.peek().Kind {
	case types.FUNCTION:
		return p.fnDecl()
	case types.CLASS:
		return p.classDecl()
	case types.LET, types.CONST:
		return p.varDecl()
	}
	return p.statement()
}

// typeAnnotation skips an optional `: Type`. Annotations are accepted for
// compatibility and carry no meaning.
func (p *Parser) typeAnnotation(lead types.TokenKind) {
	if p.match(lead) {
		p.expect(types.IDENTIFIER, "Expected type name")
	}
}

func (p *Parser) fnDecl() *ast.FnDecl {
	kw := p.advance()
	name := p.expect(types.IDENTIFIER, "Expected function name")
	p.expect(types.LPAREN, "Expected '(' after function name")

	var params []string
	seen := map[string]bool{}
	p.skipNewlines()
	if !p.PeekIs(types.RPAREN) {
		for {
			param := p.expect(types.IDENTIFIER, "Expected parameter name")
			if seen[param.Text] {
				panic(errors.DuplicateName{
					Name:     param.Text,
					What:     "Parameter",
					Location: param.Location,
				})
			}
			seen[param.Text] = true
			params = append(params, param.Text)
			p.typeAnnotation(types.COLON)

			p.skipNewlines()
			if !p.match(types.COMMA) {
				break
			}
			p.skipNewlines()
		}
	}
	p.expect(types.RPAREN, "Expected ')' after parameters")
	p.typeAnnotation(types.ARROW)

	return &ast.FnDecl{
		Pos:    kw.Pos(),
		Name:   name.Text,
		Params: params,
		Body:   p.block("Expected '{' before function body"),
	}
}

func (p *Parser) classDecl() *ast.ClassDecl {
	kw := p.advance()
	name := p.expect(types.IDENTIFIER, "Expected class name")

	decl := &ast.ClassDecl{Pos: kw.Pos(), Name: name.Text}
	if p.match(types.COLON) {
		decl.Super = p.expect(types.IDENTIFIER, "Expected superclass name").Text
	}

	p.skipNewlines()
	p.expect(types.LBRACE, "Expected '{' before class body")
	for {
		p.skipSeparators()
		if p.PeekIs(types.RBRACE, types.EOF) {
			break
		}
		if p.PeekIs(types.FUNCTION) {
			decl.Methods = append(decl.Methods, p.fnDecl())
			continue
		}
		tok := p.advance()
		p.reporter.Warn(tok.Pos(), "Ignoring unexpected token in class body: '%s'", tok.Text)
	}
	p.expect(types.RBRACE, "Expected '}' after class body")

	return decl
}

func (p *Parser) varDecl() *ast.VarDecl {
	kw := p.advance()
	name := p.expect(types.IDENTIFIER, "Expected variable name")
	p.typeAnnotation(types.COLON)

	decl := &ast.VarDecl{
		Pos:   kw.Pos(),
		Name:  name.Text,
		Const: kw.Kind == types.CONST,
	}
	if p.match(types.ASSIGN) {
		p.skipNewlines()
		decl.Init = p.expression()
	}
	return decl
}

func (p *Parser) statement() ast.Statement {
	switch p.peek().Kind {
	case types.IF:
		return p.ifStmt()
	case types.WHILE:
		kw := p.advance()
		cond := p.expression()
		return &ast.While{
			Pos:       kw.Pos(),
			Condition: cond,
			Body:      p.block("Expected '{' after while condition"),
		}
	case types.FOR:
		return p.forStmt()
	case types.RETURN:
		kw := p.advance()
		ret := &ast.Return{Pos: kw.Pos()}
		if !p.PeekIs(types.SEMICOLON, types.NEWLINE, types.RBRACE, types.EOF) {
			ret.Value = p.expression()
		}
		return ret
	case types.TRY:
		return p.tryStmt()
	case types.THROW:
		kw := p.advance()
		return &ast.Throw{Pos: kw.Pos(), Value: p.expression()}
	case types.IMPORT:
		return p.importStmt()
	case types.LBRACE:
		return p.block("Expected '{'")
	}

	expr := p.expression()
	return &ast.ExprStmt{Pos: expr.Position(), Expr: expr}
}

// block parses `{ declaration* }`, allowing newlines before the brace.
func (p *Parser) block(open string) *ast.Block {
	p.skipNewlines()
	brace := p.expect(types.LBRACE, open)

	blk := &ast.Block{Pos: brace.Pos()}
	for {
		p.skipSeparators()
		if p.PeekIs(types.RBRACE, types.EOF) {
			break
		}
		if stmt := p.declaration(); stmt != nil {
			blk.Statements = append(blk.Statements, stmt)
		}
	}
	p.expect(types.RBRACE, "Expected '}'")

	return blk
}

func (p *Parser) ifStmt() *ast.If {
	kw := p.advance()
	stmt := &ast.If{Pos: kw.Pos(), Condition: p.expression()}
	stmt.Then = p.block("Expected '{' after if condition")

	for {
		if p.continues(types.ELIF) {
			p.advance()
		} else if p.continues(types.ELSE) {
			p.advance()
			if !p.match(types.IF) {
				stmt.Else = p.block("Expected '{' after else")
				return stmt
			}
		} else {
			return stmt
		}

		cond := p.expression()
		stmt.Elifs = append(stmt.Elifs, ast.ElifClause{
			Condition: cond,
			Body:      p.block("Expected '{' after elif condition"),
		})
	}
}

func (p *Parser) forStmt() *ast.For {
	kw := p.advance()
	variable := p.expect(types.IDENTIFIER, "Expected loop variable name")
	// Any identifier is accepted where 'in' is expected.
	p.expect(types.IDENTIFIER, "Expected 'in' after loop variable")
	iterable := p.expression()

	return &ast.For{
		Pos:      kw.Pos(),
		Variable: variable.Text,
		Iterable: iterable,
		Body:     p.block("Expected '{' after for clause"),
	}
}

func (p *Parser) tryStmt() *ast.Try {
	kw := p.advance()
	stmt := &ast.Try{Pos: kw.Pos(), Body: p.block("Expected '{' after try")}

	for p.continues(types.CATCH) {
		tok := p.advance()
		if len(stmt.Catches) == 1 {
			p.reporter.Warn(tok.Pos(), "Only the first catch clause is ever taken")
		}

		var clause ast.CatchClause
		if p.match(types.LPAREN) {
			clause.Type = p.expect(types.IDENTIFIER, "Expected exception type").Text
			if p.PeekIs(types.IDENTIFIER) {
				clause.Binding = p.advance().Text
			}
			p.expect(types.RPAREN, "Expected ')' after catch clause")
		}
		clause.Body = p.block("Expected '{' after catch")
		stmt.Catches = append(stmt.Catches, clause)
	}

	if p.continues(types.FINALLY) {
		p.advance()
		stmt.Finally = p.block("Expected '{' after finally")
	}
	return stmt
}

func (p *Parser) importStmt() *ast.Import {
	kw := p.advance()
	module := p.expect(types.IDENTIFIER, "Expected module name").Text
	for p.match(types.DOT) {
		module += "." + p.expect(types.IDENTIFIER, "Expected module name after '.'").Text
	}

	stmt := &ast.Import{Pos: kw.Pos(), Module: module}
	if p.PeekIs(types.IDENTIFIER) && p.peek().Text == "as" {
		p.advance()
		stmt.Alias = p.expect(types.IDENTIFIER, "Expected alias after 'as'").Text
	}
	return stmt
}
