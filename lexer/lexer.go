package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/types"
)

// Lexer turns a rune stream into tokens. It never panics: unreadable input and
// unknown characters become diagnostics and the scan carries on.
type Lexer struct {
	pos      types.Position
	last     types.Position
	reader   *bufio.Reader
	reporter *errors.Reporter
	done     bool
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:      types.Position{Line: 1, Column: 1, Filename: filename},
		reader:   bufio.NewReader(reader),
		reporter: errors.NewReporter(),
	}
}

// Tokenize scans source to the end. The returned slice always ends with EOF.
func Tokenize(source, filename string) ([]types.Token, *errors.Reporter) {
	l := NewLexer(strings.NewReader(source), filename)
	return l.All(), l.reporter
}

func (l *Lexer) Reporter() *errors.Reporter {
	return l.reporter
}

func (l *Lexer) All() (ret []types.Token) {
	for {
		tok := l.Lex()
		ret = append(ret, tok)
		if tok.Kind == types.EOF {
			return
		}
	}
}

func (l *Lexer) read() (rune, bool) {
	if l.done {
		return 0, false
	}
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.reporter.Report(errors.LexError, l.pos, "read error: %s", err)
		}
		l.done = true
		return 0, false
	}

	l.last = l.pos
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return r, true
}

// peek looks n bytes ahead without consuming. Only ASCII decisions are made
// on peeked bytes.
func (l *Lexer) peek(n int) byte {
	if l.done {
		return 0
	}
	byt, _ := l.reader.Peek(n + 1)
	if len(byt) <= n {
		return 0
	}
	return byt[n]
}

func (l *Lexer) token(kind types.TokenKind, text string, from types.Position) types.Token {
	return types.Token{
		Kind:     kind,
		Text:     text,
		Location: types.Span{From: from, To: l.last},
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

var twoChar = map[string]types.TokenKind{
	"+=": types.PLUS_ASSIGN,
	"-=": types.MINUS_ASSIGN,
	"*=": types.STAR_ASSIGN,
	"/=": types.SLASH_ASSIGN,
	"%=": types.PERCENT_ASSIGN,
	"==": types.EQUAL,
	"!=": types.NOT_EQUAL,
	"<=": types.LESS_EQUAL,
	">=": types.GREATER_EQUAL,
	"->": types.ARROW,
	"**": types.POWER,
}

var oneChar = map[rune]types.TokenKind{
	'+': types.PLUS,
	'-': types.MINUS,
	'*': types.STAR,
	'/': types.SLASH,
	'%': types.PERCENT,
	'=': types.ASSIGN,
	'<': types.LESS,
	'>': types.GREATER,
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACE,
	'}': types.RBRACE,
	'[': types.LBRACKET,
	']': types.RBRACKET,
	';': types.SEMICOLON,
	',': types.COMMA,
	'.': types.DOT,
	':': types.COLON,
}

func (l *Lexer) Lex() types.Token {
	for {
		for {
			switch l.peek(0) {
			case ' ', '\t', '\r':
				l.read()
				continue
			}
			break
		}

		from := l.pos
		r, ok := l.read()
		if !ok {
			return types.Token{Kind: types.EOF, Location: types.SingleCharSpan(l.pos)}
		}

		switch {
		case r == '\n':
			return l.token(types.NEWLINE, "\n", from)
		case r == '/' && l.peek(0) == '/':
			for l.peek(0) != '\n' {
				if _, ok := l.read(); !ok {
					break
				}
			}
			continue
		case r == '"' || r == '\'':
			return l.lexString(r, from)
		case r < 128 && isDigit(byte(r)):
			return l.lexNumber(r, from)
		case firstChar(r):
			return l.lexIdent(r, from)
		}

		if r < 128 {
			if kind, ok := twoChar[string([]byte{byte(r), l.peek(0)})]; ok {
				second, _ := l.read()
				return l.token(kind, string(r)+string(second), from)
			}
		}
		if kind, ok := oneChar[r]; ok {
			return l.token(kind, string(r), from)
		}

		l.reporter.Report(errors.LexError, from, "Unexpected character: '%c'", r)
		return l.token(types.INVALID, string(r), from)
	}
}

func (l *Lexer) lexIdent(first rune, from types.Position) types.Token {
	var lit strings.Builder
	lit.WriteRune(first)

	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			break
		}
		if !otherChar(r) {
			l.reader.UnreadRune()
			break
		}
		l.last = l.pos
		l.pos.Column++
		lit.WriteRune(r)
	}

	text := lit.String()
	if kind, ok := types.Keywords[text]; ok {
		return l.token(kind, text, from)
	}
	return l.token(types.IDENTIFIER, text, from)
}

func (l *Lexer) lexNumber(first rune, from types.Position) types.Token {
	var lit strings.Builder
	lit.WriteRune(first)
	isFloat := false
	hasDot := false

	for {
		c := l.peek(0)
		if isDigit(c) {
			l.read()
			lit.WriteByte(c)
			continue
		}
		if c == '.' && !hasDot {
			hasDot = true
			isFloat = true
			l.read()
			lit.WriteByte(c)
			continue
		}
		break
	}

	if c := l.peek(0); c == 'e' || c == 'E' {
		digits := 1
		if sign := l.peek(1); sign == '+' || sign == '-' {
			digits = 2
		}
		if isDigit(l.peek(digits)) {
			for i := 0; i < digits; i++ {
				r, _ := l.read()
				lit.WriteRune(r)
			}
			for isDigit(l.peek(0)) {
				r, _ := l.read()
				lit.WriteRune(r)
			}
			isFloat = true
		}
	}

	if isFloat {
		return l.token(types.FLOAT, lit.String(), from)
	}
	return l.token(types.INTEGER, lit.String(), from)
}

func (l *Lexer) lexString(quote rune, from types.Position) types.Token {
	var lit strings.Builder

	for {
		r, ok := l.read()
		if !ok {
			l.reporter.Report(errors.LexError, l.pos, "Unterminated string literal")
			return l.token(types.STRING, lit.String(), from)
		}

		switch r {
		case quote:
			return l.token(types.STRING, lit.String(), from)
		case '\\':
			at := l.last
			next, ok := l.read()
			if !ok {
				lit.WriteRune('\\')
				continue
			}
			switch next {
			case 'n':
				lit.WriteRune('\n')
			case 't':
				lit.WriteRune('\t')
			case 'r':
				lit.WriteRune('\r')
			case '0':
				lit.WriteRune(0)
			case '\\':
				lit.WriteRune('\\')
			case quote:
				lit.WriteRune(quote)
			default:
				l.reporter.Warn(at, "Unknown escape sequence '\\%c'", next)
				lit.WriteRune('\\')
				lit.WriteRune(next)
			}
		default:
			lit.WriteRune(r)
		}
	}
}
