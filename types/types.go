package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	INVALID
	NEWLINE

	INTEGER
	FLOAT
	STRING
	IDENTIFIER

	// keywords
	IF
	ELSE
	ELIF
	WHILE
	FOR
	FUNCTION
	RETURN
	CLASS
	IMPORT
	FROM
	TRY
	CATCH
	FINALLY
	THROW
	TRUE
	FALSE
	NULL
	LET
	CONST
	AND
	OR
	NOT

	// operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POWER
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	EQUAL
	NOT_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	ARROW

	// punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COMMA
	DOT
	COLON
)

var kindNames = map[TokenKind]string{
	EOF:            "EOF",
	INVALID:        "INVALID",
	NEWLINE:        "NEWLINE",
	INTEGER:        "INTEGER",
	FLOAT:          "FLOAT",
	STRING:         "STRING",
	IDENTIFIER:     "IDENTIFIER",
	IF:             "IF",
	ELSE:           "ELSE",
	ELIF:           "ELIF",
	WHILE:          "WHILE",
	FOR:            "FOR",
	FUNCTION:       "FUNCTION",
	RETURN:         "RETURN",
	CLASS:          "CLASS",
	IMPORT:         "IMPORT",
	FROM:           "FROM",
	TRY:            "TRY",
	CATCH:          "CATCH",
	FINALLY:        "FINALLY",
	THROW:          "THROW",
	TRUE:           "TRUE",
	FALSE:          "FALSE",
	NULL:           "NULL",
	LET:            "LET",
	CONST:          "CONST",
	AND:            "AND",
	OR:             "OR",
	NOT:            "NOT",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	STAR:           "STAR",
	SLASH:          "SLASH",
	PERCENT:        "PERCENT",
	POWER:          "POWER",
	ASSIGN:         "ASSIGN",
	PLUS_ASSIGN:    "PLUS_ASSIGN",
	MINUS_ASSIGN:   "MINUS_ASSIGN",
	STAR_ASSIGN:    "STAR_ASSIGN",
	SLASH_ASSIGN:   "SLASH_ASSIGN",
	PERCENT_ASSIGN: "PERCENT_ASSIGN",
	EQUAL:          "EQUAL",
	NOT_EQUAL:      "NOT_EQUAL",
	LESS:           "LESS",
	LESS_EQUAL:     "LESS_EQUAL",
	GREATER:        "GREATER",
	GREATER_EQUAL:  "GREATER_EQUAL",
	ARROW:          "ARROW",
	LPAREN:         "LPAREN",
	RPAREN:         "RPAREN",
	LBRACE:         "LBRACE",
	RBRACE:         "RBRACE",
	LBRACKET:       "LBRACKET",
	RBRACKET:       "RBRACKET",
	SEMICOLON:      "SEMICOLON",
	COMMA:          "COMMA",
	DOT:            "DOT",
	COLON:          "COLON",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps reserved words to their kinds. Matching is exact and
// case-sensitive; "fn" and "function" are the same keyword.
var Keywords = map[string]TokenKind{
	"if":       IF,
	"else":     ELSE,
	"elif":     ELIF,
	"while":    WHILE,
	"for":      FOR,
	"fn":       FUNCTION,
	"function": FUNCTION,
	"return":   RETURN,
	"class":    CLASS,
	"import":   IMPORT,
	"from":     FROM,
	"try":      TRY,
	"catch":    CATCH,
	"finally":  FINALLY,
	"throw":    THROW,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
	"let":      LET,
	"const":    CONST,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Text     string
	Location Span
}

func (t Token) Pos() Position {
	return t.Location.From
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) %s", t.Kind, t.Text, t.Location.From)
}

// IsLiteral reports whether the token denotes a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case INTEGER, FLOAT, STRING, TRUE, FALSE, NULL:
		return true
	}
	return false
}

func (t Token) IsKeyword() bool {
	_, ok := Keywords[t.Text]
	return ok && t.Kind != IDENTIFIER && t.Kind != STRING
}
