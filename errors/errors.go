package errors

import (
	"fmt"

	"github.com/JoeySoprano420/Trion/types"
)

type Kind int

const (
	LexError Kind = iota
	SyntaxError
	NameError
	TypeFault
	ValueFault
	ThrowFault
	RuntimeFault
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case TypeFault:
		return "TypeError"
	case ValueFault:
		return "ValueError"
	case ThrowFault:
		return "Error"
	case RuntimeFault:
		return "RuntimeError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a single reported problem. Runtime faults travel through the
// interpreter as *Diagnostic values before they are recorded.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Location types.Position
}

func (d *Diagnostic) Error() string {
	if d.Location.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s. %s", d.Kind, d.Message, d.Location)
}

// Errorf builds a diagnostic at pos.
func Errorf(kind Kind, pos types.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: pos,
	}
}

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.Token
	Message  string
}

func (e ExpectedKindGotKind) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("got a %s, expected a %s", e.Got.Kind, e.Expected)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.Token
	Message  string
}

func (e ExpectedOneOfKindGotKind) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("got a %s, expected one of %s", e.Got.Kind, e.Expected)
}

type UnexpectedToken struct {
	Got types.Token
}

func (e UnexpectedToken) Error() string {
	if e.Got.Kind == types.EOF {
		return "Unexpected end of input"
	}
	if e.Got.Kind == types.NEWLINE {
		return "Unexpected end of line"
	}
	return fmt.Sprintf("Unexpected token: '%s'", e.Got.Text)
}

type DuplicateName struct {
	Name     string
	What     string
	Location types.Span
}

func (e DuplicateName) Error() string {
	return fmt.Sprintf("%s '%s' specified more than once", e.What, e.Name)
}
