package session

import (
	"io"
	"io/ioutil"
	"log"
	"path/filepath"
	"time"

	"github.com/ztrue/tracerr"

	"github.com/JoeySoprano420/Trion/ast"
	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/interpreter"
	"github.com/JoeySoprano420/Trion/lexer"
	"github.com/JoeySoprano420/Trion/parser"
)

// Session keeps one interpreter and one global environment alive across
// evaluations, so a REPL line sees everything earlier lines defined.
type Session struct {
	interp *interpreter.Interpreter
	// Filename tags diagnostics from Eval.
	Filename string
	// Logger, when set, receives one line per pipeline stage.
	Logger *log.Logger
}

func New(out io.Writer) *Session {
	return &Session{
		interp:   interpreter.New(out),
		Filename: "<stdin>",
	}
}

func (s *Session) Env() *interpreter.Environment {
	return s.interp.Globals()
}

func (s *Session) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

// Analyze lexes and parses source without running it.
func (s *Session) Analyze(source string) (*ast.Program, *errors.Reporter) {
	start := time.Now()
	tokens, rep := lexer.Tokenize(source, s.Filename)
	s.logf("lex %s: %d tokens, %d errors in %s", s.Filename, len(tokens), len(rep.Errors), time.Since(start))

	start = time.Now()
	prog, prep := parser.Parse(tokens)
	s.logf("parse %s: %d statements, %d errors in %s", s.Filename, len(prog.Statements), len(prep.Errors), time.Since(start))

	rep.Merge(prep)
	return prog, rep
}

// Eval analyzes source and, when it is free of lex and syntax errors, runs it
// in the session's environment. The reporter holds this call's diagnostics
// only; a nil value means nothing ran or a fault escaped.
func (s *Session) Eval(source string) (interpreter.Value, *errors.Reporter) {
	prog, rep := s.Analyze(source)
	if rep.HasErrors() {
		return nil, rep
	}

	start := time.Now()
	v, irep := s.interp.Interpret(prog)
	s.logf("run %s: %d errors in %s", s.Filename, len(irep.Errors), time.Since(start))

	rep.Merge(irep)
	return v, rep
}

// Run evaluates source in a fresh session.
func Run(source, filename string, out io.Writer, logger *log.Logger) (interpreter.Value, *errors.Reporter) {
	s := New(out)
	s.Filename = filename
	s.Logger = logger
	return s.Eval(source)
}

// RunFile reads and runs path. The error return is for host failures only;
// language diagnostics are in the reporter.
func RunFile(path string, out io.Writer, logger *log.Logger) (interpreter.Value, *errors.Reporter, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, nil, tracerr.Wrap(err)
	}
	v, rep := Run(string(data), filepath.Base(path), out, logger)
	return v, rep, nil
}
