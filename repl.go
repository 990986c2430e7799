package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/ztrue/tracerr"

	"github.com/JoeySoprano420/Trion/config"
	"github.com/JoeySoprano420/Trion/interpreter"
	"github.com/JoeySoprano420/Trion/lexer"
	"github.com/JoeySoprano420/Trion/session"
	"github.com/JoeySoprano420/Trion/types"
)

const replHelp = `:help   show this message
:env    list the bindings made in this session
:quit   leave the session (Ctrl-D works too)
Lines with unclosed brackets continue on the next line.`

type repl struct {
	session  *session.Session
	out      io.Writer
	errs     io.Writer
	warnings bool
}

func newREPL(cfg config.Module, out, errs io.Writer, logger *log.Logger) *repl {
	s := session.New(out)
	s.Logger = logger
	return &repl{session: s, out: out, errs: errs, warnings: cfg.Warnings}
}

// pending reports whether src has more opening than closing brackets, so
// the REPL should keep reading.
func pending(src string) bool {
	tokens, _ := lexer.Tokenize(src, "")
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case types.LBRACE, types.LPAREN, types.LBRACKET:
			depth++
		case types.RBRACE, types.RPAREN, types.RBRACKET:
			depth--
		}
	}
	return depth > 0
}

// handle runs one complete input and reports whether the session should end.
func (r *repl) handle(input string) bool {
	switch strings.TrimSpace(input) {
	case "":
		return false
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprintln(r.out, replHelp)
		return false
	case ":env":
		env := r.session.Env()
		for _, name := range env.Names() {
			v, _ := env.Get(name)
			if _, ok := v.(*interpreter.Builtin); ok {
				continue
			}
			fmt.Fprintf(r.out, "%s = %s\n", name, interpreter.Repr(v))
		}
		return false
	}
	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		fmt.Fprintln(r.out, "unknown command. Type :help for help.")
		return false
	}

	v, rep := r.session.Eval(input)
	rep.Print(r.errs)
	if r.warnings {
		rep.PrintWarnings(r.errs)
	}
	if v != nil {
		if _, null := v.(interpreter.Null); !null {
			fmt.Fprintln(r.out, interpreter.Repr(v))
		}
	}
	return false
}

func runREPL(cfg config.Module, out io.Writer, logger *log.Logger) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := cfg.HistoryPath()
	if f, err := os.Open(history); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	r := newREPL(cfg, out, os.Stderr, logger)
	r.session.Filename = "<repl>"
	fmt.Fprintln(out, "Trion REPL. Type :help for help.")

	for {
		input, err := line.Prompt(cfg.Prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return tracerr.Wrap(err)
		}

		for pending(input) {
			more, err := line.Prompt(strings.Repeat(".", len(strings.TrimRight(cfg.Prompt, " "))) + " ")
			if err != nil {
				break
			}
			input += "\n" + more
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		}
		if r.handle(input) {
			return nil
		}
	}
}
