package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/JoeySoprano420/Trion/ast"
	"github.com/JoeySoprano420/Trion/codegen"
	"github.com/JoeySoprano420/Trion/config"
	"github.com/JoeySoprano420/Trion/errors"
	"github.com/JoeySoprano420/Trion/lexer"
	"github.com/JoeySoprano420/Trion/parser"
	"github.com/JoeySoprano420/Trion/reader"
	"github.com/JoeySoprano420/Trion/session"
)

const helloWorld = `fn greet(name) {
    return "Hello, " + name + "!"
}

print(greet("world"))
`

// fail prints a host error with its source trace and exits non-zero.
func fail(err error) error {
	tracerr.PrintSourceColor(err)
	return cli.Exit("", 1)
}

func verboseLogger(c *cli.Context) *log.Logger {
	if !c.Bool("verbose") {
		return nil
	}
	return log.New(os.Stderr, "trion: ", log.Lmicroseconds)
}

// report writes diagnostics to stderr and returns an exit error when any
// errors were reported.
func report(rep *errors.Reporter, warnings bool) error {
	rep.Print(os.Stderr)
	if warnings {
		rep.PrintWarnings(os.Stderr)
	}
	if rep.HasErrors() {
		return cli.Exit("", 1)
	}
	return nil
}

// sourceFile picks the file argument, or the configured main file.
func sourceFile(c *cli.Context, cfg config.Module) (string, error) {
	if file := c.Args().First(); file != "" {
		return file, nil
	}
	if cfg.Main == "" {
		return "", cli.Exit("no file provided and no Main in "+config.FileName, 1)
	}
	return cfg.Main, nil
}

func readSource(path string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}

func runAction(c *cli.Context) error {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return fail(err)
	}

	if code := c.String("code"); code != "" {
		_, rep := session.Run(code, "<command line>", os.Stdout, verboseLogger(c))
		return report(rep, cfg.Warnings)
	}

	file, err := sourceFile(c, cfg)
	if err != nil {
		return err
	}
	_, rep, err := session.RunFile(file, os.Stdout, verboseLogger(c))
	if err != nil {
		return fail(err)
	}
	return report(rep, cfg.Warnings)
}

func replAction(c *cli.Context) error {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return fail(err)
	}
	if err := runREPL(cfg, os.Stdout, verboseLogger(c)); err != nil {
		return fail(err)
	}
	return nil
}

func buildAction(c *cli.Context) error {
	cfg, err := config.Load(".")
	if err != nil {
		return fail(err)
	}

	file, err := sourceFile(c, cfg)
	if err != nil {
		return err
	}
	source, err := readSource(file)
	if err != nil {
		return fail(err)
	}

	prog, rep := parser.ParseString(source, filepath.Base(file))
	if err := report(rep, cfg.Warnings); err != nil {
		return err
	}

	settings := codegen.Settings{Package: cfg.Package, Library: c.Bool("library")}
	module, rep := codegen.Lower(prog, settings)
	if err := report(rep, cfg.Warnings); err != nil {
		return err
	}

	if c.Bool("dump") {
		fmt.Println(module.String())
		return nil
	}

	out := c.String("output")
	if out == "" {
		out = cfg.Package
		if settings.Library {
			out = "lib" + cfg.Package + ".so"
		}
	}

	cmd := exec.Command("clang", "-o", out)
	if settings.Library {
		cmd.Args = append(cmd.Args, "-shared", "-fPIC")
	}

	fi, err := ioutil.TempFile("", "*.ll")
	if err != nil {
		return fail(tracerr.Wrap(err))
	}
	defer os.Remove(fi.Name())
	defer fi.Close()

	_, err = io.Copy(fi, strings.NewReader(module.String()))
	if err != nil {
		return fail(tracerr.Wrap(err))
	}

	cmd.Args = append(cmd.Args, fi.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fail(tracerr.Wrap(err))
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "trion",
		Usage: "run, inspect and compile Trion programs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "log each pipeline stage to stderr",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				return runAction(c)
			}
			return replAction(c)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a file, or the Main file of the current module",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "code",
						Aliases: []string{"c"},
						Usage:   "run code given on the command line",
					},
				},
				Action: runAction,
			},
			{
				Name:   "repl",
				Usage:  "start an interactive session",
				Action: replAction,
			},
			{
				Name:      "tokens",
				Usage:     "dump the tokens of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "repr"},
				},
				Action: func(c *cli.Context) error {
					file := c.Args().First()
					source, err := readSource(file)
					if err != nil {
						return fail(err)
					}
					tokens, rep := lexer.Tokenize(source, filepath.Base(file))
					if c.Bool("repr") {
						repr.Println(tokens)
					} else {
						for _, tok := range tokens {
							fmt.Println(tok)
						}
					}
					return report(rep, true)
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "repr"},
				},
				Action: func(c *cli.Context) error {
					file := c.Args().First()
					source, err := readSource(file)
					if err != nil {
						return fail(err)
					}
					prog, rep := parser.ParseString(source, filepath.Base(file))
					if c.Bool("repr") {
						repr.Println(prog)
					} else {
						fmt.Println(ast.String(prog))
					}
					return report(rep, true)
				},
			},
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no module name provided", 1)
					}
					mod := config.Default(name)
					if err := config.Save(".", mod); err != nil {
						return fail(err)
					}
					if _, err := os.Stat(mod.Main); os.IsNotExist(err) {
						if err := ioutil.WriteFile(mod.Main, []byte(helloWorld), 0644); err != nil {
							return fail(tracerr.Wrap(err))
						}
					}
					return nil
				},
			},
			{
				Name:      "build",
				Usage:     "compile a file to a native executable with clang",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Value: false,
						Usage: "print the LLVM IR instead of invoking clang",
					},
					&cli.BoolFlag{
						Name:  "library",
						Value: false,
						Usage: "build a shared object",
					},
				},
				Action: buildAction,
			},
			{
				Name:      "symbols",
				Usage:     "dump the symbol table of a compiled library",
				ArgsUsage: "<library>",
				Action: func(c *cli.Context) error {
					data, err := reader.ReadSymbols(c.Args().First(), codegen.SymbolsGlobal)
					if err != nil {
						return fail(tracerr.Wrap(err))
					}
					syms, err := codegen.ParseSymbols(data)
					if err != nil {
						return fail(err)
					}
					repr.Println(syms)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
