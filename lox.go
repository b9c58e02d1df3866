package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/isaacev/Lox/backend"
	"github.com/isaacev/Lox/feedback"
	"github.com/isaacev/Lox/frontend"
	"github.com/isaacev/Lox/source"
	"github.com/urfave/cli"
)

// Exit statuses follow the BSD sysexits convention
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
)

var configPath string
var errorNoColor bool
var debugShowAST bool
var debugShowTokens bool

// runner carries the settings and output streams of one driver invocation
type runner struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
}

func readSourceFile(filename string) (*source.File, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("could not find '%s': %w", filename, err)
	}

	buf, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	return source.NewFile(abs, string(buf)), nil
}

// digest moves one source unit through the pipeline. A lex or syntax error
// anywhere in the unit stops it before anything is executed. All diagnostics
// are written to stderr before digest returns and the reporter is handed back
// so the caller can pick an exit status
func (r *runner) digest(file *source.File, inter *backend.Interpreter, shouldRun bool) *feedback.Reporter {
	reporter := feedback.NewReporter(file)
	defer reporter.Flush(r.stderr, r.cfg.Color)

	tokens := frontend.Scan(file, reporter)

	if r.cfg.DebugTokens {
		printSection(r.stdout, "Tokens", stringifyTokens(tokens))
	}

	stmts := frontend.Parse(tokens, reporter)

	// Check if any of the messages are errors. If they are, stop the pipeline
	// and emit the messages
	if reporter.HadError() {
		return reporter
	}

	if r.cfg.DebugAST {
		printSection(r.stdout, "AST", frontend.StringifyAST(stmts))
	}

	// If the `shouldRun` parameter is false, this is as far as the function
	// needs to go since everything beyond this handles execution
	if !shouldRun {
		return reporter
	}

	if err := inter.Interpret(stmts); err != nil {
		var rtErr *backend.RuntimeError
		if errors.As(err, &rtErr) {
			reporter.ReportRuntimeError(rtErr.Token.Span, rtErr.Message)
		} else {
			reporter.ReportRuntimeError(source.Span{}, err.Error())
		}
	}

	return reporter
}

// runFile digests a file from disk and converts the outcome to an exit status
func (r *runner) runFile(filename string, shouldRun bool) int {
	file, err := readSourceFile(filename)
	if err != nil {
		fmt.Fprintln(r.stderr, err)
		return exitNoInput
	}

	return exitStatus(r.digest(file, backend.NewInterpreter(r.stdout), shouldRun))
}

func exitStatus(reporter *feedback.Reporter) int {
	switch {
	case reporter.HadError():
		return exitDataErr
	case reporter.HadRuntimeError():
		return exitSoftware
	default:
		return exitOK
	}
}

// exit converts an exit status into the error urfave/cli expects from an
// action. The message has already been printed so none is attached
func exit(status int) error {
	if status == exitOK {
		return nil
	}

	return cli.NewExitError("", status)
}

func stringifyTokens(tokens []frontend.Token) string {
	out := ""

	for i, tok := range tokens {
		if i > 0 {
			out += "\n"
		}

		out += tok.String()
	}

	return out
}

// printSection outputs an ASCII header followed by a debug representation of
// one pipeline stage
func printSection(w io.Writer, title string, body string) {
	fmt.Fprintln(w, "#######################")
	fmt.Fprintf(w, "## %-17s ##\n", title)
	fmt.Fprintln(w, "#######################")
	fmt.Fprintln(w)
	fmt.Fprintln(w, body)
	fmt.Fprintln(w)
}

// newRunner loads the config file and lets command line flags override it
func newRunner(c *cli.Context) (*runner, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, cli.NewExitError(err.Error(), exitUsage)
	}

	if errorNoColor {
		cfg.Color = false
	}

	cfg.DebugAST = cfg.DebugAST || debugShowAST
	cfg.DebugTokens = cfg.DebugTokens || debugShowTokens

	return &runner{
		cfg:    cfg,
		stdout: c.App.Writer,
		stderr: c.App.ErrWriter,
	}, nil
}

// fileCommand builds the action shared by the commands that take exactly one
// file argument
func fileCommand(shouldRun bool, adjust func(*Config)) func(*cli.Context) error {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			fmt.Fprintf(c.App.ErrWriter, "Usage: lox %s [script]\n", c.Command.Name)
			return exit(exitUsage)
		}

		r, err := newRunner(c)
		if err != nil {
			return err
		}

		if adjust != nil {
			adjust(&r.cfg)
		}

		return exit(r.runFile(c.Args().First(), shouldRun))
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lox"
	app.Usage = "a tree-walking interpreter for the Lox scripting language"
	app.ArgsUsage = "[script]"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config",
			Usage:       "load settings from `FILE` instead of ~/.loxrc.yaml",
			EnvVar:      "LOX_CONFIG",
			Destination: &configPath,
		},
		cli.BoolFlag{
			Name:        "no-color",
			Usage:       "hide colors in error messages",
			Destination: &errorNoColor,
		},
		cli.BoolFlag{
			Name:        "debug-ast",
			Usage:       "show a basic representation of the abstract-syntax-tree",
			Destination: &debugShowAST,
		},
		cli.BoolFlag{
			Name:        "debug-tokens",
			Usage:       "show the tokens produced by the lexer",
			Destination: &debugShowTokens,
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "run",
			Aliases:   []string{"r"},
			Usage:     "Interpret a file and output any results",
			ArgsUsage: "<script>",
			Action:    fileCommand(true, nil),
		},
		{
			Name:      "check",
			Aliases:   []string{"c"},
			Usage:     "Check the syntax of a file without executing it",
			ArgsUsage: "<script>",
			Action:    fileCommand(false, nil),
		},
		{
			Name:      "ast",
			Usage:     "Print the abstract-syntax-tree of a file",
			ArgsUsage: "<script>",
			Action:    fileCommand(false, func(cfg *Config) { cfg.DebugAST = true }),
		},
		{
			Name:      "tokens",
			Usage:     "Print the tokens of a file",
			ArgsUsage: "<script>",
			Action:    fileCommand(false, func(cfg *Config) { cfg.DebugTokens = true }),
		},
		{
			Name:  "repl",
			Usage: "Start an interactive session",
			Action: func(c *cli.Context) error {
				r, err := newRunner(c)
				if err != nil {
					return err
				}

				return r.repl()
			},
		},
	}

	// Without a command lox behaves like the classic interpreter: no argument
	// starts a session and a single argument runs that script
	app.Action = func(c *cli.Context) error {
		if c.NArg() > 1 {
			fmt.Fprintln(c.App.ErrWriter, "Usage: lox [script]")
			return exit(exitUsage)
		}

		r, err := newRunner(c)
		if err != nil {
			return err
		}

		if c.NArg() == 1 {
			return exit(r.runFile(c.Args().First(), true))
		}

		return r.repl()
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}
