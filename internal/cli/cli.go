package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Option customises an App.
type Option func(*App)

// WithPrompter replaces the interactive prompt driver used by init.
func WithPrompter(p Prompter) Option {
	return func(a *App) {
		if p != nil {
			a.prompter = p
		}
	}
}

// App runs sub-commands against a pair of output streams.
type App struct {
	out      io.Writer
	errOut   io.Writer
	prompter Prompter
}

// New builds an App writing command output to out and logs to errOut.
func New(out, errOut io.Writer, options ...Option) *App {
	app := &App{out: out, errOut: errOut, prompter: surveyPrompter{}}
	for _, opt := range options {
		if opt != nil {
			opt(app)
		}
	}
	return app
}

const usage = `grits - build static single-page sites from HTML fragments.

Usage:
  grits <command> [options]

Commands:
  build   render a source tree into an output directory
  serve   serve a built site with extension-less URLs
  init    write a grits.yaml build config interactively

Run "grits <command> -h" for command options.
`

// Run dispatches args[0] to its sub-command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return usageError("missing command")
	}

	switch args[0] {
	case "build":
		return a.runBuild(ctx, args[1:])
	case "serve":
		return a.runServe(ctx, args[1:])
	case "init":
		return a.runInit(ctx, args[1:])
	case "help", "-h", "-help", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return usageError("unknown command %q", args[0])
	}
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func (a *App) newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.Usage = func() {
		fmt.Fprintf(a.out, "Usage:\n  grits %s\n\nOptions:\n", synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// parse runs fs over args. A nil error with done set means help was printed.
func parse(fs *flag.FlagSet, args []string) (done bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return false, usageError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return false, nil
}

type logFlags struct {
	level  string
	format string
}

func (l *logFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&l.level, "log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	fs.StringVar(&l.format, "log-format", "text", "Log output format: 'text' or 'json'.")
}

// logger validates the flags and builds a logger writing to w.
func (l logFlags) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(l.level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(l.format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, usageError("invalid log-format: must be 'text' or 'json'")
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}
