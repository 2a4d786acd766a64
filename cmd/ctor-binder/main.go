// Package main provides the CLI entrypoint for ctor-binder.
//
// ctor-binder supports the declarative side of constructor binding:
//   - names: prints the parameter names name inference would use
//   - check: validates a YAML bindings file against the Go source
//   - convert: re-encodes a document between XML, YAML, JSON and CBOR
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

// errFailed reports that a command printed its own failure details.
var errFailed = errors.New("check failed")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type command struct {
	name    string
	summary string
	run     func(env *env, args []string) error
}

var commands = []command{
	{"names", "print the parameter names of a constructor", runNames},
	{"check", "validate a bindings file against the Go source", runCheck},
	{"convert", "re-encode a document in another format", runConvert},
}

// env carries what every command shares.
type env struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	dir    string
}

func run(args []string, stdout, stderr io.Writer) error {
	var verbose bool
	var dir string

	flagSet := pflag.NewFlagSet("ctor-binder", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log debug records to stderr")
	flagSet.StringVar(&dir, "dir", "", "directory the package loader runs in (default: current directory)")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(stderr, flagSet)
		return errors.New("missing command")
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	e := &env{
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		dir:    dir,
	}

	for _, c := range commands {
		if c.name == rest[0] {
			return c.run(e, rest[1:])
		}
	}

	return fmt.Errorf("unknown command %q", rest[0])
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "ctor-binder binds document nodes to constructor parameters.\n\nUsage:\n  ctor-binder [flags] <command> [args]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nFlags:\n")
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}

// subcommand returns a flag set for a command that prints its usage on
// --help.
func subcommand(e *env, name, usage string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage:\n  ctor-binder %s %s\n\nFlags:\n", name, usage)
		fs.PrintDefaults()
	}

	return fs
}

// parse runs fs.Parse and reports whether the command should go on.
func parse(fs *pflag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
