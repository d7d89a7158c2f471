package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// A first argument that names a gemtext file, a directory, or "-" runs
// convert implicitly.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch {
	case cmd == "convert":
		err = runConvert(ctx, rest, env)
	case cmd == "serve":
		err = runServe(ctx, rest, env)
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "gmi2html %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "-h" || cmd == "--help":
		runHelp(rest, env)
		return ExitSuccess
	case isImplicitConvert(cmd):
		err = runConvert(ctx, args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	switch s {
	case "convert", "serve", "version", "help":
		return true
	}
	return false
}

// isImplicitConvert reports whether arg is an input rather than a command:
// standard input, a flag, a gemtext file name, or an existing directory.
func isImplicitConvert(arg string) bool {
	if isCommand(arg) {
		return false
	}
	if arg == "-" || strings.HasPrefix(arg, "-") {
		return true
	}
	if looksLikeGemtext(arg) {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}

// looksLikeGemtext reports whether path has a gemtext extension.
func looksLikeGemtext(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gmi", ".gemini":
		return true
	}
	return false
}
