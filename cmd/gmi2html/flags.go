package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// layoutFlags holds output layout flags.
type layoutFlags struct {
	legacy       bool
	noSeparators bool
	keepOpen     bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	layout  layoutFlags
	output  string
	workers int
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	layout    layoutFlags
	addr      string
	maxBody   int64
	cacheAddr string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addLayoutFlags adds output layout flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.BoolVar(&f.legacy, "legacy", false, "no blank-line separators and no closing of open blocks")
	fs.BoolVar(&f.noSeparators, "no-separators", false, "omit blank line after each classified line")
	fs.BoolVar(&f.keepOpen, "keep-open", false, "leave list or preformatted block open at end of input")
}

// parseConvertFlags parses convert arguments. Parse failures wrap ErrUsage.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)

	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapParseError(err)
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve arguments. Parse failures wrap ErrUsage.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}

	fs.StringVar(&f.addr, "addr", "", "listen address (host:port)")
	fs.Int64Var(&f.maxBody, "max-body", 0, "maximum request body in bytes")
	fs.StringVar(&f.cacheAddr, "cache-addr", "", "Valkey/Redis address for the result cache")
	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)

	fs.Usage = func() { printServeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapParseError(err)
	}
	return f, fs.Args(), nil
}

// wrapParseError keeps flag.ErrHelp intact so -h exits cleanly.
func wrapParseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
