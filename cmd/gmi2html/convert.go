package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	gmi2html "github.com/alnah/go-gmi2html"
	"github.com/alnah/go-gmi2html/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no gemtext files found")
	ErrInvalidExtension   = errors.New("file must have a gemtext extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// Converter is the interface for the conversion service.
type Converter interface {
	Run(ctx context.Context, src gmi2html.LineSource, sink gmi2html.LineSink) (gmi2html.Stats, error)
}

// Compile-time interface implementation check.
var _ Converter = (*gmi2html.Converter)(nil)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Stats      gmi2html.Stats
	Err        error
	Duration   time.Duration
}

// runConvert converts a file, a directory tree, or standard input.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeLayoutFlags(flags.layout, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	conv := gmi2html.NewConverter(converterOptions(cfg.Output)...)

	var files []FileToConvert
	if inputPath == gmi2html.StdStream {
		files = []FileToConvert{{InputPath: gmi2html.StdStream, OutputPath: resolveStreamOutput(flags.output)}}
	} else {
		files, err = discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), cfg)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoInput, inputPath)
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	if flags.common.verbose && len(files) > 1 {
		fmt.Fprintf(env.Stderr, "Converting %d files with %d workers\n", len(files), workers)
	}

	results := convertBatch(ctx, conv, files, workers, env)

	// A lone file reports its own error so the exit code reflects the cause.
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}
	return nil
}

// mergeLayoutFlags applies layout flags to config (CLI wins).
func mergeLayoutFlags(flags layoutFlags, cfg *config.Config) {
	if flags.legacy {
		cfg.Output.Legacy = true
	}
	if flags.noSeparators {
		cfg.Output.Separators = false
	}
	if flags.keepOpen {
		cfg.Output.CloseOpenBlocks = false
	}
}

// converterOptions maps output config to converter options.
// Legacy overrides the individual switches.
func converterOptions(out config.OutputConfig) []gmi2html.Option {
	if out.Legacy {
		return []gmi2html.Option{gmi2html.WithLegacyOutput()}
	}
	return []gmi2html.Option{
		gmi2html.WithSeparators(out.Separators),
		gmi2html.WithCloseOpenBlocks(out.CloseOpenBlocks),
	}
}
