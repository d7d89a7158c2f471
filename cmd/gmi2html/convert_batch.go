package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gmi2html "github.com/alnah/go-gmi2html"
)

// convertBatch processes files concurrently with a fixed number of workers.
// Results keep the order of files. Files not started before ctx is
// canceled report ctx.Err().
func convertBatch(ctx context.Context, conv Converter, files []FileToConvert, workers int, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]ConversionResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = convertFile(ctx, conv, files[i], env)
			}
		}()
	}

	for i := range files {
		if err := ctx.Err(); err != nil {
			results[i] = ConversionResult{InputPath: files[i].InputPath, OutputPath: files[i].OutputPath, Err: err}
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// convertFile converts a single file. "-" selects the environment's
// standard streams.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, env *Environment) (result ConversionResult) {
	start := env.Now()
	result = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	defer func() {
		result.Duration = env.Now().Sub(start)
	}()

	src, err := openSource(f.InputPath, env)
	if err != nil {
		result.Err = err
		return result
	}
	defer func() {
		_ = src.Close()
	}()

	sink, err := openSink(f.OutputPath, env)
	if err != nil {
		result.Err = err
		return result
	}

	result.Stats, err = conv.Run(ctx, src, sink)
	if closeErr := sink.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		result.Err = fmt.Errorf("converting %s: %w", f.InputPath, err)
	}
	return result
}

func openSource(path string, env *Environment) (*gmi2html.Source, error) {
	if path == gmi2html.StdStream {
		return gmi2html.NewSource(env.Stdin, false), nil
	}
	return gmi2html.OpenSource(path)
}

func openSink(path string, env *Environment) (*gmi2html.Sink, error) {
	if path == gmi2html.StdStream {
		return gmi2html.NewSink(env.Stdout, false), nil
	}
	return gmi2html.OpenSink(path)
}

// printResultsWithWriter prints conversion results and returns the failure count.
// Results written to standard output are not announced.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet || r.OutputPath == gmi2html.StdStream {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d lines in, %d lines out, %v)\n",
				r.InputPath, r.OutputPath, r.Stats.InputLines, r.Stats.OutputLines, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
