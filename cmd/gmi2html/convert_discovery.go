package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	gmi2html "github.com/alnah/go-gmi2html"
	"github.com/alnah/go-gmi2html/internal/config"
	"github.com/alnah/go-gmi2html/internal/fileutil"
	"github.com/alnah/go-gmi2html/internal/hints"
)

// maxWorkers caps parallel conversions.
const maxWorkers = 8

// resolveInputPath returns the positional input, then the configured
// default directory, then standard input.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected at most one input, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return gmi2html.StdStream, nil
}

// resolveOutputDir returns the output flag or the configured default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveStreamOutput picks the destination for standard input.
// Without -o, output goes to standard output.
func resolveStreamOutput(flagOutput string) string {
	if flagOutput == "" {
		return gmi2html.StdStream
	}
	return flagOutput
}

// discoverFiles lists the files to convert under inputPath.
// A file input must carry one of the configured extensions; a directory is
// walked recursively and non-matching files are skipped.
func discoverFiles(inputPath, output string, cfg *config.Config) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.HasExtension(inputPath, cfg.Input.Extensions) {
			return nil, fmt.Errorf("%w: %s%s", ErrInvalidExtension, inputPath, hints.ForExtensions(cfg.Input.Extensions))
		}
		return []FileToConvert{{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, output, "", cfg.Output.Extension),
		}}, nil
	}

	if output == gmi2html.StdStream {
		return nil, fmt.Errorf("%w: cannot write directory %s to standard output", ErrUsage, inputPath)
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fileutil.HasExtension(path, cfg.Input.Extensions) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, output, inputPath, cfg.Output.Extension),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := checkOutputCollisions(files); err != nil {
		return nil, err
	}
	return files, nil
}

// checkOutputCollisions rejects inputs that resolve to the same output,
// e.g. a.gmi and a.gemini in one directory.
func checkOutputCollisions(files []FileToConvert) error {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		if prev, ok := seen[f.OutputPath]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, f.InputPath, f.OutputPath)
		}
		seen[f.OutputPath] = f.InputPath
	}
	return nil
}

// resolveOutputPath determines the output path for one input file.
//   - output "-": standard output
//   - output "": next to the source
//   - output ending in ext for a single file: used as is
//   - otherwise output is a directory; the tree under baseInputDir is mirrored
func resolveOutputPath(inputPath, output, baseInputDir, ext string) string {
	switch {
	case output == gmi2html.StdStream:
		return gmi2html.StdStream
	case output == "":
		return fileutil.ReplaceExtension(inputPath, ext)
	case baseInputDir == "" && fileutil.HasExtension(output, []string{ext}):
		return output
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(output, fileutil.ReplaceExtension(rel, ext))
		}
	}
	return filepath.Join(output, fileutil.ReplaceExtension(filepath.Base(inputPath), ext))
}

// validateWorkers checks the worker flag. 0 means auto.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers returns the worker count: flag, then GMI2HTML_WORKERS,
// then half of GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(flagWorkers, envWorkers int) int {
	n := flagWorkers
	if n <= 0 {
		n = envWorkers
	}
	if n <= 0 {
		n = runtime.GOMAXPROCS(0) / 2
	}

	if n < 1 {
		return 1
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}
