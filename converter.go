package gmi2html

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-gmi2html/internal/pipeline"
)

// Converter runs gemtext-to-HTML conversions.
// It is immutable after construction and safe for concurrent use.
type Converter struct {
	classifier *pipeline.Classifier
	opts       pipeline.Options
}

// NewConverter creates a Converter with default output layout.
// Use options to customize behavior (e.g., WithSeparators).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		classifier: pipeline.NewClassifier(),
		opts:       pipeline.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fingerprint identifies the output layout. Two converters with the same
// fingerprint produce identical output for identical input.
func (c *Converter) Fingerprint() string {
	return fmt.Sprintf("separators=%t;closeOpenBlocks=%t", c.opts.Separators, c.opts.CloseOpenBlocks)
}

// Run converts every line of src and writes the result to sink.
// It stops at the first read or write fault; lines already written stay
// written. The context is checked between lines.
func (c *Converter) Run(ctx context.Context, src LineSource, sink LineSink) (Stats, error) {
	var stats Stats
	if src == nil {
		return stats, ErrNilSource
	}
	if sink == nil {
		return stats, ErrNilSink
	}

	tr := pipeline.NewTransducer(c.classifier, c.opts)
	emit := func(lines []string) error {
		for _, l := range lines {
			if err := sink.WriteLine(l); err != nil {
				return err
			}
			stats.OutputLines++
		}
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		raw, ok := src.Next()
		if !ok {
			break
		}
		stats.InputLines++
		if err := emit(tr.Feed(raw)); err != nil {
			return stats, err
		}
	}
	if err := src.Err(); err != nil {
		return stats, err
	}

	if err := emit(tr.Finish()); err != nil {
		return stats, err
	}
	return stats, nil
}

// Convert converts gemtext held in memory.
func (c *Converter) Convert(ctx context.Context, input Input) (*Result, error) {
	var sink lineBuffer
	stats, err := c.Run(ctx, NewSource(strings.NewReader(input.Gemtext), false), &sink)
	if err != nil {
		return nil, fmt.Errorf("converting gemtext: %w", err)
	}
	return &Result{HTML: sink.String(), Stats: stats}, nil
}

// ConvertFile converts inputPath into outputPath. Either path may be "" or
// "-" to use standard input or standard output, which are never closed.
// Writing over the input file is refused before anything is truncated.
// Opened files are closed on every exit path.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) (stats Stats, err error) {
	if sameFile(inputPath, outputPath) {
		return stats, fmt.Errorf("%w: %s is also the input", ErrSinkUnwritable, outputPath)
	}

	src, err := OpenSource(inputPath)
	if err != nil {
		return stats, err
	}
	defer func() {
		_ = src.Close()
	}()

	sink, err := OpenSink(outputPath)
	if err != nil {
		return stats, err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	return c.Run(ctx, src, sink)
}

// lineBuffer is an in-memory LineSink.
type lineBuffer struct {
	b strings.Builder
}

func (l *lineBuffer) WriteLine(line string) error {
	l.b.WriteString(line)
	l.b.WriteByte('\n')
	return nil
}

func (l *lineBuffer) String() string {
	return l.b.String()
}
