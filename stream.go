package gmi2html

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alnah/go-gmi2html/internal/hints"
	"github.com/alnah/go-gmi2html/internal/pipeline"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// StdStream is the path that selects standard input or standard output.
const StdStream = "-"

// LineSource yields input lines in order.
// Next returns false at end of input or on a read fault; Err tells them apart.
type LineSource interface {
	Next() (string, bool)
	Err() error
}

// LineSink appends one line, adding the trailing newline.
type LineSink interface {
	WriteLine(line string) error
}

// Source is a LineSource over a reader. It closes the reader only when it
// owns the handle, so standard input is never closed.
type Source struct {
	sc         *bufio.Scanner
	closer     io.Closer
	ownsHandle bool
}

// Compile-time interface implementation check.
var _ LineSource = (*Source)(nil)

// NewSource wraps r. When ownsHandle is true and r is an io.Closer, Close
// closes it.
func NewSource(r io.Reader, ownsHandle bool) *Source {
	s := &Source{sc: pipeline.NewLineScanner(r), ownsHandle: ownsHandle}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// OpenSource opens path for reading. An empty path or "-" selects standard
// input, which the returned Source does not own.
func OpenSource(path string) (*Source, error) {
	if path == "" || path == StdStream {
		return NewSource(os.Stdin, false), nil
	}
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}
	return NewSource(f, true), nil
}

// sameFile reports whether a and b name the same existing file.
// Standard streams never match.
func sameFile(a, b string) bool {
	if a == "" || a == StdStream || b == "" || b == StdStream {
		return false
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// Next returns the next raw line.
func (s *Source) Next() (string, bool) {
	if !s.sc.Scan() {
		return "", false
	}
	return s.sc.Text(), true
}

// Err returns the first read fault, or nil at a clean end of input.
func (s *Source) Err() error {
	if err := s.sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	return nil
}

// Close releases the underlying handle if the Source owns it.
func (s *Source) Close() error {
	if !s.ownsHandle || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Sink is a buffered LineSink over a writer. Close flushes, and closes the
// writer only when the Sink owns the handle.
type Sink struct {
	w          *bufio.Writer
	closer     io.Closer
	ownsHandle bool
}

// Compile-time interface implementation check.
var _ LineSink = (*Sink)(nil)

// NewSink wraps w. When ownsHandle is true and w is an io.Closer, Close
// closes it after flushing.
func NewSink(w io.Writer, ownsHandle bool) *Sink {
	s := &Sink{w: bufio.NewWriter(w), ownsHandle: ownsHandle}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// OpenSink creates or truncates path, creating parent directories as needed.
// An empty path or "-" selects standard output, which the Sink does not own.
func OpenSink(path string) (*Sink, error) {
	if path == "" || path == StdStream {
		return NewSink(os.Stdout, false), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, fmt.Errorf("%w: creating output directory: %v%s", ErrSinkUnwritable, err, hints.ForOutputDirectory())
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
	}
	return NewSink(f, true), nil
}

// WriteLine appends line and a newline.
func (s *Sink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
	}
	return nil
}

// Flush writes buffered lines to the underlying writer.
func (s *Sink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
	}
	return nil
}

// Close flushes buffered lines and releases the handle if owned.
// The handle is released even when the flush fails.
func (s *Sink) Close() error {
	flushErr := s.Flush()
	if !s.ownsHandle || s.closer == nil {
		return flushErr
	}
	if err := s.closer.Close(); err != nil && flushErr == nil {
		return fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
	}
	return flushErr
}
