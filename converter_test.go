package gmi2html

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake sources and sinks
// ---------------------------------------------------------------------------

// sliceSource yields fixed lines, then optionally fails.
type sliceSource struct {
	lines []string
	pos   int
	err   error
}

func (s *sliceSource) Next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	s.pos++
	return s.lines[s.pos-1], true
}

func (s *sliceSource) Err() error { return s.err }

// recordingSink stores lines and fails after failAfter writes when set.
type recordingSink struct {
	lines     []string
	failAfter int
}

var errDiskFull = errors.New("disk full")

func (s *recordingSink) WriteLine(line string) error {
	if s.failAfter > 0 && len(s.lines) >= s.failAfter {
		return errDiskFull
	}
	s.lines = append(s.lines, line)
	return nil
}

// ---------------------------------------------------------------------------
// TestConverter_Convert - End-to-end scenarios through the public API
// ---------------------------------------------------------------------------

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		gemtext string
		opts    []Option
		want    string
	}{
		{
			name:    "heading",
			gemtext: "# Title",
			want:    "<h1>Title</h1>\n\n",
		},
		{
			name:    "link with label",
			gemtext: "=> gemini://example.com Example",
			want:    "<a href=\"gemini://example.com\">Example</a><br>\n\n",
		},
		{
			name:    "link without label",
			gemtext: "=> gemini://example.com",
			want:    "<a href=\"gemini://example.com\">gemini://example.com</a><br>\n\n",
		},
		{
			name:    "list followed by paragraph",
			gemtext: "* one\n* two\ndone\n",
			want:    "<ul>\n<li>one</li>\n\n<li>two</li>\n\n</ul>\n<p>done</p>\n\n",
		},
		{
			name:    "preformatted block",
			gemtext: "```\nraw line\n```\n",
			want:    "<pre>\nraw line\n</pre>\n",
		},
		{
			name:    "trailing list closed",
			gemtext: "* one",
			want:    "<ul>\n<li>one</li>\n\n</ul>\n",
		},
		{
			name:    "CRLF input",
			gemtext: "## A\r\n> b\r\n",
			want:    "<h2>A</h2>\n\n<blockquote>b</blockquote>\n\n",
		},
		{
			name:    "without separators",
			gemtext: "# A\nb",
			opts:    []Option{WithSeparators(false)},
			want:    "<h1>A</h1>\n<p>b</p>\n",
		},
		{
			name:    "keep trailing list open",
			gemtext: "* one",
			opts:    []Option{WithCloseOpenBlocks(false)},
			want:    "<ul>\n<li>one</li>\n\n",
		},
		{
			name:    "legacy output",
			gemtext: "* one\n```\nx",
			opts:    []Option{WithLegacyOutput()},
			want:    "<ul>\n<li>one</li>\n</ul>\n<pre>\nx\n",
		},
		{
			name:    "empty input",
			gemtext: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := NewConverter(tt.opts...)
			result, err := conv.Convert(context.Background(), Input{Gemtext: tt.gemtext})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.HTML != tt.want {
				t.Errorf("HTML = %q, want %q", result.HTML, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Convert_Stats - Line counting
// ---------------------------------------------------------------------------

func TestConverter_Convert_Stats(t *testing.T) {
	t.Parallel()

	conv := NewConverter()
	result, err := conv.Convert(context.Background(), Input{Gemtext: "# A\n\n* b\n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// <h1>, sep, blank, <ul>, <li>, sep, </ul>
	if result.Stats.InputLines != 3 {
		t.Errorf("InputLines = %d, want 3", result.Stats.InputLines)
	}
	if result.Stats.OutputLines != 7 {
		t.Errorf("OutputLines = %d, want 7", result.Stats.OutputLines)
	}
	if got := strings.Count(result.HTML, "\n"); got != result.Stats.OutputLines {
		t.Errorf("HTML has %d lines, Stats.OutputLines = %d", got, result.Stats.OutputLines)
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Run_Faults - Read and write faults abort the run
// ---------------------------------------------------------------------------

func TestConverter_Run_Faults(t *testing.T) {
	t.Parallel()

	t.Run("read fault", func(t *testing.T) {
		t.Parallel()

		readErr := errors.New("device gone")
		src := &sliceSource{lines: []string{"* a"}, err: readErr}
		sink := &recordingSink{}

		_, err := NewConverter().Run(context.Background(), src, sink)
		if !errors.Is(err, readErr) {
			t.Fatalf("got %v, want %v", err, readErr)
		}
		// No closing </ul> after a fault.
		for _, l := range sink.lines {
			if l == "</ul>" {
				t.Error("list should not be closed after a read fault")
			}
		}
	})

	t.Run("write fault", func(t *testing.T) {
		t.Parallel()

		src := &sliceSource{lines: []string{"# a", "b", "c"}}
		sink := &recordingSink{failAfter: 3}

		stats, err := NewConverter().Run(context.Background(), src, sink)
		if !errors.Is(err, errDiskFull) {
			t.Fatalf("got %v, want %v", err, errDiskFull)
		}
		if len(sink.lines) != 3 {
			t.Errorf("got %d lines written, want 3 to remain", len(sink.lines))
		}
		if stats.OutputLines != 3 {
			t.Errorf("OutputLines = %d, want 3", stats.OutputLines)
		}
		if src.pos != 2 {
			t.Errorf("source read %d lines, want run to stop at 2", src.pos)
		}
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter().Run(context.Background(), nil, &recordingSink{})
		if !errors.Is(err, ErrNilSource) {
			t.Errorf("got %v, want %v", err, ErrNilSource)
		}
	})

	t.Run("nil sink", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter().Run(context.Background(), &sliceSource{}, nil)
		if !errors.Is(err, ErrNilSink) {
			t.Errorf("got %v, want %v", err, ErrNilSink)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConverter_Run_Canceled - Context checked between lines
// ---------------------------------------------------------------------------

func TestConverter_Run_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	_, err := NewConverter().Run(ctx, &sliceSource{lines: []string{"# a"}}, sink)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want %v", err, context.Canceled)
	}
	if len(sink.lines) != 0 {
		t.Errorf("got %d lines, want none after cancellation", len(sink.lines))
	}

	_, err = NewConverter().Convert(ctx, Input{Gemtext: "# a"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert: got %v, want %v", err, context.Canceled)
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Fingerprint - Layout identity
// ---------------------------------------------------------------------------

func TestConverter_Fingerprint(t *testing.T) {
	t.Parallel()

	a := NewConverter().Fingerprint()
	b := NewConverter(WithSeparators(true), WithCloseOpenBlocks(true)).Fingerprint()
	c := NewConverter(WithLegacyOutput()).Fingerprint()

	if a != b {
		t.Errorf("default and explicit default fingerprints differ: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("legacy fingerprint should differ from default, both %q", a)
	}
}
