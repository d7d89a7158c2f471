package gmi2html

import "github.com/alnah/go-gmi2html/internal/pipeline"

// Input contains conversion parameters.
type Input struct {
	Gemtext string // Gemtext content (may be empty)
}

// Result contains the output of a string conversion.
type Result struct {
	HTML  string // HTML fragment, one line per output line, newline-terminated
	Stats Stats
}

// Stats counts lines processed during one run.
type Stats struct {
	InputLines  int
	OutputLines int
}

// Option configures a Converter.
type Option func(*Converter)

// WithSeparators toggles the blank line emitted after each classified line.
// Enabled by default.
func WithSeparators(enabled bool) Option {
	return func(c *Converter) {
		c.opts.Separators = enabled
	}
}

// WithCloseOpenBlocks toggles closing a list or preformatted block left open
// at end of input. Enabled by default.
func WithCloseOpenBlocks(enabled bool) Option {
	return func(c *Converter) {
		c.opts.CloseOpenBlocks = enabled
	}
}

// WithLegacyOutput disables separators and end-of-input closing, for callers
// that depend on the older output layout.
func WithLegacyOutput() Option {
	return func(c *Converter) {
		c.opts = pipeline.LegacyOptions()
	}
}
