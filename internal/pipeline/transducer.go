package pipeline

import "strings"

// Options controls output layout choices that legacy converters made
// differently.
type Options struct {
	// Separators emits one blank line after every classified line. Fence
	// lines, preformatted lines, and the <ul>/</ul> bracket lines get none.
	Separators bool

	// CloseOpenBlocks closes a list or preformatted block still open at end
	// of input.
	CloseOpenBlocks bool
}

// DefaultOptions returns the standard output layout.
func DefaultOptions() Options {
	return Options{Separators: true, CloseOpenBlocks: true}
}

// LegacyOptions returns the older layout: no separators and
// no closing of blocks left open at end of input.
func LegacyOptions() Options {
	return Options{}
}

// Transducer converts gemtext lines to HTML lines for one conversion run.
// It is not safe for concurrent use; create one per run with NewTransducer.
type Transducer struct {
	classifier   *Classifier
	opts         Options
	preformatted bool
	inList       bool
}

// NewTransducer returns a transducer with both block flags cleared.
func NewTransducer(c *Classifier, opts Options) *Transducer {
	return &Transducer{classifier: c, opts: opts}
}

// Preformatted reports whether the transducer is inside a fenced block.
func (t *Transducer) Preformatted() bool { return t.preformatted }

// InList reports whether a <ul> has been opened and not yet closed.
func (t *Transducer) InList() bool { return t.inList }

// Feed consumes one raw input line and returns the output lines it produces,
// in order. Blank output lines are returned as empty strings.
func (t *Transducer) Feed(raw string) []string {
	line := strings.TrimSpace(raw)
	if line == "" {
		return []string{""}
	}

	if isFence(line) {
		var out []string
		if t.inList {
			out = append(out, ListClose)
			t.inList = false
		}
		t.preformatted = !t.preformatted
		tag := PreClose
		if t.preformatted {
			tag = PreOpen
		}
		return append(out, strings.ReplaceAll(line, FenceMarker, tag))
	}

	if t.preformatted {
		return []string{line}
	}

	l := t.classifier.Classify(line)
	out := make([]string, 0, 3)
	switch {
	case l.Kind == ListItem && !t.inList:
		out = append(out, ListOpen)
		t.inList = true
	case l.Kind != ListItem && t.inList:
		out = append(out, ListClose)
		t.inList = false
	}
	out = append(out, Render(l))
	if t.opts.Separators {
		out = append(out, "")
	}
	return out
}

// Finish returns the closing tags for blocks still open at end of input and
// resets the block state. It returns nil when CloseOpenBlocks is off.
func (t *Transducer) Finish() []string {
	var out []string
	if t.opts.CloseOpenBlocks {
		if t.inList {
			out = append(out, ListClose)
		}
		if t.preformatted {
			out = append(out, PreClose)
		}
	}
	t.inList = false
	t.preformatted = false
	return out
}

// isFence reports whether a trimmed line toggles preformatted mode.
func isFence(line string) bool {
	return strings.HasPrefix(line, FenceMarker) || strings.HasSuffix(line, FenceMarker)
}
