package pipeline

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxLineSize bounds a single input line (1MB).
const MaxLineSize = 1 << 20

// initialBufferSize is the scanner's starting buffer; it grows up to MaxLineSize.
const initialBufferSize = 64 * 1024

// NewLineScanner returns a scanner yielding the lines of r as UTF-8 text.
// A UTF-8 or UTF-16 byte order mark selects the decoding and is dropped;
// input without one is read as UTF-8. Lines may end in \n, \r\n or \r.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, initialBufferSize), MaxLineSize)
	sc.Split(scanLines)
	return sc
}

// scanLines is bufio.ScanLines extended to treat a lone \r as a line break.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// Lone \r at the buffer edge: wait to see if \n follows.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
