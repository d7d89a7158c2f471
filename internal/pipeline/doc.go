// Package pipeline implements the gemtext-to-HTML line transducer.
//
// The transducer is a single pass over trimmed input lines with two pieces of
// block state (preformatted, inList):
//   - Line classification against an ordered prefix rule table
//   - Rendering of each classification to one HTML fragment line
//   - Preformatted fence toggling
//   - <ul> bracketing around runs of list items
//
// Line decoding (BOM detection, line-ending normalization) lives here too so
// every caller splits input the same way. Opening files and standard streams
// is handled by the root gmi2html package.
package pipeline
