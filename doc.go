// Package gmi2html converts gemtext documents to minimal HTML fragments.
//
// # Quick Start
//
// Convert a string:
//
//	conv := gmi2html.NewConverter()
//	result, err := conv.Convert(ctx, gmi2html.Input{
//	    Gemtext: "# Hello\n=> gemini://example.com Example",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.HTML)
//
// Convert a file, or standard streams when a path is "" or "-":
//
//	stats, err := conv.ConvertFile(ctx, "index.gmi", "index.html")
//
// # Output
//
// Each gemtext line maps to one HTML line: headings, list items, quotes,
// links and paragraphs are wrapped in their tags, runs of list items are
// bracketed by <ul> and </ul>, and fenced blocks become <pre> blocks whose
// lines are copied verbatim. A blank line follows every classified line.
// No <html>, <head> or <body> wrapper is added.
//
// Text is NOT HTML-escaped. Sanitize untrusted input before conversion.
//
// # Configuration
//
// Use functional options to change the output layout:
//
//	conv := gmi2html.NewConverter(
//	    gmi2html.WithSeparators(false),
//	    gmi2html.WithCloseOpenBlocks(false),
//	)
//
// WithLegacyOutput reproduces the older layout: no separators and no closing
// of blocks left open at end of input.
//
// # Concurrency
//
// A Converter holds no per-run state and may be shared between goroutines.
// Each run builds its own transducer.
package gmi2html
