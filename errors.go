package gmi2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrSourceUnavailable = errors.New("input source unavailable")
	ErrSourceRead        = errors.New("failed to read input")
	ErrSinkUnwritable    = errors.New("output sink unwritable")
	ErrNilSource         = errors.New("line source cannot be nil")
	ErrNilSink           = errors.New("line sink cannot be nil")
)
