package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader is returned for a matrix without a header line.
	ErrNoHeader = errors.New("missing header")

	// ErrColumnCount is returned for a line with the wrong number of fields.
	ErrColumnCount = errors.New("wrong number of columns")

	// ErrStatus is returned for an unrecognised phenotype status.
	ErrStatus = errors.New("invalid phenotype status")

	// ErrTooManyErrors is returned when the error budget is exhausted.
	ErrTooManyErrors = errors.New("too many rejected rows")
)

// LineError locates a failure within an input file.
type LineError struct {
	File   string
	Line   int
	Marker string
	cause  error
}

func (e *LineError) Error() string {
	if e.Marker != "" {
		return fmt.Sprintf("%s:%d: marker %s: %v", e.File, e.Line, e.Marker, e.cause)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.cause)
}

func (e *LineError) Unwrap() error { return e.cause }
