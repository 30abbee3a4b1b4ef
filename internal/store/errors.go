package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned by New for non-positive sizes.
	ErrInvalidDimensions = errors.New("invalid store dimensions")

	// ErrUnknownKind is returned for an unsupported encoding.
	ErrUnknownKind = errors.New("unknown encoding")

	// ErrRowOutOfRange is returned when a row index is outside the store.
	ErrRowOutOfRange = errors.New("row out of range")

	// ErrRowLoaded is returned when a row is written a second time.
	ErrRowLoaded = errors.New("row already loaded")

	// ErrCallCount is returned when a row does not have one call per column.
	ErrCallCount = errors.New("wrong number of calls")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store closed")
)

// RowError describes why a row could not be loaded. Column is -1 when the
// error is not tied to a single call.
type RowError struct {
	Row    int
	Column int
	Call   string
	cause  error
}

func (e *RowError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("row %d: %v", e.Row, e.cause)
	}
	return fmt.Sprintf("row %d column %d (%q): %v", e.Row, e.Column, e.Call, e.cause)
}

func (e *RowError) Unwrap() error { return e.cause }

func rowError(row int, err error) *RowError {
	return &RowError{Row: row, Column: -1, cause: err}
}
