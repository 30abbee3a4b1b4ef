package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
)

const (
	maxLineBytes  = 64 << 20
	checkInterval = 256
	progressEvery = 1024
)

// Header is the result of the identifier pass over a matrix.
type Header struct {
	Label       string
	Individuals []string
	Markers     []string
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	return sc
}

func skip(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}

// ReadHeader reads the header line and the marker identifier of every data
// line. Calls are not parsed.
func ReadHeader(ctx context.Context, r io.Reader, name string) (Header, error) {
	var h Header
	sc := newScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Header{}, err
			}
		}
		text := sc.Text()
		if skip(text) {
			continue
		}
		if h.Individuals == nil {
			fields := strings.Fields(text)
			if len(fields) < 2 {
				return Header{}, &LineError{File: name, Line: line, cause: ErrNoHeader}
			}
			h.Label, h.Individuals = fields[0], fields[1:]
			continue
		}
		text = strings.TrimLeft(text, " \t")
		if i := strings.IndexAny(text, " \t"); i >= 0 {
			text = text[:i]
		}
		h.Markers = append(h.Markers, text)
	}
	if err := sc.Err(); err != nil {
		return Header{}, fmt.Errorf("%s: %w", name, err)
	}
	if h.Individuals == nil {
		return Header{}, &LineError{File: name, Line: line, cause: ErrNoHeader}
	}
	return h, nil
}

// ReadMatrix loads every data line of r into sink. The header must list the
// sink's individuals in the same order.
func ReadMatrix(ctx context.Context, r io.Reader, name string, sink RowSink, opts ...Option) (Report, error) {
	want := sink.Individuals()
	sc := newScanner(r)
	line, header := 0, false

	next := func() (Row, error) {
		for sc.Scan() {
			line++
			text := sc.Text()
			if skip(text) {
				continue
			}
			fields := strings.Fields(text)
			if !header {
				header = true
				if len(fields) < 2 || !slices.Equal(fields[1:], want) {
					return Row{}, &LineError{File: name, Line: line,
						cause: fmt.Errorf("%w: header does not match the study's individuals", ErrColumnCount)}
				}
				continue
			}
			r := Row{Line: line, Marker: fields[0], Calls: fields[1:]}
			if len(r.Calls) != len(want) {
				r.Err = fmt.Errorf("%w: got %d calls, want %d", ErrColumnCount, len(r.Calls), len(want))
			}
			return r, nil
		}
		if err := sc.Err(); err != nil {
			return Row{}, fmt.Errorf("%s: %w", name, err)
		}
		if !header {
			return Row{}, &LineError{File: name, Line: line, cause: ErrNoHeader}
		}
		return Row{}, io.EOF
	}

	return Feed(ctx, name, sink, next, opts...)
}
