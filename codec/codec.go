// Package codec encodes scan records as newline-delimited documents.
//
// A Codec turns one record into one line. Encoder and Decoder stream such
// lines over an io.Writer or io.Reader and reuse a single buffer between
// records.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCodec is returned by ByName for an unregistered name.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrMultiline is returned when a codec produces a record containing a
	// newline, which would break line framing.
	ErrMultiline = errors.New("encoded record spans several lines")
)

// Codec encodes and decodes single records.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Append appends the encoding of v to dst.
	Append(dst []byte, v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

// Names lists the built-in codec names.
func Names() []string { return []string{GoJSON{}.Name(), JSON{}.Name()} }

// ByName returns a built-in codec. Matching ignores case; the empty name
// selects Default.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default, nil
	case "go-json", "gojson":
		return GoJSON{}, nil
	case "json", "stdlib":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownCodec, name, strings.Join(Names(), ", "))
	}
}
