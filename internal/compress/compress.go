// Package compress selects a stream codec from a file name.
//
// Genotype matrices and reports are large, highly repetitive text, so they
// are usually stored compressed. The codec is chosen by extension:
//
//	.gz   gzip (klauspost/compress)
//	.zst  zstandard (klauspost/compress)
//	.lz4  LZ4 frame (pierrec/lz4)
//
// Any other name is passed through unchanged.
package compress

import (
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a stream codec.
type Type uint8

const (
	// None indicates an uncompressed stream.
	None Type = iota
	// Gzip indicates a gzip stream.
	Gzip
	// Zstd indicates a zstandard stream.
	Zstd
	// LZ4 indicates an LZ4 frame stream.
	LZ4
)

func (t Type) String() string {
	switch t {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// Extension returns the file extension of t, including the dot.
func (t Type) Extension() string {
	switch t {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Detect returns the codec for name.
func Detect(name string) Type {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// Trim strips a compression extension from name.
func Trim(name string) string {
	if Detect(name) == None {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// NewReader wraps r with the decoder for name. Closing the result releases
// decoder resources but does not close r.
func NewReader(name string, r io.Reader) (io.ReadCloser, error) {
	switch Detect(name) {
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// NewWriter wraps w with the encoder for name. Closing the result flushes
// the encoder but does not close w.
func NewWriter(name string, w io.Writer) (io.WriteCloser, error) {
	switch Detect(name) {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
