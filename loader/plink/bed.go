package plink

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMagic is returned for a file without the .bed magic bytes.
	ErrMagic = errors.New("not a PLINK .bed file")

	// ErrSampleMajor is returned for the unsupported individual-major layout.
	ErrSampleMajor = errors.New("individual-major .bed files are not supported")
)

var magic = [2]byte{0x6c, 0x1b}

const snpMajor = 0x01

// BED codes, two bits per sample, lowest bits first.
const (
	codeHom1    = 0b00
	codeMissing = 0b01
	codeHet     = 0b10
	codeHom2    = 0b11
)

// BEDReader decodes variants of a SNP-major .bed stream.
type BEDReader struct {
	r       io.Reader
	samples int
	buf     []byte
}

// NewBEDReader checks the header of r and returns a reader for variants
// over samples individuals.
func NewBEDReader(r io.Reader, samples int) (*BEDReader, error) {
	var hdr [3]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMagic, err)
	}
	if hdr[0] != magic[0] || hdr[1] != magic[1] {
		return nil, ErrMagic
	}
	if hdr[2] != snpMajor {
		return nil, ErrSampleMajor
	}
	return &BEDReader{r: r, samples: samples, buf: make([]byte, (samples+3)/4)}, nil
}

// Next decodes the next variant into calls, which must have one slot per
// sample. The calls are allele pairs built from a1 and a2; missing samples
// get "00". It returns io.EOF after the last variant.
func (b *BEDReader) Next(a1, a2 string, calls []string) error {
	if len(calls) != b.samples {
		return fmt.Errorf("plink: %d call slots for %d samples", len(calls), b.samples)
	}
	if _, err := io.ReadFull(b.r, b.buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("plink: truncated variant: %w", err)
		}
		return err
	}

	var lut [4]string
	lut[codeHom1] = a1 + a1
	lut[codeMissing] = "00"
	lut[codeHet] = a1 + a2
	lut[codeHom2] = a2 + a2

	for i := range calls {
		code := (b.buf[i>>2] >> (uint(i&3) << 1)) & 0b11
		calls[i] = lut[code]
	}
	return nil
}
