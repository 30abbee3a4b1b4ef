package store

import (
	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/allele"
	"github.com/hupe1980/episcan/internal/bitword"
	"github.com/hupe1980/episcan/internal/role"
)

// Planes is a row view as two bit-planes of equal length.
type Planes struct {
	Alpha []bitword.Word
	Beta  []bitword.Word
}

// NewPlanes allocates scratch planes of the given word length.
func NewPlanes(words int) *Planes {
	return &Planes{
		Alpha: make([]bitword.Word, words),
		Beta:  make([]bitword.Word, words),
	}
}

func (p *Planes) reset() {
	clear(p.Alpha)
	clear(p.Beta)
}

// encoding is the per-kind cell layout. Rows occupy disjoint regions, so
// distinct rows can be written concurrently.
type encoding interface {
	set(row, col int, g genotype.Genotype, c allele.Code)
	get(row, col int, h role.Header) genotype.Genotype
	planes(row int, h role.Header, buf *Planes) Planes
	clearRow(row int)
}

func newEncoding(kind Kind, rows, cols int) encoding {
	switch kind {
	case Packed2:
		return &packed2{stride: packed2Stride(cols), data: make([]byte, rows*packed2Stride(cols))}
	case Packed4:
		return &packed4{stride: packed4Stride(cols), data: make([]byte, rows*packed4Stride(cols))}
	default:
		w := bitword.WordsFor(cols)
		return &bitPlanes{
			words: w,
			alpha: make([]bitword.Word, rows*w),
			beta:  make([]bitword.Word, rows*w),
		}
	}
}

// footprint returns the bytes allocated by newEncoding.
func footprint(kind Kind, rows, cols int) int64 {
	switch kind {
	case Packed2:
		return int64(rows) * int64(packed2Stride(cols))
	case Packed4:
		return int64(rows) * int64(packed4Stride(cols))
	default:
		return 2 * int64(rows) * int64(bitword.WordsFor(cols)) * bitword.Bits / 8
	}
}

func packed2Stride(cols int) int { return (cols + 3) / 4 }
func packed4Stride(cols int) int { return (cols + 1) / 2 }

type bitPlanes struct {
	words int
	alpha []bitword.Word
	beta  []bitword.Word
}

func (e *bitPlanes) row(r int) ([]bitword.Word, []bitword.Word) {
	lo, hi := r*e.words, (r+1)*e.words
	return e.alpha[lo:hi:hi], e.beta[lo:hi:hi]
}

func (e *bitPlanes) set(row, col int, g genotype.Genotype, _ allele.Code) {
	a, b := e.row(row)
	if g&1 != 0 {
		bitword.Set(a, col)
	}
	if g&2 != 0 {
		bitword.Set(b, col)
	}
}

func (e *bitPlanes) get(row, col int, _ role.Header) genotype.Genotype {
	a, b := e.row(row)
	var g genotype.Genotype
	if bitword.Test(a, col) {
		g |= 1
	}
	if bitword.Test(b, col) {
		g |= 2
	}
	return g
}

func (e *bitPlanes) planes(row int, _ role.Header, _ *Planes) Planes {
	a, b := e.row(row)
	return Planes{Alpha: a, Beta: b}
}

func (e *bitPlanes) clearRow(row int) {
	a, b := e.row(row)
	clear(a)
	clear(b)
}

// nibblePlanes splits a Packed2 byte (four 2-bit roles) into four α bits and
// four β bits.
var nibblePlanes = func() (t [256][2]uint8) {
	for b := range 256 {
		for i := range 4 {
			g := b >> (2 * i) & 3
			t[b][0] |= uint8(g&1) << i
			t[b][1] |= uint8(g>>1) << i
		}
	}
	return t
}()

type packed2 struct {
	stride int
	data   []byte
}

func (e *packed2) set(row, col int, g genotype.Genotype, _ allele.Code) {
	e.data[row*e.stride+col/4] |= byte(g) << (uint(col%4) * 2)
}

func (e *packed2) get(row, col int, _ role.Header) genotype.Genotype {
	return genotype.Genotype(e.data[row*e.stride+col/4] >> (uint(col%4) * 2) & 3)
}

func (e *packed2) planes(row int, _ role.Header, buf *Planes) Planes {
	buf.reset()
	for i, b := range e.data[row*e.stride : (row+1)*e.stride] {
		if b == 0 {
			continue
		}
		bit := i * 4
		wi, sh := bit/bitword.Bits, uint(bit%bitword.Bits)
		p := nibblePlanes[b]
		buf.Alpha[wi] |= bitword.Word(p[0]) << sh
		buf.Beta[wi] |= bitword.Word(p[1]) << sh
	}
	return *buf
}

func (e *packed2) clearRow(row int) {
	clear(e.data[row*e.stride : (row+1)*e.stride])
}

type packed4 struct {
	stride int
	data   []byte
}

func (e *packed4) set(row, col int, _ genotype.Genotype, c allele.Code) {
	e.data[row*e.stride+col/2] |= byte(c) << (uint(col%2) * 4)
}

func (e *packed4) get(row, col int, h role.Header) genotype.Genotype {
	c := e.data[row*e.stride+col/2] >> (uint(col%2) * 4) & 0xF
	lut := h.Lookup()
	return lut[c]
}

func (e *packed4) planes(row int, h role.Header, buf *Planes) Planes {
	buf.reset()
	lut := h.Lookup()
	for i, b := range e.data[row*e.stride : (row+1)*e.stride] {
		if b == 0 {
			continue
		}
		lo, hi := lut[b&0xF], lut[b>>4]
		bit := i * 2
		wi, sh := bit/bitword.Bits, uint(bit%bitword.Bits)
		buf.Alpha[wi] |= bitword.Word(lo&1|(hi&1)<<1) << sh
		buf.Beta[wi] |= bitword.Word(lo>>1|(hi>>1)<<1) << sh
	}
	return *buf
}

func (e *packed4) clearRow(row int) {
	clear(e.data[row*e.stride : (row+1)*e.stride])
}

// Distribution counts the roles held in p over n columns. Bits at or beyond
// n must be clear.
func (p Planes) Distribution(n int) genotype.Distribution {
	both := bitword.AndCount(p.Alpha, p.Beta)
	d := genotype.Distribution{
		HomMajor: bitword.Count(p.Alpha) - both,
		Het:      bitword.Count(p.Beta) - both,
		HomMinor: both,
	}
	d.Missing = n - d.Called()
	return d
}
