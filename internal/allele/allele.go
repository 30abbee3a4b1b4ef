package allele

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies an unordered allele pair within a Table.
type Code uint8

const (
	// Unknown is the code of a call with an unknown allele.
	Unknown Code = 0

	// MaxCodes is the number of distinct codes representable in a 4-bit slot.
	MaxCodes = 16

	// MaxAlphabet is the largest alphabet whose unordered pairs plus Unknown fit
	// in MaxCodes (5·6/2 + 1 = 16).
	MaxAlphabet = 5

	// DefaultAlphabet holds the nucleotide letters.
	DefaultAlphabet = "ACGT"

	// DefaultUnknown holds the sentinel characters accepted for a missing allele.
	DefaultUnknown = "0N-?."
)

var (
	// ErrMalformedCall is returned for a call that is not two characters from
	// the alphabet or the unknown set.
	ErrMalformedCall = errors.New("malformed allele-pair call")

	// ErrInvalidAlphabet is returned when a Table cannot be built.
	ErrInvalidAlphabet = errors.New("invalid allele alphabet")
)

const noIndex = -1

// Table is the alphabet×alphabet code table. It is immutable after NewTable
// and safe for concurrent use.
type Table struct {
	alphabet string
	unknown  string
	index    [256]int8
	missing  [256]bool
	codes    [MaxAlphabet][MaxAlphabet]Code
	pairs    [MaxCodes][2]byte
	homo     [MaxCodes]bool
	n        int
}

// NewTable builds a code table for alphabet. Letters are matched case-insensitively.
func NewTable(alphabet, unknown string) (*Table, error) {
	alphabet = strings.ToUpper(alphabet)
	if len(alphabet) == 0 || len(alphabet) > MaxAlphabet {
		return nil, fmt.Errorf("%w: %q must have 1..%d letters", ErrInvalidAlphabet, alphabet, MaxAlphabet)
	}

	t := &Table{alphabet: alphabet, unknown: unknown}
	for i := range t.index {
		t.index[i] = noIndex
	}

	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if t.index[c] != noIndex {
			return nil, fmt.Errorf("%w: duplicate letter %q", ErrInvalidAlphabet, c)
		}
		t.index[c] = int8(i)
		if lower := c | 0x20; lower != c {
			t.index[lower] = int8(i)
		}
	}

	for i := 0; i < len(unknown); i++ {
		c := unknown[i]
		if t.index[c] != noIndex {
			return nil, fmt.Errorf("%w: %q is both a letter and an unknown sentinel", ErrInvalidAlphabet, c)
		}
		t.missing[c] = true
	}

	next := Code(1)
	for i := 0; i < len(alphabet); i++ {
		for j := i; j < len(alphabet); j++ {
			t.codes[i][j] = next
			t.codes[j][i] = next
			t.pairs[next] = [2]byte{alphabet[i], alphabet[j]}
			t.homo[next] = i == j
			next++
		}
	}
	t.n = int(next)

	return t, nil
}

// NewDefaultTable returns a Table over DefaultAlphabet and DefaultUnknown.
func NewDefaultTable() *Table {
	t, err := NewTable(DefaultAlphabet, DefaultUnknown)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse returns the code of a two-character call. A call with any unknown
// sentinel character is Unknown.
func (t *Table) Parse(call string) (Code, error) {
	if len(call) != 2 {
		return Unknown, fmt.Errorf("%w: %q", ErrMalformedCall, call)
	}
	a, b := call[0], call[1]
	if t.missing[a] || t.missing[b] {
		return Unknown, nil
	}
	ia, ib := t.index[a], t.index[b]
	if ia == noIndex || ib == noIndex {
		return Unknown, fmt.Errorf("%w: %q", ErrMalformedCall, call)
	}
	return t.codes[ia][ib], nil
}

// Code returns the code of the allele pair (a, b).
func (t *Table) Code(a, b byte) (Code, bool) {
	ia, ib := t.index[a], t.index[b]
	if ia == noIndex || ib == noIndex {
		return Unknown, false
	}
	return t.codes[ia][ib], true
}

// IsHomozygous reports whether both alleles of c are equal.
func (t *Table) IsHomozygous(c Code) bool {
	return int(c) < t.n && t.homo[c]
}

// Alleles returns the two allele letters of c, or "00" for Unknown.
func (t *Table) Alleles(c Code) string {
	if c == Unknown || int(c) >= t.n {
		return "00"
	}
	p := t.pairs[c]
	return string(p[:])
}

// Shares reports whether the pairs c and d have at least one allele in common.
func (t *Table) Shares(c, d Code) bool {
	if c == Unknown || d == Unknown {
		return false
	}
	pc, pd := t.pairs[c], t.pairs[d]
	return pc[0] == pd[0] || pc[0] == pd[1] || pc[1] == pd[0] || pc[1] == pd[1]
}

// Len returns the number of codes, including Unknown.
func (t *Table) Len() int {
	return t.n
}

// Alphabet returns the upper-case alphabet of the table.
func (t *Table) Alphabet() string {
	return t.alphabet
}
