//go:build !episcan_word32 && !episcan_word16

package bitword

import "math/bits"

// Word is the unit of packing for bit-planes and masks.
type Word = uint64

// Bits is the number of bits per Word.
const Bits = 64

// PopCount returns the number of set bits in w.
func PopCount(w Word) int {
	return bits.OnesCount64(w)
}

// TrailingZeros returns the index of the lowest set bit of w (Bits if w == 0).
func TrailingZeros(w Word) int {
	return bits.TrailingZeros64(w)
}
