package bitword

// WordsFor returns the number of Words needed to hold n bits.
func WordsFor(n int) int {
	return (n + Bits - 1) / Bits
}

// Locate returns the word index and single-bit mask for bit i.
func Locate(i int) (int, Word) {
	return i / Bits, Word(1) << uint(i%Bits)
}

// Set sets bit i.
func Set(words []Word, i int) {
	w, m := Locate(i)
	words[w] |= m
}

// Clear clears bit i.
func Clear(words []Word, i int) {
	w, m := Locate(i)
	words[w] &^= m
}

// Test reports whether bit i is set.
func Test(words []Word, i int) bool {
	w, m := Locate(i)
	return words[w]&m != 0
}

// Gather packs the bits of src selected by mask densely into dst, starting at
// bit 0, and returns the number of bits written. dst must hold at least
// PopCount(mask) bits and is expected to be zeroed.
func Gather(dst, src, mask []Word) int {
	out := 0
	for wi, m := range mask {
		s := src[wi]
		for m != 0 {
			tz := TrailingZeros(m)
			if s&(Word(1)<<uint(tz)) != 0 {
				dst[out/Bits] |= Word(1) << uint(out%Bits)
			}
			out++
			m &= m - 1
		}
	}
	return out
}
