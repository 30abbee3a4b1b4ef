package bitword

// Kernel function pointers. Native implementations are the default;
// init in capability.go may swap in the table kernels.
var (
	kernelCount    = countNative
	kernelAndCount = andCountNative
)

// Count returns the number of set bits across words.
func Count(words []Word) int {
	return kernelCount(words)
}

// AndCount returns popcount(a[i] & b[i]) summed over i.
// a and b must have the same length.
func AndCount(a, b []Word) int {
	return kernelAndCount(a, b)
}

// And performs dst[i] = a[i] & b[i].
func And(dst, a, b []Word) {
	if len(a) == 0 {
		return
	}
	_ = dst[len(a)-1]
	_ = b[len(a)-1]
	i := 0
	for ; i+4 <= len(a); i += 4 {
		dst[i] = a[i] & b[i]
		dst[i+1] = a[i+1] & b[i+1]
		dst[i+2] = a[i+2] & b[i+2]
		dst[i+3] = a[i+3] & b[i+3]
	}
	for ; i < len(a); i++ {
		dst[i] = a[i] & b[i]
	}
}

// ==============================================================================
// Native (math/bits) implementations
// ==============================================================================

func countNative(words []Word) int {
	n := 0
	i := 0
	for ; i+4 <= len(words); i += 4 {
		n += PopCount(words[i]) + PopCount(words[i+1]) + PopCount(words[i+2]) + PopCount(words[i+3])
	}
	for ; i < len(words); i++ {
		n += PopCount(words[i])
	}
	return n
}

func andCountNative(a, b []Word) int {
	if len(a) == 0 {
		return 0
	}
	_ = b[len(a)-1]
	n := 0
	for i := range a {
		n += PopCount(a[i] & b[i])
	}
	return n
}

// ==============================================================================
// Table implementations
// ==============================================================================

var byteCounts = func() (t [256]uint8) {
	for i := range t {
		t[i] = t[i/2] + uint8(i&1)
	}
	return t
}()

func popCountTable(w Word) int {
	n := 0
	for w != 0 {
		n += int(byteCounts[w&0xff])
		w >>= 8
	}
	return n
}

func countTable(words []Word) int {
	n := 0
	for _, w := range words {
		n += popCountTable(w)
	}
	return n
}

func andCountTable(a, b []Word) int {
	n := 0
	for i := range a {
		n += popCountTable(a[i] & b[i])
	}
	return n
}
